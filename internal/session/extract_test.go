package session

import "testing"

// The same token must come out of every historical response shape:
// data.token, top-level token, and access_token.
func TestParseAuthResponseTokenShapes(t *testing.T) {
	t.Parallel()

	bodies := []string{
		`{"data": {"token": "tok-1", "user": {"id_usuario": 3, "nombre": "Ana", "email": "ana@example.com", "rol_global": "user"}}}`,
		`{"token": "tok-1", "user": {"id_usuario": 3, "nombre": "Ana", "email": "ana@example.com", "rol_global": "user"}}`,
		`{"access_token": "tok-1", "user": {"id_usuario": 3, "nombre": "Ana", "email": "ana@example.com", "rol_global": "user"}}`,
	}

	for _, body := range bodies {
		token, user := parseAuthResponse([]byte(body))
		if token != "tok-1" {
			t.Errorf("token = %q, want tok-1 (body %s)", token, body)
		}
		if user == nil || user.ID != 3 {
			t.Errorf("user not extracted from %s", body)
		}
	}
}

func TestParseAuthResponseUserShapes(t *testing.T) {
	t.Parallel()

	bodies := []string{
		`{"token": "tok", "user": {"id_usuario": 3}}`,
		`{"token": "tok", "usuario": {"id_usuario": 3}}`,
		`{"token": "tok", "data": {"user": {"id_usuario": 3}}}`,
		`{"token": "tok", "data": {"usuario": {"id_usuario": 3}}}`,
	}

	for _, body := range bodies {
		_, user := parseAuthResponse([]byte(body))
		if user == nil || user.ID != 3 {
			t.Errorf("user not extracted from %s", body)
		}
	}
}

// First match wins: when several locations are populated the nested
// data.token takes precedence.
func TestParseAuthResponsePrecedence(t *testing.T) {
	t.Parallel()

	body := `{"access_token": "third", "token": "second", "data": {"token": "first", "user": {"id_usuario": 1}}}`
	token, _ := parseAuthResponse([]byte(body))
	if token != "first" {
		t.Errorf("token = %q, want first", token)
	}
}

func TestParseAuthResponseMissingPieces(t *testing.T) {
	t.Parallel()

	token, user := parseAuthResponse([]byte(`{"message": "ok"}`))
	if token != "" || user != nil {
		t.Errorf("Expected nothing from a bodiless response, got %q / %+v", token, user)
	}

	token, user = parseAuthResponse([]byte(`not json at all`))
	if token != "" || user != nil {
		t.Errorf("Expected nothing from garbage, got %q / %+v", token, user)
	}

	token, user = parseAuthResponse([]byte(`{"token": "tok", "user": null, "usuario": null}`))
	if token != "tok" || user != nil {
		t.Errorf("Expected token only, got %q / %+v", token, user)
	}
}
