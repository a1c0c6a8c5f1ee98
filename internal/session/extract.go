package session

import (
	"encoding/json"

	"github.com/Tomasivanovich/ProjectManagementApp/internal/api"
)

// The backend has shipped auth responses in several shapes over time: the
// token has appeared under data.token, token, and access_token, and the user
// under data.user, user, usuario, and data.usuario. Extraction is an ordered
// list of locations tried until one yields a value (first match wins), so
// the precedence is explicit rather than buried in chained nil checks.

type authResponse struct {
	Token       string          `json:"token"`
	AccessToken string          `json:"access_token"`
	User        json.RawMessage `json:"user"`
	Usuario     json.RawMessage `json:"usuario"`
	Data        struct {
		Token   string          `json:"token"`
		User    json.RawMessage `json:"user"`
		Usuario json.RawMessage `json:"usuario"`
	} `json:"data"`
}

var tokenLocations = []func(*authResponse) string{
	func(r *authResponse) string { return r.Data.Token },
	func(r *authResponse) string { return r.Token },
	func(r *authResponse) string { return r.AccessToken },
}

var userLocations = []func(*authResponse) json.RawMessage{
	func(r *authResponse) json.RawMessage { return r.Data.User },
	func(r *authResponse) json.RawMessage { return r.User },
	func(r *authResponse) json.RawMessage { return r.Usuario },
	func(r *authResponse) json.RawMessage { return r.Data.Usuario },
}

func extractToken(r *authResponse) string {
	for _, loc := range tokenLocations {
		if token := loc(r); token != "" {
			return token
		}
	}
	return ""
}

func extractUser(r *authResponse) *api.UserProfile {
	for _, loc := range userLocations {
		raw := loc(r)
		if len(raw) == 0 || string(raw) == "null" {
			continue
		}
		var user api.UserProfile
		if err := json.Unmarshal(raw, &user); err != nil {
			continue
		}
		return &user
	}
	return nil
}

// parseAuthResponse pulls the token and user out of a raw auth response
// body. Either return value may be empty/nil; the caller decides whether
// that is fatal.
func parseAuthResponse(body []byte) (string, *api.UserProfile) {
	var resp authResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", nil
	}
	return extractToken(&resp), extractUser(&resp)
}
