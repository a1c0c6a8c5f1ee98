// Package oauth captures a third-party access token on localhost so the CLI
// can hand it to the backend's token-exchange endpoint. Only the capture is
// implemented here; talking to the provider is the browser's job and
// exchanging the token for a session is session.Manager's.
package oauth

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Provider describes one OAuth provider's authorize endpoint.
type Provider struct {
	Name     string
	Endpoint string
	ClientID string
	Scopes   []string
}

// Google returns the google provider with the given client ID.
func Google(clientID string) Provider {
	return Provider{
		Name:     "google",
		Endpoint: "https://accounts.google.com/o/oauth2/v2/auth",
		ClientID: clientID,
		Scopes:   []string{"openid", "profile", "email"},
	}
}

// Discord returns the discord provider with the given client ID.
func Discord(clientID string) Provider {
	return Provider{
		Name:     "discord",
		Endpoint: "https://discord.com/api/oauth2/authorize",
		ClientID: clientID,
		Scopes:   []string{"identify", "email"},
	}
}

// AuthorizeURL builds the implicit-grant authorize URL the user opens in a
// browser. The provider redirects back with the access token in the URL
// fragment, which the relay page forwards to the listener.
func (p Provider) AuthorizeURL(redirectURI, state string) string {
	q := url.Values{}
	q.Set("client_id", p.ClientID)
	q.Set("redirect_uri", redirectURI)
	q.Set("response_type", "token")
	q.Set("scope", strings.Join(p.Scopes, " "))
	q.Set("state", state)
	return p.Endpoint + "?" + q.Encode()
}

// relayPage moves the access token out of the URL fragment (which never
// reaches the server) into a POST the listener can see.
const relayPage = `<!DOCTYPE html>
<html>
<head><title>Signing in...</title></head>
<body>
<p id="msg">Completing sign-in...</p>
<script>
var params = new URLSearchParams(window.location.hash.substring(1));
fetch("/token", {
  method: "POST",
  headers: {"Content-Type": "application/json"},
  body: JSON.stringify({
    access_token: params.get("access_token") || "",
    state: params.get("state") || ""
  })
}).then(function () {
  document.getElementById("msg").textContent = "Signed in. You can close this tab.";
});
</script>
</body>
</html>`

// Listener is a short-lived localhost HTTP server waiting for one token.
type Listener struct {
	state  string
	addr   string
	server *http.Server
	tokens chan string
}

// Listen starts the capture listener on 127.0.0.1:port (port 0 picks a free
// one). Callers must Close it.
func Listen(port int) (*Listener, error) {
	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return nil, fmt.Errorf("failed to start oauth listener: %w", err)
	}

	l := &Listener{
		state:  uuid.NewString(),
		addr:   ln.Addr().String(),
		tokens: make(chan string, 1),
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.GET("/callback", func(c *gin.Context) {
		// Some providers deliver the token as a query parameter instead of
		// a fragment; accept it directly when they do.
		if token := c.Query("access_token"); token != "" && c.Query("state") == l.state {
			l.deliver(token)
			c.String(http.StatusOK, "Signed in. You can close this tab.")
			return
		}
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, relayPage)
	})
	router.POST("/token", func(c *gin.Context) {
		var body struct {
			AccessToken string `json:"access_token"`
			State       string `json:"state"`
		}
		if err := c.ShouldBindJSON(&body); err != nil || body.AccessToken == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "missing access token"})
			return
		}
		if body.State != l.state {
			c.JSON(http.StatusForbidden, gin.H{"message": "state mismatch"})
			return
		}
		l.deliver(body.AccessToken)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	l.server = &http.Server{Handler: router}
	go l.server.Serve(ln)

	return l, nil
}

func (l *Listener) deliver(token string) {
	select {
	case l.tokens <- token:
	default:
	}
}

// RedirectURI returns the callback URL to register with the provider.
func (l *Listener) RedirectURI() string {
	return "http://" + l.addr + "/callback"
}

// State returns the nonce the authorize URL must carry.
func (l *Listener) State() string { return l.state }

// Wait blocks until the browser delivers a token or ctx ends.
func (l *Listener) Wait(ctx context.Context) (string, error) {
	select {
	case token := <-l.tokens:
		return token, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Close shuts the listener down.
func (l *Listener) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return l.server.Shutdown(ctx)
}
