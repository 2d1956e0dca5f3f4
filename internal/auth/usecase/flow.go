package usecase

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"voicecal/internal/model"
)

const callbackPath = "/oauth2/callback"

// CreateInteractive runs the browser-based consent flow: it binds a
// loopback listener on an ephemeral port, hands the consent URL to the
// prompt func, waits for the redirect, exchanges the code and persists
// the resulting credential. The caller's context bounds the whole wait.
func (m *Manager) CreateInteractive(ctx context.Context) (*model.Credential, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("failed to open loopback listener: %w", err)
	}

	cfg := *m.oauth
	cfg.RedirectURL = fmt.Sprintf("http://%s%s", ln.Addr().String(), callbackPath)

	state := uuid.NewString()

	type callback struct {
		code string
		err  error
	}
	results := make(chan callback, 1)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.GET(callbackPath, func(c *gin.Context) {
		if c.Query("state") != state {
			c.String(http.StatusBadRequest, "state mismatch")
			results <- callback{err: fmt.Errorf("authorization state mismatch")}
			return
		}
		if errCode := c.Query("error"); errCode != "" {
			c.String(http.StatusOK, "Authorization was denied. You can close this window.")
			results <- callback{err: fmt.Errorf("authorization denied: %s", errCode)}
			return
		}
		code := c.Query("code")
		if code == "" {
			c.String(http.StatusBadRequest, "missing authorization code")
			results <- callback{err: fmt.Errorf("authorization response missing code")}
			return
		}
		c.String(http.StatusOK, "Authorization complete. You can close this window.")
		results <- callback{code: code}
	})

	srv := &http.Server{Handler: router}
	go func() { _ = srv.Serve(ln) }()
	defer srv.Close()

	authURL := cfg.AuthCodeURL(state, oauth2.AccessTypeOffline)
	m.prompt(authURL)

	var cb callback
	select {
	case cb = <-results:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if cb.err != nil {
		return nil, cb.err
	}

	tok, err := cfg.Exchange(ctx, cb.code)
	if err != nil {
		return nil, fmt.Errorf("code exchange: %w", err)
	}

	cred := model.CredentialFromToken(tok, cfg.Scopes)
	if err := m.store.Save(cred); err != nil {
		return nil, fmt.Errorf("failed to persist credential: %w", err)
	}
	m.setCred(cred)

	m.l.Info(ctx, "Interactive authorization complete")
	return cred, nil
}
