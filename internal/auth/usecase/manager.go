package usecase

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"golang.org/x/oauth2"

	"voicecal/internal/auth"
	"voicecal/internal/model"
)

// GetValid returns a usable credential, doing the minimum work needed:
// nothing for a valid in-memory credential, a store read when none is
// cached, a single shared refresh exchange when expired but
// refreshable. An expired credential with no refresh token is never
// usable and never triggers a network call.
func (m *Manager) GetValid(ctx context.Context) (*model.Credential, error) {
	cred := m.currentCred()

	if cred == nil {
		loaded, err := m.store.Load()
		if err != nil {
			if !errors.Is(err, model.ErrNoRecord) {
				// Unparsable record is treated as absent.
				m.l.Warnf(ctx, "Ignoring unreadable credential record: %v", err)
			}
			return nil, auth.ErrCredentialUnavailable
		}
		cred = loaded
	}

	if cred.Valid(m.now()) {
		m.setCred(cred)
		return cred, nil
	}

	if !cred.Refreshable() {
		m.setCred(nil)
		return nil, auth.ErrCredentialUnavailable
	}

	v, err, _ := m.sf.Do("refresh", func() (interface{}, error) {
		return m.refresh(ctx, cred)
	})
	if err != nil {
		// Drop the known-bad credential; the next GetValid retries
		// from persisted state.
		m.setCred(nil)
		m.l.Errorf(ctx, "Credential refresh failed: %v", err)
		return nil, fmt.Errorf("%w: %w", auth.ErrCredentialUnavailable, err)
	}

	fresh := v.(*model.Credential)
	m.setCred(fresh)
	return fresh, nil
}

func (m *Manager) refresh(ctx context.Context, cred *model.Credential) (*model.Credential, error) {
	tok, err := m.oauth.TokenSource(ctx, cred.Token()).Token()
	if err != nil {
		return nil, classifyRefreshError(err)
	}

	// The service omits the refresh token on a refresh response; keep
	// the one we have.
	if tok.RefreshToken == "" {
		tok.RefreshToken = cred.RefreshToken
	}

	fresh := model.CredentialFromToken(tok, cred.Scopes)
	if err := m.store.Save(fresh); err != nil {
		// The exchange succeeded; losing the persisted copy only costs
		// a re-auth after restart.
		m.l.Warnf(ctx, "Failed to persist refreshed credential: %v", err)
	} else {
		m.l.Infof(ctx, "Credential refreshed, new expiry %s", fresh.Expiry)
	}
	return fresh, nil
}

// Clear deletes the persisted record and drops the in-memory
// credential.
func (m *Manager) Clear(ctx context.Context) error {
	m.setCred(nil)
	if err := m.store.Delete(); err != nil {
		return fmt.Errorf("failed to clear credential: %w", err)
	}
	m.l.Info(ctx, "Credential cleared")
	return nil
}

// TokenSource adapts the manager to oauth2.TokenSource so API clients
// route every call through GetValid.
func (m *Manager) TokenSource(ctx context.Context) oauth2.TokenSource {
	return &managerTokenSource{ctx: ctx, m: m}
}

type managerTokenSource struct {
	ctx context.Context
	m   *Manager
}

func (t *managerTokenSource) Token() (*oauth2.Token, error) {
	cred, err := t.m.GetValid(t.ctx)
	if err != nil {
		return nil, err
	}
	return cred.Token(), nil
}

func classifyRefreshError(err error) *auth.RefreshError {
	var retrieve *oauth2.RetrieveError
	if errors.As(err, &retrieve) {
		if retrieve.ErrorCode == "invalid_grant" || strings.Contains(string(retrieve.Body), "invalid_grant") {
			return &auth.RefreshError{Kind: auth.RefreshInvalidGrant, Err: err}
		}
		return &auth.RefreshError{Kind: auth.RefreshUnknown, Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return &auth.RefreshError{Kind: auth.RefreshTransient, Err: err}
	}
	return &auth.RefreshError{Kind: auth.RefreshUnknown, Err: err}
}
