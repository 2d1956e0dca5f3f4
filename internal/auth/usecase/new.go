package usecase

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/sync/singleflight"
	"google.golang.org/api/calendar/v3"

	"voicecal/internal/auth/repository"
	"voicecal/internal/model"
	pkgLog "voicecal/pkg/log"
)

// Manager is the credential lifecycle manager. It holds the one
// authoritative in-memory credential; all callers share it and
// concurrent refresh attempts collapse into a single exchange.
type Manager struct {
	l      pkgLog.Logger
	store  repository.TokenStore
	oauth  *oauth2.Config
	prompt func(authURL string)

	mu   sync.Mutex
	cred *model.Credential

	sf  singleflight.Group
	now func() time.Time
}

// New creates a Manager. prompt receives the consent URL during
// interactive authorization; nil logs the URL instead.
func New(l pkgLog.Logger, store repository.TokenStore, oauthCfg *oauth2.Config, prompt func(authURL string)) *Manager {
	m := &Manager{
		l:      l,
		store:  store,
		oauth:  oauthCfg,
		prompt: prompt,
		now:    time.Now,
	}
	if m.prompt == nil {
		m.prompt = func(authURL string) {
			l.Infof(context.Background(), "Open this URL in your browser to authorize: %s", authURL)
		}
	}
	return m
}

// LoadOAuthConfig parses an OAuth desktop-app client secret file into
// the oauth2 config used for all credential exchanges.
func LoadOAuthConfig(path string) (*oauth2.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	cfg, err := google.ConfigFromJSON(data, calendar.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}
	return cfg, nil
}

func (m *Manager) setCred(cred *model.Credential) {
	m.mu.Lock()
	m.cred = cred
	m.mu.Unlock()
}

func (m *Manager) currentCred() *model.Credential {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cred
}
