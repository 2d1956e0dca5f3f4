package usecase

import (
	"sync"

	"voicecal/internal/model"
)

// fakeStore is an in-memory TokenStore for tests.
type fakeStore struct {
	mu      sync.Mutex
	cred    *model.Credential
	loadErr error
	saves   int
}

func (s *fakeStore) Load() (*model.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if s.cred == nil {
		return nil, model.ErrNoRecord
	}
	c := *s.cred
	return &c, nil
}

func (s *fakeStore) Save(cred *model.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *cred
	s.cred = &c
	s.saves++
	return nil
}

func (s *fakeStore) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = nil
	return nil
}

func (s *fakeStore) saved() *model.Credential {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cred
}
