package model

import (
	"time"

	"golang.org/x/oauth2"
)

// Credential is the bearer token material for the remote calendar
// service. At most one record exists per installation; it is owned by
// the credential lifecycle manager and persisted as a single JSON file.
type Credential struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	TokenType    string    `json:"token_type,omitempty"`
	Expiry       time.Time `json:"expiry"`
	Scopes       []string  `json:"scopes,omitempty"`
}

// Valid reports whether the credential can be used as-is at the given
// moment. A small skew keeps a token that is about to expire from being
// sent on a call that would outlive it.
func (c *Credential) Valid(now time.Time) bool {
	if c == nil || c.AccessToken == "" {
		return false
	}
	if c.Expiry.IsZero() {
		return true
	}
	return now.Add(expirySkew).Before(c.Expiry)
}

// Refreshable reports whether an expired credential can be exchanged
// for a fresh one without user interaction.
func (c *Credential) Refreshable() bool {
	return c != nil && c.RefreshToken != ""
}

// Token converts the credential to its oauth2 representation.
func (c *Credential) Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  c.AccessToken,
		RefreshToken: c.RefreshToken,
		TokenType:    c.TokenType,
		Expiry:       c.Expiry,
	}
}

// CredentialFromToken builds a credential from an oauth2 token,
// recording the scopes it was granted for.
func CredentialFromToken(tok *oauth2.Token, scopes []string) *Credential {
	return &Credential{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		Expiry:       tok.Expiry,
		Scopes:       scopes,
	}
}

const expirySkew = 30 * time.Second
