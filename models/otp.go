package models

import "time"

// PendingCredential is the one-time code waiting to be verified for an email.
// It only ever lives in the credential store, never in PostgreSQL.
type PendingCredential struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the credential is past its TTL at the given instant.
func (p PendingCredential) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}
