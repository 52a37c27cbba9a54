package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"github.com/1Garv23/share-smote/models"
	"github.com/1Garv23/share-smote/repositories"

	"github.com/gosimple/slug"
)

// CodeTTL is how long an issued code stays valid.
const CodeTTL = 5 * time.Minute

// PlaceholderHash marks accounts created through the passwordless flow.
// It is not a valid bcrypt hash, so the password login path can never
// succeed against it.
const PlaceholderHash = "!otp-only"

// Notifier delivers a one-time code to its recipient out of band.
type Notifier interface {
	SendCode(email, code string) error
}

// Service issues and verifies one-time codes and resolves the account
// behind a verified email.
type Service struct {
	Store    CredentialStore
	Users    repositories.UserStore
	Notifier Notifier

	// Now is the clock used for expiry decisions, replaceable in tests.
	Now func() time.Time
}

func NewService(store CredentialStore, users repositories.UserStore, notifier Notifier) *Service {
	return &Service{
		Store:    store,
		Users:    users,
		Notifier: notifier,
		Now:      time.Now,
	}
}

// generateCode draws a 6-digit code uniformly from [100000, 999999] using
// crypto/rand so codes are not guessable from previous ones.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// Send issues a fresh code for the email, replacing any pending one, and
// dispatches it. The code is stored before dispatch so a user who receives
// the message can always verify it.
func (s *Service) Send(ctx context.Context, email string) error {
	if email == "" {
		return ErrEmailRequired
	}

	code, err := generateCode()
	if err != nil {
		return err
	}

	cred := models.PendingCredential{
		Code:      code,
		ExpiresAt: s.Now().Add(CodeTTL),
	}
	if err := s.Store.Put(ctx, email, cred); err != nil {
		return err
	}

	if err := s.Notifier.SendCode(email, code); err != nil {
		log.Printf("Failed to send one-time code to %s: %v", email, err)
		return ErrDispatchFailed
	}
	return nil
}

// Verify checks the submitted code against the pending one for the email.
// A matching code is deleted before the account is resolved, so it can be
// used exactly once. A mismatched code leaves the record intact: retries
// are allowed until the code expires.
func (s *Service) Verify(ctx context.Context, email, code string) (*models.User, error) {
	cred, err := s.Store.Get(ctx, email)
	if err != nil {
		return nil, err
	}

	if cred.Expired(s.Now()) {
		if err := s.Store.Remove(ctx, email); err != nil {
			log.Printf("Failed to remove expired code for %s: %v", email, err)
		}
		return nil, ErrCodeExpired
	}

	if cred.Code != code {
		return nil, ErrCodeMismatch
	}

	if err := s.Store.Remove(ctx, email); err != nil {
		return nil, err
	}

	return s.resolveAccount(email)
}

// resolveAccount finds the account for a verified email, creating a
// passwordless one on first login.
func (s *Service) resolveAccount(email string) (*models.User, error) {
	user, err := s.Users.FindByEmail(email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, err
	}

	localPart := email
	if at := strings.Index(email, "@"); at > 0 {
		localPart = email[:at]
	}

	user = &models.User{
		Username:     slug.Make(localPart),
		Email:        email,
		PasswordHash: PlaceholderHash,
	}
	if err := s.Users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}
