package scheduler

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"vaccine-scheduler/internal/apperr"
	"vaccine-scheduler/internal/auth"
	"vaccine-scheduler/internal/model"
)

// Register creates a patient or caregiver. The username check runs before the
// password policy; all policy violations are reported together.
func (s *Service) Register(ctx context.Context, current *model.Session, role model.Role, username, password string) (*model.Account, error) {
	if current != nil {
		return nil, apperr.ErrAlreadyLoggedIn.WithMessage("logout before creating another account")
	}
	if !role.Valid() {
		return nil, apperr.ErrWrongRole
	}
	if err := s.check(credentialsRequest{Username: username, Password: password}); err != nil {
		return nil, err
	}
	username = auth.NormalizeUsername(username)

	taken, err := s.store.UsernameExists(ctx, role, username)
	if err != nil {
		return nil, s.fail("failed to check username", err, "role", role)
	}
	if taken {
		return nil, apperr.ErrDuplicateUsername
	}

	if problems := auth.PasswordProblems(password); len(problems) > 0 {
		return nil, apperr.ErrWeakPassword.
			WithMessage(strings.Join(problems, "\n")).
			WithDetails(map[string]any{"problems": problems})
	}

	salt, hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, s.fail("failed to hash password", err)
	}
	a := &model.Account{Username: username, Salt: salt, Hash: hash, Role: role}
	if err := s.store.CreateAccount(ctx, a); err != nil {
		return nil, s.fail("failed to register user", err, "role", role)
	}

	s.log.Info("account created", "role", role, "username", username)
	return a, nil
}

// Login verifies credentials and opens a session. Attempts are throttled per account.
func (s *Service) Login(ctx context.Context, current *model.Session, role model.Role, username, password string) (*model.Session, error) {
	if current != nil {
		return nil, apperr.ErrAlreadyLoggedIn
	}
	if !role.Valid() {
		return nil, apperr.ErrWrongRole
	}
	if err := s.check(credentialsRequest{Username: username, Password: password}); err != nil {
		return nil, err
	}
	username = auth.NormalizeUsername(username)

	if !s.limiter.Allow(role, username) {
		s.log.Warn("login throttled", "role", role, "username", username)
		return nil, apperr.ErrTooManyAttempts
	}

	a, err := s.store.AccountByUsername(ctx, role, username)
	if err != nil {
		return nil, s.fail("failed to retrieve login info", err, "role", role)
	}
	if a == nil || !auth.CheckPassword(a.Salt, a.Hash, password) {
		return nil, apperr.ErrInvalidCredentials
	}
	s.limiter.Reset(role, username)

	sess := &model.Session{ID: uuid.New().String(), Role: role, Username: username}
	tok, exp, err := s.tokens.Make(role, username, sess.ID)
	if err != nil {
		return nil, s.fail("failed to open session", err)
	}
	sess.Token = tok
	sess.ExpiresAt = exp

	s.log.Info("logged in", sessionAttrs(sess)...)
	return sess, nil
}

// Logout succeeds for any open session, expired or not.
func (s *Service) Logout(current *model.Session) error {
	if current == nil {
		return apperr.ErrNotLoggedIn
	}
	s.log.Info("logged out", sessionAttrs(current)...)
	return nil
}
