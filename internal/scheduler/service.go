package scheduler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"

	"vaccine-scheduler/internal/apperr"
	"vaccine-scheduler/internal/auth"
	"vaccine-scheduler/internal/logger"
	"vaccine-scheduler/internal/model"
	"vaccine-scheduler/internal/store"
)

// Service implements every command-level operation. It keeps no session
// state of its own; callers pass the current *model.Session into each call.
type Service struct {
	store    store.Store
	tokens   *auth.Tokens
	limiter  *auth.LoginLimiter
	validate *validator.Validate
	log      *logger.Logger
}

func New(st store.Store, tokens *auth.Tokens, limiter *auth.LoginLimiter, log *logger.Logger) *Service {
	return &Service{
		store:    st,
		tokens:   tokens,
		limiter:  limiter,
		validate: newValidator(),
		log:      log,
	}
}

// authorize checks the session token and that the session's role is one of roles.
func (s *Service) authorize(sess *model.Session, roles ...model.Role) error {
	if sess == nil {
		return apperr.ErrNotLoggedIn
	}
	c, err := s.tokens.Parse(sess.Token)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return apperr.ErrSessionExpired
	}
	if err != nil || c.Subject != sess.Username || c.Role != sess.Role || c.ID != sess.ID {
		return apperr.ErrNotLoggedIn
	}
	for _, r := range roles {
		if r == sess.Role {
			return nil
		}
	}
	return apperr.ErrWrongRole
}

// fail converts an error to the taxonomy and logs store failures.
func (s *Service) fail(msg string, err error, args ...any) error {
	ae := apperr.Store(msg, err)
	if ae.Kind == apperr.KindStore {
		s.log.Error(msg, append(args, "error", err)...)
	}
	return ae
}

func sessionAttrs(sess *model.Session) []any {
	return []any{"session_id", sess.ID, "role", sess.Role, "username", sess.Username}
}
