package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	"doc-research-fe/internal/dto"
	"doc-research-fe/internal/gateway"
	"doc-research-fe/internal/pkg/logger"
	"doc-research-fe/internal/session"
)

// ErrValidation means a form failed local validation; no backend request
// was issued.
var ErrValidation = errors.New("username and password are required")

type IAuthService interface {
	Login(ctx context.Context, sess *session.Session, form *dto.CredentialsForm) error
	Register(ctx context.Context, sess *session.Session, form *dto.CredentialsForm) error
	Logout(sess *session.Session)
}

type authService struct {
	backend  gateway.Backend
	validate *validator.Validate
	log      logger.ILogger
}

func NewAuthService(backend gateway.Backend, log logger.ILogger) IAuthService {
	return &authService{
		backend:  backend,
		validate: validator.New(),
		log:      log,
	}
}

func (s *authService) Login(ctx context.Context, sess *session.Session, form *dto.CredentialsForm) error {
	if err := s.validate.Struct(form); err != nil {
		return ErrValidation
	}

	token, err := s.backend.Authenticate(ctx, form.Username, form.Password)
	if err != nil {
		return err
	}

	sess.Token = token
	sess.Page = session.PageHome
	s.log.Info("auth", "session authenticated", map[string]interface{}{"session_id": sess.Id})
	return nil
}

func (s *authService) Register(ctx context.Context, sess *session.Session, form *dto.CredentialsForm) error {
	if err := s.validate.Struct(form); err != nil {
		return ErrValidation
	}

	if err := s.backend.Register(ctx, form.Username, form.Password); err != nil {
		return err
	}

	sess.Page = session.PageLogin
	return nil
}

func (s *authService) Logout(sess *session.Session) {
	sess.Logout()
	s.log.Info("auth", "session logged out", map[string]interface{}{"session_id": sess.Id})
}
