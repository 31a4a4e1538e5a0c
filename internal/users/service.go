package users

import (
	"context"
	"errors"
	"strings"
	"sync"

	"resume-builder/internal/shared/apperr"
	"resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/validate"
)

const (
	msgEmailTaken         = "This email is already registered. Please log in."
	msgInvalidCredentials = "Invalid email or password."
)

// TokenIssuer signs a credential for an authenticated identity.
type TokenIssuer interface {
	Issue(id auth.Identity) (string, error)
}

type Service struct {
	Repo       Repo
	Tokens     TokenIssuer
	BcryptCost int

	dummyOnce sync.Once
	dummyHash string
}

func NewService(repo Repo, tokens TokenIssuer, bcryptCost int) *Service {
	return &Service{Repo: repo, Tokens: tokens, BcryptCost: bcryptCost}
}

// Register creates an account for a new email address.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	req.Email = normalizeEmail(req.Email)
	if err := validate.Struct(req); err != nil {
		return User{}, err
	}
	hash, err := auth.HashPassword(req.Password, s.BcryptCost)
	if err != nil {
		return User{}, apperr.Wrap(apperr.ErrValidation, "Password cannot be used.", err)
	}
	user, err := s.Repo.Create(ctx, User{Email: req.Email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return User{}, apperr.New(apperr.ErrConflict, msgEmailTaken)
		}
		return User{}, apperr.Wrap(apperr.ErrUpstream, "create user", err)
	}
	user.PasswordHash = ""
	return user, nil
}

// Login checks credentials and issues a bearer token. Unknown emails and
// wrong passwords fail identically.
func (s *Service) Login(ctx context.Context, req LoginRequest) (string, error) {
	if s == nil || s.Repo == nil || s.Tokens == nil {
		return "", errors.New("users service not configured")
	}
	req.Email = normalizeEmail(req.Email)
	if err := validate.Struct(req); err != nil {
		return "", err
	}
	user, err := s.Repo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return "", apperr.Wrap(apperr.ErrUpstream, "load user", err)
	}
	if errors.Is(err, ErrNotFound) {
		// Spend the same bcrypt work as a real comparison.
		_ = auth.CheckPassword(s.dummy(), req.Password)
		return "", invalidCredentials()
	}
	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		return "", invalidCredentials()
	}
	token, err := s.Tokens.Issue(auth.Identity{UserID: user.ID, Email: user.Email})
	if err != nil {
		return "", apperr.Wrap(apperr.ErrUpstream, "issue token", err)
	}
	return token, nil
}

func (s *Service) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = auth.HashPassword("not-a-real-password", s.BcryptCost)
	})
	return s.dummyHash
}

func invalidCredentials() error {
	return apperr.WithCode(apperr.ErrUnauthenticated, "invalid_credentials", msgInvalidCredentials)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
