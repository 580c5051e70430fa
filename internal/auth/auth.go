package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// CredentialStore resolves login credentials to a user record.
type CredentialStore interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
}

type Service struct {
	store  CredentialStore
	tokens *Tokens
}

func NewService(store CredentialStore, tokens *Tokens) *Service {
	return &Service{
		store:  store,
		tokens: tokens,
	}
}

var ErrInvalidCredentials = errors.New("invalid credentials")

func (s *Service) Login(ctx context.Context, username, password string) (*User, string, error) {
	user, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
