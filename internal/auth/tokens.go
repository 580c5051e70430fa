package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Tokens signs and verifies the bearer credentials handed out at login.
// The payload carries a single claim, the subject user id. Tokens have no
// expiry and there is no revocation; a token stays valid for as long as the
// signing secret does.
type Tokens struct {
	secret []byte
}

func NewTokens(secret string) *Tokens {
	return &Tokens{secret: []byte(secret)}
}

type claims struct {
	UserID int64 `json:"uid"`
	jwt.RegisteredClaims
}

func (t *Tokens) Issue(userID int64) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{UserID: userID})
	return tok.SignedString(t.secret)
}

// Authenticate verifies the signature and returns the embedded user id.
// Verification and claim extraction are a single step; there is no way to
// read a principal id out of a token that did not verify.
func (t *Tokens) Authenticate(tokenStr string) (int64, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &claims{}, func(tok *jwt.Token) (interface{}, error) {
		return t.secret, nil
	})
	if err != nil {
		return 0, ErrInvalidToken
	}
	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid || c.UserID <= 0 {
		return 0, ErrInvalidToken
	}
	return c.UserID, nil
}
