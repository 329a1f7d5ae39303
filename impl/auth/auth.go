package auth

import (
	"crypto/subtle"
	"fmt"
)

// Auth checks API bearer tokens against the single configured token.
type Auth struct {
	token string
}

func New(token string) *Auth {
	return &Auth{token: token}
}

func (a Auth) CheckToken(token string) error {
	if a.token == "" {
		return fmt.Errorf("api token not configured")
	}
	if subtle.ConstantTimeCompare([]byte(a.token), []byte(token)) != 1 {
		return fmt.Errorf("invalid token")
	}
	return nil
}
