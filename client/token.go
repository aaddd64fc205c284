package client

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what can be learned from an access token without verifying its signature.
type TokenInfo struct {
	IsJWT     bool
	Subject   string
	ExpiresAt time.Time
}

// InspectToken decodes the registered claims of a JWT. The signature is not checked: the test
// harness has no key to check it with, and only uses the claims for logging.
func InspectToken(token string) TokenInfo {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return TokenInfo{}
	}
	info := TokenInfo{IsJWT: true, Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info
}

func (t TokenInfo) ExpiresAtString() string {
	if t.ExpiresAt.IsZero() {
		return "never"
	}
	return t.ExpiresAt.UTC().Format(time.RFC3339)
}
