// Package token decodes and validates the bearer credential issued by the
// SurveyDesk API. The server is the trust boundary and holds the signing key;
// the client only inspects the claims it needs to build an identity and to
// decide whether a persisted credential is still worth presenting. Every check
// fails closed: malformed input is an error, never a partial result.
package token

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"github.com/surveydesk/go-console/users"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// ErrInvalidUserToken is returned when a token is malformed or is missing any
// of the required identity claims.
var ErrInvalidUserToken = errors.New("user token invalid")

// Claims is the identity extracted from a bearer token.
type Claims struct {
	Email  string         // subject claim
	UserID int64          // internal numeric user identifier
	Role   users.RoleType // canonical role, remapped from the role claim
}

// Decode parses the token payload and extracts the identity claims.
// Required claims: subject (email), uid, and role. Missing any one of the
// three yields ErrInvalidUserToken.
func Decode(rawToken string) (*Claims, error) {
	claims, err := payload(rawToken)
	if err != nil {
		return nil, err
	}

	sub, _ := claims["sub"].(string)
	uid, uidOK := claims["uid"].(float64)
	role, _ := claims["role"].(string)

	if sub == "" || !uidOK || role == "" {
		return nil, ErrInvalidUserToken
	}

	return &Claims{
		Email:  sub,
		UserID: int64(uid),
		Role:   users.RoleFromIdentifier(role),
	}, nil
}

// Verify reports whether rawToken is well formed and unexpired. A token
// without an exp claim is treated as expired; absence is never "no expiry".
func Verify(rawToken string) bool {
	claims, err := payload(rawToken)
	if err != nil {
		return false
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return false
	}

	return NowTimeFunc().Unix() < int64(exp)
}

func payload(rawToken string) (jwtlib.MapClaims, error) {
	// ParseUnverified is deliberate: the client has no verification key, so
	// the structural and claim checks here are the whole local contract.
	parsed, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return nil, ErrInvalidUserToken
	}

	claims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, ErrInvalidUserToken
	}
	return claims, nil
}
