package session

import "errors"

var (
	ErrUnexpectedLoginResponse = errors.New("login response carried neither token nor two-factor request")
)
