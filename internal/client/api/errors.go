package api

import "errors"

var (
	// ErrUnavailable means the remote service could not be reached at all
	// (connection failure, timeout).
	ErrUnavailable = errors.New("service unavailable")

	// ErrRejected means the remote service understood the request and said
	// no (failed login, taken username, rejected rename).
	ErrRejected = errors.New("request rejected")

	// ErrUnauthorized means the remote service refused the credentials.
	ErrUnauthorized = errors.New("unauthorized")
)
