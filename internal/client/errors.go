package client

import "errors"

var (
	ErrInvalidAddressFormat = errors.New("invalid server address format")
	ErrUnsupportedScheme    = errors.New("unsupported URL scheme")
	ErrRequestFailed        = errors.New("health request failed")
	ErrUnhealthy            = errors.New("server is unhealthy")
)
