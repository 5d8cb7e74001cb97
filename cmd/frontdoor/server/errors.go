package server

import "errors"

var ErrUnknownMode = errors.New("unknown launch mode")
