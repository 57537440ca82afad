package ir

import (
	"errors"
)

var (
	ErrInvalidCursor = errors.New("invalid cursor")
	ErrInvalidHandle = errors.New("invalid handle")
	ErrInvalidChild  = errors.New("invalid child")
	ErrAttached      = errors.New("entity already attached")
	ErrKind          = errors.New("wrong entity kind")
)
