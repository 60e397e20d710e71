package chat

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
)

var (
	ErrEmptyUsername     = fmt.Errorf("%w: username cannot be empty", ErrInvalidArgument)
	ErrInvalidRole       = fmt.Errorf("%w: invalid role", ErrInvalidArgument)
	ErrEmptyContent      = fmt.Errorf("%w: content cannot be empty", ErrInvalidArgument)
	ErrInvalidRoleFilter = fmt.Errorf("%w: invalid role filter", ErrInvalidArgument)
	ErrSessionNotFound   = fmt.Errorf("%w: session not found", ErrNotFound)
)
