package model

import "errors"

// ErrInvalidOption is returned when a filter, sort or visibility value is unknown.
var ErrInvalidOption = errors.New("invalid option")
