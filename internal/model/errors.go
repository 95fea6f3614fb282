package model

import "errors"

var (
	ErrNotFound   = errors.New("not found")
	ErrDuplicate  = errors.New("already exists")
	ErrInvalidID  = errors.New("invalid id format")
	ErrValidation = errors.New("validation failed")
)
