package admin

import "errors"

var (
	ErrNotFound   = errors.New("admin not found")
	ErrEmailTaken = errors.New("admin email already registered")
)
