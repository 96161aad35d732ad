package config

import "errors"

var (
	ErrReadConfig    = errors.New("config: failed to read file")
	ErrInvalidConfig = errors.New("config: invalid configuration")
)
