package domain

import "github.com/pkg/errors"

var (
	ErrNoData    = errors.New("no data")
	ErrDuplicate = errors.New("duplicate")
)
