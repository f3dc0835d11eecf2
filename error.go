package ringlist

import (
	"errors"

	"github.com/dacapoday/ringlist/seqlock"
)

var (
	ErrInvalidOption          = errors.New("invalid option")
	ErrOutOfRange             = errors.New("out of range")
	ErrNotFound               = errors.New("not found")
	ErrConcurrentModification = seqlock.ErrConflict
	ErrUnsupported            = errors.New("unsupported")
	ErrOutOfSpace             = errors.New("out of space")
)
