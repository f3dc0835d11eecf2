package list

import (
	"github.com/dacapoday/ringlist"
)

var (
	ErrInvalidOption          = ringlist.ErrInvalidOption
	ErrOutOfRange             = ringlist.ErrOutOfRange
	ErrNotFound               = ringlist.ErrNotFound
	ErrConcurrentModification = ringlist.ErrConcurrentModification
	ErrUnsupported            = ringlist.ErrUnsupported
	ErrOutOfSpace             = ringlist.ErrOutOfSpace
)
