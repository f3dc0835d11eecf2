package ring

import (
	"github.com/dacapoday/ringlist"
)

var (
	ErrInvalidOption = ringlist.ErrInvalidOption
	ErrOutOfRange    = ringlist.ErrOutOfRange
	ErrUnsupported   = ringlist.ErrUnsupported
	ErrOutOfSpace    = ringlist.ErrOutOfSpace
)
