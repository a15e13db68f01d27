package block

import "github.com/pkg/errors"

// ErrInvalidSize is returned when a block size is not a positive multiple of
// WordSize or is too small to hold the page header.
var ErrInvalidSize = errors.New("invalid block size")
