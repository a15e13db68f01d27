package slotted

import (
	"go-slotted/util/logger"

	"github.com/sirupsen/logrus"
)

// DefaultOptions to be used by New() when nil options are provided.
var DefaultOptions = Options{
	Logger: logger.L,
	Strict: false,
}

// Options represents the configuration options for a page.
type Options struct {
	// Logger receives trace output for compaction and the DumpBlock
	// listing. Defaults to logger.L.
	Logger *logrus.Logger

	// Strict runs Validate after every mutating call and panics if the
	// page layout got broken.
	Strict bool
}
