package hd60364

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingTableData is returned when no table entry exists for a key after fallback rules.
	ErrMissingTableData = errors.New("missing table data")

	// ErrMissingCableData is returned when resistance or reactance is not tabulated for a size.
	ErrMissingCableData = fmt.Errorf("missing cable data: %w", ErrMissingTableData)

	// ErrInvalidEnvironment is returned for an unrecognized environment tag.
	ErrInvalidEnvironment = errors.New("invalid environment")

	// ErrUnknownMethod is returned for an installation method number not in the catalog.
	ErrUnknownMethod = errors.New("unknown installation method")

	// ErrUnknownTag is returned when a material or phase tag cannot be parsed.
	ErrUnknownTag = errors.New("unknown tag")
)
