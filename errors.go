package sumonet

import (
	"github.com/pkg/errors"
)

var (
	// ErrMissingGeometryPrecondition is returned when a geometry derivation is
	// invoked without all required lane references resolved.
	ErrMissingGeometryPrecondition = errors.New("missing geometry precondition")
	// ErrUnsupportedConfiguration is returned when an unrecognized marking
	// style or class name is supplied as configuration.
	ErrUnsupportedConfiguration = errors.New("unsupported configuration")
	// ErrDegenerateGeometry marks an offset/buffer result that is empty or
	// invalid. A single affected marking is skipped, never the whole lane.
	ErrDegenerateGeometry = errors.New("degenerate geometry")
	// ErrLaneNotFound is returned by index-based lane lookups.
	ErrLaneNotFound = errors.New("lane not found")
	// ErrRequestNotFound is returned by junction request lookups. Link-time
	// callers use it to trigger the one-level-deeper via-lane search.
	ErrRequestNotFound = errors.New("request not found")
)
