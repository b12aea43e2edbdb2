package stroke

import (
	"errors"
	"strings"

	"github.com/gorustyt/terrainpath/brush"
	"github.com/gorustyt/terrainpath/terrain"
)

// Status describes how a single stamp went.
type Status uint32

const (
	// High level status.
	Failure Status = 1 << 31 // Stamp was skipped.
	Success Status = 1 << 30 // Stamp was painted.

	// Detail information for status.
	StatusDetailMask Status = 0x0ffffff
	InvalidTile      Status = 1 << 0 // Tile unknown or without a heightmap.
	InvalidParam     Status = 1 << 1 // Brush transform could not be built.
	RegionBusy       Status = 1 << 2 // Paint region already acquired.
	OutOfBounds      Status = 1 << 3 // Footprint does not touch the tile.
	PaintFailed      Status = 1 << 4 // Host rejected the paint operation.
)

// Returns true of status is success.
func (s Status) Succeed() bool {
	return s&Success != 0
}

// Returns true of status is failure.
func (s Status) Failed() bool {
	return s&Failure != 0
}

// Returns true if specific detail is set.
func (s Status) Detail(detail Status) bool {
	return s&detail&StatusDetailMask != 0
}

func (s Status) String() string {
	var parts []string
	switch {
	case s.Succeed():
		parts = append(parts, "success")
	case s.Failed():
		parts = append(parts, "failure")
	}
	for _, d := range []struct {
		flag Status
		name string
	}{
		{InvalidTile, "invalid tile"},
		{InvalidParam, "invalid param"},
		{RegionBusy, "region busy"},
		{OutOfBounds, "out of bounds"},
		{PaintFailed, "paint failed"},
	} {
		if s.Detail(d.flag) {
			parts = append(parts, d.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// statusOf classifies a stamp error.
func statusOf(err error) Status {
	switch {
	case err == nil:
		return Success
	case errors.Is(err, terrain.ErrNoHeightmap):
		return Failure | InvalidTile
	case errors.Is(err, terrain.ErrRegionBusy):
		return Failure | RegionBusy
	case errors.Is(err, terrain.ErrOutOfBounds):
		return Failure | OutOfBounds
	case errors.Is(err, brush.ErrDegenerate):
		return Failure | InvalidParam
	}
	return Failure | PaintFailed
}
