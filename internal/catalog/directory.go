// Package catalog is the external channel/exercise catalog boundary. The quiz
// core only ever sees the Directory interface; the concrete drivers (HTTP,
// SQL) live here.
package catalog

import (
	"context"
	"fmt"
)

// RawChannel is a catalog record as the external source reports it, before
// the core maps it into its cached channel shape.
type RawChannel struct {
	Root         string `json:"root"`
	Name         string `json:"name"`
	NumExercises int    `json:"num_exercises"`
	Available    bool   `json:"available"`
	LastUpdated  int64  `json:"last_updated,omitempty"`
}

// Filter narrows a channel fetch. The quiz bootstrap always asks for
// available channels that contain exercises.
type Filter struct {
	HasExercises bool
	Available    bool
}

type Directory interface {
	FetchChannels(ctx context.Context, f Filter) ([]RawChannel, error)
}

// FetchError wraps a failed catalog request. A failed fetch never corrupts a
// previously cached channel list.
type FetchError struct {
	Source string // URL or DSN
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch channels from %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
