package routing

import (
	"context"
	"errors"
)

// ErrGraphNil is returned by BuildCandidates when g is nil.
var ErrGraphNil = errors.New("routing: graph is nil")

// PathRecord names the next hop a drone standing at some location should
// consider stepping onto, and the minimum remaining number of turns to the
// goal from that location when taking that hop.
type PathRecord struct {
	// SrcName is the next-hop location name: a hub name, or a synthetic
	// connection waypoint name for a restricted approach.
	SrcName string

	// Cost is the minimum remaining number of turns to the goal via SrcName,
	// counting the step onto SrcName: one more than SrcName's own remaining
	// distance (a hop straight onto the goal has Cost 1).
	Cost int
}

// Candidates maps a location name (hub or connection) to its ordered list
// of PathRecord, sorted by (Cost ascending, priority-zone tiebreak), per
// BuildCandidates.
type Candidates map[string][]PathRecord

// Options configures BuildCandidates via functional Option arguments.
type Options struct {
	// Ctx allows cancellation of long-running builds; checked once per dequeue.
	Ctx context.Context

	// OnVisit is called after a hub is marked visited and its candidate
	// entry is final, with the hub name and its resolved distance to goal
	// (0 for the goal hub itself).
	OnVisit func(hubName string, cost int)
}

// Option mutates an Options value.
type Option func(*Options)

// DefaultOptions returns background context and a no-op OnVisit hook.
func DefaultOptions() Options {
	return Options{
		Ctx:     context.Background(),
		OnVisit: func(string, int) {},
	}
}

// WithContext sets a custom cancellation context.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit registers a progress callback invoked once per finalized hub.
func WithOnVisit(fn func(hubName string, cost int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}
