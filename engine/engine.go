package engine

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/relaforg/fly-in/mapgraph"
	"github.com/relaforg/fly-in/routing"
	"github.com/relaforg/fly-in/scheduler"
)

// ErrUnreachableGoal is returned when the graph's start hub has no route
// to its goal hub — the UnreachableGoal error kind of spec §7. It is the
// same value as scheduler.ErrUnreachableGoal, so callers can match on either.
var ErrUnreachableGoal = scheduler.ErrUnreachableGoal

// Options configures Run. Logger defaults to logrus's standard logger if
// nil; MaxTurns is forwarded to the scheduler as a non-termination guard.
type Options struct {
	Logger   *logrus.Logger
	MaxTurns int
}

// Option mutates an Options value.
type Option func(*Options)

// WithLogger sets a custom logger instead of logrus's package-level default.
func WithLogger(l *logrus.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithMaxTurns bounds scheduling the way scheduler.WithMaxTurns does.
func WithMaxTurns(n int) Option {
	return func(o *Options) { o.MaxTurns = n }
}

// Run builds the reverse-cost BFS candidate table for g and schedules the
// fleet across it turn by turn, logging progress at Info/Debug level.
// Returns ErrUnreachableGoal if no route exists from start to goal.
func Run(g *mapgraph.Graph, opts ...Option) (scheduler.History, error) {
	o := Options{Logger: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(&o)
	}

	o.Logger.WithFields(logrus.Fields{
		"start":     g.Start().Name,
		"end":       g.End().Name,
		"nb_drones": g.NbDrones(),
	}).Info("building candidate table")

	paths, err := routing.BuildCandidates(g)
	if err != nil {
		return nil, err
	}
	if len(paths[g.Start().Name]) == 0 && g.Start().Name != g.End().Name {
		o.Logger.Warn("start hub has no route to goal")

		return nil, ErrUnreachableGoal
	}

	o.Logger.Info("scheduling fleet")
	history, err := scheduler.Run(g, paths,
		scheduler.WithMaxTurns(o.MaxTurns),
		scheduler.WithOnTurn(func(turn int, moves []scheduler.Move) {
			o.Logger.WithFields(logrus.Fields{"turn": turn, "moves": len(moves)}).Debug("turn committed")
		}),
	)
	if err != nil {
		var inv *scheduler.ErrInternalInvariant
		if errors.As(err, &inv) {
			o.Logger.WithError(err).Error("internal invariant broken")
		}

		return history, err
	}

	o.Logger.WithField("turns", len(history)-1).Info("fleet reached goal")

	return history, nil
}
