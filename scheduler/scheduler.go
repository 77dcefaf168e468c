package scheduler

import (
	"context"
	"fmt"
	"math"

	"github.com/relaforg/fly-in/mapgraph"
	"github.com/relaforg/fly-in/routing"
)

// Options configures Run via functional Option arguments.
type Options struct {
	// Ctx allows cancellation; checked once per turn.
	Ctx context.Context

	// OnTurn is called after each committed turn with the 1-indexed turn
	// number and the moves that occurred, for progress logging.
	OnTurn func(turn int, moves []Move)

	// MaxTurns bounds the run as a non-termination guard for a caller that
	// has not itself verified reachability; 0 means unbounded. Run returns
	// ErrInternalInvariant if the bound is hit, since a reachable goal with
	// positive capacities always terminates per spec §4.3.
	MaxTurns int
}

// Option mutates an Options value.
type Option func(*Options)

// DefaultOptions returns background context, a no-op OnTurn hook, and no
// turn bound.
func DefaultOptions() Options {
	return Options{Ctx: context.Background(), OnTurn: func(int, []Move) {}}
}

// WithContext sets a custom cancellation context.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnTurn registers a progress callback invoked once per committed turn.
func WithOnTurn(fn func(turn int, moves []Move)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnTurn = fn
		}
	}
}

// WithMaxTurns bounds the number of turns Run will advance before giving
// up with ErrInternalInvariant.
func WithMaxTurns(n int) Option {
	return func(o *Options) { o.MaxTurns = n }
}

// run holds the mutable state of one Run call.
type run struct {
	g        *mapgraph.Graph
	paths    routing.Candidates
	opts     Options
	live     map[string][]*mapgraph.Drone
	drones   []*mapgraph.Drone
	reserved map[string]int
}

// Run advances all drones from the start hub to the goal hub one turn at a
// time, honoring hub occupancy, edge capacity, and restricted-hub
// reservations, and returns the full turn-by-turn History (component C5).
//
// Returns ErrGraphNil for a nil graph, ErrUnreachableGoal if paths[start]
// is empty (spec's UnreachableGoal error kind — the scheduler is never
// run in that case), or *ErrInternalInvariant for a condition spec §7
// calls InternalInvariantBroken (never expected against a validated graph
// and candidate table built by package routing).
func Run(g *mapgraph.Graph, paths routing.Candidates, opts ...Option) (History, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if len(paths[g.Start().Name]) == 0 && g.Start().Name != g.End().Name {
		return nil, ErrUnreachableGoal
	}

	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	r := &run{g: g, paths: paths, opts: o, reserved: make(map[string]int)}
	r.setup()

	history := History{r.snapshot()}
	for turn := 1; len(r.live[g.End().Name]) < g.NbDrones(); turn++ {
		select {
		case <-o.Ctx.Done():
			return history, o.Ctx.Err()
		default:
		}
		if o.MaxTurns > 0 && turn > o.MaxTurns {
			return history, internalErr("exceeded MaxTurns=%d without reaching goal", o.MaxTurns)
		}

		if err := r.advance(); err != nil {
			return history, err
		}
		snap := r.snapshot()
		history = append(history, snap)
		o.OnTurn(turn, history.Moves(turn))
	}

	return history, nil
}

// setup creates nb_drones drones at the start hub and initializes the live
// occupancy map for every hub and connection.
func (r *run) setup() {
	r.live = make(map[string][]*mapgraph.Drone)
	for _, name := range r.g.HubNames() {
		r.live[name] = nil
	}
	for _, c := range r.g.Connections() {
		r.live[c.Name] = nil
	}

	start := r.g.Start().Name
	r.drones = make([]*mapgraph.Drone, r.g.NbDrones())
	for i := range r.drones {
		d := &mapgraph.Drone{ID: fmt.Sprintf("D%d", i+1), Location: start}
		r.drones[i] = d
		r.live[start] = append(r.live[start], d)
	}
}

// snapshot deep-copies the live occupancy map into a History entry.
func (r *run) snapshot() State {
	s := make(State, len(r.live))
	for loc, drones := range r.live {
		if len(drones) == 0 {
			s[loc] = nil

			continue
		}
		cp := make([]mapgraph.Drone, len(drones))
		for i, d := range drones {
			cp[i] = *d
		}
		s[loc] = cp
	}

	return s
}

// advance runs one turn, visiting drones in creation order (D1, D2, ...):
// an in-transit drone completes its restricted hop, and a hub-resident
// drone attempts its best valid candidate, per spec §4.3.
func (r *run) advance() error {
	conUsed := make(map[string]int)

	for _, d := range r.drones {
		if r.g.HasHub(d.Location) {
			if err := r.tryAdvanceFromHub(d, conUsed); err != nil {
				return err
			}

			continue
		}

		// d is mid-transit on a connection, completing a restricted hop.
		recs := r.paths[d.Location]
		if len(recs) == 0 {
			return internalErr("no candidate for in-transit drone %s at %q", d.ID, d.Location)
		}
		edge := d.Location
		dest := recs[0].SrcName
		r.reserved[dest]--
		r.move(d, dest)
		conUsed[edge]++
	}

	return nil
}

// tryAdvanceFromHub attempts to move d, currently at a hub, onto its best
// valid candidate, applying the wait-versus-detour heuristic to
// non-best candidates.
func (r *run) tryAdvanceFromHub(d *mapgraph.Drone, conUsed map[string]int) error {
	h := d.Location
	candidates := r.paths[h]
	if len(candidates) == 0 {
		return nil // dead end (e.g. the goal, or an unreachable hub); drone stays put
	}
	best := candidates[0]

	for idx, cand := range candidates {
		conn, entersRestricted, err := r.resolveConnection(h, cand.SrcName)
		if err != nil {
			return internalErr("resolving connection for %s -> %s: %v", h, cand.SrcName, err)
		}

		if !r.destinationOK(cand.SrcName) {
			continue
		}
		if conUsed[conn.Name] >= conn.MaxLinkCapacity {
			continue
		}
		var reservedDst *mapgraph.Hub
		if entersRestricted {
			reservedDst, err = conn.Other(h)
			if err != nil {
				return internalErr("resolving restricted destination for %s: %v", conn.Name, err)
			}
			if r.reserved[reservedDst.Name] >= reservedDst.MaxDrones {
				continue
			}
		}

		if idx > 0 && r.waitTime(h, best) < cand.Cost {
			continue
		}

		if entersRestricted {
			r.reserved[reservedDst.Name]++
		}
		r.move(d, cand.SrcName)
		conUsed[conn.Name]++

		return nil
	}

	return nil // no valid candidate this turn; d stays put
}

// destinationOK reports whether cand's destination has room: the goal is
// always exempt (unbounded capacity per spec §3); a hub destination must
// be under its MaxDrones; a synthetic connection-waypoint destination has
// no hub capacity of its own to check (edge capacity is enforced by the
// caller via conUsed).
func (r *run) destinationOK(destName string) bool {
	if destName == r.g.End().Name {
		return true
	}
	h, err := r.g.Hub(destName)
	if err != nil {
		return true
	}

	return len(r.live[h.Name]) < h.MaxDrones
}

// resolveConnection finds the connection a candidate pointing at destName
// actually traverses from h: the direct hub-to-hub edge if destName is a
// hub adjacent to h, or — when destName instead names a synthetic
// restricted-approach waypoint — the connection of that same name.
// entersRestricted reports the latter case, which triggers the
// reservation check.
func (r *run) resolveConnection(h, destName string) (conn *mapgraph.Connection, entersRestricted bool, err error) {
	if conn, err = r.g.ConnectionBetween(h, destName); err == nil {
		return conn, false, nil
	}
	conn, err = r.g.Connection(destName)
	if err != nil {
		return nil, false, err
	}

	return conn, true, nil
}

// waitTime estimates the cost of waiting behind the best candidate rather
// than detouring: best's own remaining cost, plus however many drones are
// already queued at best's destination, minus the capacity of the edge a
// drone would use to reach it. A non-best candidate is only taken when
// its cost does not exceed this estimate (spec §4.3, §9).
func (r *run) waitTime(h string, best routing.PathRecord) int {
	conn, _, err := r.resolveConnection(h, best.SrcName)
	if err != nil {
		return math.MaxInt32
	}

	return best.Cost + len(r.live[best.SrcName]) - conn.MaxLinkCapacity
}

// move relocates d from its current bucket to dest, both in the live
// occupancy map and on the drone itself.
func (r *run) move(d *mapgraph.Drone, dest string) {
	r.live[d.Location] = removeDrone(r.live[d.Location], d)
	d.Location = dest
	r.live[dest] = append(r.live[dest], d)
}

func removeDrone(list []*mapgraph.Drone, d *mapgraph.Drone) []*mapgraph.Drone {
	for i, x := range list {
		if x == d {
			return append(list[:i], list[i+1:]...)
		}
	}

	return list
}
