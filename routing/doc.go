// Package routing implements the reverse-cost BFS mapper (component C3):
// starting from a graph's goal hub, it builds a Candidates table mapping
// every hub name (and every synthetic restricted-approach waypoint name)
// to an ordered list of PathRecord — the neighbor a drone standing there
// should consider stepping onto next, ranked by remaining cost to the goal
// and priority-zone tiebreak.
//
// The algorithm is a breadth-first expansion run backward from the goal:
// each dequeued hub records itself as a one-step-closer candidate for all
// of its not-yet-visited neighbors, then is marked visited so later
// expansions cannot route back through it. Blocked hubs are filtered out
// before they can be recorded or enqueued. A restricted hub costs two
// turns to enter (one on the connecting edge, one on the hub itself); to
// keep the scheduler's turn loop uniform ("a drone moves one location per
// turn"), a restricted approach is split into two single-location hops by
// inserting a synthetic waypoint named after the connecting edge — see
// BuildCandidates' doc comment for the exact transformation.
//
// BuildCandidates takes functional Options (context cancellation, a
// progress hook) without changing the core algorithm's signature, and
// never fails except on a nil graph — an unreachable start hub is
// signalled by an empty candidate list, which the caller (package engine)
// must check.
package routing
