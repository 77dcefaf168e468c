// Package scheduler implements the turn-based multi-agent scheduler
// (component C4) and its state recorder (component C5): given a graph and
// a routing.Candidates table, it advances every drone one discrete turn at
// a time — honoring hub occupancy, edge capacity, and restricted-hub
// reservations — until every drone has reached the goal, and returns the
// full turn-by-turn History.
//
// Drone iteration order is always D1, D2, ..., DN; candidate iteration
// order is the mapper's sort order (cost, then priority). Both are
// deterministic, so the full schedule is reproducible for a fixed graph
// and candidate table (spec §8.5).
//
// Scheduler is single-threaded and fully synchronous per spec §5: within
// one turn, earlier drones may consume capacity that later drones would
// otherwise have used, and this is by design, not a race — there is no
// concurrent access to State, Reserved, or the per-turn edge-usage scratch
// map, so none of it needs locking.
package scheduler
