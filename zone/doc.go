// Package zone implements the travel-cost oracle: a pure mapping from a
// hub's zone type to the number of turns a drone spends crossing it.
//
// There are four zone types:
//
//   - Normal and Priority hubs cost one turn to enter. Priority additionally
//     wins ties when the reverse-cost BFS mapper (package routing) ranks
//     otherwise-equal candidates.
//   - Restricted hubs cost two turns: one turn occupying the connecting
//     edge, one turn occupying the hub itself. Package scheduler models
//     this as two separate one-location hops rather than a special case.
//   - Blocked hubs are impassable and never appear in any candidate list.
//
// Package zone has no state and cannot fail; Cost returns ErrUnknownZoneType
// only for zone type values outside the four recognized ones, which a
// validated graph (package mapgraph) never produces.
package zone
