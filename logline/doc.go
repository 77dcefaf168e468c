// Package logline implements the output serializer (component C6): it
// renders a scheduler.History as the movement-log text format spec.md §6
// requires, one line per turn, listing only the drones that moved.
//
// Line k (1-indexed) lists every drone whose location differs from its
// location in state k-1, as space-separated `D<id>-<location>` tokens in
// drone-ID order, terminated by "\n". A turn in which nothing moved still
// emits a line — an empty one — since the movement log is indexed by
// turn number, not by activity.
package logline
