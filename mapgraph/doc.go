// Package mapgraph defines the immutable graph model the routing and
// scheduler packages operate on: Hub, Connection, Graph, and Drone.
//
// Hubs and Connections are created once, at graph-load time, and are never
// mutated afterward — Graph exposes no Remove* methods and its add-time
// validation (name uniqueness, capacity ≥ 1, no self-loop connections, no
// duplicate unordered pairs, reserved '-' character in hub names) is the
// only gate callers need to pass. Drones, in contrast, are created by the
// scheduler at run start and mutated turn by turn; see package scheduler.
//
// Graph stores hubs and connections in owning maps keyed by name rather
// than by pointer identity, and guards them with separate RWMutexes so
// that a loaded Graph can be read from concurrently (e.g. multiple
// engine.Run calls sharing one parsed map).
package mapgraph
