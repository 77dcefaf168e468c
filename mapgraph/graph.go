package mapgraph

import (
	"fmt"
	"sort"
	"sync"
)

// Graph is the immutable (post-construction) routing graph: a start hub,
// an end hub, a drone count, and the full set of hubs and connections.
//
// muHubs guards hubs; muConns guards connections and the per-hub adjacency
// index built alongside them. Both locks are held only during
// construction-time writes; reads (Hub, Connections, Neighbors, ...) take
// the matching RLock so a fully loaded Graph may be queried from multiple
// goroutines.
type Graph struct {
	muHubs  sync.RWMutex
	muConns sync.RWMutex

	start     *Hub
	end       *Hub
	nbDrones  int
	hubs      map[string]*Hub
	conns     map[string]*Connection
	adjacency map[string][]*Connection // hub name -> incident connections, insertion order
}

// NewGraph constructs an empty Graph for the given start hub, end hub, and
// drone count. start and end are registered as hubs automatically. Returns
// ErrNilHub if start or end is nil, or ErrBadCapacity if nbDrones < 1.
func NewGraph(start, end *Hub, nbDrones int) (*Graph, error) {
	if start == nil || end == nil {
		return nil, ErrNilHub
	}
	if nbDrones < 1 {
		return nil, fmt.Errorf("%w: nb_drones=%d", ErrBadCapacity, nbDrones)
	}

	g := &Graph{
		start:     start,
		end:       end,
		nbDrones:  nbDrones,
		hubs:      make(map[string]*Hub),
		conns:     make(map[string]*Connection),
		adjacency: make(map[string][]*Connection),
	}
	if err := g.AddHub(start); err != nil {
		return nil, err
	}
	if err := g.AddHub(end); err != nil {
		return nil, err
	}

	return g, nil
}

// AddHub registers h. Returns ErrNilHub or ErrDuplicateHub.
func (g *Graph) AddHub(h *Hub) error {
	if h == nil {
		return ErrNilHub
	}

	g.muHubs.Lock()
	defer g.muHubs.Unlock()

	if _, exists := g.hubs[h.Name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateHub, h.Name)
	}
	g.hubs[h.Name] = h

	return nil
}

// AddConnection registers c. Both endpoints must already be registered via
// AddHub. Returns ErrHubNotFound or ErrDuplicateConnection (at most one
// connection per unordered hub pair, per spec §3).
func (g *Graph) AddConnection(c *Connection) error {
	if c == nil {
		return ErrNilHub
	}

	g.muHubs.RLock()
	_, haveA := g.hubs[c.A.Name]
	_, haveB := g.hubs[c.B.Name]
	g.muHubs.RUnlock()
	if !haveA {
		return fmt.Errorf("%w: %q", ErrHubNotFound, c.A.Name)
	}
	if !haveB {
		return fmt.Errorf("%w: %q", ErrHubNotFound, c.B.Name)
	}

	g.muConns.Lock()
	defer g.muConns.Unlock()

	for _, existing := range g.adjacency[c.A.Name] {
		if other, _ := existing.Other(c.A.Name); other.Name == c.B.Name {
			return fmt.Errorf("%w: %s-%s", ErrDuplicateConnection, c.A.Name, c.B.Name)
		}
	}

	g.conns[c.Name] = c
	g.adjacency[c.A.Name] = append(g.adjacency[c.A.Name], c)
	g.adjacency[c.B.Name] = append(g.adjacency[c.B.Name], c)

	return nil
}

// Start returns the graph's start hub.
func (g *Graph) Start() *Hub { return g.start }

// End returns the graph's end (goal) hub.
func (g *Graph) End() *Hub { return g.end }

// NbDrones returns the configured fleet size.
func (g *Graph) NbDrones() int { return g.nbDrones }

// Hub looks up a hub by name. Returns ErrHubNotFound if absent.
func (g *Graph) Hub(name string) (*Hub, error) {
	g.muHubs.RLock()
	defer g.muHubs.RUnlock()

	h, ok := g.hubs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrHubNotFound, name)
	}

	return h, nil
}

// Connection looks up a connection by its synthetic name. Returns
// ErrConnectionNotFound if absent.
func (g *Graph) Connection(name string) (*Connection, error) {
	g.muConns.RLock()
	defer g.muConns.RUnlock()

	c, ok := g.conns[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrConnectionNotFound, name)
	}

	return c, nil
}

// ConnectionBetween returns the connection joining hub names a and b, in
// either order. Returns ErrConnectionNotFound if none exists.
func (g *Graph) ConnectionBetween(a, b string) (*Connection, error) {
	g.muConns.RLock()
	defer g.muConns.RUnlock()

	for _, c := range g.adjacency[a] {
		if other, err := c.Other(a); err == nil && other.Name == b {
			return c, nil
		}
	}

	return nil, fmt.Errorf("%w: %s-%s", ErrConnectionNotFound, a, b)
}

// Neighbors returns the connections incident to the hub named name, in the
// order they were added to the graph.
func (g *Graph) Neighbors(name string) []*Connection {
	g.muConns.RLock()
	defer g.muConns.RUnlock()

	out := make([]*Connection, len(g.adjacency[name]))
	copy(out, g.adjacency[name])

	return out
}

// HubNames returns all hub names in sorted order, for deterministic
// iteration by callers such as package routing and package scheduler.
func (g *Graph) HubNames() []string {
	g.muHubs.RLock()
	defer g.muHubs.RUnlock()

	names := make([]string, 0, len(g.hubs))
	for n := range g.hubs {
		names = append(names, n)
	}
	sort.Strings(names)

	return names
}

// HasHub reports whether name is a registered hub.
func (g *Graph) HasHub(name string) bool {
	g.muHubs.RLock()
	defer g.muHubs.RUnlock()

	_, ok := g.hubs[name]

	return ok
}

// HasConnection reports whether name is a registered connection's name.
func (g *Graph) HasConnection(name string) bool {
	g.muConns.RLock()
	defer g.muConns.RUnlock()

	_, ok := g.conns[name]

	return ok
}

// Connections returns all connections in the graph, in a sorted-by-name order.
func (g *Graph) Connections() []*Connection {
	g.muConns.RLock()
	defer g.muConns.RUnlock()

	out := make([]*Connection, 0, len(g.conns))
	for _, c := range g.conns {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out
}
