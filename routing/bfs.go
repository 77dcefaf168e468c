package routing

import (
	"sort"

	"github.com/relaforg/fly-in/mapgraph"
	"github.com/relaforg/fly-in/zone"
)

// seed is one entry of the reverse-BFS frontier queue: src is the hub a
// drone should step onto next, cost is the remaining distance to the goal
// once it does.
type seed struct {
	src  *mapgraph.Hub
	cost int
}

// mapper holds the mutable state of one BuildCandidates run.
type mapper struct {
	g       *mapgraph.Graph
	opts    Options
	paths   Candidates
	queue   []seed
	visited map[string]bool
}

// BuildCandidates runs the reverse-cost BFS mapper over g, seeded at its
// goal hub, and returns the resulting Candidates table. Returns ErrGraphNil
// for a nil graph; never fails otherwise. An unreachable start hub is
// signalled by an empty paths[g.Start().Name] list — callers must check.
//
// Algorithm, per hub p popped from the frontier (initially just the goal,
// at cost 0):
//
//   - For every neighbor n of p.src reachable by a connection:
//   - skip n if its zone is Blocked, or if n was already finalized (visited);
//   - record a candidate in paths[n.Name] pointing back to p.src at
//     cost p.cost+1, applying the merge rule (same next hop → keep the
//     smaller cost; never duplicate next hops within one list);
//   - if p.src is a Restricted hub, the recorded candidate is split into
//     two single-location hops instead: paths[n.Name] gets a candidate
//     pointing at the connecting edge's synthetic name at cost p.cost+2,
//     and that edge's own one-entry candidate list points at p.src at
//     cost p.cost+1 — so a drone on n first steps onto the edge, then
//     from the edge onto p.src, mirroring the two-turn restricted
//     transit the scheduler must perform;
//   - enqueue (n, p.cost+1) for further expansion, once;
//   - mark p.src visited (closed to further incoming candidates) and
//     re-sort every list in paths by (cost ascending, priority-first).
//
// Complexity: O((V+E)·V log V) worst case — the re-sort after every pop is
// the cost driver, acceptable for the small graphs this engine targets.
func BuildCandidates(g *mapgraph.Graph, opts ...Option) (Candidates, error) {
	if g == nil {
		return nil, ErrGraphNil
	}

	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	m := &mapper{
		g:       g,
		opts:    o,
		paths:   make(Candidates),
		visited: make(map[string]bool),
	}
	for _, name := range g.HubNames() {
		m.paths[name] = nil
	}

	m.queue = append(m.queue, seed{src: g.End(), cost: 0})
	m.run()

	return m.paths, nil
}

func (m *mapper) run() {
	for len(m.queue) > 0 {
		select {
		case <-m.opts.Ctx.Done():
			return
		default:
		}

		p := m.queue[0]
		m.queue = m.queue[1:]
		if m.visited[p.src.Name] {
			continue
		}

		for _, conn := range m.g.Neighbors(p.src.Name) {
			n, err := conn.Other(p.src.Name)
			if err != nil {
				continue // defensive; cannot happen for a well-formed adjacency entry
			}
			if n.ZoneType == zone.Blocked {
				continue
			}
			if m.visited[n.Name] {
				continue
			}

			m.record(n, p.src, p.cost+1, conn)

			if !m.visited[p.src.Name] {
				m.queue = append(m.queue, seed{src: n, cost: p.cost + 1})
			}
		}

		m.visited[p.src.Name] = true
		m.opts.OnVisit(p.src.Name, p.cost)
		m.resortAll()
	}
}

// record inserts a candidate into paths[n.Name] pointing toward dst at
// cost c, applying restricted-hub virtualization (see BuildCandidates'
// doc comment) when dst is a Restricted hub.
func (m *mapper) record(n, dst *mapgraph.Hub, c int, conn *mapgraph.Connection) {
	if dst.ZoneType == zone.Restricted {
		m.merge(conn.Name, PathRecord{SrcName: dst.Name, Cost: c})
		m.merge(n.Name, PathRecord{SrcName: conn.Name, Cost: c + 1})

		return
	}
	m.merge(n.Name, PathRecord{SrcName: dst.Name, Cost: c})
}

// merge inserts rec into paths[key], keeping the smaller cost if an entry
// for the same SrcName already exists, and never duplicating a source
// within one list.
func (m *mapper) merge(key string, rec PathRecord) {
	list := m.paths[key]
	for i := range list {
		if list[i].SrcName == rec.SrcName {
			if rec.Cost < list[i].Cost {
				list[i].Cost = rec.Cost
			}

			return
		}
	}
	m.paths[key] = append(list, rec)
}

// resortAll re-sorts every candidate list by (cost ascending, priority-first).
func (m *mapper) resortAll() {
	for key, list := range m.paths {
		sort.SliceStable(list, func(i, j int) bool {
			if list[i].Cost != list[j].Cost {
				return list[i].Cost < list[j].Cost
			}

			return zone.PriorityFirst(m.zoneOf(list[i].SrcName), m.zoneOf(list[j].SrcName))
		})
		m.paths[key] = list
	}
}

// zoneOf returns the zone type of a hub named name, or "" (non-priority)
// if name is a synthetic connection waypoint rather than a hub.
func (m *mapper) zoneOf(name string) zone.Type {
	if h, err := m.g.Hub(name); err == nil {
		return h.ZoneType
	}

	return ""
}
