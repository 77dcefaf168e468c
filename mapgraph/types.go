package mapgraph

import (
	"errors"
	"fmt"

	"github.com/relaforg/fly-in/zone"
)

// Sentinel errors for graph construction. All are GraphInvariantViolated
// per spec §7 — defensive checks expected to be caught by an upstream
// parser, but still enforced here.
var (
	// ErrEmptyHubName is returned when a Hub is constructed with an empty name.
	ErrEmptyHubName = errors.New("mapgraph: hub name is empty")

	// ErrReservedNameCharacter is returned when a hub name contains '-',
	// reserved as the synthetic connection-name separator.
	ErrReservedNameCharacter = errors.New("mapgraph: hub name contains reserved '-' character")

	// ErrBadCapacity is returned for a max_drones or max_link_capacity < 1.
	ErrBadCapacity = errors.New("mapgraph: capacity must be >= 1")

	// ErrUnknownZoneType is returned for a zone type outside the four recognized values.
	ErrUnknownZoneType = zone.ErrUnknownZoneType

	// ErrSelfLoop is returned when a Connection's two endpoints are the same hub.
	ErrSelfLoop = errors.New("mapgraph: connection endpoints must be distinct")

	// ErrNilHub is returned when a nil *Hub is passed where one is required.
	ErrNilHub = errors.New("mapgraph: hub is nil")

	// ErrDuplicateHub is returned when AddHub is called with a name already present.
	ErrDuplicateHub = errors.New("mapgraph: duplicate hub name")

	// ErrDuplicateConnection is returned when two hubs already share a connection.
	ErrDuplicateConnection = errors.New("mapgraph: duplicate connection between hubs")

	// ErrHubNotFound is returned when a referenced hub name is not registered.
	ErrHubNotFound = errors.New("mapgraph: hub not found")

	// ErrConnectionNotFound is returned when a referenced connection name is not registered.
	ErrConnectionNotFound = errors.New("mapgraph: connection not found")
)

// Hub is a node in the routing graph: a unique name, a display-only grid
// coordinate, a zone type governing travel cost, and an occupancy ceiling.
//
// Hub is immutable after NewHub returns.
type Hub struct {
	// Name uniquely identifies this hub within a Graph. Must not contain '-'.
	Name string

	// Coord is the hub's grid position. It is a display concern only; the
	// routing and scheduler packages never read it.
	Coord [2]int

	// ZoneType governs the per-turn travel cost and candidate ordering.
	ZoneType zone.Type

	// MaxDrones is the simultaneous occupancy ceiling. The goal hub's
	// MaxDrones is still read and stored but is never enforced — scheduler
	// exempts the goal from capacity checks per spec §3/§4.3.
	MaxDrones int
}

// NewHub validates and constructs a Hub. Returns ErrEmptyHubName,
// ErrReservedNameCharacter, ErrUnknownZoneType, or ErrBadCapacity.
func NewHub(name string, coord [2]int, zt zone.Type, maxDrones int) (*Hub, error) {
	if name == "" {
		return nil, ErrEmptyHubName
	}
	for _, r := range name {
		if r == '-' {
			return nil, fmt.Errorf("%w: %q", ErrReservedNameCharacter, name)
		}
	}
	if !zone.Passable(zt) && zt != zone.Blocked {
		return nil, fmt.Errorf("%w: %q", ErrUnknownZoneType, zt)
	}
	if maxDrones < 1 {
		return nil, fmt.Errorf("%w: hub %q max_drones=%d", ErrBadCapacity, name, maxDrones)
	}

	return &Hub{Name: name, Coord: coord, ZoneType: zt, MaxDrones: maxDrones}, nil
}

// Connection is an undirected edge between two distinct hubs. Name is
// derived from the endpoints in construction order ("<a>-<b>") and is used
// as the synthetic location name a drone occupies mid-transit.
type Connection struct {
	// Name is the synthetic location name, "<A.Name>-<B.Name>".
	Name string

	// A and B are the connection's endpoints, in construction order.
	A, B *Hub

	// MaxLinkCapacity is the simultaneous-flow ceiling on this edge.
	MaxLinkCapacity int
}

// NewConnection validates and constructs a Connection between a and b.
// Returns ErrNilHub, ErrSelfLoop, or ErrBadCapacity.
func NewConnection(a, b *Hub, maxLinkCapacity int) (*Connection, error) {
	if a == nil || b == nil {
		return nil, ErrNilHub
	}
	if a.Name == b.Name {
		return nil, fmt.Errorf("%w: %q", ErrSelfLoop, a.Name)
	}
	if maxLinkCapacity < 1 {
		return nil, fmt.Errorf("%w: connection %s-%s max_link_capacity=%d", ErrBadCapacity, a.Name, b.Name, maxLinkCapacity)
	}

	return &Connection{
		Name:            a.Name + "-" + b.Name,
		A:               a,
		B:               b,
		MaxLinkCapacity: maxLinkCapacity,
	}, nil
}

// Other returns the endpoint of c that is not named hubName.
// Returns ErrHubNotFound if hubName is neither endpoint.
func (c *Connection) Other(hubName string) (*Hub, error) {
	switch hubName {
	case c.A.Name:
		return c.B, nil
	case c.B.Name:
		return c.A, nil
	default:
		return nil, fmt.Errorf("%w: %q not an endpoint of %s", ErrHubNotFound, hubName, c.Name)
	}
}

// Drone is a mobile token with a unique identifier and a current location
// (a hub name or a connection name). Drone is created by the scheduler and
// mutated only by it.
type Drone struct {
	// ID is the drone's unique identifier, "D1", "D2", ....
	ID string

	// Location is the name of the hub or connection the drone currently occupies.
	Location string
}
