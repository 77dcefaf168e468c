package main

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/relaforg/fly-in/mapgraph"
	"github.com/relaforg/fly-in/zone"
)

// FleetSpec is the programmatic YAML graph/fleet definition flyinctl reads.
// It is a new, simpler ambient format distinct from the textual map-file
// grammar spec.md places out of scope (§1) — flyinctl just needs something
// to read; it does not reimplement that parser.
type FleetSpec struct {
	Start       string     `yaml:"start"`
	End         string     `yaml:"end"`
	NbDrones    int        `yaml:"nb_drones"`
	Hubs        []HubSpec  `yaml:"hubs"`
	Connections []ConnSpec `yaml:"connections"`
}

// HubSpec describes one hub entry.
type HubSpec struct {
	Name      string `yaml:"name"`
	X         int    `yaml:"x"`
	Y         int    `yaml:"y"`
	Zone      string `yaml:"zone"` // normal, priority, restricted, blocked
	MaxDrones int    `yaml:"max_drones"`
}

// ConnSpec describes one connection entry, by endpoint hub name.
type ConnSpec struct {
	A               string `yaml:"a"`
	B               string `yaml:"b"`
	MaxLinkCapacity int    `yaml:"max_link_capacity"`
}

// LoadFleetSpec reads and strictly parses a YAML fleet/graph definition.
func LoadFleetSpec(path string) (*FleetSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fleet spec: %w", err)
	}

	var spec FleetSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing fleet spec: %w", err)
	}

	return &spec, nil
}

// Build constructs a mapgraph.Graph from the spec's hubs and connections.
func (s *FleetSpec) Build() (*mapgraph.Graph, error) {
	hubs := make(map[string]*mapgraph.Hub, len(s.Hubs))
	for _, hs := range s.Hubs {
		zt := zone.Type(hs.Zone)
		if hs.Zone == "" {
			zt = zone.Normal
		}
		h, err := mapgraph.NewHub(hs.Name, [2]int{hs.X, hs.Y}, zt, hs.MaxDrones)
		if err != nil {
			return nil, fmt.Errorf("hub %q: %w", hs.Name, err)
		}
		hubs[hs.Name] = h
	}

	start, ok := hubs[s.Start]
	if !ok {
		return nil, fmt.Errorf("start hub %q not declared", s.Start)
	}
	end, ok := hubs[s.End]
	if !ok {
		return nil, fmt.Errorf("end hub %q not declared", s.End)
	}

	g, err := mapgraph.NewGraph(start, end, s.NbDrones)
	if err != nil {
		return nil, err
	}
	for name, h := range hubs {
		if name == s.Start || name == s.End {
			continue
		}
		if err := g.AddHub(h); err != nil {
			return nil, err
		}
	}

	for _, cs := range s.Connections {
		a, ok := hubs[cs.A]
		if !ok {
			return nil, fmt.Errorf("connection references undeclared hub %q", cs.A)
		}
		b, ok := hubs[cs.B]
		if !ok {
			return nil, fmt.Errorf("connection references undeclared hub %q", cs.B)
		}
		c, err := mapgraph.NewConnection(a, b, cs.MaxLinkCapacity)
		if err != nil {
			return nil, err
		}
		if err := g.AddConnection(c); err != nil {
			return nil, err
		}
	}

	return g, nil
}
