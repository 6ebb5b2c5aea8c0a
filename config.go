package thicket

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// SceneConfig describes a scene in YAML: world settings, layer interactions
// and a flat node list. Nodes reference their parent by name; a node without
// a parent is attached to the root. Parents must appear before children.
//
//	world:
//	  gravity: {x: 0, y: 9.8}
//	  step: 0.0166
//	interactions:
//	  - {a: unit, b: unit, enabled: false}
//	nodes:
//	  - name: ground
//	    shape: box
//	    width: 100
//	    height: 20
//	    static: true
type SceneConfig struct {
	World        WorldSettings       `yaml:"world"`
	Interactions []InteractionConfig `yaml:"interactions"`
	Nodes        []NodeConfig        `yaml:"nodes"`
}

// WorldSettings overrides DefaultWorldConfig. Missing fields keep the defaults.
type WorldSettings struct {
	Gravity           *Vec2    `yaml:"gravity"`
	CorrectionPercent *float64 `yaml:"correction_percent"`
	Slop              *float64 `yaml:"slop"`
	Step              float64  `yaml:"step"`
}

// InteractionConfig enables or disables collision testing between two layers.
type InteractionConfig struct {
	A       Layer `yaml:"a"`
	B       Layer `yaml:"b"`
	Enabled bool  `yaml:"enabled"`
}

// NodeConfig describes one node. Shape is "box", "circle" or "none"; an empty
// shape creates a plain container.
type NodeConfig struct {
	Name   string `yaml:"name"`
	Parent string `yaml:"parent"`
	Shape  string `yaml:"shape"`

	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Radius float64 `yaml:"radius"`
	Offset Vec2    `yaml:"offset"`

	Position     Vec2    `yaml:"position"`
	Scale        *Vec2   `yaml:"scale"`
	Rotation     float64 `yaml:"rotation"`
	Velocity     Vec2    `yaml:"velocity"`
	Acceleration Vec2    `yaml:"acceleration"`

	Mass            *float64 `yaml:"mass"`
	Restitution     *float64 `yaml:"restitution"`
	StaticFriction  *float64 `yaml:"static_friction"`
	DynamicFriction *float64 `yaml:"dynamic_friction"`
	Static          bool     `yaml:"static"`
	Gravity         bool     `yaml:"gravity"`
	Trigger         bool     `yaml:"trigger"`

	Layer  Layer `yaml:"layer"`
	Active *bool `yaml:"active"`
}

// LoadSceneConfig decodes a YAML scene description.
func LoadSceneConfig(r io.Reader) (*SceneConfig, error) {
	var c SceneConfig
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decode scene config: %w", err)
	}
	return &c, nil
}

// LoadScene decodes a YAML scene description and builds it.
func LoadScene(data []byte) (*Scene, error) {
	c, err := LoadSceneConfig(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return c.Build()
}

// WorldConfig returns DefaultWorldConfig with the configured overrides applied.
func (c *SceneConfig) WorldConfig() WorldConfig {
	cfg := DefaultWorldConfig()
	if c.World.Gravity != nil {
		cfg.Gravity = *c.World.Gravity
	}
	if c.World.CorrectionPercent != nil {
		cfg.CorrectionPercent = *c.World.CorrectionPercent
	}
	if c.World.Slop != nil {
		cfg.Slop = *c.World.Slop
	}
	return cfg
}

// Build creates a new Scene from the description.
func (c *SceneConfig) Build() (*Scene, error) {
	s := NewSceneWithConfig(c.WorldConfig(), c.World.Step)
	for _, ic := range c.Interactions {
		if ic.A == "" || ic.B == "" {
			return nil, fmt.Errorf("build scene: interaction needs two layers")
		}
		s.world.Layers().SetInteraction(ic.A, ic.B, ic.Enabled)
	}

	byName := make(map[string]NodeID, len(c.Nodes))
	for i := range c.Nodes {
		nc := &c.Nodes[i]
		if nc.Name == "" {
			return nil, fmt.Errorf("build scene: node %d has no name", i)
		}
		if _, dup := byName[nc.Name]; dup {
			return nil, fmt.Errorf("build scene: duplicate node name %q", nc.Name)
		}
		parent := s.root
		if nc.Parent != "" {
			p, ok := byName[nc.Parent]
			if !ok {
				return nil, fmt.Errorf("build scene: node %q: unknown parent %q", nc.Name, nc.Parent)
			}
			parent = p
		}
		id, err := nc.build(s)
		if err != nil {
			return nil, fmt.Errorf("build scene: node %q: %w", nc.Name, err)
		}
		s.AddChild(parent, id)
		byName[nc.Name] = id
	}
	s.refreshTransforms()
	return s, nil
}

// bodyOptions returns DefaultBodyOptions with the configured overrides applied.
func (nc *NodeConfig) bodyOptions() BodyOptions {
	opts := DefaultBodyOptions()
	if nc.Mass != nil {
		opts.Mass = *nc.Mass
	}
	if nc.Restitution != nil {
		opts.Restitution = *nc.Restitution
	}
	if nc.StaticFriction != nil {
		opts.StaticFriction = *nc.StaticFriction
	}
	if nc.DynamicFriction != nil {
		opts.DynamicFriction = *nc.DynamicFriction
	}
	opts.Static = nc.Static
	opts.Gravity = nc.Gravity
	opts.Trigger = nc.Trigger
	return opts
}

func (nc *NodeConfig) build(s *Scene) (NodeID, error) {
	var id NodeID
	switch nc.Shape {
	case "":
		id = s.NewContainer(nc.Name)
	case "box":
		if nc.Width <= 0 || nc.Height <= 0 {
			return NoNode, fmt.Errorf("box needs positive width and height")
		}
		id = s.NewBox(nc.Name, nc.Width, nc.Height, nc.bodyOptions())
	case "circle":
		if nc.Radius <= 0 {
			return NoNode, fmt.Errorf("circle needs a positive radius")
		}
		id = s.NewCircle(nc.Name, nc.Radius, nc.bodyOptions())
	case "none":
		id = s.NewContainer(nc.Name)
		n := s.Node(id)
		n.Physics = true
		n.Body = NewRigidBody(nc.bodyOptions())
	default:
		return NoNode, fmt.Errorf("unknown shape %q", nc.Shape)
	}

	n := s.Node(id)
	n.Collider.Offset = nc.Offset
	n.Transform.Position = nc.Position
	if nc.Scale != nil {
		n.Transform.Scale = *nc.Scale
	}
	n.Transform.Rotation = nc.Rotation
	n.Transform.Velocity = nc.Velocity
	n.Transform.Acceleration = nc.Acceleration
	if nc.Layer != "" {
		n.Layer = nc.Layer
	}
	if nc.Active != nil {
		n.Active = *nc.Active
	}
	return id, nil
}
