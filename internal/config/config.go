package config

import (
	"fmt"
	"os"

	"github.com/san-kum/knotsim/internal/curve"
	"github.com/san-kum/knotsim/internal/knot"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFamily    = "lissajous"
	DefaultNodes     = 60
	DefaultCurvature = 0.3
)

type Config struct {
	Family      string          `yaml:"family"`
	Nodes       int             `yaml:"nodes"`
	Curvature   float64         `yaml:"curvature"`
	TwistAngle  float64         `yaml:"twist_angle"`
	FixLoopEnds bool            `yaml:"fix_loop_ends"`
	Loop        bool            `yaml:"loop"`
	Lissajous   LissajousConfig `yaml:"lissajous"`
	Torus       TorusConfig     `yaml:"torus"`
	Toric       ToricConfig     `yaml:"lissajous_toric"`
}

type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

type Freq3 struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	Z int `yaml:"z"`
}

type LissajousConfig struct {
	Amplitude Vec3  `yaml:"amplitude"`
	Frequency Freq3 `yaml:"frequency"`
	Phase     Vec3  `yaml:"phase"` // degrees
}

// TorusConfig accepts n as an alias for q; when both are given n wins.
type TorusConfig struct {
	P           int     `yaml:"p"`
	Q           int     `yaml:"q"`
	N           int     `yaml:"n,omitempty"`
	MajorRadius Vec2    `yaml:"major_radius"`
	MinorRadius Vec3    `yaml:"minor_radius"`
	Phase       float64 `yaml:"phase"`
}

type ToricConfig struct {
	P           int     `yaml:"p"`
	Q           int     `yaml:"q"`
	N           int     `yaml:"n"`
	MajorRadius Vec2    `yaml:"major_radius"`
	MinorRadius Vec3    `yaml:"minor_radius"`
	Phase       float64 `yaml:"phase"`
}

func DefaultConfig() *Config {
	return &Config{
		Family:      DefaultFamily,
		Nodes:       DefaultNodes,
		Curvature:   DefaultCurvature,
		FixLoopEnds: true,
		Loop:        true,
		Lissajous: LissajousConfig{
			Amplitude: Vec3{1, 1, 1},
			Frequency: Freq3{3, 2, 7},
			Phase:     Vec3{40, 11.5, 0},
		},
		Torus: TorusConfig{
			P: 2, Q: 3,
			MajorRadius: Vec2{2, 2},
			MinorRadius: Vec3{0.8, 0.8, 0.8},
		},
		Toric: ToricConfig{
			P: 3, Q: 2, N: 5,
			MajorRadius: Vec2{2, 2},
			MinorRadius: Vec3{1, 1, 1},
			Phase:       0.2,
		},
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a yaml file on top of a copy of base.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseOver(data, base)
}

// Parse decodes yaml over the defaults, so a file only needs the keys it changes.
func Parse(data []byte) (*Config, error) {
	return ParseOver(data, DefaultConfig())
}

// ParseOver decodes yaml over a copy of base; base is not modified.
func ParseOver(data []byte, base *Config) (*Config, error) {
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if cfg.Torus.N != 0 {
		cfg.Torus.Q = cfg.Torus.N
		cfg.Torus.N = 0
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate clamps the node count to the recommended range and checks the
// selected family and shaping parameters.
func (c *Config) Validate() error {
	c.Nodes = knot.ClampNodes(c.Nodes)
	f, err := c.CurveFamily()
	if err != nil {
		return err
	}
	return knot.Validate(f, c.Options())
}

// CurveFamily builds the family selected by c.Family from its section.
func (c *Config) CurveFamily() (curve.Family, error) {
	kind, err := curve.ParseKind(c.Family)
	if err != nil {
		return curve.Family{}, fmt.Errorf("config: %w", err)
	}

	switch kind {
	case curve.KindTorus:
		return curve.NewTorus(curve.Torus{
			P:           c.Torus.P,
			Q:           c.Torus.Q,
			MajorRadius: c.Torus.MajorRadius.r2(),
			MinorRadius: c.Torus.MinorRadius.r3(),
			Phase:       c.Torus.Phase,
		}), nil
	case curve.KindLissajousToric:
		return curve.NewLissajousToric(curve.LissajousToric{
			P:           c.Toric.P,
			Q:           c.Toric.Q,
			N:           c.Toric.N,
			MajorRadius: c.Toric.MajorRadius.r2(),
			MinorRadius: c.Toric.MinorRadius.r3(),
			Phase:       c.Toric.Phase,
		}), nil
	default:
		l := c.Lissajous
		return curve.NewLissajous(l.Amplitude.r3(), [3]int{l.Frequency.X, l.Frequency.Y, l.Frequency.Z}, l.Phase.r3()), nil
	}
}

// SetCurveFamily stores f in the section matching its kind and selects it.
func (c *Config) SetCurveFamily(f curve.Family) {
	c.Family = f.Kind.String()
	switch f.Kind {
	case curve.KindTorus:
		t := f.Torus
		c.Torus = TorusConfig{P: t.P, Q: t.Q, MajorRadius: vec2(t.MajorRadius), MinorRadius: vec3(t.MinorRadius), Phase: t.Phase}
	case curve.KindLissajousToric:
		t := f.Toric
		c.Toric = ToricConfig{P: t.P, Q: t.Q, N: t.N, MajorRadius: vec2(t.MajorRadius), MinorRadius: vec3(t.MinorRadius), Phase: t.Phase}
	default:
		l := f.Lissajous
		c.Lissajous = LissajousConfig{
			Amplitude: vec3(l.Amplitude),
			Frequency: Freq3{l.Frequency[0], l.Frequency[1], l.Frequency[2]},
			Phase:     vec3(l.Phase),
		}
	}
}

func (c *Config) Options() knot.Options {
	return knot.Options{
		Nodes:       c.Nodes,
		Curvature:   c.Curvature,
		TwistAngle:  c.TwistAngle,
		FixLoopEnds: c.FixLoopEnds,
		Loop:        c.Loop,
	}
}

func (c *Config) SetOptions(o knot.Options) {
	c.Nodes = o.Nodes
	c.Curvature = o.Curvature
	c.TwistAngle = o.TwistAngle
	c.FixLoopEnds = o.FixLoopEnds
	c.Loop = o.Loop
}

func (v Vec2) r2() r2.Vec { return r2.Vec{X: v.X, Y: v.Y} }
func (v Vec3) r3() r3.Vec { return r3.Vec{X: v.X, Y: v.Y, Z: v.Z} }

func vec2(v r2.Vec) Vec2 { return Vec2{v.X, v.Y} }
func vec3(v r3.Vec) Vec3 { return Vec3{v.X, v.Y, v.Z} }
