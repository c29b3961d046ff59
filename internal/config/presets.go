package config

import "sort"

// Presets holds named configurations keyed by family, then preset name.
var Presets = map[string]map[string]*Config{
	"lissajous": {
		"classic": withFamily("lissajous", func(c *Config) {}),
		"square": withFamily("lissajous", func(c *Config) {
			c.Lissajous.Frequency = Freq3{3, 2, 5}
			c.Lissajous.Phase = Vec3{90, 0, 36}
		}),
		"tall": withFamily("lissajous", func(c *Config) {
			c.Lissajous.Amplitude = Vec3{1, 1, 2}
			c.Lissajous.Frequency = Freq3{2, 3, 7}
			c.Lissajous.Phase = Vec3{30, 0, 45}
			c.Nodes = 120
		}),
		"twisted": withFamily("lissajous", func(c *Config) {
			c.TwistAngle = 90
			c.Curvature = 0.5
		}),
	},
	"torus": {
		"trefoil": withFamily("torus", func(c *Config) {}),
		"cinquefoil": withFamily("torus", func(c *Config) {
			c.Torus.Q = 5
			c.Nodes = 100
		}),
		"star": withFamily("torus", func(c *Config) {
			c.Torus.P = 3
			c.Torus.Q = 7
			c.Torus.MinorRadius = Vec3{1.2, 1.2, 1.2}
			c.Nodes = 150
		}),
		"flat": withFamily("torus", func(c *Config) {
			c.Torus.MinorRadius = Vec3{0.8, 0.8, 0.2}
		}),
	},
	"lissajous_toric": {
		"classic": withFamily("lissajous_toric", func(c *Config) {}),
		"dense": withFamily("lissajous_toric", func(c *Config) {
			c.Toric.P = 5
			c.Toric.Q = 3
			c.Toric.N = 7
			c.Nodes = 150
		}),
		"open": withFamily("lissajous_toric", func(c *Config) {
			c.Loop = false
			c.FixLoopEnds = false
		}),
	},
}

func withFamily(family string, edit func(*Config)) *Config {
	c := DefaultConfig()
	c.Family = family
	edit(c)
	return c
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(family, name string) *Config {
	if p, ok := Presets[family]; ok {
		if cfg, ok := p[name]; ok {
			cp := *cfg
			return &cp
		}
	}
	return nil
}

func ListPresets(family string) []string {
	p, ok := Presets[family]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func ListFamilies() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
