package ecology

import "mad-grid/internal/core"

// Params holds tunable thresholds and probabilities for the ecology scenario.
type Params struct {
	RockChance          float64
	GrassPatchCount     int
	GrassPatchRadiusMin int
	GrassPatchRadiusMax int
	GrassPatchDensity   float64

	GrassSpreadChance      float64
	GrassNeighborThreshold int

	Grazers     int
	StarveTicks int
}

// Config controls the ecology scenario dimensions and seeding.
type Config struct {
	Width  int
	Height int

	Seed int64

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:  96,
		Height: 96,
		Seed:   1337,
		Params: Params{
			RockChance:             0.05,
			GrassPatchCount:        12,
			GrassPatchRadiusMin:    2,
			GrassPatchRadiusMax:    5,
			GrassPatchDensity:      0.6,
			GrassSpreadChance:      0.02,
			GrassNeighborThreshold: 2,
			Grazers:                40,
			StarveTicks:            25,
		},
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	core.IntFrom(cfg, "w", &c.Width, true)
	core.IntFrom(cfg, "h", &c.Height, true)
	core.Int64From(cfg, "seed", &c.Seed)

	p := &c.Params
	core.FloatFrom(cfg, "rock_chance", &p.RockChance)
	core.IntFrom(cfg, "grass_patch_count", &p.GrassPatchCount, false)
	core.IntFrom(cfg, "grass_patch_radius_min", &p.GrassPatchRadiusMin, false)
	core.IntFrom(cfg, "grass_patch_radius_max", &p.GrassPatchRadiusMax, false)
	if p.GrassPatchRadiusMax < p.GrassPatchRadiusMin {
		p.GrassPatchRadiusMax = p.GrassPatchRadiusMin
	}
	core.FloatFrom(cfg, "grass_patch_density", &p.GrassPatchDensity)
	core.FloatFrom(cfg, "grass_spread_chance", &p.GrassSpreadChance)
	core.IntFrom(cfg, "grass_neighbor_threshold", &p.GrassNeighborThreshold, false)
	core.IntFrom(cfg, "grazers", &p.Grazers, false)
	core.IntFrom(cfg, "starve_ticks", &p.StarveTicks, true)
	return c
}
