package ecology

import "mad-grid/internal/core"

// Parameters exposes the current configuration grouped for display.
func (w *World) Parameters() core.ParameterSnapshot {
	params := w.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				core.IntParam("w", "Width", w.cfg.Width),
				core.IntParam("h", "Height", w.cfg.Height),
				core.Int64Param("seed", "Seed", w.cfg.Seed),
			},
		},
		{
			Name: "Terrain Seeding",
			Params: []core.Parameter{
				core.FloatParam("rock_chance", "Rock chance", params.RockChance),
				core.IntParam("grass_patch_count", "Grass patch count", params.GrassPatchCount),
				core.IntParam("grass_patch_radius_min", "Grass patch radius min", params.GrassPatchRadiusMin),
				core.IntParam("grass_patch_radius_max", "Grass patch radius max", params.GrassPatchRadiusMax),
				core.FloatParam("grass_patch_density", "Grass patch density", params.GrassPatchDensity),
			},
		},
		{
			Name: "Regrowth",
			Params: []core.Parameter{
				core.FloatParam("grass_spread_chance", "Grass spread chance", params.GrassSpreadChance),
				core.IntParam("grass_neighbor_threshold", "Grass neighbor threshold", params.GrassNeighborThreshold),
			},
		},
		{
			Name: "Grazers",
			Params: []core.Parameter{
				core.IntParam("grazers", "Initial grazers", params.Grazers),
				core.IntParam("starve_ticks", "Ticks without grass before starving", params.StarveTicks),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}
