package config

import "github.com/san-kum/laplab/internal/grid"

var Presets = map[string]*Config{
	"quick": {
		Size: 32, Tolerance: 1e-3, MaxIterations: 1000,
		Boundary: grid.Boundary{Top: 100},
	},
	"hotplate": {
		Size: 64, Tolerance: 1e-4, MaxIterations: 5000,
		Boundary: grid.Boundary{Top: 100},
	},
	"oven": {
		Size: 64, Tolerance: 1e-4, MaxIterations: 5000,
		Boundary: grid.Boundary{Top: 100, Bottom: 100, Left: 100, Right: 100},
	},
	"gradient": {
		Size: 96, Tolerance: 1e-5, MaxIterations: 20000,
		Boundary: grid.Boundary{Top: 100, Bottom: -100},
	},
	"large": {
		Size: 256, Tolerance: 1e-4, MaxIterations: 50000,
		Boundary: grid.Boundary{Top: 100},
	},
}
