package core

import (
	"fmt"
	"maps"
	"slices"

	"mad-grid/pkg/board"
)

// Size describes the dimensions of a scenario board.
type Size struct {
	W int
	H int
}

// Scenario is a rule set bound to its own board.
type Scenario interface {
	Name() string
	Size() Size
	Board() *board.Board
	// Reset clears the board and places the initial population.
	Reset(seed int64) error
	Parameters() ParameterSnapshot
}

// Factory constructs a Scenario using an optional configuration map.
type Factory func(cfg map[string]string) Scenario

var scenarios = map[string]Factory{}

// Register adds a scenario factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	scenarios[name] = f
}

// Scenarios exposes the registry of available scenario factories.
func Scenarios() map[string]Factory {
	return scenarios
}

// Names lists registered scenarios in sorted order.
func Names() []string {
	return slices.Sorted(maps.Keys(scenarios))
}

// New builds the named scenario.
func New(name string, cfg map[string]string) (Scenario, error) {
	f, ok := scenarios[name]
	if !ok {
		return nil, fmt.Errorf("unknown scenario %q (available: %v)", name, Names())
	}
	return f(cfg), nil
}
