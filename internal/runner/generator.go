package runner

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/corugnoll/Johnson-Prototype-sub000/internal/balancing"
	"github.com/corugnoll/Johnson-Prototype-sub000/internal/platform/id"
)

// NewSeededRNG creates a seeded random number generator.
// If seed is 0, uses current time and prints the seed for reproducibility.
func NewSeededRNG(seed int64, verbose bool) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
		if verbose {
			fmt.Fprintf(os.Stderr, "Using seed: %d\n", seed)
		}
	}
	return rand.New(rand.NewSource(seed))
}

// archetypeOrder fixes the round-robin order of batch generation.
var archetypeOrder = []Archetype{
	ArchetypeMuscle,
	ArchetypeHacker,
	ArchetypeFace,
	ArchetypeGhost,
}

// handles is the preset name pool. Names repeat across batches; identity
// lives in the runner ID, not the display name.
var handles = []string{
	"Static", "Raze", "Mirror", "Volt", "Cinder", "Patch",
	"Halo", "Grudge", "Sable", "Nomad", "Tinker", "Vesper",
	"Crash", "Lotus", "Drift", "Hex", "Marrow", "Slate",
	"Echo", "Fable", "Quill", "Rust", "Shade", "Wisp",
}

// Generator creates hireable runners from the balancing config.
type Generator struct {
	cfg balancing.Config
	rng *rand.Rand
}

// NewGenerator returns a generator drawing from the given random source.
func NewGenerator(cfg balancing.Config, rng *rand.Rand) *Generator {
	return &Generator{cfg: cfg, rng: rng}
}

// Batch generates cfg.BatchSize fresh runners, cycling through the
// archetypes in a fixed order so every batch offers a spread of roles.
func (g *Generator) Batch() (Roster, error) {
	out := make(Roster, 0, g.cfg.BatchSize)
	for i := 0; i < g.cfg.BatchSize; i++ {
		r, err := g.Generate(archetypeOrder[i%len(archetypeOrder)])
		if err != nil {
			return nil, fmt.Errorf("generate runner %d: %w", i+1, err)
		}
		out = append(out, r)
	}
	return out, nil
}

// Generate creates one level-1 runner of the given archetype. The main stat
// allocation lands on the archetype's main axis; the random allocation is
// spread one point at a time across all four axes.
func (g *Generator) Generate(archetype Archetype) (*Runner, error) {
	runnerID, err := id.NewID()
	if err != nil {
		return nil, err
	}

	stats := make(map[StatAxis]int, len(StatAxes()))
	for _, axis := range StatAxes() {
		stats[axis] = 0
	}
	stats[archetype.MainAxis()] += g.cfg.MainStatAllocation

	axes := StatAxes()
	for i := 0; i < g.cfg.RandomStatAllocation; i++ {
		stats[axes[g.rng.Intn(len(axes))]]++
	}

	return &Runner{
		ID:        runnerID,
		Name:      handles[g.rng.Intn(len(handles))],
		Level:     1,
		Archetype: archetype,
		Stats:     stats,
		State:     StateReady,
	}, nil
}
