// Package main provides a CLI for seeding the local database with generated
// runners and a starting player record.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/corugnoll/Johnson-Prototype-sub000/internal/balancing"
	"github.com/corugnoll/Johnson-Prototype-sub000/internal/runner"
	"github.com/corugnoll/Johnson-Prototype-sub000/internal/storage"
	"github.com/corugnoll/Johnson-Prototype-sub000/internal/storage/sqlite"
)

func main() {
	var (
		dbPath        string
		balancingPath string
		seedVal       int64
		batches       int
		money         int
		verbose       bool
	)
	flag.StringVar(&dbPath, "db", "johnson.db", "path to the SQLite database")
	flag.StringVar(&balancingPath, "balancing", "", "balancing YAML file (empty = built-in defaults)")
	flag.Int64Var(&seedVal, "seed", 0, "random seed for reproducibility (0 = random)")
	flag.IntVar(&batches, "batches", 1, "number of runner batches to generate")
	flag.IntVar(&money, "money", 500, "starting player money")
	flag.BoolVar(&verbose, "v", false, "verbose output")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, dbPath, balancingPath, seedVal, batches, money, verbose); err != nil {
		log.Fatalf("seed: %v", err)
	}
}

func run(ctx context.Context, dbPath, balancingPath string, seedVal int64, batches, money int, verbose bool) error {
	cfg, _, err := balancing.Load(balancingPath)
	if err != nil {
		return fmt.Errorf("load balancing config: %w", err)
	}

	store, err := sqlite.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer store.Close()

	gen := runner.NewGenerator(cfg, runner.NewSeededRNG(seedVal, verbose))
	total := 0
	for i := 0; i < batches; i++ {
		batch, err := gen.Batch()
		if err != nil {
			return fmt.Errorf("generate batch %d: %w", i+1, err)
		}
		for _, r := range batch {
			record := storage.RunnerRecord{
				ID:        r.ID,
				Name:      r.Name,
				Level:     r.Level,
				Archetype: string(r.Archetype),
				Muscle:    r.Stat(runner.StatMuscle),
				Hacking:   r.Stat(runner.StatHacking),
				Social:    r.Stat(runner.StatSocial),
				Stealth:   r.Stat(runner.StatStealth),
				State:     r.State.String(),
			}
			if err := store.SaveRunner(ctx, record); err != nil {
				return fmt.Errorf("save runner %s: %w", r.ID, err)
			}
			total++
			if verbose {
				fmt.Printf("runner %s (%s, %s)\n", r.Name, r.Archetype, r.ID)
			}
		}
	}

	if err := seedPlayer(ctx, store, money); err != nil {
		return err
	}

	fmt.Printf("seeded %d runners into %s\n", total, dbPath)
	return nil
}

// seedPlayer creates the player record when missing. An existing record is
// left alone so reseeding runners does not reset progression.
func seedPlayer(ctx context.Context, store *sqlite.Store, money int) error {
	_, err := store.GetPlayer(ctx, "player")
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("check player: %w", err)
	}
	record := storage.PlayerRecord{ID: "player", Money: money, Level: 1}
	if err := store.SavePlayer(ctx, record); err != nil {
		return fmt.Errorf("save player: %w", err)
	}
	return nil
}
