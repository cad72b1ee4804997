package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/corugnoll/Johnson-Prototype-sub000/internal/runner"
	"github.com/corugnoll/Johnson-Prototype-sub000/internal/storage"
)

// Restore loads the player progression and runner roster from storage into
// the session. A missing player record leaves the defaults in place; hired
// flags are not restored because contracts do not survive a restart.
func (s *Session) Restore(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return nil
	}

	player, err := s.store.GetPlayer(ctx, playerRecordID)
	switch {
	case err == nil:
		s.player = Player{
			Money:              player.Money,
			Risk:               player.Risk,
			Level:              player.Level,
			ContractsCompleted: player.ContractsCompleted,
		}
	case errors.Is(err, storage.ErrNotFound):
	default:
		return fmt.Errorf("restore player: %w", err)
	}

	records, err := s.store.ListRunners(ctx)
	if err != nil {
		return fmt.Errorf("restore runners: %w", err)
	}
	roster := make(runner.Roster, 0, len(records))
	for _, record := range records {
		r, err := runnerFromRecord(record)
		if err != nil {
			return fmt.Errorf("restore runner %s: %w", record.ID, err)
		}
		roster = append(roster, r)
	}
	s.roster = roster
	return nil
}

func runnerFromRecord(record storage.RunnerRecord) (*runner.Runner, error) {
	archetype, err := runner.ParseArchetype(record.Archetype)
	if err != nil {
		return nil, err
	}
	state, ok := runner.ParseState(record.State)
	if !ok {
		return nil, fmt.Errorf("unknown runner state %q", record.State)
	}
	return &runner.Runner{
		ID:        record.ID,
		Name:      record.Name,
		Level:     record.Level,
		Archetype: archetype,
		Stats: map[runner.StatAxis]int{
			runner.StatMuscle:  record.Muscle,
			runner.StatHacking: record.Hacking,
			runner.StatSocial:  record.Social,
			runner.StatStealth: record.Stealth,
		},
		State: state,
	}, nil
}
