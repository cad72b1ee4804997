// Package resolution settles a completed contract: damage rolls, runner
// casualties, reward adjustment, leveling, and the post-contract unhire.
package resolution

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/corugnoll/Johnson-Prototype-sub000/internal/balancing"
	"github.com/corugnoll/Johnson-Prototype-sub000/internal/engine/expr"
	"github.com/corugnoll/Johnson-Prototype-sub000/internal/engine/pool"
	apperrors "github.com/corugnoll/Johnson-Prototype-sub000/internal/errors"
	"github.com/corugnoll/Johnson-Prototype-sub000/internal/runner"
)

// RollOutcome records one damage roll: the raw roll, the table effect it
// matched, the runner it touched (empty when none), and the running reward
// after the roll was applied.
type RollOutcome struct {
	Roll        int
	Effect      balancing.RollEffect
	Value       int
	RunnerID    string
	Description string
	RewardAfter int
}

// Result is the outcome of one contract resolution.
type Result struct {
	Rolls            []RollOutcome
	Reward           int
	RiskApplied      int
	LeveledRunnerIDs []string
	PlayerLevelDelta int
}

// Sleeper paces the roll sequence for display. It never affects the
// computed result; a nil Sleeper disables pacing entirely.
type Sleeper func(time.Duration)

// Resolver runs contract resolutions against a fixed config and damage
// table. The random source is seeded at construction so a resolution replays
// identically from the same seed.
type Resolver struct {
	cfg   balancing.Config
	table balancing.DamageTable
	rng   *rand.Rand
	sleep Sleeper
}

// New returns a resolver with a deterministic random source.
func New(cfg balancing.Config, table balancing.DamageTable, seed int64) *Resolver {
	return &Resolver{
		cfg:   cfg,
		table: table,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// WithSleeper sets the per-roll pacing hook and returns the resolver.
func (r *Resolver) WithSleeper(sleep Sleeper) *Resolver {
	r.sleep = sleep
	return r
}

// Resolve settles the contract described by the snapshot against the roster.
//
// The snapshot's Damage and Risk are already net of prevention, so they are
// consumed directly: one roll per point of unprevented damage, the full
// unprevented risk applied to the player. Afterwards every hired runner that
// survived gains a level and the whole roster is unhired.
//
// Resolve mutates the roster's runner states. It is atomic from the caller's
// point of view: the returned result always reflects the complete sequence.
func (r *Resolver) Resolve(snap pool.Snapshot, roster runner.Roster) (Result, []expr.Diagnostic) {
	var diags []expr.Diagnostic

	hired := roster.Hired()
	reward := r.cfg.BaseReward + snap.Money

	rolls := max(snap.Damage, 0)
	outcomes := make([]RollOutcome, 0, rolls)
	for i := 0; i < rolls; i++ {
		outcome, diag := r.rollOnce(&reward, hired)
		outcomes = append(outcomes, outcome)
		if diag != nil {
			diags = append(diags, *diag)
		}
		if r.sleep != nil && r.cfg.RollDelayMs > 0 {
			r.sleep(time.Duration(r.cfg.RollDelayMs) * time.Millisecond)
		}
	}

	var leveled []string
	for _, h := range hired {
		if h.State == runner.StateDead {
			continue
		}
		h.Level++
		leveled = append(leveled, h.ID)
	}

	roster.UnhireAll()

	return Result{
		Rolls:            outcomes,
		Reward:           reward,
		RiskApplied:      max(snap.Risk, 0),
		LeveledRunnerIDs: leveled,
		PlayerLevelDelta: r.cfg.PlayerLevelPerContract,
	}, diags
}

// rollOnce draws a single roll, resolves its table effect, and applies it to
// the reward and roster. A roll the table does not cover degrades to
// NoEffect with an error diagnostic; a data bug must not break a running
// resolution.
func (r *Resolver) rollOnce(reward *int, hired []*runner.Runner) (RollOutcome, *expr.Diagnostic) {
	roll := r.rng.Intn(r.cfg.MaxRollValue) + 1

	rng, ok := r.table.Lookup(roll)
	if !ok {
		diag := &expr.Diagnostic{
			Severity: expr.SeverityError,
			Code:     apperrors.CodeBalancingTableGap,
			Message:  fmt.Sprintf("no damage-table range covers roll %d, treating as no effect", roll),
		}
		return RollOutcome{
			Roll:        roll,
			Effect:      balancing.EffectNoEffect,
			Description: "no effect (uncovered roll)",
			RewardAfter: *reward,
		}, diag
	}

	outcome := RollOutcome{Roll: roll, Effect: rng.Effect, Value: rng.Value}

	switch rng.Effect {
	case balancing.EffectInjury:
		outcome.RunnerID, outcome.Description = r.applyInjury(hired)
	case balancing.EffectDeath:
		outcome.RunnerID, outcome.Description = r.applyDeath(hired)
	case balancing.EffectReduce:
		*reward -= *reward * rng.Value / 100
		outcome.Description = fmt.Sprintf("reward reduced by %d%%", rng.Value)
	case balancing.EffectExtra:
		*reward += *reward * rng.Value / 100
		outcome.Description = fmt.Sprintf("reward increased by %d%%", rng.Value)
	default:
		outcome.Description = "no effect"
	}

	outcome.RewardAfter = *reward
	return outcome, nil
}

// applyInjury injures a random Ready runner. With no Ready runner left it
// escalates: a random Injured runner dies. With everyone Dead it is a no-op.
func (r *Resolver) applyInjury(hired []*runner.Runner) (id, description string) {
	if target := r.pick(hired, runner.StateReady); target != nil {
		_ = target.Injure()
		return target.ID, fmt.Sprintf("%s injured", target.Name)
	}
	if target := r.pick(hired, runner.StateInjured); target != nil {
		_ = target.Kill()
		return target.ID, fmt.Sprintf("%s died of their injuries", target.Name)
	}
	return "", "injury with no one left to hurt"
}

// applyDeath kills a random Injured runner. With no Injured runner it
// softens: a random Ready runner is injured instead. With everyone Dead it
// is a no-op.
func (r *Resolver) applyDeath(hired []*runner.Runner) (id, description string) {
	if target := r.pick(hired, runner.StateInjured); target != nil {
		_ = target.Kill()
		return target.ID, fmt.Sprintf("%s died", target.Name)
	}
	if target := r.pick(hired, runner.StateReady); target != nil {
		_ = target.Injure()
		return target.ID, fmt.Sprintf("%s injured", target.Name)
	}
	return "", "death with no one left to kill"
}

// pick returns a uniformly random hired runner in the given state, or nil.
func (r *Resolver) pick(hired []*runner.Runner, state runner.State) *runner.Runner {
	var candidates []*runner.Runner
	for _, h := range hired {
		if h.State == state {
			candidates = append(candidates, h)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	return candidates[r.rng.Intn(len(candidates))]
}
