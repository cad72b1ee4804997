package resolution

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/corugnoll/Johnson-Prototype-sub000/internal/balancing"
	"github.com/corugnoll/Johnson-Prototype-sub000/internal/engine/pool"
	apperrors "github.com/corugnoll/Johnson-Prototype-sub000/internal/errors"
	"github.com/corugnoll/Johnson-Prototype-sub000/internal/runner"
)

func testConfig() balancing.Config {
	cfg := balancing.Default()
	cfg.RollDelayMs = 0
	return cfg
}

// uniformTable covers [1, maxRoll] with a single effect so every roll
// resolves the same way regardless of the random value drawn.
func uniformTable(maxRoll int, effect balancing.RollEffect, value int) balancing.DamageTable {
	return balancing.DamageTable{{MinRoll: 1, MaxRoll: maxRoll, Effect: effect, Value: value}}
}

func hired(state runner.State, ids ...string) runner.Roster {
	ros := make(runner.Roster, 0, len(ids))
	for _, id := range ids {
		ros = append(ros, &runner.Runner{
			ID: id, Name: id, Level: 1,
			Archetype: runner.ArchetypeMuscle,
			State:     state, Hired: true,
		})
	}
	return ros
}

func TestResolveRewardBase(t *testing.T) {
	cfg := testConfig()
	r := New(cfg, balancing.DefaultTable(), 1)

	res, diags := r.Resolve(pool.Snapshot{Money: 120}, nil)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if want := cfg.BaseReward + 120; res.Reward != want {
		t.Fatalf("Reward = %d, want %d", res.Reward, want)
	}
	if len(res.Rolls) != 0 {
		t.Fatalf("no damage must mean no rolls, got %d", len(res.Rolls))
	}
}

func TestResolveReducePercentCompounds(t *testing.T) {
	cfg := testConfig()
	cfg.BaseReward = 200
	r := New(cfg, uniformTable(cfg.MaxRollValue, balancing.EffectReduce, 10), 7)

	res, _ := r.Resolve(pool.Snapshot{Damage: 2}, nil)
	// 200 -> 180 -> 162: each reduction takes 10% of the current value.
	if res.Reward != 162 {
		t.Fatalf("Reward = %d, want 162", res.Reward)
	}
	if len(res.Rolls) != 2 {
		t.Fatalf("rolls = %d, want 2", len(res.Rolls))
	}
	if res.Rolls[0].RewardAfter != 180 || res.Rolls[1].RewardAfter != 162 {
		t.Fatalf("running rewards = %d, %d, want 180, 162",
			res.Rolls[0].RewardAfter, res.Rolls[1].RewardAfter)
	}
}

func TestResolveDefaultTableMidRange(t *testing.T) {
	// Roll 56 sits in the 51-70 band of the default table: reduce 10%.
	rng, ok := balancing.DefaultTable().Lookup(56)
	if !ok {
		t.Fatal("default table must cover 56")
	}
	if rng.Effect != balancing.EffectReduce || rng.Value != 10 {
		t.Fatalf("Lookup(56) = %+v, want reduce 10", rng)
	}
}

func TestResolveInjuryEscalation(t *testing.T) {
	cfg := testConfig()

	// A Ready runner takes the injury.
	ros := hired(runner.StateReady, "ready1")
	r := New(cfg, uniformTable(cfg.MaxRollValue, balancing.EffectInjury, 0), 3)
	res, _ := r.Resolve(pool.Snapshot{Damage: 1}, ros)
	if ros[0].State != runner.StateInjured {
		t.Fatalf("state = %v, want injured", ros[0].State)
	}
	if res.Rolls[0].RunnerID != "ready1" {
		t.Fatalf("RunnerID = %q, want ready1", res.Rolls[0].RunnerID)
	}

	// Without a Ready runner the injury escalates to a death.
	ros = hired(runner.StateInjured, "hurt1")
	r = New(cfg, uniformTable(cfg.MaxRollValue, balancing.EffectInjury, 0), 3)
	r.Resolve(pool.Snapshot{Damage: 1}, ros)
	if ros[0].State != runner.StateDead {
		t.Fatalf("state = %v, want dead", ros[0].State)
	}
}

func TestResolveDeathSoftensToInjury(t *testing.T) {
	cfg := testConfig()

	ros := hired(runner.StateReady, "ready1")
	r := New(cfg, uniformTable(cfg.MaxRollValue, balancing.EffectDeath, 0), 5)
	r.Resolve(pool.Snapshot{Damage: 1}, ros)
	if ros[0].State != runner.StateInjured {
		t.Fatalf("state = %v, want injured (death downgrades without injured targets)", ros[0].State)
	}
}

func TestResolveAllDeadRollsAreNoOps(t *testing.T) {
	cfg := testConfig()
	cfg.BaseReward = 100

	ros := hired(runner.StateDead, "dead1", "dead2")
	r := New(cfg, uniformTable(cfg.MaxRollValue, balancing.EffectDeath, 0), 11)

	res, diags := r.Resolve(pool.Snapshot{Damage: 3}, ros)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if res.Reward != 100 {
		t.Fatalf("Reward = %d, want 100 (untouched)", res.Reward)
	}
	for _, roll := range res.Rolls {
		if roll.RunnerID != "" {
			t.Fatalf("roll touched runner %q with everyone dead", roll.RunnerID)
		}
	}
	if len(res.LeveledRunnerIDs) != 0 {
		t.Fatalf("dead runners must not level, got %v", res.LeveledRunnerIDs)
	}
}

func TestResolveLevelsSurvivorsAndUnhires(t *testing.T) {
	cfg := testConfig()
	ros := runner.Roster{
		&runner.Runner{ID: "a", Name: "a", Level: 1, State: runner.StateReady, Hired: true},
		&runner.Runner{ID: "b", Name: "b", Level: 2, State: runner.StateInjured, Hired: true},
		&runner.Runner{ID: "c", Name: "c", Level: 1, State: runner.StateDead, Hired: true},
		&runner.Runner{ID: "bench", Name: "bench", Level: 1, State: runner.StateReady},
	}

	r := New(cfg, balancing.DefaultTable(), 1)
	res, _ := r.Resolve(pool.Snapshot{}, ros)

	if diff := cmp.Diff([]string{"a", "b"}, res.LeveledRunnerIDs); diff != "" {
		t.Fatalf("leveled IDs mismatch (-want +got):\n%s", diff)
	}
	if ros[0].Level != 2 || ros[1].Level != 3 || ros[2].Level != 1 {
		t.Fatalf("levels = %d, %d, %d, want 2, 3, 1", ros[0].Level, ros[1].Level, ros[2].Level)
	}
	if res.PlayerLevelDelta != cfg.PlayerLevelPerContract {
		t.Fatalf("PlayerLevelDelta = %d, want %d", res.PlayerLevelDelta, cfg.PlayerLevelPerContract)
	}
	for _, rr := range ros {
		if rr.Hired {
			t.Fatalf("runner %s still hired after resolution", rr.ID)
		}
	}
	if ros[3].Level != 1 {
		t.Fatal("unhired runner must not level")
	}
}

func TestResolveRiskApplied(t *testing.T) {
	r := New(testConfig(), balancing.DefaultTable(), 1)
	res, _ := r.Resolve(pool.Snapshot{Risk: 4}, nil)
	if res.RiskApplied != 4 {
		t.Fatalf("RiskApplied = %d, want 4", res.RiskApplied)
	}

	r = New(testConfig(), balancing.DefaultTable(), 1)
	res, _ = r.Resolve(pool.Snapshot{Risk: -2}, nil)
	if res.RiskApplied != 0 {
		t.Fatalf("RiskApplied = %d, want 0 for negative risk", res.RiskApplied)
	}
}

func TestResolveTableGapDegrades(t *testing.T) {
	cfg := testConfig()
	r := New(cfg, balancing.DamageTable{}, 9)

	res, diags := r.Resolve(pool.Snapshot{Damage: 1}, nil)
	if len(diags) != 1 || diags[0].Code != apperrors.CodeBalancingTableGap {
		t.Fatalf("expected one table-gap diagnostic, got %v", diags)
	}
	if res.Rolls[0].Effect != balancing.EffectNoEffect {
		t.Fatalf("uncovered roll effect = %s, want noeffect", res.Rolls[0].Effect)
	}
	if res.Reward != cfg.BaseReward {
		t.Fatalf("Reward = %d, want %d", res.Reward, cfg.BaseReward)
	}
}

func TestResolveSeededDeterminism(t *testing.T) {
	cfg := testConfig()
	snap := pool.Snapshot{Damage: 5, Money: 30}

	run := func() (Result, runner.Roster) {
		ros := hired(runner.StateReady, "a", "b", "c")
		r := New(cfg, balancing.DefaultTable(), 42)
		res, _ := r.Resolve(snap, ros)
		return res, ros
	}

	first, firstRoster := run()
	second, secondRoster := run()

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("same seed produced different results (-first +second):\n%s", diff)
	}
	for i := range firstRoster {
		if firstRoster[i].State != secondRoster[i].State {
			t.Fatalf("runner %s state diverged: %v vs %v",
				firstRoster[i].ID, firstRoster[i].State, secondRoster[i].State)
		}
	}
}

func TestResolveSleeperPacesWithoutChangingResult(t *testing.T) {
	cfg := testConfig()
	cfg.RollDelayMs = 10
	snap := pool.Snapshot{Damage: 3}

	plain := New(cfg, balancing.DefaultTable(), 42)
	want, _ := plain.Resolve(snap, nil)

	var slept int
	paced := New(cfg, balancing.DefaultTable(), 42).WithSleeper(func(d time.Duration) {
		if d != 10*time.Millisecond {
			t.Fatalf("slept %v, want 10ms", d)
		}
		slept++
	})
	got, _ := paced.Resolve(snap, nil)

	if slept != 3 {
		t.Fatalf("sleeper called %d times, want 3", slept)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("pacing changed the result (-want +got):\n%s", diff)
	}
}
