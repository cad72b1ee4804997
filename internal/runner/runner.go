package runner

import (
	"strings"

	apperrors "github.com/corugnoll/Johnson-Prototype-sub000/internal/errors"
)

// Archetype is a runner's specialization.
type Archetype string

const (
	ArchetypeMuscle Archetype = "muscle"
	ArchetypeHacker Archetype = "hacker"
	ArchetypeFace   Archetype = "face"
	ArchetypeGhost  Archetype = "ghost"
)

// Archetypes lists every archetype in generation order.
func Archetypes() []Archetype {
	return []Archetype{ArchetypeMuscle, ArchetypeHacker, ArchetypeFace, ArchetypeGhost}
}

// ParseArchetype normalizes and validates an archetype label.
func ParseArchetype(value string) (Archetype, error) {
	switch Archetype(strings.ToLower(strings.TrimSpace(value))) {
	case ArchetypeMuscle:
		return ArchetypeMuscle, nil
	case ArchetypeHacker:
		return ArchetypeHacker, nil
	case ArchetypeFace:
		return ArchetypeFace, nil
	case ArchetypeGhost:
		return ArchetypeGhost, nil
	default:
		return "", apperrors.WithMetadata(apperrors.CodeRunnerInvalidArchetype,
			"unknown archetype", map[string]string{"archetype": value})
	}
}

// StatAxis is one of the four runner stat axes.
type StatAxis string

const (
	StatMuscle  StatAxis = "muscle"
	StatHacking StatAxis = "hacking"
	StatSocial  StatAxis = "social"
	StatStealth StatAxis = "stealth"
)

// StatAxes lists every stat axis.
func StatAxes() []StatAxis {
	return []StatAxis{StatMuscle, StatHacking, StatSocial, StatStealth}
}

// ParseStatAxis normalizes and validates a stat axis label.
func ParseStatAxis(value string) (StatAxis, bool) {
	switch StatAxis(strings.ToLower(strings.TrimSpace(value))) {
	case StatMuscle:
		return StatMuscle, true
	case StatHacking:
		return StatHacking, true
	case StatSocial:
		return StatSocial, true
	case StatStealth:
		return StatStealth, true
	default:
		return "", false
	}
}

// MainAxis returns the stat axis an archetype specializes in.
func (a Archetype) MainAxis() StatAxis {
	switch a {
	case ArchetypeMuscle:
		return StatMuscle
	case ArchetypeHacker:
		return StatHacking
	case ArchetypeFace:
		return StatSocial
	case ArchetypeGhost:
		return StatStealth
	default:
		return StatMuscle
	}
}

// State is a runner's life-cycle state. Transitions are monotonic:
// Ready → Injured → Dead, with Dead terminal. There is no healing path.
type State int

const (
	StateReady State = iota
	StateInjured
	StateDead
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "Ready"
	case StateInjured:
		return "Injured"
	case StateDead:
		return "Dead"
	default:
		return "Unknown"
	}
}

// ParseState maps a persisted state label back to a State.
func ParseState(value string) (State, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "ready":
		return StateReady, true
	case "injured":
		return StateInjured, true
	case "dead":
		return StateDead, true
	default:
		return StateReady, false
	}
}

// Runner is a hireable unit with stats and a Ready/Injured/Dead life-cycle.
// Runners are never deleted, only state-transitioned.
type Runner struct {
	ID        string
	Name      string
	Level     int // always >= 1
	Archetype Archetype
	Stats     map[StatAxis]int
	State     State
	Hired     bool
}

// Stat returns the value of one stat axis, zero when unset.
func (r *Runner) Stat(axis StatAxis) int {
	if r == nil || r.Stats == nil {
		return 0
	}
	return r.Stats[axis]
}

// Injure advances a Ready runner to Injured.
func (r *Runner) Injure() error {
	if r.State != StateReady {
		return apperrors.WithMetadata(apperrors.CodeRunnerIllegalTransition,
			"only ready runners can be injured",
			map[string]string{"runner_id": r.ID, "state": r.State.String()})
	}
	r.State = StateInjured
	return nil
}

// Kill advances a Ready or Injured runner to Dead. Dead is terminal.
func (r *Runner) Kill() error {
	if r.State == StateDead {
		return apperrors.WithMetadata(apperrors.CodeRunnerIllegalTransition,
			"runner is already dead",
			map[string]string{"runner_id": r.ID})
	}
	r.State = StateDead
	return nil
}

// Hire marks the runner as hired. Dead runners cannot be hired.
func (r *Runner) Hire() error {
	if r.State == StateDead {
		return apperrors.WithMetadata(apperrors.CodeRunnerDead,
			"dead runners cannot be hired", map[string]string{"runner_id": r.ID})
	}
	if r.Hired {
		return apperrors.WithMetadata(apperrors.CodeRunnerAlreadyHired,
			"runner already hired", map[string]string{"runner_id": r.ID})
	}
	r.Hired = true
	return nil
}

// Unhire clears the runner's hiring state.
func (r *Runner) Unhire() error {
	if !r.Hired {
		return apperrors.WithMetadata(apperrors.CodeRunnerNotHired,
			"runner is not hired", map[string]string{"runner_id": r.ID})
	}
	r.Hired = false
	return nil
}
