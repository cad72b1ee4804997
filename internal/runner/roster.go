package runner

// Roster is the full set of generated runners for a session.
type Roster []*Runner

// ByID returns the runner with the given id, or nil.
func (r Roster) ByID(id string) *Runner {
	for _, rr := range r {
		if rr != nil && rr.ID == id {
			return rr
		}
	}
	return nil
}

// Hired returns the hired runners in roster order.
func (r Roster) Hired() []*Runner {
	var out []*Runner
	for _, rr := range r {
		if rr != nil && rr.Hired {
			out = append(out, rr)
		}
	}
	return out
}

// HiredInState returns the hired runners currently in the given state,
// in roster order. Resolution uses this to pick injury/death candidates.
func (r Roster) HiredInState(state State) []*Runner {
	var out []*Runner
	for _, rr := range r {
		if rr != nil && rr.Hired && rr.State == state {
			out = append(out, rr)
		}
	}
	return out
}

// UnhireAll clears the hiring state of every runner. Contract resolution
// ends with an empty crew regardless of outcome.
func (r Roster) UnhireAll() {
	for _, rr := range r {
		if rr != nil {
			rr.Hired = false
		}
	}
}
