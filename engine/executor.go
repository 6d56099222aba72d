package engine

import "fmt"

// ExecutionResult is the outcome of a batch RunTimeline call (§4.8's
// execute_timeline return shape): the state and events are always
// populated up to (not including, on failure) the step that aborted.
type ExecutionResult struct {
	State         GameState
	Events        []Event
	Success       bool
	StoppedAtStep int
	Error         error
}

// RunTimeline is the batch-mode executor (§4.8's execute_timeline): it
// replays every step of tl against s in order, applying the Ongoing
// Recomputer at the ONGOING_RECALC step, and returns the final state
// together with the concatenated event stream. rng must be reset to
// the same seed the generator started from so that steps whose Apply
// consults rng (moves with a random strategy, RANDOM_VALID_TARGET)
// reproduce exactly what the generator's shadow walk already decided.
// A panic during any step is contained and reported as a failed result
// with the partial state and the index of the step that aborted,
// rather than propagating (§7: never panic across this boundary).
func RunTimeline(s GameState, tl *Timeline, rng *RNG) (result ExecutionResult) {
	next := s
	var events []Event
	for i, step := range tl.Steps {
		stepIndex := i
		func() {
			defer func() {
				if r := recover(); r != nil {
					result = ExecutionResult{
						State:         next,
						Events:        events,
						Success:       false,
						StoppedAtStep: stepIndex,
						Error:         &ExecutionError{StepIndex: stepIndex, Reason: fmt.Sprintf("panic: %v", r)},
					}
				}
			}()
			next, events = runOne(next, step, rng, events)
		}()
		if result.Error != nil {
			return result
		}
	}
	return ExecutionResult{State: next, Events: events, Success: true, StoppedAtStep: len(tl.Steps)}
}

func runOne(s GameState, step Step, rng *RNG, events []Event) (GameState, []Event) {
	switch step.Phase {
	case PhaseStepReveal:
		next, ok := UpdateCard(s, step.SourceCard, func(c CardInstance) CardInstance {
			c.Revealed = true
			return c
		})
		if ok {
			s = next
		}
		events = append(events, Event{Type: EventCardRevealed, Instance: step.SourceCard, Location: step.SourceLocation})
		return s, events

	case PhaseStepEvent:
		next, ev, ok := Apply(s, step, rng)
		if ok {
			s = next
			events = append(events, ev...)
		}
		return s, events

	case PhaseStepOngoingRecalc:
		next, ev := RecomputeOngoing(s)
		events = append(events, ev...)
		return next, events

	case PhaseStepCleanup:
		return s, events

	default:
		return s, events
	}
}

// StepIterator replays a Timeline one step at a time (§4.8's
// create_step_iterator), for callers that want to pace execution (e.g.
// animation playback) instead of taking the whole turn in one call.
type StepIterator struct {
	tl     *Timeline
	rng    *RNG
	state  GameState
	events []Event
	index  int
	err    error
}

// NewStepIterator builds an iterator over tl starting from s, with rng
// reset to the seed the generator used.
func NewStepIterator(s GameState, tl *Timeline, rng *RNG) *StepIterator {
	return &StepIterator{tl: tl, rng: rng, state: s}
}

// HasNext reports whether a further step remains.
func (it *StepIterator) HasNext() bool {
	return it.err == nil && it.index < len(it.tl.Steps)
}

// Peek returns the step that Next would execute, without executing it.
func (it *StepIterator) Peek() (Step, bool) {
	if !it.HasNext() {
		return Step{}, false
	}
	return it.tl.Steps[it.index], true
}

// Next executes the current step and advances the cursor. On failure
// it records the step index and aborts the iterator in place, leaving
// GetState at the last good state (§4.8: abort with partial state and
// step index).
func (it *StepIterator) Next() error {
	if !it.HasNext() {
		return fmt.Errorf("step iterator exhausted at index %d", it.index)
	}
	step := it.tl.Steps[it.index]
	defer func() {
		if r := recover(); r != nil {
			it.err = &ExecutionError{StepIndex: it.index, Reason: fmt.Sprintf("panic: %v", r)}
		}
	}()
	it.state, it.events = runOne(it.state, step, it.rng, it.events)
	it.index++
	return nil
}

// GetState returns the state as of the last successfully executed
// step.
func (it *StepIterator) GetState() GameState { return it.state }

// GetEvents returns every event emitted so far.
func (it *StepIterator) GetEvents() []Event { return it.events }

// GetCurrentIndex returns the index of the next step to execute.
func (it *StepIterator) GetCurrentIndex() int { return it.index }

// GetTotalSteps returns the timeline's total step count.
func (it *StepIterator) GetTotalSteps() int { return len(it.tl.Steps) }

// GetProgress returns completed/total, as a fraction in [0,1].
func (it *StepIterator) GetProgress() float64 {
	if len(it.tl.Steps) == 0 {
		return 1
	}
	return float64(it.index) / float64(len(it.tl.Steps))
}

// Err returns the error recorded by a failed Next call, if any.
func (it *StepIterator) Err() error { return it.err }
