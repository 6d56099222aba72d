package engine

import "sort"

// StepPhase is the coarse phase a step belongs to; phases appear in the
// timeline in non-decreasing order REVEAL -> EVENT -> ONGOING_RECALC ->
// CLEANUP (§4.7).
type StepPhase uint8

const (
	PhaseStepReveal StepPhase = iota
	PhaseStepEvent
	PhaseStepOngoingRecalc
	PhaseStepCleanup
)

// StepSourceKind is what originated a step.
type StepSourceKind uint8

const (
	SourceKindCard StepSourceKind = iota
	SourceKindLocation
	SourceKindSystem
)

// StepParameters mirrors Ability's optional fields (§4.3), copied onto
// the step at generation time so the executor never needs the original
// Ability or a catalog lookup to replay it.
type StepParameters struct {
	PerUnitAmount       int
	CountFilter         *Selector
	SecondaryTarget     *Selector
	SecondaryValue      int
	DestinationStrategy DestinationStrategy
	BaseSummonPower     int
	SummonDef           *CardDefinition
}

// Step is one atomic, already-decided unit of work in a turn's timeline
// (§4.7).
type Step struct {
	StepIndex      int
	Phase          StepPhase
	Source         StepSourceKind
	SourceCard     int32
	SourceLocation int

	Trigger   Trigger
	Condition Condition
	Targets   []int32
	Effect    Effect
	Value     int

	Parameters *StepParameters

	DurationScope  DurationScope
	VisualMetadata VisualMetadata
	Description    string
}

// PlayedCard is one card placed face-down during Commit, as handed to
// the generator (§4.7).
type PlayedCard struct {
	Instance  int32
	Owner     PlayerID
	Location  int
	PlayOrder int
}

// Timeline is the deterministic ordered list of steps produced for one
// turn, plus the bookkeeping metadata described in §4.7.
type Timeline struct {
	Turn   int
	Seed   uint32
	Steps  []Step

	InstancesRevealed []int32
	InstancesDestroyed []int32
	InstancesMoved      []int32
}

// ActivePlayerForTurn is the player who wins same-lane, same-play-order
// reveal ties: player 0 on odd turns, player 1 on even turns (§4.7).
func ActivePlayerForTurn(turn int) PlayerID {
	if turn%2 == 1 {
		return Player0
	}
	return Player1
}

// revealOrder sorts played cards per §4.7's four-level tie-break.
func revealOrder(played []PlayedCard, turn int) []PlayedCard {
	out := append([]PlayedCard(nil), played...)
	active := ActivePlayerForTurn(turn)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Location != b.Location {
			return a.Location < b.Location
		}
		if a.PlayOrder != b.PlayOrder {
			return a.PlayOrder < b.PlayOrder
		}
		if a.Owner != b.Owner {
			return a.Owner == active
		}
		return a.Instance < b.Instance
	})
	return out
}

// orderedClausesForReveal returns card's ON_REVEAL clauses with any
// DESTROY_SELF clause moved to the end, preserving the relative order
// of every other clause (§4.7: lets a card buff before it self-destructs).
func orderedClausesForReveal(def *CardDefinition) []Ability {
	var normal, selfDestroy []Ability
	for _, a := range def.Abilities {
		if a.Trigger != TriggerOnReveal {
			continue
		}
		if a.Effect.isSelfDestroy() {
			selfDestroy = append(selfDestroy, a)
		} else {
			normal = append(normal, a)
		}
	}
	return append(normal, selfDestroy...)
}

func paramsFromAbility(a Ability, lookupDef func(string) *CardDefinition) *StepParameters {
	if a.PerUnitAmount == 0 && a.CountFilter == nil && a.SecondaryTarget == nil &&
		a.DestinationStrategy == DestinationFirstAvailable && a.BaseSummonPower == 0 && a.SummonCardID == "" {
		return nil
	}
	p := &StepParameters{
		PerUnitAmount:       a.PerUnitAmount,
		CountFilter:         a.CountFilter,
		SecondaryTarget:     a.SecondaryTarget,
		SecondaryValue:      a.SecondaryValue,
		DestinationStrategy: a.DestinationStrategy,
		BaseSummonPower:     a.BaseSummonPower,
	}
	if a.SummonCardID != "" && lookupDef != nil {
		p.SummonDef = lookupDef(a.SummonCardID)
	}
	return p
}

// GenerateTimeline deterministically produces the full step list for a
// turn (§4.7). It runs a shadow simulation over a scratch copy of s
// (never the caller's state) so that each card's conditions and target
// resolution see the effects of every step generated before it; the
// real Executor later replays the exact same step list against the
// caller's actual state with an RNG reset to the same seed it started
// from here, so the two passes produce bit-identical results (§4.8,
// §8). lookupDef resolves a catalog card id to its definition, used
// only by SUMMON_SPIRIT clauses.
func GenerateTimeline(s GameState, played []PlayedCard, seed uint32, rng *RNG, lookupDef func(string) *CardDefinition) *Timeline {
	tl := &Timeline{Turn: s.Turn, Seed: seed}
	scratch := s.clone()
	order := revealOrder(played, s.Turn)
	stepIdx := 0

	for _, pc := range order {
		scratch, _ = UpdateCard(scratch, pc.Instance, func(c CardInstance) CardInstance {
			c.Revealed = true
			return c
		})
		tl.Steps = append(tl.Steps, Step{
			StepIndex:      stepIdx,
			Phase:          PhaseStepReveal,
			Source:         SourceKindCard,
			SourceCard:     pc.Instance,
			SourceLocation: pc.Location,
		})
		stepIdx++
		tl.InstancesRevealed = append(tl.InstancesRevealed, pc.Instance)

		card, ok := FindCardByInstance(scratch, pc.Instance)
		if !ok || card.Def == nil || card.Def.Category != OnReveal {
			continue
		}

		for _, clause := range orderedClausesForReveal(card.Def) {
			if !EvaluateCondition(clause.Condition, scratch, card, pc.Location) {
				continue
			}
			targets := ResolveTargets(clause.TargetSelector, scratch, card, pc.Location, rng)
			if len(targets) == 0 {
				continue
			}
			step := Step{
				StepIndex:      stepIdx,
				Phase:          PhaseStepEvent,
				Source:         SourceKindCard,
				SourceCard:     pc.Instance,
				SourceLocation: pc.Location,
				Trigger:        clause.Trigger,
				Condition:      clause.Condition,
				Targets:        targets,
				Effect:         clause.Effect,
				Value:          clause.Value,
				Parameters:     paramsFromAbility(clause, lookupDef),
				DurationScope:  clause.DurationScope,
				VisualMetadata: clause.VisualMetadata,
			}
			next, _, ok := Apply(scratch, step, rng)
			if ok {
				scratch = next
			}
			tl.Steps = append(tl.Steps, step)
			stepIdx++
		}
	}

	tl.Steps = append(tl.Steps, Step{StepIndex: stepIdx, Phase: PhaseStepOngoingRecalc, Source: SourceKindSystem})
	stepIdx++
	tl.Steps = append(tl.Steps, Step{StepIndex: stepIdx, Phase: PhaseStepCleanup, Source: SourceKindSystem})

	tl.InstancesDestroyed = diffNewIDs(s.CardsDestroyedThisGame, scratch.CardsDestroyedThisGame)
	tl.InstancesMoved = diffNewIDs(s.CardsMovedThisGame, scratch.CardsMovedThisGame)
	return tl
}

func diffNewIDs(before, after []int32) []int32 {
	if len(after) <= len(before) {
		return nil
	}
	return append([]int32(nil), after[len(before):]...)
}

// ValidateTimeline checks the integrity rule from §4.7: step indices
// are sequential and phases appear in non-decreasing order.
func ValidateTimeline(tl *Timeline) bool {
	for i, st := range tl.Steps {
		if st.StepIndex != i {
			return false
		}
		if i > 0 && st.Phase < tl.Steps[i-1].Phase {
			return false
		}
	}
	return true
}

// SameTimeline reports whether two timelines are observably identical:
// same turn, same seed, and the same step sequence compared on index,
// phase, source, trigger, condition, effect, value, duration scope and
// targets (used by the determinism comparison helper, §4.7, §8). Step
// Parameters, VisualMetadata and Description are not compared.
func SameTimeline(a, b *Timeline) bool {
	if a.Turn != b.Turn || a.Seed != b.Seed || len(a.Steps) != len(b.Steps) {
		return false
	}
	for i := range a.Steps {
		sa, sb := a.Steps[i], b.Steps[i]
		if sa.StepIndex != sb.StepIndex || sa.Phase != sb.Phase || sa.Source != sb.Source ||
			sa.SourceCard != sb.SourceCard || sa.SourceLocation != sb.SourceLocation ||
			sa.Trigger != sb.Trigger || sa.Condition != sb.Condition || sa.Effect != sb.Effect ||
			sa.Value != sb.Value || sa.DurationScope != sb.DurationScope {
			return false
		}
		if len(sa.Targets) != len(sb.Targets) {
			return false
		}
		for j := range sa.Targets {
			if sa.Targets[j] != sb.Targets[j] {
				return false
			}
		}
	}
	return true
}
