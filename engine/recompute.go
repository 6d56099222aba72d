package engine

// RecomputeOngoing is the single deterministic recomputation pass run
// at the ONGOING_RECALC step (§4.9). It walks every card in
// location-index-then-insertion order exactly once: there is no
// fixpoint iteration, so an ongoing ability that would read another
// ongoing ability's freshly recomputed output never sees it within the
// same pass.
//
// The pass is four sub-passes in order: reset every ongoing modifier to
// zero and clear the silenced set; apply every SILENCE_ENEMY_ONGOING_HERE
// clause; apply every remaining ONGOING power clause (buffs, debuffs,
// per-empty-slot scaling, and the global destroyed-card buff); then emit
// a PowerChanged diff for every card whose effective power changed from
// what it held going into the pass. Each diff's Source is the changed
// card's own instance id; the card whose ongoing clause produced the
// change is not recorded.
func RecomputeOngoing(s GameState) (GameState, []Event) {
	before := snapshotPower(s)

	next := s.clone()
	for li := range next.Locations {
		for p := 0; p < NumPlayers; p++ {
			cards := next.Locations[li].Cards[p]
			for i := range cards {
				cards[i].OngoingMod = 0
			}
		}
	}
	next.SilencedCards = map[int32]bool{}

	for _, entry := range walkInsertionOrder(next) {
		card := entry.card
		if card.Def == nil || card.Def.Category != Ongoing {
			continue
		}
		for _, clause := range card.Def.Abilities {
			if clause.Trigger != TriggerOngoing || clause.Effect != EffectSilenceEnemyOngoingHere {
				continue
			}
			if !EvaluateCondition(clause.Condition, next, card, entry.loc) {
				continue
			}
			for _, targetID := range ResolveTargets(clause.TargetSelector, next, card, entry.loc, nil) {
				next.SilencedCards[targetID] = true
			}
		}
	}

	for _, entry := range walkInsertionOrder(next) {
		card := entry.card
		if card.Def == nil || card.Def.Category != Ongoing || next.SilencedCards[card.InstanceID] {
			continue
		}
		for _, clause := range card.Def.Abilities {
			if clause.Trigger != TriggerOngoing || clause.Effect == EffectSilenceEnemyOngoingHere {
				continue
			}
			if !EvaluateCondition(clause.Condition, next, card, entry.loc) {
				continue
			}
			applyOngoingPower(next, clause, card, entry.loc)
		}
	}

	var events []Event
	for _, entry := range walkInsertionOrder(next) {
		after := entry.card.EffectivePower()
		prior, ok := before[entry.card.InstanceID]
		if ok && prior == after {
			continue
		}
		events = append(events, Event{
			Type:     EventPowerChanged,
			Instance: entry.card.InstanceID,
			OldValue: prior,
			NewValue: after,
			Source:   entry.card.InstanceID,
		})
	}
	events = append(events, Event{Type: EventOngoingRecalculated})
	return next, events
}

type boardEntry struct {
	card CardInstance
	loc  int
}

// walkInsertionOrder visits every card location-index then
// owner-then-slot (i.e. insertion) order, the fixed traversal order for
// the recomputation pass (§4.9).
func walkInsertionOrder(s GameState) []boardEntry {
	var out []boardEntry
	for li, loc := range s.Locations {
		for p := 0; p < NumPlayers; p++ {
			for _, c := range loc.Cards[p] {
				out = append(out, boardEntry{card: c, loc: li})
			}
		}
	}
	return out
}

func snapshotPower(s GameState) map[int32]int {
	out := map[int32]int{}
	for _, loc := range s.Locations {
		for p := 0; p < NumPlayers; p++ {
			for _, c := range loc.Cards[p] {
				out[c.InstanceID] = c.EffectivePower()
			}
		}
	}
	return out
}

// applyOngoingPower mutates next's board in place to add clause's power
// delta to every resolved target, scaling by per_unit_amount x
// count_filter matches when the clause scales (§4.9). A count_filter of
// SelectorLocation is read as "count of owner's empty slots in this
// lane" rather than a literal location-selector match, matching the
// scaling idiom used by BUFF_ALLIES_HERE_PER_EMPTY_SLOT.
func applyOngoingPower(next GameState, clause Ability, source CardInstance, sourceLoc int) {
	value := clause.Value
	if clause.PerUnitAmount != 0 && clause.CountFilter != nil {
		count := countFilterMatches(next, *clause.CountFilter, source, sourceLoc)
		value = clause.PerUnitAmount * count
	}
	if clause.Effect == EffectBuffDestroyCardsGlobal {
		value += clause.Value * len(next.CardsDestroyedThisGame)
	}
	targets := ResolveTargets(clause.TargetSelector, next, source, sourceLoc, nil)
	for _, targetID := range targets {
		addOngoingMod(next, targetID, value)
	}
}

func countFilterMatches(s GameState, sel Selector, source CardInstance, sourceLoc int) int {
	if sel == SelectorLocation {
		return LocationCapacity - s.Locations[sourceLoc].Count(source.Owner)
	}
	return len(ResolveTargets(sel, s, source, sourceLoc, nil))
}

func addOngoingMod(s GameState, instanceID int32, delta int) {
	for li := range s.Locations {
		for p := 0; p < NumPlayers; p++ {
			cards := s.Locations[li].Cards[p]
			for i := range cards {
				if cards[i].InstanceID == instanceID {
					cards[i].OngoingMod += delta
					return
				}
			}
		}
	}
}
