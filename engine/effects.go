package engine

// Apply executes one scheduled step against state, returning the next
// state, the events it produced, and whether it succeeded (§4.6). Every
// arm below consults only state and step; none reach for ambient
// context, so Apply is itself a pure function of its three inputs plus
// rng's current position.
func Apply(s GameState, step Step, rng *RNG) (GameState, []Event, bool) {
	switch step.Effect {
	case EffectSelfBuff, EffectBuffAlliesHere, EffectDebuffEnemiesHere, EffectPower, EffectBuffAlliesHerePerEmptySlot, EffectBuffDestroyCardsGlobal:
		return applyPowerDelta(s, step)

	case EffectMoveSelfToOtherLocation:
		return applyMove(s, step, rng, step.SourceCard, step.SourceLocation)

	case EffectMoveOneOtherAllyToOtherLocation, EffectMoveOneEnemyToOtherLocation:
		if len(step.Targets) == 0 {
			return s, nil, false
		}
		originLoc, ok := FindCardLocation(s, step.Targets[0])
		if !ok {
			return s, nil, false
		}
		return applyMove(s, step, rng, step.Targets[0], originLoc)

	case EffectDestroySelf:
		return applyDestroy(s, step.SourceCard, step)

	case EffectDestroyOneOtherAllyHere, EffectDestroyOneEnemyHere:
		if len(step.Targets) == 0 {
			return s, nil, false
		}
		return applyDestroy(s, step.Targets[0], step)

	case EffectGainDestroyedCardPower:
		gain := step.Value * len(s.CardsDestroyedThisGame)
		next, ev, ok := addPower(s, step.SourceCard, gain, step.SourceCard)
		return next, ev, ok

	case EffectStealPower:
		if len(step.Targets) == 0 {
			return s, nil, false
		}
		next, ev1, ok := addPower(s, step.Targets[0], -step.Value, step.SourceCard)
		if !ok {
			return s, nil, false
		}
		next, ev2, ok := addPower(next, step.SourceCard, step.Value, step.SourceCard)
		if !ok {
			return s, nil, false
		}
		return next, append(ev1, ev2...), true

	case EffectSilenceEnemyOngoingHere:
		return applySilence(s, step)

	case EffectDestroyAndBuff:
		return applyDestroyAndBuff(s, step, rng)

	case EffectDestroyAndSelfBuff:
		return applyDestroyAndSelfBuff(s, step)

	case EffectMoveAndBuff:
		return applyMoveAndBuff(s, step, rng)

	case EffectMoveSelfAndDebuffDestination:
		return applyMoveSelfAndDebuffDestination(s, step, rng)

	case EffectAddEnergyNextTurn:
		owner := ownerOf(s, step.SourceCard)
		next := AddBonusEnergyNextTurn(s, owner, step.Value)
		return next, []Event{{Type: EventBonusEnergy, Player: owner, NewValue: next.BonusEnergyNextTurn[owner], Source: step.SourceCard}}, true

	case EffectSummonSpirit:
		return applySummon(s, step)

	default:
		return s, nil, false
	}
}

func ownerOf(s GameState, instanceID int32) PlayerID {
	if c, ok := FindCardByInstance(s, instanceID); ok {
		return c.Owner
	}
	return Player0
}

// applyPowerDelta handles every "add value to permanent modifier" arm:
// SELF_BUFF, BUFF_*, DEBUFF_*, POWER, and the per-empty-slot and global
// variants, which only differ in how their target list and value were
// computed before reaching here (§4.6).
func applyPowerDelta(s GameState, step Step) (GameState, []Event, bool) {
	value := step.Value
	if step.Effect == EffectBuffAlliesHerePerEmptySlot {
		owner := ownerOf(s, step.SourceCard)
		loc := s.Locations[step.SourceLocation]
		emptySlots := LocationCapacity - loc.Count(owner)
		value = step.Value * emptySlots
	}

	next := s
	var events []Event
	for _, targetID := range step.Targets {
		updated, ev, ok := addPower(next, targetID, value, step.SourceCard)
		if !ok {
			continue
		}
		next = updated
		events = append(events, ev...)
	}
	return next, events, true
}

// addPower adds delta to target's permanent modifier and emits a single
// PowerChanged event, attributed to source.
func addPower(s GameState, target int32, delta int, source int32) (GameState, []Event, bool) {
	card, ok := FindCardByInstance(s, target)
	if !ok {
		return s, nil, false
	}
	old := card.EffectivePower()
	next, ok := UpdateCard(s, target, func(c CardInstance) CardInstance {
		c.PermanentMod += delta
		return c
	})
	if !ok {
		return s, nil, false
	}
	updated, _ := FindCardByInstance(next, target)
	return next, []Event{{
		Type:     EventPowerChanged,
		Instance: target,
		OldValue: old,
		NewValue: updated.EffectivePower(),
		Source:   source,
	}}, true
}

// applyMove relocates the card with instanceID (currently at fromLoc)
// to the first lane with room, per step's destination strategy
// (§4.6: MOVE_SELF_TO_OTHER_LOCATION / MOVE_ONE_OTHER_ALLY_.../
// MOVE_ONE_ENEMY_TO_OTHER_LOCATION).
func applyMove(s GameState, step Step, rng *RNG, instanceID int32, fromLoc int) (GameState, []Event, bool) {
	card, ok := FindCardByInstance(s, instanceID)
	if !ok {
		return s, nil, false
	}
	strategy := DestinationFirstAvailable
	if step.Parameters != nil {
		strategy = step.Parameters.DestinationStrategy
	}
	destLoc, ok := FindMoveDestination(s, card.Owner, fromLoc, strategy, rng)
	if !ok {
		return s, []Event{{Type: EventMoveFailed, Instance: instanceID, MoveFailure: MoveFailNoValidDestination, Source: step.SourceCard}}, true
	}
	return moveCard(s, instanceID, card.Owner, fromLoc, destLoc, step.SourceCard)
}

func moveCard(s GameState, instanceID int32, owner PlayerID, fromLoc, destLoc int, source int32) (GameState, []Event, bool) {
	next, card, ok := RemoveCardFromLocation(s, fromLoc, owner, instanceID)
	if !ok {
		return s, nil, false
	}
	next = AddCardToLocation(next, destLoc, owner, card)
	next = WithCardMoved(next, instanceID)
	return next, []Event{{
		Type:         EventCardMoved,
		Instance:     instanceID,
		FromLocation: fromLoc,
		ToLocation:   destLoc,
		Source:       source,
	}}, true
}

// applyDestroy removes instanceID from its lane and appends it to the
// game-level destroyed set (§4.6).
func applyDestroy(s GameState, instanceID int32, step Step) (GameState, []Event, bool) {
	loc, ok := FindCardLocation(s, instanceID)
	if !ok {
		return s, nil, false
	}
	card, ok := FindCardByInstance(s, instanceID)
	if !ok {
		return s, nil, false
	}
	next, _, ok := RemoveCardFromLocation(s, loc, card.Owner, instanceID)
	if !ok {
		return s, nil, false
	}
	next = WithCardDestroyed(next, instanceID)
	return next, []Event{{Type: EventCardDestroyed, Instance: instanceID, Location: loc, Source: step.SourceCard}}, true
}

func applySilence(s GameState, step Step) (GameState, []Event, bool) {
	next := s
	var events []Event
	for _, target := range step.Targets {
		next = WithSilencedCard(next, target)
		events = append(events, Event{Type: EventCardSilenced, Instance: target, Source: step.SourceCard})
	}
	return next, events, true
}

func applyDestroyAndBuff(s GameState, step Step, rng *RNG) (GameState, []Event, bool) {
	if len(step.Targets) == 0 || step.Parameters == nil || step.Parameters.SecondaryTarget == nil {
		return s, nil, false
	}
	next, events, ok := applyDestroy(s, step.Targets[0], step)
	if !ok {
		return s, nil, false
	}
	source, _ := FindCardByInstance(s, step.SourceCard)
	secondary := ResolveTargets(*step.Parameters.SecondaryTarget, next, source, step.SourceLocation, rng)
	if len(secondary) == 0 {
		return next, events, true
	}
	next, ev2, ok := addPower(next, secondary[0], step.Value, step.SourceCard)
	if ok {
		events = append(events, ev2...)
	}
	return next, events, true
}

func applyDestroyAndSelfBuff(s GameState, step Step) (GameState, []Event, bool) {
	if len(step.Targets) == 0 {
		return s, nil, false
	}
	destroyed, ok := FindCardByInstance(s, step.Targets[0])
	if !ok {
		return s, nil, false
	}
	preDestroyPower := destroyed.EffectivePower()
	next, events, ok := applyDestroy(s, step.Targets[0], step)
	if !ok {
		return s, nil, false
	}
	gain := step.Value
	if gain == 0 {
		gain = preDestroyPower
	}
	next, ev2, ok := addPower(next, step.SourceCard, gain, step.SourceCard)
	if ok {
		events = append(events, ev2...)
	}
	return next, events, true
}

func applyMoveAndBuff(s GameState, step Step, rng *RNG) (GameState, []Event, bool) {
	if len(step.Targets) == 0 || step.Parameters == nil || step.Parameters.SecondaryTarget == nil {
		return s, nil, false
	}
	moved := step.Targets[0]
	fromLoc, ok := FindCardLocation(s, moved)
	if !ok {
		return s, nil, false
	}
	next, events, ok := applyMove(s, step, rng, moved, fromLoc)
	if !ok {
		return s, nil, false
	}
	buffTarget := step.SourceCard
	if *step.Parameters.SecondaryTarget == SelectorMovedCard {
		buffTarget = moved
	}
	amount := step.Parameters.SecondaryValue
	next, ev2, ok := addPower(next, buffTarget, amount, step.SourceCard)
	if ok {
		events = append(events, ev2...)
	}
	return next, events, true
}

func applyMoveSelfAndDebuffDestination(s GameState, step Step, rng *RNG) (GameState, []Event, bool) {
	source, ok := FindCardByInstance(s, step.SourceCard)
	if !ok {
		return s, nil, false
	}
	strategy := DestinationFirstAvailable
	if step.Parameters != nil {
		strategy = step.Parameters.DestinationStrategy
	}
	destLoc, ok := FindMoveDestination(s, source.Owner, step.SourceLocation, strategy, rng)
	if !ok {
		return s, []Event{{Type: EventMoveFailed, Instance: step.SourceCard, MoveFailure: MoveFailNoValidDestination, Source: step.SourceCard}}, true
	}
	next, events, ok := moveCard(s, step.SourceCard, source.Owner, step.SourceLocation, destLoc, step.SourceCard)
	if !ok {
		return s, nil, false
	}
	if destLoc == step.SourceLocation {
		return next, events, true
	}
	enemy := source.Owner.Other()
	cands := orderCandidates(candidatesFrom(next.Locations[destLoc].Cards[enemy]), false, false)
	if len(cands) == 0 {
		return next, events, true
	}
	next, ev2, ok := addPower(next, cands[0].card.InstanceID, -step.Value, step.SourceCard)
	if ok {
		events = append(events, ev2...)
	}
	return next, events, true
}

func applySummon(s GameState, step Step) (GameState, []Event, bool) {
	if step.Parameters == nil || step.Parameters.SummonDef == nil {
		return s, nil, false
	}
	owner := ownerOf(s, step.SourceCard)
	loc := s.Locations[step.SourceLocation]
	if loc.Count(owner) >= LocationCapacity {
		return s, nil, true // full lane: no-op, no instance consumed (§8)
	}
	def := step.Parameters.SummonDef
	permanentMod := step.Value + len(s.CardsDestroyedThisGame)
	newID := s.NextInstanceID
	spirit := CardInstance{
		InstanceID:   newID,
		Def:          def,
		Owner:        owner,
		PermanentMod: permanentMod,
		Revealed:     true,
	}
	next := WithNextInstanceID(s, newID+1)
	next = AddCardToLocation(next, step.SourceLocation, owner, spirit)
	return next, []Event{{Type: EventCardSummoned, Instance: newID, Location: step.SourceLocation, Source: step.SourceCard, NewValue: spirit.EffectivePower()}}, true
}
