package engine

import "sort"

// targetCandidate pairs a card with its slot index within whatever
// per-player sequence it was read from, so the tertiary tie-break
// ("lower slot index") survives filtering.
type targetCandidate struct {
	card CardInstance
	slot int
}

// orderCandidates applies the one deterministic ordering rule used by
// every selector in this file (§4.5): primary power when byPower is
// set, secondary lower instance identifier, tertiary lower slot index.
func orderCandidates(cands []targetCandidate, byPower bool, descending bool) []targetCandidate {
	sort.SliceStable(cands, func(i, j int) bool {
		if byPower {
			pi, pj := cands[i].card.EffectivePower(), cands[j].card.EffectivePower()
			if pi != pj {
				if descending {
					return pi > pj
				}
				return pi < pj
			}
		}
		if cands[i].card.InstanceID != cands[j].card.InstanceID {
			return cands[i].card.InstanceID < cands[j].card.InstanceID
		}
		return cands[i].slot < cands[j].slot
	})
	return cands
}

func candidatesFrom(cards []CardInstance) []targetCandidate {
	out := make([]targetCandidate, len(cards))
	for i, c := range cards {
		out[i] = targetCandidate{card: c, slot: i}
	}
	return out
}

func idsOf(cands []targetCandidate) []int32 {
	out := make([]int32, len(cands))
	for i, c := range cands {
		out[i] = c.card.InstanceID
	}
	return out
}

// ResolveTargets is the pure function that returns an ordered list of
// target instance identifiers for the given selector, scoped to source
// at sourceLoc (§4.5). rng is consulted only by RANDOM_VALID_TARGET and
// is otherwise unused; pass nil when a selector is known not to need
// it.
func ResolveTargets(sel Selector, s GameState, source CardInstance, sourceLoc int, rng *RNG) []int32 {
	owner := source.Owner
	enemy := owner.Other()
	loc := s.Locations[sourceLoc]

	switch sel {
	case SelectorSelf:
		return []int32{source.InstanceID}

	case SelectorOneOtherAllyHere:
		cands := exceptInstance(candidatesFrom(loc.Cards[owner]), source.InstanceID)
		cands = orderCandidates(cands, false, false)
		if len(cands) == 0 {
			return nil
		}
		return []int32{cands[0].card.InstanceID}

	case SelectorAllAlliesHere:
		return idsOf(orderCandidates(candidatesFrom(loc.Cards[owner]), false, false))

	case SelectorAllAlliesHereExceptSelf:
		cands := exceptInstance(candidatesFrom(loc.Cards[owner]), source.InstanceID)
		return idsOf(orderCandidates(cands, false, false))

	case SelectorAlliesHereExceptSelfArmy:
		// Equivalent to ALL_ALLIES_HERE_EXCEPT_SELF.
		cands := exceptInstance(candidatesFrom(loc.Cards[owner]), source.InstanceID)
		return idsOf(orderCandidates(cands, false, false))

	case SelectorOneEnemyHere:
		cands := orderCandidates(candidatesFrom(loc.Cards[enemy]), false, false)
		if len(cands) == 0 {
			return nil
		}
		return []int32{cands[0].card.InstanceID}

	case SelectorAllEnemiesHere:
		return idsOf(orderCandidates(candidatesFrom(loc.Cards[enemy]), false, false))

	case SelectorHighestPowerEnemyHere:
		cands := orderCandidates(candidatesFrom(loc.Cards[enemy]), true, true)
		if len(cands) == 0 {
			return nil
		}
		return []int32{cands[0].card.InstanceID}

	case SelectorLowestPowerEnemyHere:
		cands := orderCandidates(candidatesFrom(loc.Cards[enemy]), true, false)
		if len(cands) == 0 {
			return nil
		}
		return []int32{cands[0].card.InstanceID}

	case SelectorOneAllyOtherLocation:
		for _, li := range otherLocationsInOrder(sourceLoc) {
			cands := exceptInstance(candidatesFrom(s.Locations[li].Cards[owner]), source.InstanceID)
			cands = orderCandidates(cands, false, false)
			if len(cands) > 0 {
				return []int32{cands[0].card.InstanceID}
			}
		}
		return nil

	case SelectorAllAlliesOtherLocations:
		var out []int32
		for _, li := range otherLocationsInOrder(sourceLoc) {
			cands := exceptInstance(candidatesFrom(s.Locations[li].Cards[owner]), source.InstanceID)
			out = append(out, idsOf(orderCandidates(cands, false, false))...)
		}
		return out

	case SelectorOneEnemyAtDestination:
		// Resolved against the CURRENT location of source, i.e. the
		// destination of a move that has already happened by the time
		// this selector runs (callers invoke it post-move).
		cands := orderCandidates(candidatesFrom(loc.Cards[enemy]), false, false)
		if len(cands) == 0 {
			return nil
		}
		return []int32{cands[0].card.InstanceID}

	case SelectorLocation:
		return []int32{int32(sourceLoc)}

	case SelectorRandomValidTarget:
		all := candidatesFrom(GetAllCards(s))
		all = exceptInstance(all, source.InstanceID)
		if len(all) == 0 || rng == nil {
			return nil
		}
		idx := rng.NextInt(0, len(all)-1)
		return []int32{all[idx].card.InstanceID}

	case SelectorFriendlyWithDestroyTag:
		var cands []targetCandidate
		for _, loc := range s.Locations {
			for slot, c := range loc.Cards[owner] {
				if c.InstanceID != source.InstanceID && c.Def.HasTag("Destroy") {
					cands = append(cands, targetCandidate{card: c, slot: slot})
				}
			}
		}
		return idsOf(orderCandidates(cands, false, false))

	case SelectorEnemyWithBuffTagHere:
		var cands []targetCandidate
		for slot, c := range loc.Cards[enemy] {
			if c.Def.HasTag("Buff") {
				cands = append(cands, targetCandidate{card: c, slot: slot})
			}
		}
		return idsOf(orderCandidates(cands, false, false))

	case SelectorEnemyWithOngoingHere:
		var cands []targetCandidate
		for slot, c := range loc.Cards[enemy] {
			if c.Def != nil && c.Def.Category == Ongoing {
				cands = append(cands, targetCandidate{card: c, slot: slot})
			}
		}
		return idsOf(orderCandidates(cands, false, false))

	case SelectorMovedCard:
		// Resolved by the effect applier at execution time, once it
		// knows which card a prior MOVE step actually relocated; the
		// selector itself has nothing to resolve ahead of time.
		return nil

	default:
		return nil
	}
}

func exceptInstance(cands []targetCandidate, instanceID int32) []targetCandidate {
	out := cands[:0:0]
	for _, c := range cands {
		if c.card.InstanceID != instanceID {
			out = append(out, c)
		}
	}
	return out
}

// otherLocationsInOrder returns every lane index except exclude, in
// ascending order.
func otherLocationsInOrder(exclude int) []int {
	var out []int
	for i := 0; i < NumLocations; i++ {
		if i != exclude {
			out = append(out, i)
		}
	}
	return out
}

// FindMoveDestination scans lanes in index order and returns the first
// (or random/leftmost/rightmost, per strategy) lane other than exclude
// where owner has room, or false when none qualify (§4.5).
func FindMoveDestination(s GameState, owner PlayerID, exclude int, strategy DestinationStrategy, rng *RNG) (int, bool) {
	var candidates []int
	for _, li := range otherLocationsInOrder(exclude) {
		if s.Locations[li].Count(owner) < LocationCapacity {
			candidates = append(candidates, li)
		}
	}
	if len(candidates) == 0 {
		return 0, false
	}
	switch strategy {
	case DestinationRandom:
		if rng == nil {
			return candidates[0], true
		}
		return candidates[rng.NextInt(0, len(candidates)-1)], true
	case DestinationLeftmost:
		return candidates[0], true
	case DestinationRightmost:
		return candidates[len(candidates)-1], true
	default: // DestinationFirstAvailable
		return candidates[0], true
	}
}

// FindAllyToMoveHere scans lanes other than targetLoc in index order
// and returns the first ally found (lowest-instance-id first within a
// lane) together with its origin lane, provided targetLoc currently has
// room for it (§4.5).
func FindAllyToMoveHere(s GameState, owner PlayerID, targetLoc int, rng *RNG) (int32, int, bool) {
	if s.Locations[targetLoc].Count(owner) >= LocationCapacity {
		return 0, 0, false
	}
	for _, li := range otherLocationsInOrder(targetLoc) {
		cands := orderCandidates(candidatesFrom(s.Locations[li].Cards[owner]), false, false)
		if len(cands) > 0 {
			return cands[0].card.InstanceID, li, true
		}
	}
	return 0, 0, false
}
