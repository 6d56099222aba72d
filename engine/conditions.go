package engine

// EvaluateCondition is the pure boolean predicate over a state snapshot
// described in §4.4: an exhaustive match over the closed Condition set,
// scoped to the clause's source card and source lane.
func EvaluateCondition(cond Condition, s GameState, source CardInstance, sourceLoc int) bool {
	loc := s.Locations[sourceLoc]
	allyCount := loc.Count(source.Owner)
	enemy := source.Owner.Other()
	enemyCount := loc.Count(enemy)

	switch cond {
	case ConditionNone:
		return true
	case ConditionOnlyCardHere:
		return allyCount == 1
	case ConditionExactlyOneOtherAllyHere:
		return allyCount == 2
	case ConditionExactlyTwoAlliesHere:
		// Pinned per spec's open question: both names reduce to the
		// same "ally count = 2" predicate.
		return allyCount == 2
	case ConditionLocationFull:
		return allyCount >= LocationCapacity
	case ConditionEmptySlotHere:
		return allyCount < LocationCapacity
	case ConditionEnemyMoreCardsHere:
		return enemyCount > allyCount
	case ConditionEnemy3PlusHere:
		return enemyCount >= 3
	case ConditionEnemyHighestPowerHere:
		return enemyCount > 0
	case ConditionLosingLocation:
		return loc.TotalPower(enemy) > loc.TotalPower(source.Owner)
	case ConditionMovedByYouThisTurn:
		return HasMovedCardThisTurn(s)
	case ConditionDestroyedThisGame:
		return HasDestroyedCardThisGame(s)
	case ConditionMovedThisGame:
		return HasMovedCardThisGame(s)
	case ConditionCardHasBuffTag:
		return source.Def.HasTag("Buff")
	case ConditionCardHasOngoing:
		return source.Def != nil && source.Def.Category == Ongoing
	default:
		return false
	}
}

// EvaluateTargetCondition refines CARD_HAS_* and
// ENEMY_HIGHEST_POWER_HERE to apply to a candidate target rather than
// the clause's source, for per-target filtering during selection
// (§4.4); every other condition delegates to EvaluateCondition scoped
// to the source.
func EvaluateTargetCondition(cond Condition, s GameState, target CardInstance, targetLoc int, source CardInstance, sourceLoc int) bool {
	switch cond {
	case ConditionCardHasBuffTag:
		return target.Def.HasTag("Buff")
	case ConditionCardHasOngoing:
		return target.Def != nil && target.Def.Category == Ongoing
	case ConditionEnemyHighestPowerHere:
		loc := s.Locations[targetLoc]
		for _, c := range loc.Cards[target.Owner] {
			if c.InstanceID != target.InstanceID && c.EffectivePower() > target.EffectivePower() {
				return false
			}
		}
		return true
	default:
		return EvaluateCondition(cond, s, source, sourceLoc)
	}
}

// ConditionSnapshot captures the seven scalars the condition evaluator
// actually reads, for deterministic replay verification (§8): two
// calls against equal snapshots must agree regardless of unrelated
// state drift.
type ConditionSnapshot struct {
	AllyCountHere  int
	EnemyCountHere int
	AllyPowerHere  int
	EnemyPowerHere int
	MovedThisTurn  bool
	DestroyedEver  bool
	MovedEver      bool
}

// Snapshot extracts the seven scalars relevant to conditions scoped to
// source at sourceLoc.
func Snapshot(s GameState, source CardInstance, sourceLoc int) ConditionSnapshot {
	loc := s.Locations[sourceLoc]
	enemy := source.Owner.Other()
	return ConditionSnapshot{
		AllyCountHere:  loc.Count(source.Owner),
		EnemyCountHere: loc.Count(enemy),
		AllyPowerHere:  loc.TotalPower(source.Owner),
		EnemyPowerHere: loc.TotalPower(enemy),
		MovedThisTurn:  HasMovedCardThisTurn(s),
		DestroyedEver:  HasDestroyedCardThisGame(s),
		MovedEver:      HasMovedCardThisGame(s),
	}
}
