package engine

import "testing"

func TestEvaluateConditionOnlyCardHere(t *testing.T) {
	hoplite := defOf("hoplite", 2, 1)
	s := NewGameState(nil, nil)
	s = withCard(s, 0, Player0, 1, hoplite)
	source, _ := FindCardByInstance(s, 1)

	if !EvaluateCondition(ConditionOnlyCardHere, s, source, 0) {
		t.Error("expected ONLY_CARD_HERE to hold with a single ally")
	}

	s = withCard(s, 0, Player0, 2, hoplite)
	source, _ = FindCardByInstance(s, 1)
	if EvaluateCondition(ConditionOnlyCardHere, s, source, 0) {
		t.Error("expected ONLY_CARD_HERE to fail with two allies")
	}
}

func TestEvaluateConditionExactlyOneOtherAllyAndExactlyTwoAlliesAgree(t *testing.T) {
	hoplite := defOf("hoplite", 2, 1)
	s := NewGameState(nil, nil)
	s = withCard(s, 0, Player0, 1, hoplite)
	s = withCard(s, 0, Player0, 2, hoplite)
	source, _ := FindCardByInstance(s, 1)

	if !EvaluateCondition(ConditionExactlyOneOtherAllyHere, s, source, 0) {
		t.Error("expected EXACTLY_ONE_OTHER_ALLY_HERE with two allies total")
	}
	if !EvaluateCondition(ConditionExactlyTwoAlliesHere, s, source, 0) {
		t.Error("expected EXACTLY_TWO_ALLIES_HERE to agree with the same predicate")
	}
}

func TestEvaluateConditionLosingLocation(t *testing.T) {
	hoplite := defOf("hoplite", 2, 1)
	strong := defOf("strong", 5, 3)
	s := NewGameState(nil, nil)
	s = withCard(s, 0, Player0, 1, hoplite)
	s = withCard(s, 0, Player1, 2, strong)
	source, _ := FindCardByInstance(s, 1)

	if !EvaluateCondition(ConditionLosingLocation, s, source, 0) {
		t.Error("expected LOSING_LOCATION to hold when enemy power exceeds ally power")
	}
}

func TestSnapshotMatchesDirectQueries(t *testing.T) {
	hoplite := defOf("hoplite", 2, 1)
	s := NewGameState(nil, nil)
	s = withCard(s, 0, Player0, 1, hoplite)
	s = withCard(s, 0, Player1, 2, hoplite)
	source, _ := FindCardByInstance(s, 1)

	snap := Snapshot(s, source, 0)
	if snap.AllyCountHere != 1 || snap.EnemyCountHere != 1 {
		t.Errorf("snapshot counts = %+v, want 1/1", snap)
	}
	if snap.AllyPowerHere != 2 || snap.EnemyPowerHere != 2 {
		t.Errorf("snapshot powers = %+v, want 2/2", snap)
	}
}
