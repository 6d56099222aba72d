package engine

import "testing"

func TestActivePlayerForTurnAlternates(t *testing.T) {
	if ActivePlayerForTurn(1) != Player0 {
		t.Error("turn 1 should favor player 0")
	}
	if ActivePlayerForTurn(2) != Player1 {
		t.Error("turn 2 should favor player 1")
	}
}

func TestRevealOrderSortsByLaneThenPlayOrderThenActivePlayerThenInstance(t *testing.T) {
	played := []PlayedCard{
		{Instance: 5, Owner: Player1, Location: 1, PlayOrder: 0},
		{Instance: 1, Owner: Player0, Location: 0, PlayOrder: 1},
		{Instance: 2, Owner: Player1, Location: 0, PlayOrder: 0},
		{Instance: 3, Owner: Player0, Location: 0, PlayOrder: 0},
	}
	out := revealOrder(played, 1) // turn 1: player 0 is active

	want := []int32{3, 2, 1, 5}
	for i, w := range want {
		if out[i].Instance != w {
			t.Fatalf("order = %v, want instances in order %v", instancesOf(out), want)
		}
	}
}

func instancesOf(played []PlayedCard) []int32 {
	out := make([]int32, len(played))
	for i, p := range played {
		out[i] = p.Instance
	}
	return out
}

func TestOrderedClausesForRevealMovesDestroySelfToEnd(t *testing.T) {
	buff := Ability{Trigger: TriggerOnReveal, Effect: EffectBuffAlliesHere}
	destroySelf := Ability{Trigger: TriggerOnReveal, Effect: EffectDestroySelf}
	debuff := Ability{Trigger: TriggerOnReveal, Effect: EffectDebuffEnemiesHere}
	def := &CardDefinition{ID: "x", Abilities: []Ability{destroySelf, buff, debuff}}

	out := orderedClausesForReveal(def)
	if len(out) != 3 {
		t.Fatalf("expected 3 clauses, got %d", len(out))
	}
	if out[0].Effect != EffectBuffAlliesHere || out[1].Effect != EffectDebuffEnemiesHere {
		t.Errorf("non-destroy clauses should keep their relative order first, got %+v", out)
	}
	if out[2].Effect != EffectDestroySelf {
		t.Errorf("DESTROY_SELF should be last, got %+v", out)
	}
}

func TestGenerateTimelineEmitsRevealThenEventThenRecalcThenCleanup(t *testing.T) {
	harpies := defOf("harpies", 3, 2)
	harpies.Category = OnReveal
	harpies.Abilities = []Ability{
		{Trigger: TriggerOnReveal, Effect: EffectDebuffEnemiesHere, Value: -1, TargetSelector: SelectorOneEnemyHere},
	}
	enemy := defOf("hoplite", 2, 1)

	s := NewGameState(nil, nil)
	s = withCard(s, 0, Player1, 1, enemy)
	s = AddCardToLocation(s, 0, Player0, CardInstance{InstanceID: 2, Def: harpies, Owner: Player0})

	played := []PlayedCard{{Instance: 2, Owner: Player0, Location: 0, PlayOrder: 0}}
	tl := GenerateTimeline(s, played, 42, NewRNG(42), nil)

	if !ValidateTimeline(tl) {
		t.Fatal("generated timeline failed its own integrity check")
	}
	if len(tl.Steps) != 4 {
		t.Fatalf("expected reveal+event+recalc+cleanup = 4 steps, got %d: %+v", len(tl.Steps), tl.Steps)
	}
	if tl.Steps[0].Phase != PhaseStepReveal {
		t.Errorf("step 0 phase = %v, want Reveal", tl.Steps[0].Phase)
	}
	if tl.Steps[1].Phase != PhaseStepEvent || tl.Steps[1].Effect != EffectDebuffEnemiesHere {
		t.Errorf("step 1 = %+v, want a debuff Event step", tl.Steps[1])
	}
	if len(tl.Steps[1].Targets) != 1 || tl.Steps[1].Targets[0] != 1 {
		t.Errorf("event targets = %v, want [1]", tl.Steps[1].Targets)
	}
	if tl.Steps[2].Phase != PhaseStepOngoingRecalc || tl.Steps[3].Phase != PhaseStepCleanup {
		t.Errorf("trailing steps = %+v, want OngoingRecalc then Cleanup", tl.Steps[2:])
	}
}

func TestGenerateTimelineSkipsClauseWhenConditionFails(t *testing.T) {
	lonely := defOf("naiad_nymph", 2, 2)
	lonely.Category = OnReveal
	lonely.Abilities = []Ability{
		{Trigger: TriggerOnReveal, Condition: ConditionOnlyCardHere, Effect: EffectBuffAlliesHere, Value: 1, TargetSelector: SelectorAllAlliesHereExceptSelf},
	}
	ally := defOf("hoplite", 2, 1)

	s := NewGameState(nil, nil)
	s = withCard(s, 0, Player0, 9, ally)
	s = AddCardToLocation(s, 0, Player0, CardInstance{InstanceID: 1, Def: lonely, Owner: Player0})

	played := []PlayedCard{{Instance: 1, Owner: Player0, Location: 0, PlayOrder: 0}}
	tl := GenerateTimeline(s, played, 1, NewRNG(1), nil)

	for _, st := range tl.Steps {
		if st.Phase == PhaseStepEvent {
			t.Fatalf("expected no Event step when ONLY_CARD_HERE fails, got %+v", st)
		}
	}
}

func TestSameTimelineDetectsDivergence(t *testing.T) {
	a := &Timeline{Turn: 1, Seed: 1, Steps: []Step{{StepIndex: 0, Phase: PhaseStepReveal}}}
	b := &Timeline{Turn: 1, Seed: 1, Steps: []Step{{StepIndex: 0, Phase: PhaseStepReveal, Value: 1}}}
	if SameTimeline(a, b) {
		t.Error("expected timelines differing by step value to be reported as different")
	}
	c := &Timeline{Turn: 1, Seed: 1, Steps: []Step{{StepIndex: 0, Phase: PhaseStepReveal}}}
	if !SameTimeline(a, c) {
		t.Error("expected identical timelines to compare equal")
	}
}
