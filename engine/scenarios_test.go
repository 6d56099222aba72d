package engine_test

import (
	"testing"

	"github.com/fatesofolympus/olympus/catalog"
	"github.com/fatesofolympus/olympus/engine"
)

// fixtureState gives each player a hand made of the named builtin cards,
// owned by that player, and the given starting energy so Commit never
// rejects a play.
func fixtureState(cat *catalog.Catalog, p0Cards, p1Cards []string, energy0, energy1 int) engine.GameState {
	s := engine.NewGameState(nil, nil)

	nextID := int32(1)
	build := func(ids []string, owner engine.PlayerID) []engine.CardInstance {
		var hand []engine.CardInstance
		for _, id := range ids {
			def, ok := cat.Get(id)
			if !ok {
				panic("fixture references unknown card " + id)
			}
			hand = append(hand, engine.CardInstance{InstanceID: nextID, Def: def, Owner: owner})
			nextID++
		}
		return hand
	}

	ps0 := s.Players[engine.Player0]
	ps0.Hand = build(p0Cards, engine.Player0)
	ps0.Energy, ps0.MaxEnergy = energy0, energy0
	s = engine.WithPlayer(s, engine.Player0, ps0)

	ps1 := s.Players[engine.Player1]
	ps1.Hand = build(p1Cards, engine.Player1)
	ps1.Energy, ps1.MaxEnergy = energy1, energy1
	s = engine.WithPlayer(s, engine.Player1, ps1)

	s = engine.WithNextInstanceID(s, nextID)
	return s
}

func runTurn(t *testing.T, s engine.GameState, actions []engine.Action, cat *catalog.Catalog, seed uint32) engine.GameState {
	t.Helper()
	next, played, _ := engine.Commit(s, actions)
	next, _, _ = engine.Resolve(next, played, seed, cat.Lookup)
	next, _ = engine.Stabilize(next)
	return next
}

func TestScenarioHarpiesDebuffsSingleEnemyTarget(t *testing.T) {
	cat := catalog.Builtin()
	s := fixtureState(cat, []string{"harpies"}, []string{"hoplite"}, 5, 5)

	actions := []engine.Action{
		{Kind: engine.ActionPlayCard, Player: engine.Player0, Instance: 1, Location: 0},
		{Kind: engine.ActionPlayCard, Player: engine.Player1, Instance: 2, Location: 0},
	}
	final := runTurn(t, s, actions, cat, 1)

	enemy, found := engine.FindCardByInstance(final, 2)
	if !found {
		t.Fatal("expected the hoplite to still be on the board")
	}
	if enemy.EffectivePower() != 1 {
		t.Errorf("hoplite power = %d, want 1 (2 base - 1 harpies debuff)", enemy.EffectivePower())
	}
}

func TestScenarioGorgonGlareSilencesNaiadNymphBuff(t *testing.T) {
	cat := catalog.Builtin()
	s := fixtureState(cat, []string{"hoplite", "naiad_nymph"}, []string{"gorgon_glare"}, 6, 6)

	actions := []engine.Action{
		{Kind: engine.ActionPlayCard, Player: engine.Player0, Instance: 1, Location: 0},
		{Kind: engine.ActionPlayCard, Player: engine.Player1, Instance: 3, Location: 0},
	}
	s, played, _ := engine.Commit(s, actions)
	more := []engine.Action{
		{Kind: engine.ActionPlayCard, Player: engine.Player0, Instance: 2, Location: 0},
	}
	s2, played2, _ := engine.Commit(s, more)
	played = append(played, played2...)

	final, _, _ := engine.Resolve(s2, played, 2, cat.Lookup)

	hoplite, _ := engine.FindCardByInstance(final, 1)
	if hoplite.EffectivePower() != 2 {
		t.Errorf("hoplite power = %d, want 2 (silenced nymph buff never applies)", hoplite.EffectivePower())
	}
	if !final.SilencedCards[2] {
		t.Error("expected the nymph to be recorded as silenced")
	}
}

func TestScenarioHadesDestroysScoutAndGainsItsPower(t *testing.T) {
	cat := catalog.Builtin()
	s := fixtureState(cat, []string{"argive_scout", "hades"}, nil, 6, 0)

	s, played1, _ := engine.Commit(s, []engine.Action{
		{Kind: engine.ActionPlayCard, Player: engine.Player0, Instance: 1, Location: 0},
	})
	s, played2, _ := engine.Commit(s, []engine.Action{
		{Kind: engine.ActionPlayCard, Player: engine.Player0, Instance: 2, Location: 0},
	})
	played := append(played1, played2...)

	final, _, _ := engine.Resolve(s, played, 3, cat.Lookup)

	if _, found := engine.FindCardByInstance(final, 1); found {
		t.Error("expected the scout to have been destroyed")
	}
	hades, found := engine.FindCardByInstance(final, 2)
	if !found {
		t.Fatal("expected hades to remain on the board")
	}
	if hades.EffectivePower() != 7 {
		t.Errorf("hades power = %d, want 7 (base 4 + scout's 3)", hades.EffectivePower())
	}
}

func TestScenarioHypnosMovesThenDebuffsDestinationEnemy(t *testing.T) {
	cat := catalog.Builtin()
	s := fixtureState(cat, []string{"hypnos"}, []string{"hoplite"}, 5, 5)

	s, played0, _ := engine.Commit(s, []engine.Action{
		{Kind: engine.ActionPlayCard, Player: engine.Player0, Instance: 1, Location: 0},
	})
	s, played1, _ := engine.Commit(s, []engine.Action{
		{Kind: engine.ActionPlayCard, Player: engine.Player1, Instance: 2, Location: 1},
	})
	played := append(played0, played1...)

	final, _, _ := engine.Resolve(s, played, 4, cat.Lookup)

	hypnos, found := engine.FindCardByInstance(final, 1)
	if !found {
		t.Fatal("expected hypnos to remain on the board")
	}
	loc, _ := engine.FindCardLocation(final, hypnos.InstanceID)
	if loc != 1 {
		t.Errorf("hypnos relocated to lane %d, want lane 1 (first available)", loc)
	}
	enemy, _ := engine.FindCardByInstance(final, 2)
	if enemy.EffectivePower() != 1 {
		t.Errorf("enemy at destination power = %d, want 1 (2 base - 1 from hypnos)", enemy.EffectivePower())
	}
}

func TestScenarioPerfectWinAcrossAllLanes(t *testing.T) {
	cat := catalog.Builtin()
	s := fixtureState(cat, []string{"hades", "hades", "hades"}, []string{"hoplite", "hoplite", "hoplite"}, 12, 3)
	s.Turn = engine.MaxTurns

	actions := []engine.Action{
		{Kind: engine.ActionPlayCard, Player: engine.Player0, Instance: 1, Location: 0},
		{Kind: engine.ActionPlayCard, Player: engine.Player0, Instance: 2, Location: 1},
		{Kind: engine.ActionPlayCard, Player: engine.Player0, Instance: 3, Location: 2},
		{Kind: engine.ActionPlayCard, Player: engine.Player1, Instance: 4, Location: 0},
		{Kind: engine.ActionPlayCard, Player: engine.Player1, Instance: 5, Location: 1},
		{Kind: engine.ActionPlayCard, Player: engine.Player1, Instance: 6, Location: 2},
	}
	final := runTurn(t, s, actions, cat, 5)

	if final.Result != engine.ResultPlayer0Wins {
		t.Errorf("result = %v, want Player0Wins (4 power beats 2 in every lane)", final.Result)
	}
	if final.Phase != engine.PhaseGameOver {
		t.Errorf("phase = %v, want GameOver at MaxTurns", final.Phase)
	}
}

func TestScenarioFullLaneRejectsFurtherPlays(t *testing.T) {
	cat := catalog.Builtin()
	s := fixtureState(cat, []string{"hoplite", "hoplite", "hoplite", "hoplite", "hoplite"}, nil, 20, 0)

	for i := int32(1); i <= 4; i++ {
		s, _, _ = engine.Commit(s, []engine.Action{{Kind: engine.ActionPlayCard, Player: engine.Player0, Instance: i, Location: 0}})
	}
	if s.Locations[0].Count(engine.Player0) != engine.LocationCapacity {
		t.Fatalf("expected the lane to be full before the rejected play, got %d", s.Locations[0].Count(engine.Player0))
	}

	before := len(s.Players[engine.Player0].Hand)
	_, played, events := engine.Commit(s, []engine.Action{{Kind: engine.ActionPlayCard, Player: engine.Player0, Instance: 5, Location: 0}})
	if len(played) != 0 {
		t.Errorf("expected the fifth play into a full lane to be rejected, got %+v", played)
	}
	if len(events) != 1 || events[0].Reason != engine.InvalidLocationAtCapacity {
		t.Errorf("events = %+v, want ActionInvalid(LocationAtCapacity)", events)
	}
	if before != 1 {
		t.Fatalf("fixture setup error: expected one card left in hand, found %d", before)
	}
}
