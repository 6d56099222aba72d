package catalog

import (
	"strings"
	"testing"

	"github.com/fatesofolympus/olympus/engine"
)

func TestLoadParsesKnownFields(t *testing.T) {
	data := `[{
		"id": "harpies",
		"name": "Harpies",
		"cost": 2,
		"base_power": 3,
		"ability_type": "ON_REVEAL",
		"tags": ["Flying"],
		"effects": [{
			"type": "DEBUFF_ENEMIES_HERE",
			"trigger": "ON_REVEAL",
			"target_selector": "ONE_ENEMY_HERE",
			"value": -1
		}]
	}]`

	cat, errs := Load([]byte(data))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	def, ok := cat.Get("harpies")
	if !ok {
		t.Fatalf("expected harpies to load")
	}
	if def.Category != engine.OnReveal {
		t.Errorf("category = %v, want OnReveal", def.Category)
	}
	if !def.HasTag("Flying") {
		t.Errorf("expected Flying tag")
	}
	if len(def.Abilities) != 1 || def.Abilities[0].Effect != engine.EffectDebuffEnemiesHere {
		t.Fatalf("unexpected abilities: %+v", def.Abilities)
	}
	if def.Abilities[0].Value != -1 {
		t.Errorf("value = %d, want -1", def.Abilities[0].Value)
	}
}

func TestLoadUnknownEffectTypeIsNoOp(t *testing.T) {
	data := `[{
		"id": "mystery",
		"name": "Mystery",
		"ability_type": "ON_REVEAL",
		"effects": [{"type": "SOMETHING_NEW"}]
	}]`

	cat, errs := Load([]byte(data))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	def, ok := cat.Get("mystery")
	if !ok {
		t.Fatalf("expected mystery to load despite unknown effect")
	}
	if len(def.Abilities) != 0 {
		t.Errorf("expected unknown effect to be dropped, got %d abilities", len(def.Abilities))
	}
}

func TestLoadRejectsMissingID(t *testing.T) {
	data := `[{"name": "Nameless"}]`
	_, errs := Load([]byte(data))
	if len(errs) != 1 || !strings.Contains(errs[0].Error(), "missing id") {
		t.Fatalf("expected one missing-id error, got %v", errs)
	}
}

func TestLoadRejectsDuplicateID(t *testing.T) {
	data := `[{"id": "dup", "name": "A"}, {"id": "dup", "name": "B"}]`
	_, errs := Load([]byte(data))
	if len(errs) != 1 || !strings.Contains(errs[0].Error(), "duplicate") {
		t.Fatalf("expected one duplicate-id error, got %v", errs)
	}
}

func TestLoadRejectsInvalidOngoingDuration(t *testing.T) {
	data := `[{
		"id": "bad_ongoing",
		"name": "Bad Ongoing",
		"ability_type": "ONGOING",
		"effects": [{"type": "BUFF_ALLIES_HERE", "trigger": "ONGOING", "target_selector": "ALL_ALLIES_HERE"}]
	}]`
	_, errs := Load([]byte(data))
	if len(errs) == 0 {
		t.Fatalf("expected a validation error for ONGOING trigger without WHILE_IN_PLAY duration")
	}
}

func TestBuiltinCatalogLoadsAllFixtureCards(t *testing.T) {
	cat := Builtin()
	for _, id := range []string{"hoplite", "harpies", "naiad_nymph", "gorgon_glare", "hades", "argive_scout", "hypnos", "spirit_of_the_deep"} {
		if _, ok := cat.Get(id); !ok {
			t.Errorf("expected builtin catalog to contain %q", id)
		}
	}
	if len(cat.All()) != 8 {
		t.Errorf("All() returned %d cards, want 8", len(cat.All()))
	}
}
