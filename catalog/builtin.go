package catalog

import "github.com/fatesofolympus/olympus/engine"

// Builtin returns the small fixed catalog used by the scenario fixtures:
// a handful of named Olympian-themed cards covering the debuff, silence,
// destroy-and-self-buff and move-then-debuff effects those scenarios
// exercise, plus a summonable spirit template.
func Builtin() *Catalog {
	cat := &Catalog{byID: map[string]*definitionEntry{}}
	for _, def := range []*engine.CardDefinition{
		hoplite(),
		harpies(),
		naiadNymph(),
		gorgonGlare(),
		hades(),
		argiveScout(),
		hypnos(),
		spiritOfTheDeep(),
	} {
		cat.byID[def.ID] = &definitionEntry{def: def}
		cat.order = append(cat.order, def.ID)
	}
	return cat
}

// hoplite is a vanilla unit with no clauses: a plain body used as a
// target in every scenario fixture.
func hoplite() *engine.CardDefinition {
	return &engine.CardDefinition{
		ID: "hoplite", Name: "Hoplite", Cost: 1, BasePower: 2,
		Category: engine.Vanilla, Tags: map[string]bool{},
	}
}

// harpies debuffs one enemy here by 1 on reveal.
func harpies() *engine.CardDefinition {
	return &engine.CardDefinition{
		ID: "harpies", Name: "Harpies", Cost: 2, BasePower: 3,
		Category: engine.OnReveal, Tags: map[string]bool{},
		Abilities: []engine.Ability{{
			Trigger: engine.TriggerOnReveal, Condition: engine.ConditionNone,
			TargetSelector: engine.SelectorOneEnemyHere, Effect: engine.EffectDebuffEnemiesHere, Value: -1,
		}},
	}
}

// naiadNymph grants +1 ongoing to every other ally in its lane.
func naiadNymph() *engine.CardDefinition {
	return &engine.CardDefinition{
		ID: "naiad_nymph", Name: "Naiad Nymph", Cost: 2, BasePower: 2,
		Category: engine.Ongoing, Tags: map[string]bool{"Buff": true},
		Abilities: []engine.Ability{{
			Trigger: engine.TriggerOngoing, Condition: engine.ConditionNone,
			TargetSelector: engine.SelectorAllAlliesHereExceptSelf, Effect: engine.EffectBuffAlliesHere, Value: 1,
			DurationScope: engine.DurationWhileInPlay,
		}},
	}
}

// gorgonGlare silences every enemy ONGOING card in its lane while it
// is in play.
func gorgonGlare() *engine.CardDefinition {
	return &engine.CardDefinition{
		ID: "gorgon_glare", Name: "Gorgon's Glare", Cost: 3, BasePower: 3,
		Category: engine.Ongoing, Tags: map[string]bool{},
		Abilities: []engine.Ability{{
			Trigger: engine.TriggerOngoing, Condition: engine.ConditionNone,
			TargetSelector: engine.SelectorEnemyWithOngoingHere, Effect: engine.EffectSilenceEnemyOngoingHere,
			DurationScope: engine.DurationWhileInPlay,
		}},
	}
}

// hades destroys one other ally here on reveal and gains its power.
func hades() *engine.CardDefinition {
	return &engine.CardDefinition{
		ID: "hades", Name: "Hades", Cost: 4, BasePower: 4,
		Category: engine.OnReveal, Tags: map[string]bool{},
		Abilities: []engine.Ability{{
			Trigger: engine.TriggerOnReveal, Condition: engine.ConditionNone,
			TargetSelector: engine.SelectorOneOtherAllyHere, Effect: engine.EffectDestroyAndSelfBuff,
		}},
	}
}

// argiveScout is a vanilla unit used purely as fodder for Hades.
func argiveScout() *engine.CardDefinition {
	return &engine.CardDefinition{
		ID: "argive_scout", Name: "Argive Scout", Cost: 2, BasePower: 3,
		Category: engine.Vanilla, Tags: map[string]bool{},
	}
}

// hypnos moves itself to another lane on reveal, then debuffs one
// enemy at its destination by 1.
func hypnos() *engine.CardDefinition {
	return &engine.CardDefinition{
		ID: "hypnos", Name: "Hypnos", Cost: 3, BasePower: 3,
		Category: engine.OnReveal, Tags: map[string]bool{},
		Abilities: []engine.Ability{{
			Trigger: engine.TriggerOnReveal, Condition: engine.ConditionNone,
			TargetSelector: engine.SelectorSelf, Effect: engine.EffectMoveSelfAndDebuffDestination, Value: 1,
			DestinationStrategy: engine.DestinationFirstAvailable,
		}},
	}
}

// spiritOfTheDeep is the template SUMMON_SPIRIT clauses instantiate.
func spiritOfTheDeep() *engine.CardDefinition {
	return &engine.CardDefinition{
		ID: "spirit_of_the_deep", Name: "Spirit of the Deep", Cost: 0, BasePower: 1,
		Category: engine.Vanilla, Tags: map[string]bool{},
	}
}
