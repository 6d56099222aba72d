package catalog

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/fatesofolympus/olympus/engine"
)

// ValidationError is one problem found while loading a catalog. It
// mirrors genome.ValidationError's Field+Message shape.
type ValidationError struct {
	CardID  string
	Message string
}

func (e ValidationError) Error() string {
	if e.CardID != "" {
		return fmt.Sprintf("%s: %s", e.CardID, e.Message)
	}
	return e.Message
}

type definitionEntry struct {
	def *engine.CardDefinition
}

var abilityTypeTable = map[string]engine.AbilityCategory{
	"VANILLA":   engine.Vanilla,
	"ON_REVEAL": engine.OnReveal,
	"ONGOING":   engine.Ongoing,
}

var triggerTable = map[string]engine.Trigger{
	"ON_PLAY":       engine.TriggerOnPlay,
	"ON_REVEAL":     engine.TriggerOnReveal,
	"ONGOING":       engine.TriggerOngoing,
	"START_OF_TURN": engine.TriggerStartOfTurn,
	"END_OF_TURN":   engine.TriggerEndOfTurn,
	"ON_DESTROYED":  engine.TriggerOnDestroyed,
	"ON_MOVED":      engine.TriggerOnMoved,
}

var conditionTable = map[string]engine.Condition{
	"NONE":                     engine.ConditionNone,
	"ONLY_CARD_HERE":           engine.ConditionOnlyCardHere,
	"EXACTLY_ONE_OTHER_ALLY_HERE": engine.ConditionExactlyOneOtherAllyHere,
	"EXACTLY_TWO_ALLIES_HERE":  engine.ConditionExactlyTwoAlliesHere,
	"LOCATION_FULL":            engine.ConditionLocationFull,
	"EMPTY_SLOT_HERE":          engine.ConditionEmptySlotHere,
	"ENEMY_MORE_CARDS_HERE":    engine.ConditionEnemyMoreCardsHere,
	"ENEMY_3_PLUS_HERE":        engine.ConditionEnemy3PlusHere,
	"ENEMY_HIGHEST_POWER_HERE": engine.ConditionEnemyHighestPowerHere,
	"LOSING_LOCATION":          engine.ConditionLosingLocation,
	"MOVED_BY_YOU_THIS_TURN":   engine.ConditionMovedByYouThisTurn,
	"DESTROYED_THIS_GAME":      engine.ConditionDestroyedThisGame,
	"MOVED_THIS_GAME":          engine.ConditionMovedThisGame,
	"CARD_HAS_BUFF_TAG":        engine.ConditionCardHasBuffTag,
	"CARD_HAS_ONGOING":         engine.ConditionCardHasOngoing,
}

var selectorTable = map[string]engine.Selector{
	"SELF":                         engine.SelectorSelf,
	"ONE_OTHER_ALLY_HERE":          engine.SelectorOneOtherAllyHere,
	"ALL_ALLIES_HERE":              engine.SelectorAllAlliesHere,
	"ALL_ALLIES_HERE_EXCEPT_SELF":  engine.SelectorAllAlliesHereExceptSelf,
	"ALLIES_HERE_ARMY_EXCEPT_SELF": engine.SelectorAlliesHereExceptSelfArmy,
	"ONE_ENEMY_HERE":               engine.SelectorOneEnemyHere,
	"ALL_ENEMIES_HERE":             engine.SelectorAllEnemiesHere,
	"HIGHEST_POWER_ENEMY_HERE":     engine.SelectorHighestPowerEnemyHere,
	"LOWEST_POWER_ENEMY_HERE":      engine.SelectorLowestPowerEnemyHere,
	"ONE_ALLY_OTHER_LOCATION":      engine.SelectorOneAllyOtherLocation,
	"ALL_ALLIES_OTHER_LOCATIONS":   engine.SelectorAllAlliesOtherLocations,
	"ONE_ENEMY_AT_DESTINATION":     engine.SelectorOneEnemyAtDestination,
	"LOCATION":                     engine.SelectorLocation,
	"RANDOM_VALID_TARGET":          engine.SelectorRandomValidTarget,
	"FRIENDLY_WITH_DESTROY_TAG":    engine.SelectorFriendlyWithDestroyTag,
	"ENEMY_WITH_BUFF_TAG_HERE":     engine.SelectorEnemyWithBuffTagHere,
	"ENEMY_WITH_ONGOING_HERE":      engine.SelectorEnemyWithOngoingHere,
	"MOVED_CARD":                   engine.SelectorMovedCard,
}

var effectTable = map[string]engine.Effect{
	"SELF_BUFF":                          engine.EffectSelfBuff,
	"BUFF_ALLIES_HERE":                   engine.EffectBuffAlliesHere,
	"DEBUFF_ENEMIES_HERE":                engine.EffectDebuffEnemiesHere,
	"POWER":                              engine.EffectPower,
	"BUFF_ALLIES_HERE_PER_EMPTY_SLOT":    engine.EffectBuffAlliesHerePerEmptySlot,
	"MOVE_SELF_TO_OTHER_LOCATION":        engine.EffectMoveSelfToOtherLocation,
	"MOVE_ONE_OTHER_ALLY_TO_OTHER_LOCATION": engine.EffectMoveOneOtherAllyToOtherLocation,
	"MOVE_ONE_ENEMY_TO_OTHER_LOCATION":   engine.EffectMoveOneEnemyToOtherLocation,
	"DESTROY_SELF":                       engine.EffectDestroySelf,
	"DESTROY_ONE_OTHER_ALLY_HERE":        engine.EffectDestroyOneOtherAllyHere,
	"DESTROY_ONE_ENEMY_HERE":             engine.EffectDestroyOneEnemyHere,
	"GAIN_DESTROYED_CARD_POWER":          engine.EffectGainDestroyedCardPower,
	"STEAL_POWER":                        engine.EffectStealPower,
	"SILENCE_ENEMY_ONGOING_HERE":         engine.EffectSilenceEnemyOngoingHere,
	"BUFF_DESTROY_CARDS_GLOBAL":          engine.EffectBuffDestroyCardsGlobal,
	"DESTROY_AND_BUFF":                   engine.EffectDestroyAndBuff,
	"DESTROY_AND_SELF_BUFF":              engine.EffectDestroyAndSelfBuff,
	"MOVE_AND_BUFF":                      engine.EffectMoveAndBuff,
	"MOVE_SELF_AND_DEBUFF_DESTINATION":   engine.EffectMoveSelfAndDebuffDestination,
	"ADD_ENERGY_NEXT_TURN":               engine.EffectAddEnergyNextTurn,
	"SUMMON_SPIRIT":                      engine.EffectSummonSpirit,
}

var durationTable = map[string]engine.DurationScope{
	"INSTANT":                engine.DurationInstant,
	"UNTIL_END_OF_TURN":      engine.DurationUntilEndOfTurn,
	"UNTIL_START_OF_NEXT_TURN": engine.DurationUntilStartOfNextTurn,
	"WHILE_IN_PLAY":          engine.DurationWhileInPlay,
	"UNTIL_DESTROYED":        engine.DurationUntilDestroyed,
}

var destinationTable = map[string]engine.DestinationStrategy{
	"FIRST_AVAILABLE": engine.DestinationFirstAvailable,
	"RANDOM":          engine.DestinationRandom,
	"LEFTMOST":        engine.DestinationLeftmost,
	"RIGHTMOST":       engine.DestinationRightmost,
}

// Load parses raw JSON bytes (an array of Record) into a Catalog. It
// never fails on an unknown effect type, condition, selector, trigger,
// or duration — those map to a no-op or a default value and a logged warning,
// per §6 ("unknown effect types map to a no-op and a warning"). It
// does report hard errors (missing id, duplicate id, an ability's
// Validate() failing) in the returned error slice, following
// genome.GenomeValidator's accumulate-then-report style.
func Load(data []byte) (*Catalog, []error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, []error{fmt.Errorf("catalog: invalid JSON: %w", err)}
	}

	cat := &Catalog{byID: map[string]*definitionEntry{}}
	var errs []error

	for _, rec := range records {
		if rec.ID == "" {
			errs = append(errs, ValidationError{Message: fmt.Sprintf("record %q missing id", rec.Name)})
			continue
		}
		if _, dup := cat.byID[rec.ID]; dup {
			errs = append(errs, ValidationError{CardID: rec.ID, Message: "duplicate card id"})
			continue
		}

		def := &engine.CardDefinition{
			ID:        rec.ID,
			Name:      rec.Name,
			Cost:      rec.Cost,
			BasePower: rec.BasePower,
			Category:  lookupOr(abilityTypeTable, rec.AbilityType, engine.Vanilla, "ability_type", rec.ID),
			Ideology:  rec.Ideology,
			Tags:      map[string]bool{},
		}
		for _, t := range rec.Tags {
			def.Tags[t] = true
		}

		for _, er := range rec.Effects {
			effect, known := effectTable[er.Type]
			if !known {
				log.Printf("catalog: card %s: unknown effect type %q, treating as no-op", rec.ID, er.Type)
				continue
			}
			ability := engine.Ability{
				Trigger:        lookupOr(triggerTable, er.Trigger, engine.TriggerOnReveal, "trigger", rec.ID),
				Condition:      lookupOr(conditionTable, er.Condition, engine.ConditionNone, "condition", rec.ID),
				TargetSelector: lookupOr(selectorTable, er.TargetSelector, engine.SelectorSelf, "target_selector", rec.ID),
				Effect:         effect,
				Value:          er.Value,
				PerUnitAmount:  er.PerUnitAmount,

				SecondaryValue:      er.SecondaryValue,
				DestinationStrategy: lookupOr(destinationTable, er.DestinationStrategy, engine.DestinationFirstAvailable, "destination_strategy", rec.ID),
				BaseSummonPower:     er.BaseSummonPower,
				SummonCardID:        er.SummonCardID,

				DurationScope: lookupOr(durationTable, er.DurationScope, engine.DurationInstant, "duration_scope", rec.ID),
				VisualMetadata: engine.VisualMetadata{
					EffectType: er.VisualEffect,
					Intensity:  er.VisualIntensity,
				},
			}
			if sel, ok := selectorTable[er.CountFilter]; ok {
				ability.CountFilter = &sel
			}
			if sel, ok := selectorTable[er.SecondaryTarget]; ok {
				ability.SecondaryTarget = &sel
			}
			if verrs := ability.Validate(); len(verrs) > 0 {
				for _, ve := range verrs {
					errs = append(errs, ValidationError{CardID: rec.ID, Message: ve.Error()})
				}
				continue
			}
			def.Abilities = append(def.Abilities, ability)
		}

		cat.byID[rec.ID] = &definitionEntry{def: def}
		cat.order = append(cat.order, rec.ID)
	}

	return cat, errs
}

func lookupOr[T any](table map[string]T, key string, fallback T, field, cardID string) T {
	if key == "" {
		return fallback
	}
	if v, ok := table[key]; ok {
		return v
	}
	log.Printf("catalog: card %s: unknown %s %q, using default", cardID, field, key)
	return fallback
}

// Get returns the definition for id, or false if the catalog has none.
func (c *Catalog) Get(id string) (*engine.CardDefinition, bool) {
	entry, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	return entry.def, true
}

// Lookup adapts Get to the func(string) *engine.CardDefinition shape
// GenerateTimeline expects for resolving SUMMON_SPIRIT clauses.
func (c *Catalog) Lookup(id string) *engine.CardDefinition {
	def, _ := c.Get(id)
	return def
}

// All returns every definition in declaration order.
func (c *Catalog) All() []*engine.CardDefinition {
	out := make([]*engine.CardDefinition, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id].def)
	}
	return out
}
