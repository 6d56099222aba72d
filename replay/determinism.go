package replay

import "github.com/fatesofolympus/olympus/engine"

// DeterminismReport is the outcome of replaying the same turn twice
// from the same seed and comparing what came out (§8's "two calls with
// equal inputs produce equal outputs" law).
type DeterminismReport struct {
	RNGDivergedAtCall int // -1 if the two RNG sequences never diverged
	TimelinesMatch    bool
	EventCountA       int
	EventCountB       int
}

// VerifyTurnDeterminism runs the generator+executor pipeline twice from
// identical inputs and reports whether every observable artifact
// (RNG sequence, timeline, event count) agreed.
func VerifyTurnDeterminism(s engine.GameState, played []engine.PlayedCard, seed uint32, lookupDef func(string) *engine.CardDefinition) DeterminismReport {
	_, tlA, evA := engine.Resolve(s, played, seed, lookupDef)
	_, tlB, evB := engine.Resolve(s, played, seed, lookupDef)

	rngA, rngB := engine.NewRNG(seed), engine.NewRNG(seed)
	diverged := engine.VerifyDeterminism(rngA, rngB, 256)

	return DeterminismReport{
		RNGDivergedAtCall: diverged,
		TimelinesMatch:    engine.SameTimeline(tlA, tlB),
		EventCountA:       len(evA),
		EventCountB:       len(evB),
	}
}

// OK reports whether the report shows no divergence at all.
func (r DeterminismReport) OK() bool {
	return r.RNGDivergedAtCall == -1 && r.TimelinesMatch && r.EventCountA == r.EventCountB
}
