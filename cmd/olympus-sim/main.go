// Package main provides the olympus-sim CLI for running scripted
// matches of the lane engine from a loaded card catalog.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatesofolympus/olympus/catalog"
	"github.com/fatesofolympus/olympus/engine"
)

var (
	catalogPath string
	gameID      string
	showVersion bool
)

// Version information (set by build flags).
var Version = "dev"

func init() {
	flag.StringVar(&catalogPath, "catalog", "", "Path to a JSON card catalog (default: built-in fixture catalog)")
	flag.StringVar(&gameID, "game-id", "demo-game", "Game identifier used to derive each turn's RNG seed")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
}

func main() {
	flag.Parse()

	if showVersion {
		fmt.Printf("olympus-sim %s\n", Version)
		os.Exit(0)
	}

	cat, err := loadCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
		os.Exit(1)
	}

	printBanner(cat)

	s := buildInitialState(cat)
	for s.Turn <= engine.MaxTurns {
		s = playTurn(s, cat)
		if s.Phase == engine.PhaseGameOver {
			break
		}
		var turnEvents []engine.Event
		s, turnEvents = engine.StartNextTurn(s)
		printEvents(turnEvents)
	}

	printResult(s)
}

func loadCatalog() (*catalog.Catalog, error) {
	if catalogPath == "" {
		return catalog.Builtin(), nil
	}
	data, err := os.ReadFile(catalogPath)
	if err != nil {
		return nil, err
	}
	cat, errs := catalog.Load(data)
	for _, e := range errs {
		fmt.Fprintf(os.Stderr, "catalog warning: %v\n", e)
	}
	return cat, nil
}

// buildInitialState seeds each player's deck by cycling the catalog's
// cards and draws a starting hand.
func buildInitialState(cat *catalog.Catalog) engine.GameState {
	defs := cat.All()
	deck0 := make([]engine.CardInstance, 0, len(defs)*2)
	deck1 := make([]engine.CardInstance, 0, len(defs)*2)
	nextID := int32(1)
	for i := 0; i < 2; i++ {
		for _, def := range defs {
			deck0 = append(deck0, engine.CardInstance{InstanceID: nextID, Def: def, Owner: engine.Player0})
			nextID++
			deck1 = append(deck1, engine.CardInstance{InstanceID: nextID, Def: def, Owner: engine.Player1})
			nextID++
		}
	}
	s := engine.NewGameState(deck0, deck1)
	s = engine.WithNextInstanceID(s, nextID)
	s, _ = engine.StartNextTurn(engine.WithTurn(s, 0))
	return s
}

// playTurn runs one full Commit/Resolve/Stabilize cycle with a greedy
// scripted policy: each player plays the first affordable card in hand
// order into the first lane with room, or passes.
func playTurn(s engine.GameState, cat *catalog.Catalog) engine.GameState {
	actions := []engine.Action{scriptedAction(s, engine.Player0), scriptedAction(s, engine.Player1)}
	s, played, commitEvents := engine.Commit(s, actions)
	printEvents(commitEvents)

	seed := engine.SeedFromGameID(gameID, s.Turn)
	s, _, resolveEvents := engine.Resolve(s, played, seed, cat.Lookup)
	printEvents(resolveEvents)

	s, stabilizeEvents := engine.Stabilize(s)
	printEvents(stabilizeEvents)
	return s
}

func scriptedAction(s engine.GameState, p engine.PlayerID) engine.Action {
	hand := s.Players[p].Hand
	for _, card := range hand {
		if card.Def == nil || card.Def.Cost > s.Players[p].Energy {
			continue
		}
		for lane := 0; lane < engine.NumLocations; lane++ {
			if s.Locations[lane].Count(p) < engine.LocationCapacity {
				return engine.Action{Kind: engine.ActionPlayCard, Player: p, Instance: card.InstanceID, Location: lane}
			}
		}
	}
	return engine.Action{Kind: engine.ActionPass, Player: p}
}

func printEvents(events []engine.Event) {
	for _, e := range events {
		fmt.Printf("  [%s] instance=%d location=%d value=%d->%d\n", e.Type, e.Instance, e.Location, e.OldValue, e.NewValue)
	}
}

func printBanner(cat *catalog.Catalog) {
	fmt.Println()
	fmt.Println("=== Olympus Lane Simulator ===")
	fmt.Printf("Game ID:  %s\n", gameID)
	fmt.Printf("Catalog:  %d cards\n", len(cat.All()))
	fmt.Println()
}

func printResult(s engine.GameState) {
	fmt.Println()
	fmt.Println("=== Result ===")
	fmt.Printf("Turn:   %d\n", s.Turn)
	fmt.Printf("Result: %v\n", s.Result)
}
