package engine

// AbilityCategory classifies how a card's clauses are triggered.
type AbilityCategory uint8

const (
	Vanilla AbilityCategory = iota
	OnReveal
	Ongoing
)

// CardDefinition is the immutable template shared by every instance of
// a given card. It is never mutated after the catalog loads it, so
// CardInstance may hold a direct pointer to one without breaking the
// engine's pure-value-tree discipline (§9).
type CardDefinition struct {
	ID        string
	Name      string
	Cost      int
	BasePower int
	Category  AbilityCategory
	Abilities []Ability
	Tags      map[string]bool
	Ideology  string
}

// HasTag reports whether the definition carries the given tag.
func (d *CardDefinition) HasTag(tag string) bool {
	if d == nil || d.Tags == nil {
		return false
	}
	return d.Tags[tag]
}

// CardInstance is one concrete copy of a card in play. InstanceID is
// globally unique within a game and never reused (invariant 3, §3).
type CardInstance struct {
	InstanceID   int32
	Def          *CardDefinition
	Owner        PlayerID
	PermanentMod int
	OngoingMod   int
	Revealed     bool
}

// EffectivePower is base + permanent + ongoing (§3).
func (c CardInstance) EffectivePower() int {
	base := 0
	if c.Def != nil {
		base = c.Def.BasePower
	}
	return base + c.PermanentMod + c.OngoingMod
}

// LocationState holds the two ordered per-player sequences at one lane.
// Insertion order is preserved and is itself observable (§3: used as a
// deterministic tie-break).
type LocationState struct {
	Index int
	Cards [NumPlayers][]CardInstance
}

func (l LocationState) clone() LocationState {
	out := LocationState{Index: l.Index}
	for p := 0; p < NumPlayers; p++ {
		out.Cards[p] = append([]CardInstance(nil), l.Cards[p]...)
	}
	return out
}

// Count returns the number of cards the given player has at this lane.
func (l LocationState) Count(owner PlayerID) int {
	return len(l.Cards[owner])
}

// TotalPower returns the summed effective power of the given player's
// cards at this lane.
func (l LocationState) TotalPower(owner PlayerID) int {
	total := 0
	for _, c := range l.Cards[owner] {
		total += c.EffectivePower()
	}
	return total
}

// PlayerState is one player's deck, hand, and energy budget for the
// current turn.
type PlayerState struct {
	Deck      []CardInstance
	Hand      []CardInstance
	Energy    int
	MaxEnergy int
}

func (p PlayerState) clone() PlayerState {
	return PlayerState{
		Deck:      append([]CardInstance(nil), p.Deck...),
		Hand:      append([]CardInstance(nil), p.Hand...),
		Energy:    p.Energy,
		MaxEnergy: p.MaxEnergy,
	}
}

// Phase is the orchestrator's current stage within a turn (§2, §4.10).
type Phase uint8

const (
	PhasePlanning Phase = iota
	PhaseResolution
	PhaseTurnEnd
	PhaseGameOver
)

// GameResult is the terminal (or in-progress) outcome of the match.
type GameResult uint8

const (
	ResultInProgress GameResult = iota
	ResultPlayer0Wins
	ResultPlayer1Wins
	ResultDraw
)

func (r GameResult) String() string {
	switch r {
	case ResultPlayer0Wins:
		return "PLAYER_0_WINS"
	case ResultPlayer1Wins:
		return "PLAYER_1_WINS"
	case ResultDraw:
		return "DRAW"
	default:
		return "IN_PROGRESS"
	}
}

// GameState is the complete, immutable snapshot of a game in progress.
// Every mutation helper in mutate.go returns a new GameState value; none
// of them modify the receiver in place, and none of the slices/maps
// held by two different GameState values are ever aliased and written
// through by this package (every helper deep-copies what it touches).
type GameState struct {
	Turn           int
	Phase          Phase
	Players        [NumPlayers]PlayerState
	Locations      [NumLocations]LocationState
	Result         GameResult
	NextInstanceID int32

	CardsDestroyedThisGame []int32
	CardsMovedThisGame     []int32
	CardsMovedThisTurn     []int32
	SilencedCards          map[int32]bool

	BonusEnergyNextTurn [NumPlayers]int
}

// NewGameState builds an empty game at turn 1, PLANNING phase, with the
// given decks already shuffled into place by the caller (deck
// construction is an external collaborator per §1).
func NewGameState(deck0, deck1 []CardInstance) GameState {
	gs := GameState{
		Turn:           1,
		Phase:          PhasePlanning,
		Result:         ResultInProgress,
		NextInstanceID: 1,
		SilencedCards:  map[int32]bool{},
	}
	gs.Players[Player0] = PlayerState{Deck: deck0, MaxEnergy: 1}
	gs.Players[Player1] = PlayerState{Deck: deck1, MaxEnergy: 1}
	for i := 0; i < NumLocations; i++ {
		gs.Locations[i] = LocationState{Index: i}
	}
	return gs
}

// clone returns a deep copy of the state. Every With* helper in
// mutate.go starts from clone() and mutates the copy, never the
// receiver.
func (s GameState) clone() GameState {
	out := s
	for p := 0; p < NumPlayers; p++ {
		out.Players[p] = s.Players[p].clone()
	}
	for i := 0; i < NumLocations; i++ {
		out.Locations[i] = s.Locations[i].clone()
	}
	out.CardsDestroyedThisGame = append([]int32(nil), s.CardsDestroyedThisGame...)
	out.CardsMovedThisGame = append([]int32(nil), s.CardsMovedThisGame...)
	out.CardsMovedThisTurn = append([]int32(nil), s.CardsMovedThisTurn...)
	out.SilencedCards = make(map[int32]bool, len(s.SilencedCards))
	for k, v := range s.SilencedCards {
		out.SilencedCards[k] = v
	}
	return out
}
