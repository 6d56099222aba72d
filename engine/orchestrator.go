package engine

// ActionKind is the closed set of player actions the Commit phase
// accepts (§4.10).
type ActionKind uint8

const (
	ActionPlayCard ActionKind = iota
	ActionPass
)

// Action is one player's submitted move for the current turn. Instance
// identifies the card by its instance id within the player's hand,
// matching the external action surface's PlayCard(player, instance,
// lane) shape (§6) rather than a positional hand index.
type Action struct {
	Kind     ActionKind
	Player   PlayerID
	Instance int32
	Location int
}

// Commit validates and applies both players' submitted actions for a
// turn (§4.10 step 1): cards leave the hand and land face-down in their
// chosen lane, energy is spent, and a PlayedCard entry is recorded for
// every successful play so the Timeline Generator has something to
// reveal. An invalid action never mutates state; it only emits
// ActionInvalid.
func Commit(s GameState, actions []Action) (GameState, []PlayedCard, []Event) {
	next := s
	var played []PlayedCard
	var events []Event
	playOrder := 0

	for _, act := range actions {
		switch act.Kind {
		case ActionPass:
			events = append(events, Event{Type: EventPlayerPassed, Player: act.Player})

		case ActionPlayCard:
			handIndex, reason, ok := validateCommit(next, act)
			if !ok {
				events = append(events, Event{Type: EventActionInvalid, Player: act.Player, Reason: reason})
				continue
			}
			card := next.Players[act.Player].Hand[handIndex]
			afterSpend, spendOK := SpendEnergy(next, act.Player, card.Def.Cost)
			if !spendOK {
				events = append(events, Event{Type: EventActionInvalid, Player: act.Player, Reason: InvalidInsufficientEnergy})
				continue
			}
			afterHand, removed, removeOK := RemoveFromHand(afterSpend, act.Player, handIndex)
			if !removeOK {
				events = append(events, Event{Type: EventActionInvalid, Player: act.Player, Reason: InvalidCardNotInHand})
				continue
			}
			next = AddCardToLocation(afterHand, act.Location, act.Player, removed)
			played = append(played, PlayedCard{Instance: removed.InstanceID, Owner: act.Player, Location: act.Location, PlayOrder: playOrder})
			playOrder++
			events = append(events, Event{
				Type:     EventCardPlayed,
				Player:   act.Player,
				Instance: removed.InstanceID,
				Location: act.Location,
			})
			events = append(events, Event{Type: EventEnergySpent, Player: act.Player, NewValue: next.Players[act.Player].Energy})
		}
	}

	return next, played, events
}

// validateCommit resolves act.Instance to a hand position and checks
// every Commit-time precondition, returning the reason for the first
// one it fails (§4.10, §7).
func validateCommit(s GameState, act Action) (int, InvalidReason, bool) {
	if act.Location < 0 || act.Location >= NumLocations {
		return 0, InvalidLocation, false
	}
	hand := s.Players[act.Player].Hand
	handIndex := -1
	for i, c := range hand {
		if c.InstanceID == act.Instance {
			handIndex = i
			break
		}
	}
	if handIndex == -1 {
		return 0, InvalidCardNotInHand, false
	}
	card := hand[handIndex]
	if card.Def == nil || s.Players[act.Player].Energy < card.Def.Cost {
		return 0, InvalidInsufficientEnergy, false
	}
	if s.Locations[act.Location].Count(act.Player) >= LocationCapacity {
		return 0, InvalidLocationAtCapacity, false
	}
	return handIndex, "", true
}

// Resolve wraps the Timeline Generator and Executor with
// ResolutionStarted/ResolutionEnded bracketing events (§4.10 step 2).
// seed is the turn's deterministic RNG seed (SeedFromGameID); Resolve
// owns generating the timeline against a clone of s with its own RNG
// and then replaying it against the real s with a freshly reseeded
// RNG, so the caller never has to manage the reset itself.
func Resolve(s GameState, played []PlayedCard, seed uint32, lookupDef func(string) *CardDefinition) (GameState, *Timeline, []Event) {
	genRNG := NewRNG(seed)
	tl := GenerateTimeline(s, played, seed, genRNG, lookupDef)

	events := []Event{{Type: EventResolutionStarted, TotalSteps: len(tl.Steps)}}
	execRNG := NewRNG(seed)
	result := RunTimeline(s, tl, execRNG)
	events = append(events, result.Events...)
	events = append(events, Event{Type: EventResolutionEnded})
	return result.State, tl, events
}

// Stabilize is §4.10 step 3: at turn >= MaxTurns it computes the
// winner and transitions to GAME_OVER; otherwise it transitions to
// TURN_END.
func Stabilize(s GameState) (GameState, []Event) {
	if s.Turn >= MaxTurns {
		result, lanePowers, laneWinners := computeResult(s)
		next := WithResult(WithPhase(s, PhaseGameOver), result)
		return next, []Event{{
			Type:        EventGameEnded,
			Result:      result,
			LaneWinners: laneWinners,
			LanePowers:  lanePowers,
			TotalPower:  [NumPlayers]int{sumPower(s, Player0), sumPower(s, Player1)},
		}}
	}
	next := WithPhase(s, PhaseTurnEnd)
	return next, []Event{{Type: EventTurnEnded}}
}

func sumPower(s GameState, p PlayerID) int {
	total := 0
	for _, loc := range s.Locations {
		total += loc.TotalPower(p)
	}
	return total
}

// computeResult implements §2's win rule: each lane goes to the
// strictly higher total power there (a tie gives neither player the
// lane); whoever wins at least two of the three lanes wins the game;
// otherwise the higher combined total power across all lanes wins;
// failing that, the game is a draw.
func computeResult(s GameState) (GameResult, [NumLocations][NumPlayers]int, [NumLocations]*PlayerID) {
	var lanePowers [NumLocations][NumPlayers]int
	var laneWinners [NumLocations]*PlayerID
	wins := [NumPlayers]int{}

	for i, loc := range s.Locations {
		p0, p1 := loc.TotalPower(Player0), loc.TotalPower(Player1)
		lanePowers[i] = [NumPlayers]int{p0, p1}
		switch {
		case p0 > p1:
			w := Player0
			laneWinners[i] = &w
			wins[Player0]++
		case p1 > p0:
			w := Player1
			laneWinners[i] = &w
			wins[Player1]++
		}
	}

	if wins[Player0] >= 2 {
		return ResultPlayer0Wins, lanePowers, laneWinners
	}
	if wins[Player1] >= 2 {
		return ResultPlayer1Wins, lanePowers, laneWinners
	}
	total0, total1 := sumPower(s, Player0), sumPower(s, Player1)
	switch {
	case total0 > total1:
		return ResultPlayer0Wins, lanePowers, laneWinners
	case total1 > total0:
		return ResultPlayer1Wins, lanePowers, laneWinners
	default:
		return ResultDraw, lanePowers, laneWinners
	}
}

// StartNextTurn is §4.10's separate turn-advance entry point: increment
// the turn counter, clear this-turn move tracking, set each player's
// energy to turn number plus lanes won plus any stored bonus, draw up
// to the per-turn hand target (bounded by MaxHandSize), and clear the
// bonus once spent. It returns the advanced state together with the
// EnergySet/BonusEnergy/CardDrawn/TurnStarted events for the new turn
// (§4.10 step 4).
func StartNextTurn(s GameState) (GameState, []Event) {
	next := ClearTurnTracking(s)
	next = WithTurn(next, next.Turn+1)
	next = WithPhase(next, PhasePlanning)

	var events []Event
	events = append(events, Event{Type: EventTurnStarted})

	_, _, lanesWon := computeResult(next)
	wins := [NumPlayers]int{}
	for _, w := range lanesWon {
		if w != nil {
			wins[*w]++
		}
	}

	for p := PlayerID(0); p < NumPlayers; p++ {
		bonus := next.BonusEnergyNextTurn[p]
		energy := next.Turn + wins[p] + bonus
		ps := next.Players[p]
		ps.Energy = energy
		ps.MaxEnergy = energy
		next = WithPlayer(next, p, ps)
		next = ClearBonusEnergyNextTurn(next, p)

		events = append(events, Event{Type: EventEnergySet, Player: p, NewValue: energy})
		if bonus != 0 {
			events = append(events, Event{Type: EventBonusEnergy, Player: p, NewValue: bonus})
		}

		for len(next.Players[p].Hand) < targetHandSize && len(next.Players[p].Hand) < MaxHandSize {
			updated, drawn, ok := DrawCard(next, p)
			if !ok {
				break
			}
			next = updated
			events = append(events, Event{Type: EventCardDrawn, Player: p, Instance: drawn.InstanceID})
		}
	}

	return next, events
}

// targetHandSize is the fixed per-turn hand target: draw up to 4 cards,
// still bounded by MaxHandSize (§2).
const targetHandSize = 4
