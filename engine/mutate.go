package engine

// Mutation helpers. Every helper here takes a GameState by value and
// returns a new GameState value; none of them write through the
// receiver (§4.2, §9 "pure value tree"). Effect arms, the executor, and
// the orchestrator all go through these instead of poking at slices
// directly, so the invariants in §3 stay centralized in one place. The
// one exception is RecomputeOngoing, which clones the state itself and
// then writes ongoing modifiers and the silenced set on that clone.

// WithPlayer replaces one player's state.
func WithPlayer(s GameState, p PlayerID, ps PlayerState) GameState {
	out := s.clone()
	out.Players[p] = ps
	return out
}

// WithLocation replaces one lane's state.
func WithLocation(s GameState, idx int, ls LocationState) GameState {
	out := s.clone()
	out.Locations[idx] = ls
	return out
}

// WithTurn sets the turn number.
func WithTurn(s GameState, turn int) GameState {
	out := s.clone()
	out.Turn = turn
	return out
}

// WithPhase sets the orchestrator phase.
func WithPhase(s GameState, phase Phase) GameState {
	out := s.clone()
	out.Phase = phase
	return out
}

// WithResult sets the game result.
func WithResult(s GameState, result GameResult) GameState {
	out := s.clone()
	out.Result = result
	return out
}

// WithNextInstanceID sets the next instance id counter.
func WithNextInstanceID(s GameState, id int32) GameState {
	out := s.clone()
	out.NextInstanceID = id
	return out
}

// WithCardDestroyed appends instanceID to the game-level destroyed set
// exactly once (invariant 6, §3).
func WithCardDestroyed(s GameState, instanceID int32) GameState {
	out := s.clone()
	out.CardsDestroyedThisGame = append(out.CardsDestroyedThisGame, instanceID)
	return out
}

// WithCardMoved appends instanceID to both the game and turn move lists
// (invariant 5, §3: the turn list is always a subsequence of the game
// list because both only ever grow together here).
func WithCardMoved(s GameState, instanceID int32) GameState {
	out := s.clone()
	out.CardsMovedThisGame = append(out.CardsMovedThisGame, instanceID)
	out.CardsMovedThisTurn = append(out.CardsMovedThisTurn, instanceID)
	return out
}

// WithSilencedCard inserts instanceID into the silenced set.
func WithSilencedCard(s GameState, instanceID int32) GameState {
	out := s.clone()
	out.SilencedCards[instanceID] = true
	return out
}

// ClearTurnTracking clears cards_moved_this_turn at the start of a new
// turn (§3).
func ClearTurnTracking(s GameState) GameState {
	out := s.clone()
	out.CardsMovedThisTurn = nil
	return out
}

// ClearSilencedCards empties the silenced set; the ongoing recomputer
// rebuilds it from scratch every pass (§4.9 step 3).
func ClearSilencedCards(s GameState) GameState {
	out := s.clone()
	out.SilencedCards = map[int32]bool{}
	return out
}

// AddBonusEnergyNextTurn increments one player's stored bonus.
func AddBonusEnergyNextTurn(s GameState, p PlayerID, amount int) GameState {
	out := s.clone()
	out.BonusEnergyNextTurn[p] += amount
	return out
}

// ClearBonusEnergyNextTurn resets one player's stored bonus to zero.
func ClearBonusEnergyNextTurn(s GameState, p PlayerID) GameState {
	out := s.clone()
	out.BonusEnergyNextTurn[p] = 0
	return out
}

// AddCardToLocation appends card to the end of owner's sequence at
// lane idx (insertion order is the deterministic tie-break, §3).
func AddCardToLocation(s GameState, idx int, owner PlayerID, card CardInstance) GameState {
	out := s.clone()
	out.Locations[idx].Cards[owner] = append(out.Locations[idx].Cards[owner], card)
	return out
}

// RemoveCardFromLocation removes and returns the card with instanceID
// at lane idx for owner, preserving the order of the remaining cards.
func RemoveCardFromLocation(s GameState, idx int, owner PlayerID, instanceID int32) (GameState, CardInstance, bool) {
	out := s.clone()
	cards := out.Locations[idx].Cards[owner]
	for i, c := range cards {
		if c.InstanceID == instanceID {
			removed := c
			out.Locations[idx].Cards[owner] = append(cards[:i:i], cards[i+1:]...)
			return out, removed, true
		}
	}
	return s, CardInstance{}, false
}

// AddCardToHand appends a card to the end of owner's hand.
func AddCardToHand(s GameState, owner PlayerID, card CardInstance) GameState {
	out := s.clone()
	out.Players[owner].Hand = append(out.Players[owner].Hand, card)
	return out
}

// RemoveFromHand removes and returns the card at handIndex from
// owner's hand.
func RemoveFromHand(s GameState, owner PlayerID, handIndex int) (GameState, CardInstance, bool) {
	hand := s.Players[owner].Hand
	if handIndex < 0 || handIndex >= len(hand) {
		return s, CardInstance{}, false
	}
	out := s.clone()
	removed := hand[handIndex]
	h := out.Players[owner].Hand
	out.Players[owner].Hand = append(h[:handIndex:handIndex], h[handIndex+1:]...)
	return out, removed, true
}

// DrawCard moves the top card (index 0) of owner's deck into their
// hand, bounded by MaxHandSize.
func DrawCard(s GameState, owner PlayerID) (GameState, CardInstance, bool) {
	deck := s.Players[owner].Deck
	if len(deck) == 0 || len(s.Players[owner].Hand) >= MaxHandSize {
		return s, CardInstance{}, false
	}
	out := s.clone()
	card := deck[0]
	out.Players[owner].Deck = append([]CardInstance(nil), out.Players[owner].Deck[1:]...)
	out.Players[owner].Hand = append(out.Players[owner].Hand, card)
	return out, card, true
}

// SpendEnergy subtracts amount from owner's energy if affordable.
func SpendEnergy(s GameState, owner PlayerID, amount int) (GameState, bool) {
	if s.Players[owner].Energy < amount {
		return s, false
	}
	out := s.clone()
	out.Players[owner].Energy -= amount
	return out, true
}

// UpdateCard finds the card with instanceID anywhere on the board
// (across all lanes) and replaces it with fn's output, preserving its
// position. Used by the effect applier to adjust power modifiers and
// the Revealed flag "in place" without disturbing ordering.
func UpdateCard(s GameState, instanceID int32, fn func(CardInstance) CardInstance) (GameState, bool) {
	out := s.clone()
	for li := range out.Locations {
		for p := 0; p < NumPlayers; p++ {
			cards := out.Locations[li].Cards[p]
			for i, c := range cards {
				if c.InstanceID == instanceID {
					cards[i] = fn(c)
					return out, true
				}
			}
		}
	}
	return s, false
}
