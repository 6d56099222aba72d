package engine

// Query helpers. All of them are pure functions of a GameState snapshot
// (§4.2); none of them allocate a new GameState.

// FindCardByInstance searches every lane for instanceID.
func FindCardByInstance(s GameState, instanceID int32) (CardInstance, bool) {
	for _, loc := range s.Locations {
		for p := 0; p < NumPlayers; p++ {
			for _, c := range loc.Cards[p] {
				if c.InstanceID == instanceID {
					return c, true
				}
			}
		}
	}
	return CardInstance{}, false
}

// FindCardLocation returns the lane index holding instanceID.
// find_card_location is O(lanes x cards) by design (§9); an instance
// index is a possible future optimization, never a back-pointer on the
// card itself.
func FindCardLocation(s GameState, instanceID int32) (int, bool) {
	for _, loc := range s.Locations {
		for p := 0; p < NumPlayers; p++ {
			for _, c := range loc.Cards[p] {
				if c.InstanceID == instanceID {
					return loc.Index, true
				}
			}
		}
	}
	return -1, false
}

// GetCards returns the ordered sequence of owner's cards at lane idx.
func GetCards(s GameState, idx int, owner PlayerID) []CardInstance {
	return s.Locations[idx].Cards[owner]
}

// GetCardCount is the number of owner's cards at lane idx.
func GetCardCount(s GameState, idx int, owner PlayerID) int {
	return s.Locations[idx].Count(owner)
}

// GetTotalPower is the summed effective power of owner's cards at lane
// idx.
func GetTotalPower(s GameState, idx int, owner PlayerID) int {
	return s.Locations[idx].TotalPower(owner)
}

// GetAllCards returns every card instance currently on the board,
// across all lanes and both players, in lane-then-owner-then-insertion
// order.
func GetAllCards(s GameState) []CardInstance {
	var out []CardInstance
	for _, loc := range s.Locations {
		for p := 0; p < NumPlayers; p++ {
			out = append(out, loc.Cards[p]...)
		}
	}
	return out
}

// IsSilenced reports whether instanceID's ONGOING clauses are
// suppressed by the latest recomputation pass.
func IsSilenced(s GameState, instanceID int32) bool {
	return s.SilencedCards[instanceID]
}

// HasDestroyedCardThisGame reports whether any card has ever been
// destroyed this game.
func HasDestroyedCardThisGame(s GameState) bool {
	return len(s.CardsDestroyedThisGame) > 0
}

// HasMovedCardThisGame reports whether any card has ever been moved
// this game.
func HasMovedCardThisGame(s GameState) bool {
	return len(s.CardsMovedThisGame) > 0
}

// HasMovedCardThisTurn reports whether any card has been moved during
// the current turn.
func HasMovedCardThisTurn(s GameState) bool {
	return len(s.CardsMovedThisTurn) > 0
}
