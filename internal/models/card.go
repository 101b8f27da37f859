package models

import "fmt"

// Suit is one of the four suits of the Italian deck
type Suit string

// Card is a single card of the deck
type Card struct {
	// Suit is the card's suit
	Suit Suit `json:"suit"`

	// Name is the rank name, e.g. "Ace" or "Two"
	Name string `json:"name"`

	// Point is what the card contributes to a trick's total
	Point int `json:"point"`

	// Value orders cards of the same suit, higher wins
	Value int `json:"value"`
}

// Matches reports whether two cards are the same card, ignoring point and value
func (c Card) Matches(other Card) bool {
	return c.Suit == other.Suit && c.Name == other.Name
}

// String returns e.g. "Two of Feathers"
func (c Card) String() string {
	return fmt.Sprintf("%s of %s", c.Name, c.Suit)
}

// PlayedCard is a card on the table together with who played it
type PlayedCard struct {
	Card

	// SeatIndex is the seat that played the card
	SeatIndex int `json:"playerIndex"`

	// PlayerName is the display name of that seat at play time
	PlayerName string `json:"playerName"`
}
