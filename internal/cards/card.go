// Package cards encodes a standard 52-card deck as the integers 0..51.
//
// Encoding:
// - Rank = index / 4 (0:A, 1..9: 2..10, 10:J, 11:Q, 12:K)
// - Suit = index % 4 (0:Spade, 1:Heart, 2:Club, 3:Diamond)
package cards

import (
	"fmt"
	"strconv"
)

// DeckSize is the number of cards in a standard deck
const DeckSize = 52

// Card is a deck index in 0..51
type Card = int

// Ranks
const (
	RankAce   = 0
	RankTen   = 9
	RankJack  = 10
	RankQueen = 11
	RankKing  = 12
	NumRanks  = 13
)

type Suit int

const (
	Spade Suit = iota
	Heart
	Club
	Diamond
)

func (s Suit) String() string {
	switch s {
	case Spade:
		return "s"
	case Heart:
		return "h"
	case Club:
		return "c"
	case Diamond:
		return "d"
	}
	return "?"
}

// Deck returns a fresh ordered deck 0..51
func Deck() []Card {
	d := make([]Card, DeckSize)
	for i := range d {
		d[i] = i
	}
	return d
}

// Rank returns the rank index of c
func Rank(c Card) int { return c / 4 }

// SuitOf returns the suit of c
func SuitOf(c Card) Suit { return Suit(c % 4) }

// Name renders a card as rank plus suit letter, e.g. "As", "Td", "Qh"
func Name(c Card) string {
	if c < 0 || c >= DeckSize {
		return "Invalid"
	}
	var rank string
	switch r := Rank(c); r {
	case RankAce:
		rank = "A"
	case RankTen:
		rank = "T"
	case RankJack:
		rank = "J"
	case RankQueen:
		rank = "Q"
	case RankKing:
		rank = "K"
	default:
		rank = strconv.Itoa(r + 1)
	}
	return rank + SuitOf(c).String()
}

// Parse converts "As", "Td", "10h" into a card index
func Parse(s string) (Card, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("invalid card string: %s", s)
	}

	var suit Suit
	switch s[len(s)-1] {
	case 's', 'S':
		suit = Spade
	case 'h', 'H':
		suit = Heart
	case 'c', 'C':
		suit = Club
	case 'd', 'D':
		suit = Diamond
	default:
		return 0, fmt.Errorf("invalid suit in card string: %s", s)
	}

	var rank int
	switch r := s[:len(s)-1]; r {
	case "A", "a":
		rank = RankAce
	case "T", "t", "10":
		rank = RankTen
	case "J", "j":
		rank = RankJack
	case "Q", "q":
		rank = RankQueen
	case "K", "k":
		rank = RankKing
	default:
		n, err := strconv.Atoi(r)
		if err != nil || n < 2 || n > 9 {
			return 0, fmt.Errorf("invalid rank in card string: %s", s)
		}
		rank = n - 1
	}

	return rank*4 + int(suit), nil
}
