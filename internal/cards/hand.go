package cards

import (
	"slices"

	"goprob/domain/probability"
)

// Hand is an outcome drawn from the deck
type Hand = probability.Outcome[Card]

// sortedRanks returns the hand's ranks in ascending order without touching the hand
func sortedRanks(h Hand) []int {
	ranks := make([]int, len(h))
	for i, c := range h {
		ranks[i] = Rank(c)
	}
	slices.Sort(ranks)
	return ranks
}

// rankCounts returns how many cards of each rank the hand holds, largest group first
func rankCounts(h Hand) []int {
	var byRank [NumRanks]int
	for _, c := range h {
		byRank[Rank(c)]++
	}
	counts := make([]int, 0, len(h))
	for _, n := range byRank {
		if n > 0 {
			counts = append(counts, n)
		}
	}
	slices.SortFunc(counts, func(a, b int) int { return b - a })
	return counts
}

// CountRank returns how many cards of rank the hand holds
func CountRank(h Hand, rank int) int {
	n := 0
	for _, c := range h {
		if Rank(c) == rank {
			n++
		}
	}
	return n
}

// FourOfAKind: four cards share a rank
func FourOfAKind(h Hand) bool {
	counts := rankCounts(h)
	return len(counts) > 0 && counts[0] >= 4
}

// FullHouse: in five cards, three of one rank and two of another.
// With sorted ranks the two lowest and two highest pair up and the middle
// card joins one side.
func FullHouse(h Hand) bool {
	if len(h) != 5 {
		return false
	}
	r := sortedRanks(h)
	return r[0] == r[1] && r[3] == r[4] && (r[2] == r[0] || r[2] == r[3])
}

// TwoPairs: two pairs of different ranks and nothing better, in four cards
func TwoPairs(h Hand) bool {
	if len(h) != 4 {
		return false
	}
	r := sortedRanks(h)
	return r[0] == r[1] && r[2] == r[3] && r[1] != r[2]
}

// Predicates for enumeration and simulation

func FourOfAKindEvent() probability.Predicate[Card] { return probability.Event(FourOfAKind) }
func FullHouseEvent() probability.Predicate[Card]   { return probability.Event(FullHouse) }
func TwoPairsEvent() probability.Predicate[Card]    { return probability.Event(TwoPairs) }

// RankCountEvent matches hands holding exactly n cards of rank
func RankCountEvent(rank, n int) probability.Predicate[Card] {
	return probability.Event(func(h Hand) bool { return CountRank(h, rank) == n })
}

// ExactlyOneAce matches hands with a single ace
func ExactlyOneAce() probability.Predicate[Card] {
	return RankCountEvent(RankAce, 1)
}
