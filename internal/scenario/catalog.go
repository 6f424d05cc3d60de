package scenario

import (
	"fmt"
	"math"
	"math/rand"
	"slices"
	"sort"

	"goprob/domain/core"
	"goprob/domain/probability"
	"goprob/internal/cards"
	"goprob/internal/montecarlo"
)

// Default trial counts
const (
	DefaultTrials      = 100000
	LargeDefaultTrials = 1000000
)

// Catalogue names
const (
	FourSixesInSevenDice   = "four-sixes-in-seven-dice"
	DiceSum35              = "dice-sum-35"
	FullHouse              = "full-house"
	FourJacks              = "four-jacks"
	ExactlyOneAce          = "exactly-one-ace"
	FourOfAKind            = "four-of-a-kind"
	TwoPairs               = "two-pairs"
	NeighboursInQueue      = "neighbours-in-queue"
	NeighboursInQueueFive  = "neighbours-in-queue-of-five"
	NoRepeatNeighbours     = "no-repeat-neighbours"
	TenDiceSum30           = "ten-dice-sum-30"
	OneBehindTen           = "one-behind-ten"
	CircleIntersectionArea = "circle-intersection-area"
	TwentySixes            = "twenty-sixes"
	MontyHallStick         = "monty-hall-stick"
	MontyHallSwitch        = "monty-hall-switch"
)

var catalogue = build()

// Lookup returns the scenario registered under name (case-insensitive)
func Lookup(name string) (Scenario, error) {
	key, err := core.ParseScenarioName(name)
	if err != nil {
		return Scenario{}, fmt.Errorf("%w: %v", core.ErrScenarioNotFound, err)
	}
	s, ok := catalogue[key.String()]
	if !ok {
		return Scenario{}, fmt.Errorf("%w: %q", core.ErrScenarioNotFound, name)
	}
	return s, nil
}

// All returns every scenario sorted by name
func All() []Scenario {
	out := make([]Scenario, 0, len(catalogue))
	for _, s := range catalogue {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns every scenario name, sorted
func Names() []string {
	names := make([]string, 0, len(catalogue))
	for name := range catalogue {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func dice() []int { return []int{1, 2, 3, 4, 5, 6} }

func people(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i + 1
	}
	return p
}

func sum(o probability.Outcome[int]) int {
	s := 0
	for _, v := range o {
		s += v
	}
	return s
}

func countOf(o probability.Outcome[int], face int) int {
	n := 0
	for _, v := range o {
		if v == face {
			n++
		}
	}
	return n
}

// adjacent reports whether a and b stand next to each other
func adjacent[T comparable](o probability.Outcome[T], a, b T) bool {
	ia, ib := slices.Index(o, a), slices.Index(o, b)
	return ia-ib == 1 || ib-ia == 1
}

func build() map[string]Scenario {
	list := []Scenario{
		diceScenario(FourSixesInSevenDice, "At least four sixes when rolling seven fair dice", 7,
			func(o probability.Outcome[int]) bool { return countOf(o, 6) >= 4 }),
		diceScenario(DiceSum35, "Seven fair dice summing to 35", 7,
			func(o probability.Outcome[int]) bool { return sum(o) == 35 }),
		diceScenario(NoRepeatNeighbours, "Five dice where no die repeats the one before it", 5,
			func(o probability.Outcome[int]) bool {
				for i := 1; i < len(o); i++ {
					if o[i] == o[i-1] {
						return false
					}
				}
				return true
			}),

		deckScenario(FullHouse, "Full house in a five card hand", 5, cards.FullHouseEvent()),
		deckScenario(FourJacks, "All four jacks in a five card hand", 5, cards.RankCountEvent(cards.RankJack, 4)),
		deckScenario(ExactlyOneAce, "Exactly one ace in a five card hand", 5, cards.ExactlyOneAce()),
		deckScenario(FourOfAKind, "Four cards of one rank in a four card hand", 4, cards.FourOfAKindEvent()),
		deckScenario(TwoPairs, "Two pairs of different ranks in a four card hand", 4, cards.TwoPairsEvent()),

		queueScenario(),
		queueOfFiveScenario(),

		tenDiceSum30(),
		oneBehindTen(),
		circleIntersection(),
		twentySixes(),
		montyHall(MontyHallStick, "Monty Hall: the guest keeps the first door", false),
		montyHall(MontyHallSwitch, "Monty Hall: the guest switches after the host opens a goat door", true),
	}

	out := make(map[string]Scenario, len(list))
	for _, s := range list {
		out[s.Name] = s
	}
	return out
}

func diceScenario(name, desc string, k int, test func(probability.Outcome[int]) bool) Scenario {
	s := Scenario{Name: name, Description: desc, DefaultTrials: DefaultTrials}
	withMirror(&s, dice(), k, probability.ModeProduct, probability.Event(test))
	return s
}

func deckScenario(name, desc string, k int, pred probability.Predicate[cards.Card]) Scenario {
	s := Scenario{Name: name, Description: desc, DefaultTrials: DefaultTrials}
	withMirror(&s, cards.Deck(), k, probability.ModeCombinations, pred)
	return s
}

func queueScenario() Scenario {
	s := Scenario{
		Name:          NeighboursInQueue,
		Description:   "Person 1 stands next to person 10 in a random queue of ten",
		DefaultTrials: DefaultTrials,
	}
	withMirror(&s, people(10), 10, probability.ModePermutations,
		probability.Event(func(o probability.Outcome[int]) bool { return adjacent(o, 1, 10) }))
	return s
}

func queueOfFiveScenario() Scenario {
	s := Scenario{
		Name:          NeighboursInQueueFive,
		Description:   "Person a stands next to person b in a random queue of five",
		DefaultTrials: DefaultTrials,
	}
	withMirror(&s, []string{"a", "b", "c", "d", "e"}, 5, probability.ModePermutations,
		probability.Event(func(o probability.Outcome[string]) bool { return adjacent(o, "a", "b") }))
	return s
}

func tenDiceSum30() Scenario {
	s := Scenario{
		Name:          TenDiceSum30,
		Description:   "Ten fair dice summing to 30",
		DefaultTrials: DefaultTrials,
		Reference:     2930455.0 / 60466176.0,
	}
	withSimulation(&s, func() (montecarlo.Trial[int], error) { return montecarlo.SingleDraw(dice(), 10) },
		probability.Event(func(o probability.Outcome[int]) bool { return sum(o) == 30 }))
	return s
}

func oneBehindTen() Scenario {
	s := Scenario{
		Name:          OneBehindTen,
		Description:   "Person 1 stands somewhere behind person 10 in a shuffled queue of ten",
		DefaultTrials: DefaultTrials,
		Reference:     0.5,
	}
	withSimulation(&s, func() (montecarlo.Trial[int], error) { return montecarlo.Shuffled(people(10), nil), nil },
		probability.Event(func(o probability.Outcome[int]) bool {
			return slices.Index(o, 1) > slices.Index(o, 10)
		}))
	return s
}

// circleIntersection estimates the lens shared by two radius 2 circles
// centred at (0,0) and (2,0) by throwing points into their bounding box.
func circleIntersection() Scenario {
	const radius = 2.0
	centres := [][2]float64{{0, 0}, {2, 0}}
	box := montecarlo.Box{MinX: -2, MaxX: 4, MinY: -2, MaxY: 2}

	s := Scenario{
		Name:          CircleIntersectionArea,
		Description:   "Area shared by two radius 2 circles whose centres are 2 apart",
		DefaultTrials: DefaultTrials,
		Reference:     8*math.Pi/3 - math.Sqrt(12),
		scale:         box.Area(),
	}
	withSimulation(&s, func() (montecarlo.Trial[float64], error) { return montecarlo.UniformPoint(box), nil },
		probability.Event(func(p probability.Outcome[float64]) bool {
			for _, c := range centres {
				dx, dy := p[0]-c[0], p[1]-c[1]
				if dx*dx+dy*dy > radius*radius {
					return false
				}
			}
			return true
		}))
	return s
}

func twentySixes() Scenario {
	s := Scenario{
		Name:          TwentySixes,
		Description:   "Twenty fair dice all showing six",
		DefaultTrials: DefaultTrials,
		Reference:     math.Pow(6, -20),
	}
	withSimulation(&s, func() (montecarlo.Trial[int], error) { return montecarlo.SingleDraw(dice(), 20) },
		probability.Event(func(o probability.Outcome[int]) bool { return sum(o) == 6*20 }))
	return s
}

// montyHall hides one car among three doors with a single shuffle. The guest
// picks a door at random, the host removes a goat from the other two, and
// the guest either keeps the pick or takes the last closed door.
func montyHall(name, desc string, switchDoor bool) Scenario {
	reference := 1.0 / 3.0
	if switchDoor {
		reference = 2.0 / 3.0
	}
	s := Scenario{
		Name:          name,
		Description:   desc,
		DefaultTrials: LargeDefaultTrials,
		Reference:     reference,
	}

	withSimulation(&s, func() (montecarlo.Trial[bool], error) {
		result := make(probability.Outcome[bool], 1)
		closed := make([]bool, 0, 3)
		return montecarlo.Shuffled([]bool{true, false, false}, func(doors probability.Outcome[bool], r *rand.Rand) probability.Outcome[bool] {
			guest := r.Intn(len(doors))
			if !switchDoor {
				result[0] = doors[guest]
				return result
			}
			closed = append(closed[:0], doors[:guest]...)
			closed = append(closed, doors[guest+1:]...)
			host := slices.Index(closed, false)
			closed = slices.Delete(closed, host, host+1)
			result[0] = closed[0]
			return result
		}), nil
	}, probability.Event(func(o probability.Outcome[bool]) bool { return o[0] }))
	return s
}
