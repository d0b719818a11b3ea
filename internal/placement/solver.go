package placement

import (
	"math/rand"
	"sort"
)

// Constraint describes one team to place and the slots it must not occupy.
type Constraint struct {
	Team      string
	Forbidden []int
}

// Solver assigns every constraint a distinct slot in [0, len(constraints)).
// The result holds the slot for constraints[i] at index i.
type Solver interface {
	Solve(constraints []Constraint) ([]int, error)
}

// Greedy places the most constrained teams first and picks uniformly among
// the remaining valid slots. It never backtracks, so a solvable input can
// still fail when an earlier choice uses up a later team's only slots.
type Greedy struct {
	rng *rand.Rand
}

func NewGreedy(rng *rand.Rand) *Greedy {
	return &Greedy{rng: rng}
}

func (g *Greedy) Solve(constraints []Constraint) ([]int, error) {
	n := len(constraints)
	forbidden := make([]map[int]bool, n)
	size := make([]int, n)
	for i, c := range constraints {
		forbidden[i] = make(map[int]bool)
		distinct := make(map[int]bool)
		for _, slot := range c.Forbidden {
			distinct[slot] = true
			if slot >= 0 && slot < n {
				forbidden[i][slot] = true
			}
		}
		size[i] = len(distinct)
	}

	// Order by the size of the avoid set as given, out-of-range slots
	// included. Ties keep input order.
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return size[order[a]] > size[order[b]]
	})

	occupant := make([]int, n)
	for i := range occupant {
		occupant[i] = -1
	}
	slots := make([]int, n)

	for _, ci := range order {
		var valid []int
		for slot := 0; slot < n; slot++ {
			if occupant[slot] < 0 && !forbidden[ci][slot] {
				valid = append(valid, slot)
			}
		}
		if len(valid) == 0 {
			return nil, &ExhaustedError{
				Team:      constraints[ci].Team,
				Forbidden: sortedKeys(forbidden[ci]),
				Occupied:  occupiedSlots(occupant),
			}
		}
		slot := valid[g.rng.Intn(len(valid))]
		occupant[slot] = ci
		slots[ci] = slot
	}

	return slots, nil
}

// Order inverts a slot assignment: the result lists, for each slot, the index
// of the constraint placed there.
func Order(slots []int) []int {
	order := make([]int, len(slots))
	for i, slot := range slots {
		order[slot] = i
	}
	return order
}

func sortedKeys(m map[int]bool) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func occupiedSlots(occupant []int) []int {
	var slots []int
	for slot, ci := range occupant {
		if ci >= 0 {
			slots = append(slots, slot)
		}
	}
	return slots
}
