package mines

import (
	"slices"

	"github.com/sirupsen/logrus"
)

// Rand is the source of randomness for mine placement. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// Generate places d.MineCount mines on a fresh board by rejection
// sampling, honouring policy around the first clicked cell.
//
// panics [AssertionError]
func Generate(d Dimensions, first int, policy FirstClickPolicy, r Rand) *Board {
	b := NewBoard(d)
	b.generate(first, policy, r)
	return b
}

// panics [AssertionError]
func (b *Board) generate(first int, policy FirstClickPolicy, r Rand) {
	n, mineCount := len(b.cells), b.dims.MineCount
	assertf(mineCount < n, "cannot place %d mines on %d cells", mineCount, n)
	assertf(b.Contains(first), "first click %d is out of bounds", first)

	firstNeighbors := b.neighbors[first]

	/*
	 * Mines can not fit outside the first click's neighbourhood (small
	 * boards with many mines). Keep only the clicked cell itself clear.
	 */
	if policy == ZeroFirstClick && n-1-len(firstNeighbors) < mineCount {
		Log.WithFields(logrus.Fields{
			"dimensions": b.dims.String(),
			"first":      first,
		}).Warn("zero first click policy cannot be satisfied, using safe")
		policy = SafeFirstClick
	}

	isMine := make([]bool, n)
	draws := 0
	for placed := 0; placed < mineCount; {
		i := r.IntN(n)
		draws++
		if isMine[i] || !eligible(i, first, firstNeighbors, policy) {
			continue
		}
		isMine[i] = true
		placed++
	}

	b.place(isMine)

	Log.WithFields(logrus.Fields{
		"dimensions": b.dims.String(),
		"first":      first,
		"policy":     policy.String(),
		"draws":      draws,
	}).Debug("generated board")
}

func eligible(candidate, first int, firstNeighbors []int, policy FirstClickPolicy) bool {
	switch policy {
	case AnyFirstClick:
		return true
	case SafeFirstClick:
		return candidate != first
	default:
		return candidate != first && !slices.Contains(firstNeighbors, candidate)
	}
}
