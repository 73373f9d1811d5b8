package model

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// TrainTestSplit shuffles row positions 0..n-1 with a seeded PCG source and
// returns the train and test positions. The test share is rounded up.
func TrainTestSplit(n int, testSize float64, seed uint64) (train, test []int, err error) {
	if testSize <= 0 || testSize >= 1 {
		return nil, nil, fmt.Errorf("test size %v is outside (0, 1)", testSize)
	}

	nTest := int(math.Ceil(testSize * float64(n)))
	if n < 2 || nTest >= n {
		return nil, nil, fmt.Errorf("cannot split %d rows with test size %v", n, testSize)
	}

	rng := rand.New(rand.NewPCG(seed, seed))
	perm := rng.Perm(n)
	return perm[nTest:], perm[:nTest], nil
}

// Take returns the rows of X and y at the given positions.
func Take(X [][]float64, y []int, positions []int) ([][]float64, []int) {
	outX := make([][]float64, len(positions))
	outY := make([]int, len(positions))
	for i, p := range positions {
		outX[i] = X[p]
		outY[i] = y[p]
	}
	return outX, outY
}
