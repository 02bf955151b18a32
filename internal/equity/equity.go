// Package equity implements the Monte Carlo Pr(win) estimator described in
// spec.md §4.2: given hero's hole cards, the known community cards, and a
// count of opponents, it estimates hero's equity by repeatedly completing
// the board and dealing opponent hands at random, then scoring the
// resulting 7-card hands with internal/evalengine.
package equity

import (
	"context"
	"math/rand"
	"runtime"

	"github.com/nlhe/decisionengine/internal/card"
	"github.com/nlhe/decisionengine/internal/evalengine"
	"golang.org/x/sync/errgroup"
)

const maxWorkers = 8

// workerResult accumulates one worker's share of the simulation.
type workerResult struct {
	wins, ties, samples int
}

// Estimate returns Pr(hero wins outright) + 0.5*Pr(hero ties), averaged over
// numSamples random completions of the board and opponentCount opponent
// hands dealt from the remaining deck. Given the same seed, hole, board,
// opponentCount and numSamples, the result is reproducible (spec.md §4.2's
// determinism requirement), because each worker derives its RNG
// deterministically from the master seed and worker index rather than from
// wall-clock time or goroutine scheduling order.
func Estimate(hole, board []card.Card, opponentCount, numSamples int, seed int64) float64 {
	if len(hole) != 2 || len(board) > 5 {
		return 0
	}
	// spec.md §7: OutOfRangeParameter violations are clamped to defaults
	// (N -> 1, opponent_count -> 1) rather than aborting the estimate.
	if numSamples < 1 {
		numSamples = 1
	}
	if opponentCount < 1 || opponentCount > 8 {
		opponentCount = 1
	}

	used := card.NewSet(hole, board)
	available := used.Remaining()

	master := rand.New(rand.NewSource(seed))

	workers := runtime.NumCPU()
	if workers > maxWorkers {
		workers = maxWorkers
	}
	if workers > numSamples {
		workers = numSamples
	}
	if workers < 1 {
		workers = 1
	}

	perWorker := numSamples / workers
	remainder := numSamples % workers

	g, _ := errgroup.WithContext(context.Background())
	results := make([]workerResult, workers)

	for w := 0; w < workers; w++ {
		w := w
		samples := perWorker
		if w < remainder {
			samples++
		}
		workerSeed := master.Int63()
		g.Go(func() error {
			rng := rand.New(rand.NewSource(workerSeed))
			results[w] = simulate(hole, board, available, opponentCount, samples, rng)
			return nil
		})
	}
	_ = g.Wait()

	var wins, ties, total int
	for _, r := range results {
		wins += r.wins
		ties += r.ties
		total += r.samples
	}
	if total == 0 {
		return 0
	}
	return (float64(wins) + float64(ties)/2.0) / float64(total)
}

// simulate runs numSamples Monte Carlo trials against a fixed set of
// available (undealt) cards, scoring hero against the worst-case opponent
// (max opponent score) on each trial.
func simulate(hole, board, available []card.Card, opponentCount, numSamples int, rng *rand.Rand) workerResult {
	var res workerResult
	boardNeeded := 5 - len(board)
	pool := make([]card.Card, len(available))

	for i := 0; i < numSamples; i++ {
		copy(pool, available)
		dealt := 0
		needed := boardNeeded + 2*opponentCount
		if needed > len(pool) {
			continue
		}

		draw := func() card.Card {
			idx := rng.Intn(len(pool) - dealt)
			c := pool[idx]
			pool[idx] = pool[len(pool)-dealt-1]
			dealt++
			return c
		}

		finalBoard := make([]card.Card, 5)
		copy(finalBoard, board)
		for j := 0; j < boardNeeded; j++ {
			finalBoard[len(board)+j] = draw()
		}

		heroHand := append(append([]card.Card{}, hole...), finalBoard...)
		_, heroScore := evalengine.Score(heroHand)

		best := -1
		for o := 0; o < opponentCount; o++ {
			oppHole := []card.Card{draw(), draw()}
			oppHand := append(append([]card.Card{}, oppHole...), finalBoard...)
			_, oppScore := evalengine.Score(oppHand)
			if oppScore > best {
				best = oppScore
			}
		}

		switch {
		case heroScore > best:
			res.wins++
		case heroScore == best:
			res.ties++
		}
		res.samples++
	}
	return res
}
