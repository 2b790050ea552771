package services

import (
	"fmt"
	"math"
	"sort"

	"parlay-api/internal/models"
)

// normalTarget is the implied probability "normal" parlays gravitate towards
const normalTarget = 0.6

// StylePool filters and orders candidates for a style. The input slice is not modified.
func StylePool(candidates []models.Candidate, style string) []models.Candidate {
	var pool []models.Candidate

	switch style {
	case models.StyleSafe:
		for _, c := range candidates {
			if c.IsFavorite() {
				pool = append(pool, c)
			}
		}
		sort.SliceStable(pool, func(i, j int) bool {
			return pool[i].ImpliedProbability > pool[j].ImpliedProbability
		})

	case models.StyleSpicy:
		for _, c := range candidates {
			if c.IsUnderdog() {
				pool = append(pool, c)
			}
		}
		sort.SliceStable(pool, func(i, j int) bool {
			return pool[i].ImpliedProbability < pool[j].ImpliedProbability
		})

	default:
		pool = append(pool, candidates...)
		sort.SliceStable(pool, func(i, j int) bool {
			return math.Abs(pool[i].ImpliedProbability-normalTarget) < math.Abs(pool[j].ImpliedProbability-normalTarget)
		})
	}

	return pool
}

// SelectLegs picks the first n candidates of the style pool. When the style
// filter leaves fewer than n, it falls back to the unfiltered candidates in
// provider order and reports fallback=true.
func SelectLegs(candidates []models.Candidate, style string, n int) (legs []models.Candidate, fallback bool, err error) {
	pool := StylePool(candidates, style)
	if len(pool) < n {
		pool = candidates
		fallback = true
	}

	if len(pool) < n {
		return nil, fallback, fmt.Errorf("%w: %d legs requested, only %d candidates available", models.ErrNoCandidates, n, len(pool))
	}

	legs = make([]models.Candidate, n)
	copy(legs, pool[:n])
	return legs, fallback, nil
}
