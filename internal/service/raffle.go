// Copyright the meeting-raffle contributors.
// SPDX-License-Identifier: MIT

package service

import (
	"fmt"
	"math/rand"

	"github.com/lsdforum/meeting-raffle/internal/domain"
	"github.com/lsdforum/meeting-raffle/internal/domain/models"
)

// DefaultMinEligibleHours is the engagement threshold for prize eligibility:
// 45 minutes.
const DefaultMinEligibleHours = 0.75

// BuildEligiblePool collects, across every processed meeting, the attendees
// who qualify for the raffle: non-leadership and at least minHours of total
// attendance.
func BuildEligiblePool(reports []models.MeetingReport, minHours float64) []models.AttendeeSummary {
	var pool []models.AttendeeSummary
	for _, r := range reports {
		for _, s := range r.Attendance {
			if !s.Excom && s.TotalDuration >= minHours {
				pool = append(pool, s)
			}
		}
	}
	return pool
}

// SelectRaffleWinner draws uniformly from the eligible pool until the drawn
// attendee's email appears in the member roster, then resolves the winner to
// their full roster row.
//
// An empty pool and a pool with no roster overlap are explicit error states:
// the overlap is checked up front so disjoint sets cannot loop forever, and
// the draw loop is bounded anyway as a second guard.
func SelectRaffleWinner(rng *rand.Rand, pool []models.AttendeeSummary, members *models.MemberRoster) (models.Winner, error) {
	if len(pool) == 0 {
		return models.Winner{}, domain.NewNoEligibleCandidatesError("no eligible raffle candidates")
	}

	overlap := false
	for _, candidate := range pool {
		if members.Contains(candidate.Email) {
			overlap = true
			break
		}
	}
	if !overlap {
		return models.Winner{}, domain.NewNoMatchingMemberError(
			fmt.Sprintf("none of the %d eligible attendees appear in the member roster", len(pool)))
	}

	maxAttempts := 3 * len(pool)
	if maxAttempts < 30 {
		maxAttempts = 30
	}
	for attempt := 0; attempt < maxAttempts; attempt++ {
		candidate := pool[rng.Intn(len(pool))]
		row, ok := members.Lookup(candidate.Email)
		if !ok {
			continue
		}
		return models.Winner{
			Email:  candidate.Email,
			Header: members.Header,
			Row:    row,
		}, nil
	}

	// Statistically unreachable given the overlap check, but the loop stays
	// bounded regardless.
	return models.Winner{}, domain.NewNoMatchingMemberError(
		fmt.Sprintf("no member drawn from the eligible pool after %d attempts", maxAttempts))
}
