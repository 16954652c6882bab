// Copyright the meeting-raffle contributors.
// SPDX-License-Identifier: MIT

package service

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lsdforum/meeting-raffle/internal/domain"
	"github.com/lsdforum/meeting-raffle/internal/domain/models"
)

func memberRoster(emails ...string) *models.MemberRoster {
	records := make([][]string, 0, len(emails))
	for _, e := range emails {
		records = append(records, []string{"Member " + e, e})
	}
	return models.NewMemberRoster([]string{"Name", "Email"}, records, 1)
}

func TestBuildEligiblePool(t *testing.T) {
	reports := []models.MeetingReport{
		{
			Attendance: []models.AttendeeSummary{
				{Email: "alice@x.com", TotalDuration: 1.0, Excom: true},  // leadership excluded
				{Email: "bob@x.com", TotalDuration: 0.5, Excom: false},   // too short
				{Email: "carol@x.com", TotalDuration: 0.75, Excom: false},
			},
		},
		{
			Attendance: []models.AttendeeSummary{
				{Email: "dave@x.com", TotalDuration: 2.0, Excom: false},
			},
		},
	}

	pool := BuildEligiblePool(reports, 0.75)

	require.Len(t, pool, 2)
	assert.Equal(t, "carol@x.com", pool[0].Email)
	assert.Equal(t, "dave@x.com", pool[1].Email)
}

func TestSelectRaffleWinner_EmptyPool(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	_, err := SelectRaffleWinner(rng, nil, memberRoster("jane@x.com"))

	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeNoEligibleCandidates, domain.GetErrorType(err))
}

func TestSelectRaffleWinner_DisjointPoolTerminates(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	pool := []models.AttendeeSummary{
		{Email: "stranger1@y.com", TotalDuration: 1.0},
		{Email: "stranger2@y.com", TotalDuration: 1.0},
	}

	_, err := SelectRaffleWinner(rng, pool, memberRoster("jane@x.com"))

	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeNoMatchingMember, domain.GetErrorType(err))
}

func TestSelectRaffleWinner_ResolvesRosterRow(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	pool := []models.AttendeeSummary{
		{Email: "jane@x.com", TotalDuration: 1.0},
	}

	winner, err := SelectRaffleWinner(rng, pool, memberRoster("jane@x.com"))

	require.NoError(t, err)
	assert.Equal(t, "jane@x.com", winner.Email)
	assert.Equal(t, []string{"Name", "Email"}, winner.Header)
	assert.Equal(t, []string{"Member jane@x.com", "jane@x.com"}, winner.Row)
}

func TestSelectRaffleWinner_SkipsNonMembers(t *testing.T) {
	// Only one pool entry is a member; with enough draws the winner must be
	// that entry no matter what the seed picks first.
	rng := rand.New(rand.NewSource(7))
	pool := []models.AttendeeSummary{
		{Email: "stranger@y.com", TotalDuration: 1.0},
		{Email: "jane@x.com", TotalDuration: 1.0},
		{Email: "other@y.com", TotalDuration: 1.0},
	}

	winner, err := SelectRaffleWinner(rng, pool, memberRoster("jane@x.com"))

	require.NoError(t, err)
	assert.Equal(t, "jane@x.com", winner.Email)
}

func TestSelectRaffleWinner_MatchesCaseInsensitively(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	pool := []models.AttendeeSummary{
		{Email: "jane@x.com", TotalDuration: 1.0},
	}

	winner, err := SelectRaffleWinner(rng, pool, memberRoster("Jane@X.com"))

	require.NoError(t, err)
	assert.Equal(t, []string{"Member Jane@X.com", "Jane@X.com"}, winner.Row)
}
