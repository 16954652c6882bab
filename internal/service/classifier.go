// Copyright the meeting-raffle contributors.
// SPDX-License-Identifier: MIT

package service

import (
	"fmt"
	"strings"

	"github.com/lsdforum/meeting-raffle/internal/domain/models"
	"github.com/lsdforum/meeting-raffle/internal/infrastructure/zoom/api"
)

// Answer markers the registration form produces. The classification is a
// substring scan of the rendered answers, not a structured parse; if the
// upstream question text or answer encoding changes, this is the one place
// to fix.
const (
	noAnswerMarker  = "'value': 'No'"
	yesAnswerMarker = "'value': 'Yes'"
)

// ClassifyEmailUse derives the tri-state email-consent classification from
// the rendered custom-question answers. A "No" answer wins over a "Yes"
// anywhere in the blob; with neither present the registrant's email is
// already on file.
func ClassifyEmailUse(blob string) models.EmailUse {
	if strings.Contains(blob, noAnswerMarker) {
		return models.EmailUseNo
	}
	if strings.Contains(blob, yesAnswerMarker) {
		return models.EmailUseYes
	}
	return models.EmailUseAlready
}

// RenderCustomQuestions renders answered questions into the textual shape
// ClassifyEmailUse scans for.
func RenderCustomQuestions(questions []api.CustomQuestion) string {
	if len(questions) == 0 {
		return ""
	}
	parts := make([]string, 0, len(questions))
	for _, q := range questions {
		parts = append(parts, fmt.Sprintf("{'title': '%s', 'value': '%s'}", q.Title, q.Value))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
