// Copyright the meeting-raffle contributors.
// SPDX-License-Identifier: MIT

package models

// EmailUse is the tri-state consent classification derived from a
// registrant's custom-question answers. The string values are the ones
// written to the registrants artifact.
type EmailUse string

const (
	// EmailUseYes means the registrant consented to their email being used.
	EmailUseYes EmailUse = "True"
	// EmailUseNo means the registrant declined.
	EmailUseNo EmailUse = "False"
	// EmailUseAlready means no explicit answer was found, which the upstream
	// form only produces for people whose email is already on file.
	EmailUseAlready EmailUse = "Already"
)

// RegistrantRecord is one meeting registrant after classification.
type RegistrantRecord struct {
	FirstName string
	LastName  string
	Email     string // lowercased
	Excom     bool
	EmailUse  EmailUse
}
