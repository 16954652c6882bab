// Copyright the meeting-raffle contributors.
// SPDX-License-Identifier: MIT

package models

import "strings"

// MemberRoster is a membership list loaded from a tabular export. The header
// and rows are preserved verbatim so a winner can be reported with every
// column the export carries; lookups go through the lowercased email index.
type MemberRoster struct {
	Header  []string
	Records [][]string

	emailColumn int
	byEmail     map[string]int
}

// NewMemberRoster builds a roster from a parsed table. emailColumn is the
// index of the Email column within the header.
func NewMemberRoster(header []string, records [][]string, emailColumn int) *MemberRoster {
	byEmail := make(map[string]int, len(records))
	for i, rec := range records {
		if emailColumn < len(rec) {
			byEmail[strings.ToLower(rec[emailColumn])] = i
		}
	}
	return &MemberRoster{
		Header:      header,
		Records:     records,
		emailColumn: emailColumn,
		byEmail:     byEmail,
	}
}

// Lookup returns the roster row for the given email, matched
// case-insensitively.
func (r *MemberRoster) Lookup(email string) ([]string, bool) {
	i, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, false
	}
	return r.Records[i], true
}

// Contains reports whether the email appears in the roster.
func (r *MemberRoster) Contains(email string) bool {
	_, ok := r.byEmail[strings.ToLower(email)]
	return ok
}

// Len returns the number of roster rows.
func (r *MemberRoster) Len() int {
	return len(r.Records)
}

// EmailSet is a case-insensitive set of email addresses. Used for the
// leadership roster.
type EmailSet map[string]struct{}

// NewEmailSet lowercases and collects the given addresses.
func NewEmailSet(emails ...string) EmailSet {
	s := make(EmailSet, len(emails))
	for _, e := range emails {
		s[strings.ToLower(e)] = struct{}{}
	}
	return s
}

// Contains reports whether the email is in the set, case-insensitively.
func (s EmailSet) Contains(email string) bool {
	_, ok := s[strings.ToLower(email)]
	return ok
}
