// Copyright the meeting-raffle contributors.
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"

	"github.com/lsdforum/meeting-raffle/internal/domain/models"
)

// ConsolePrinter renders the human-readable run report. Log output goes to
// stderr; this is the part meant for the person running the report.
type ConsolePrinter struct {
	out io.Writer
}

// NewConsolePrinter creates a printer writing to the given writer.
func NewConsolePrinter(out io.Writer) *ConsolePrinter {
	return &ConsolePrinter{out: out}
}

// PrintAttendanceStats prints one meeting's attendance counts.
func (p *ConsolePrinter) PrintAttendanceStats(topic string, stats models.AttendanceStats) {
	fmt.Fprintf(p.out, "Meeting name:          %s\n", topic)
	fmt.Fprintf(p.out, "Attended:              %d\n", stats.Attended)
	fmt.Fprintf(p.out, "Attended (non-ExComm): %d\n", stats.AttendedNonExcom)
	fmt.Fprintf(p.out, "Stayed:                %d\n", stats.Stayed)
	fmt.Fprintf(p.out, "Stayed (non-ExComm):   %d\n\n", stats.StayedNonExcom)
}

// PrintRegistrantStats prints one meeting's registration counts.
func (p *ConsolePrinter) PrintRegistrantStats(topic string, stats models.RegistrantStats) {
	fmt.Fprintf(p.out, "Meeting name:            %s\n", topic)
	fmt.Fprintf(p.out, "Registered:              %d\n", stats.Registered)
	fmt.Fprintf(p.out, "Registered (non-ExComm): %d\n", stats.RegisteredNonExcom)
	fmt.Fprintf(p.out, "Already have email:      %d\n", stats.AlreadyHaveEmail)
	fmt.Fprintf(p.out, "Use email:               %d\n", stats.UseEmail)
	fmt.Fprintf(p.out, "Do not use email:        %d\n\n", stats.DoNotUseEmail)
}

// PrintWinner prints the raffle winner's full roster row, one column per
// line.
func (p *ConsolePrinter) PrintWinner(winner models.Winner) {
	fmt.Fprintln(p.out, "Found a raffle winner:")
	for i, column := range winner.Header {
		value := ""
		if i < len(winner.Row) {
			value = winner.Row[i]
		}
		fmt.Fprintf(p.out, "%s: %s\n", column, value)
	}
}

// PrintRunSummary prints how the run went overall, naming each failed
// meeting and why it failed.
func (p *ConsolePrinter) PrintRunSummary(succeeded int, failures []models.MeetingFailure) {
	fmt.Fprintf(p.out, "\nMeetings processed: %d succeeded, %d failed\n", succeeded, len(failures))
	for _, f := range failures {
		fmt.Fprintf(p.out, "  failed: %q (id %d): %v\n", f.Topic, f.MeetingID, f.Err)
	}
}
