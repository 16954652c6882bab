// Copyright the meeting-raffle contributors.
// SPDX-License-Identifier: MIT

// Package report writes the per-meeting CSV artifacts and the human-readable
// console report.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/lsdforum/meeting-raffle/internal/domain"
	"github.com/lsdforum/meeting-raffle/internal/domain/models"
)

var attendanceHeader = []string{"user_email", "total_duration", "join_time", "leave_time", "excom"}

var registrantsHeader = []string{"first_name", "last_name", "email", "excom", "email_use"}

// SanitizeTopic strips the characters that break filenames out of a meeting
// topic and joins the remaining words with underscores.
func SanitizeTopic(topic string) string {
	for _, s := range []string{"'", "(", ")"} {
		topic = strings.ReplaceAll(topic, s, "")
	}
	return strings.Join(strings.Fields(topic), "_")
}

// AttendanceFileName returns the deterministic artifact path for a meeting's
// attendance summary.
func AttendanceFileName(dataDir, topic string, startTime time.Time) string {
	return filepath.Join(dataDir, fmt.Sprintf("%s_%s.csv", SanitizeTopic(topic), startTime.Format("2006-01-02")))
}

// RegistrantsFileName returns the deterministic artifact path for a meeting's
// registrant list.
func RegistrantsFileName(dataDir, topic string, startTime time.Time) string {
	return filepath.Join(dataDir, fmt.Sprintf("registrants_%s_%s.csv", SanitizeTopic(topic), startTime.Format("2006-01-02")))
}

func writeCSV(path string, header []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return domain.NewInternalError(fmt.Sprintf("cannot create data directory for %s", path), err)
	}

	f, err := os.Create(path)
	if err != nil {
		return domain.NewInternalError(fmt.Sprintf("cannot create artifact %s", path), err)
	}
	defer func() { _ = f.Close() }()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return domain.NewInternalError("cannot write artifact header", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return domain.NewInternalError("cannot write artifact row", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return domain.NewInternalError(fmt.Sprintf("cannot flush artifact %s", path), err)
	}
	return nil
}

// WriteAttendanceArtifact writes one meeting's attendee summaries.
func WriteAttendanceArtifact(path string, summaries []models.AttendeeSummary) error {
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			s.Email,
			strconv.FormatFloat(s.TotalDuration, 'f', -1, 64),
			s.JoinTime,
			s.LeaveTime,
			strconv.FormatBool(s.Excom),
		})
	}
	return writeCSV(path, attendanceHeader, rows)
}

// ReadAttendanceArtifact reads back an attendance artifact written by
// WriteAttendanceArtifact.
func ReadAttendanceArtifact(path string) ([]models.AttendeeSummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, domain.NewInternalError(fmt.Sprintf("cannot open artifact %s", path), err)
	}
	defer func() { _ = f.Close() }()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, domain.NewInternalError(fmt.Sprintf("cannot parse artifact %s", path), err)
	}
	if len(rows) == 0 {
		return nil, domain.NewDataIntegrityError(fmt.Sprintf("artifact %s has no header", path))
	}

	summaries := make([]models.AttendeeSummary, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) != len(attendanceHeader) {
			return nil, domain.NewDataIntegrityError(fmt.Sprintf("artifact %s has a malformed row", path))
		}
		totalDuration, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, domain.NewDataIntegrityError(fmt.Sprintf("artifact %s has a bad total_duration", path), err)
		}
		excom, err := strconv.ParseBool(row[4])
		if err != nil {
			return nil, domain.NewDataIntegrityError(fmt.Sprintf("artifact %s has a bad excom flag", path), err)
		}
		summaries = append(summaries, models.AttendeeSummary{
			Email:         row[0],
			TotalDuration: totalDuration,
			JoinTime:      row[2],
			LeaveTime:     row[3],
			Excom:         excom,
		})
	}
	return summaries, nil
}

// WriteRegistrantsArtifact writes one meeting's classified registrants.
func WriteRegistrantsArtifact(path string, registrants []models.RegistrantRecord) error {
	rows := make([][]string, 0, len(registrants))
	for _, r := range registrants {
		rows = append(rows, []string{
			r.FirstName,
			r.LastName,
			r.Email,
			strconv.FormatBool(r.Excom),
			string(r.EmailUse),
		})
	}
	return writeCSV(path, registrantsHeader, rows)
}
