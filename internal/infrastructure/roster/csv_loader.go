// Copyright the meeting-raffle contributors.
// SPDX-License-Identifier: MIT

// Package roster loads membership and leadership rosters from the CSV
// exports the membership site produces.
package roster

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lsdforum/meeting-raffle/internal/domain"
	"github.com/lsdforum/meeting-raffle/internal/domain/models"
)

// member list exports carry "Email", the leadership list carries "email"
const (
	memberEmailColumn     = "Email"
	leadershipEmailColumn = "email"
)

func readTable(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, domain.NewValidationError(fmt.Sprintf("cannot open roster file %s", path), err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // exports occasionally have ragged trailing columns

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, domain.NewValidationError(fmt.Sprintf("cannot parse roster file %s", path), err)
	}
	if len(rows) == 0 {
		return nil, nil, domain.NewValidationError(fmt.Sprintf("roster file %s is empty", path))
	}
	return rows[0], rows[1:], nil
}

func findColumn(header []string, name string) (int, error) {
	for i, col := range header {
		if col == name {
			return i, nil
		}
	}
	return 0, domain.NewValidationError(fmt.Sprintf("roster is missing the %q column", name))
}

// LoadMemberRoster loads a membership list export. The file must have an
// Email column; all columns are preserved so the winner can be reported in
// full.
func LoadMemberRoster(path string) (*models.MemberRoster, error) {
	header, records, err := readTable(path)
	if err != nil {
		return nil, err
	}

	emailColumn, err := findColumn(header, memberEmailColumn)
	if err != nil {
		return nil, err
	}

	return models.NewMemberRoster(header, records, emailColumn), nil
}

// LoadLeadershipRoster loads the leadership list and returns the lowercased
// set of leadership emails.
func LoadLeadershipRoster(path string) (models.EmailSet, error) {
	header, records, err := readTable(path)
	if err != nil {
		return nil, err
	}

	emailColumn, err := findColumn(header, leadershipEmailColumn)
	if err != nil {
		return nil, err
	}

	set := make(models.EmailSet, len(records))
	for _, rec := range records {
		if emailColumn < len(rec) && rec[emailColumn] != "" {
			set[strings.ToLower(rec[emailColumn])] = struct{}{}
		}
	}
	return set, nil
}

// WriteLowercasedRoster writes a copy of a membership list with the Email
// column lowercased, named Processed<original name> alongside the source.
// Returns the path written.
func WriteLowercasedRoster(path string) (string, error) {
	header, records, err := readTable(path)
	if err != nil {
		return "", err
	}

	emailColumn, err := findColumn(header, memberEmailColumn)
	if err != nil {
		return "", err
	}

	dst := filepath.Join(filepath.Dir(path), "Processed"+filepath.Base(path))
	f, err := os.Create(dst)
	if err != nil {
		return "", domain.NewInternalError(fmt.Sprintf("cannot create %s", dst), err)
	}
	defer func() { _ = f.Close() }()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return "", domain.NewInternalError("cannot write roster header", err)
	}
	for _, rec := range records {
		out := make([]string, len(rec))
		copy(out, rec)
		if emailColumn < len(out) {
			out[emailColumn] = strings.ToLower(out[emailColumn])
		}
		if err := writer.Write(out); err != nil {
			return "", domain.NewInternalError("cannot write roster row", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", domain.NewInternalError("cannot flush roster file", err)
	}

	return dst, nil
}
