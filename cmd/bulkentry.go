/*
 * Copyright 2026 Suraj Bobade
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/IAmSurajBobade/openHealth/db"
)

// Accepted date layouts for manual entry. Layouts containing commas are
// deliberately excluded since the field separator is a comma.
var bulkDateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"02/01/2006",
	"2 Jan 2006",
	"2-Jan-2006",
}

// parseBulkEntries parses manually typed reading lines for a single member.
// Each non-blank line is:
//
//	testName, value, unit, date[, idealMin, idealMax]
//
// Any malformed line rejects the whole batch so nothing partial is saved.
func parseBulkEntries(memberID, text string) ([]db.TestReading, error) {
	var readings []db.TestReading

	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		reading, err := parseBulkLine(memberID, line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}

		readings = append(readings, reading)
	}

	if len(readings) == 0 {
		return nil, fmt.Errorf("%w: no entries found", errInvalidBulkEntry)
	}

	return readings, nil
}

func parseBulkLine(memberID, line string) (db.TestReading, error) {
	fields := strings.Split(line, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	if len(fields) < 4 {
		return db.TestReading{}, fmt.Errorf("%w: expected at least 4 comma-separated fields, got %d", errInvalidBulkEntry, len(fields))
	}

	if fields[0] == "" {
		return db.TestReading{}, fmt.Errorf("%w: test name is empty", errInvalidBulkEntry)
	}

	value, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return db.TestReading{}, fmt.Errorf("%w: bad value %q", errInvalidBulkEntry, fields[1])
	}

	date, err := parseBulkDate(fields[3])
	if err != nil {
		return db.TestReading{}, err
	}

	reading := db.TestReading{
		ID:       uuid.NewString(),
		MemberID: memberID,
		TestName: fields[0],
		Date:     date,
		Value:    value,
		Unit:     fields[2],
	}

	// Ideal min and max are independently optional; an empty field means
	// the bound was not provided.
	if len(fields) >= 5 && fields[4] != "" {
		idealMin, err := strconv.ParseFloat(fields[4], 64)
		if err != nil {
			return db.TestReading{}, fmt.Errorf("%w: bad ideal min %q", errInvalidBulkEntry, fields[4])
		}

		reading.IdealMin = &idealMin
	}

	if len(fields) >= 6 && fields[5] != "" {
		idealMax, err := strconv.ParseFloat(fields[5], 64)
		if err != nil {
			return db.TestReading{}, fmt.Errorf("%w: bad ideal max %q", errInvalidBulkEntry, fields[5])
		}

		reading.IdealMax = &idealMax
	}

	return reading, nil
}

func parseBulkDate(value string) (time.Time, error) {
	for _, layout := range bulkDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: bad date %q", errInvalidBulkEntry, value)
}
