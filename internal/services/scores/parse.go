package scores

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Export column positions
const (
	colBeatmap  = 5
	colOsuUser  = 7
	colScore    = 9
	colAccuracy = 10
	colMaxCombo = 13
	colGrade    = 18

	minColumns = colGrade + 1
)

type rawScore struct {
	BeatmapID int
	OsuUserID int
	Score     int64
	Accuracy  float64
	MaxCombo  int
	Grade     string
}

// splitFields splits on commas that are outside double quotes. Quotes are kept.
func splitFields(line string) []string {
	var fields []string
	inQuotes := false
	start := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			inQuotes = !inQuotes
		case ',':
			if !inQuotes {
				fields = append(fields, line[start:i])
				start = i + 1
			}
		}
	}
	return append(fields, line[start:])
}

func field(cols []string, i int) string {
	return strings.Trim(strings.TrimSpace(cols[i]), `"`)
}

func parseRow(cols []string) (rawScore, error) {
	if len(cols) < minColumns {
		return rawScore{}, fmt.Errorf("row has %d columns, %d needed", len(cols), minColumns)
	}

	var (
		r   rawScore
		err error
	)
	if r.BeatmapID, err = strconv.Atoi(field(cols, colBeatmap)); err != nil {
		return rawScore{}, fmt.Errorf("beatmap id: %w", err)
	}
	if r.OsuUserID, err = strconv.Atoi(field(cols, colOsuUser)); err != nil {
		return rawScore{}, fmt.Errorf("osu user id: %w", err)
	}
	if r.Score, err = strconv.ParseInt(field(cols, colScore), 10, 64); err != nil {
		return rawScore{}, fmt.Errorf("score: %w", err)
	}
	if r.Accuracy, err = strconv.ParseFloat(field(cols, colAccuracy), 64); err != nil {
		return rawScore{}, fmt.Errorf("accuracy: %w", err)
	}
	if r.MaxCombo, err = strconv.Atoi(field(cols, colMaxCombo)); err != nil {
		return rawScore{}, fmt.Errorf("max combo: %w", err)
	}
	r.Grade = field(cols, colGrade)
	return r, nil
}

// parseExport returns the rows that start with prefix and the count of those that failed to parse
func parseExport(r io.Reader, prefix string) ([]rawScore, int, error) {
	var (
		rows      []rawScore
		malformed int
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || !strings.HasPrefix(line, prefix) {
			continue
		}
		row, err := parseRow(splitFields(line))
		if err != nil {
			malformed++
			continue
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read export: %w", err)
	}
	return rows, malformed, nil
}
