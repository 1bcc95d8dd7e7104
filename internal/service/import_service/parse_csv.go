package import_service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/codetrack/internal/track_errors"
)

var requiredColumns = []string{"difficulty", "title", "link", "topics"}

// ParseCSV reads a sheet whose first row names the columns. Column names are
// matched case-insensitively and unknown columns are ignored. Short records
// leave the missing cells empty so that the importer can report them.
func ParseCSV(r io.Reader) ([]ImportRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w, csv file is empty", track_errors.ErrInvalidRequest)
		}
		return nil, fmt.Errorf("%w, cannot read csv header, %w", track_errors.ErrInvalidRequest, err)
	}

	// column name -> index
	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimPrefix(name, "\ufeff")
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("%w, csv header must contain column %s", track_errors.ErrInvalidRequest, name)
		}
	}

	cell := func(record []string, name string) string {
		i := columns[name]
		if i >= len(record) {
			return ""
		}
		return record[i]
	}

	rows := []ImportRow{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			line, _ := reader.FieldPos(0)
			err = fmt.Errorf("%w, malformed csv near line %d, %w", track_errors.ErrInvalidRequest, line, err)
			log.Error(err)
			return nil, err
		}
		rows = append(rows, ImportRow{
			Difficulty: cell(record, "difficulty"),
			Title:      cell(record, "title"),
			Link:       cell(record, "link"),
			Topics:     cell(record, "topics"),
		})
	}
	return rows, nil
}

// SplitTopics splits on commas and semicolons and drops empty names.
func SplitTopics(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ';' })
	topics := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			topics = append(topics, p)
		}
	}
	return topics
}
