// Package education grades a candidate's declared school against two
// institution references: a domestic notation table and a merged world
// ranking table. Matching is fuzzy token-sort similarity with 80 as the
// confident-match cutoff everywhere.
package education

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// ConfidentMatch is the similarity cutoff (out of 100) above which a fuzzy
// table hit is trusted.
const ConfidentMatch = 80

// WorldEntry is one row of the merged world ranking table.
type WorldEntry struct {
	Name     string
	MeanRank float64
	Region   string
}

// WorldTable is the pre-merged mean-rank world ranking reference.
type WorldTable struct {
	entries []WorldEntry
}

// DomesticEntry is one row of the domestic ranking table.
type DomesticEntry struct {
	Name     string
	Notation string
}

// DomesticTable is the domestic notation-ranked institution reference.
type DomesticTable struct {
	entries []DomesticEntry
}

// LoadWorldTable reads the merged world ranking CSV. Expected columns:
// "University Name", "Mean Rank" and optionally "Region"; other columns are
// ignored.
func LoadWorldTable(path string) (*WorldTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open world ranking table: %w", err)
	}
	defer f.Close()

	return ReadWorldTable(f)
}

// ReadWorldTable parses the world ranking table from r.
func ReadWorldTable(r io.Reader) (*WorldTable, error) {
	rows, header, err := readAll(r)
	if err != nil {
		return nil, fmt.Errorf("parse world ranking table: %w", err)
	}

	nameIdx, err := indexOf(header, "University Name")
	if err != nil {
		return nil, err
	}
	rankIdx, err := indexOf(header, "Mean Rank")
	if err != nil {
		return nil, err
	}
	regionIdx, _ := indexOf(header, "Region")

	table := &WorldTable{}
	for _, row := range rows {
		name := cell(row, nameIdx)
		if name == "" {
			continue
		}
		rank, err := strconv.ParseFloat(cell(row, rankIdx), 64)
		if err != nil {
			continue
		}
		table.entries = append(table.entries, WorldEntry{
			Name:     name,
			MeanRank: rank,
			Region:   cell(row, regionIdx),
		})
	}

	return table, nil
}

// LoadDomesticTable reads the domestic ranking CSV. Expected columns: "Name"
// and "Notation".
func LoadDomesticTable(path string) (*DomesticTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open domestic ranking table: %w", err)
	}
	defer f.Close()

	return ReadDomesticTable(f)
}

// ReadDomesticTable parses the domestic ranking table from r.
func ReadDomesticTable(r io.Reader) (*DomesticTable, error) {
	rows, header, err := readAll(r)
	if err != nil {
		return nil, fmt.Errorf("parse domestic ranking table: %w", err)
	}

	nameIdx, err := indexOf(header, "Name")
	if err != nil {
		return nil, err
	}
	notationIdx, err := indexOf(header, "Notation")
	if err != nil {
		return nil, err
	}

	table := &DomesticTable{}
	for _, row := range rows {
		name := cell(row, nameIdx)
		if name == "" {
			continue
		}
		table.entries = append(table.entries, DomesticEntry{
			Name:     name,
			Notation: cell(row, notationIdx),
		})
	}

	return table, nil
}

// Match finds the best fuzzy hit for the school name. An exact name hit
// short-circuits with score 100.
func (t *WorldTable) Match(school string) (WorldEntry, int) {
	best := WorldEntry{}
	bestScore := 0

	school = strings.TrimSpace(school)
	if school == "" {
		return best, 0
	}

	for _, entry := range t.entries {
		if entry.Name == school {
			return entry, 100
		}
		score := fuzzy.TokenSortRatio(strings.ToLower(school), strings.ToLower(entry.Name))
		if score > bestScore {
			bestScore = score
			best = entry
		}
	}

	return best, bestScore
}

// Match finds the best fuzzy hit for the school name in the domestic table.
func (t *DomesticTable) Match(school string) (DomesticEntry, int) {
	best := DomesticEntry{}
	bestScore := 0

	school = strings.TrimSpace(school)
	if school == "" {
		return best, 0
	}

	for _, entry := range t.entries {
		if entry.Name == school {
			return entry, 100
		}
		score := fuzzy.TokenSortRatio(strings.ToLower(school), strings.ToLower(entry.Name))
		if score > bestScore {
			bestScore = score
			best = entry
		}
	}

	return best, bestScore
}

// Len reports the number of table entries.
func (t *WorldTable) Len() int { return len(t.entries) }

// Entries returns the parsed rows in file order.
func (t *WorldTable) Entries() []WorldEntry { return t.entries }

func readAll(r io.Reader) ([][]string, []string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("empty table")
	}

	return records[1:], records[0], nil
}

// cell returns the trimmed value at idx, tolerating ragged rows: a missing
// column or a short row reads as an empty cell.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func indexOf(header []string, name string) (int, error) {
	for i, h := range header {
		if strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")) == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("column %q not found in table header", name)
}
