package education

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// MergedRow is one output row of the ranking aggregation: a university with
// its per-source ranks and the mean/median across whichever sources carry it.
type MergedRow struct {
	Name        string
	QSRank      int
	THERank     int
	ARWURank    int
	MeanRank    float64
	MedianRank  float64
	SourceCount int
	Region      string
}

// SourceFile describes one ranking source CSV and its column names.
type SourceFile struct {
	Path    string
	NameCol string
	RankCol string
	// CountryCol, when set, contributes a university → country mapping used
	// for region tagging.
	CountryCol string
}

var (
	parenRe    = regexp.MustCompile(`\(.*?\)`)
	nonAlnumRe = regexp.MustCompile(`[^a-z0-9]`)
	digitsRe   = regexp.MustCompile(`(\d+)`)
)

// NormalizeName canonicalizes a university name for cross-source joining:
// lower-case, parenthesized acronyms removed, punctuation collapsed to
// single spaces.
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = parenRe.ReplaceAllString(name, "")
	name = nonAlnumRe.ReplaceAllString(name, " ")
	return strings.Join(strings.Fields(name), " ")
}

// CleanRank extracts the first integer from a rank cell. Ranking sources
// publish ties and bands like "=12" or "101-150"; the leading integer is the
// usable rank.
func CleanRank(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	m := digitsRe.FindString(raw)
	if m == "" {
		return 0, false
	}
	rank, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return rank, true
}

type sourceEntry struct {
	name    string
	rank    int
	country string
}

// Merge joins the ARWU, QS and THE ranking files on normalized university
// name and computes mean and median ranks across available sources. Rows are
// sorted by mean rank ascending. regionFor, when non-nil, maps a university's
// country to a region label for the Region column.
func Merge(arwu, qs, the SourceFile, regionFor func(country string) string) ([]MergedRow, error) {
	arwuData, err := loadSource(arwu)
	if err != nil {
		return nil, fmt.Errorf("load arwu source: %w", err)
	}
	qsData, err := loadSource(qs)
	if err != nil {
		return nil, fmt.Errorf("load qs source: %w", err)
	}
	theData, err := loadSource(the)
	if err != nil {
		return nil, fmt.Errorf("load the source: %w", err)
	}

	keys := make(map[string]struct{})
	for k := range arwuData {
		keys[k] = struct{}{}
	}
	for k := range qsData {
		keys[k] = struct{}{}
	}
	for k := range theData {
		keys[k] = struct{}{}
	}

	rows := make([]MergedRow, 0, len(keys))
	for key := range keys {
		row := MergedRow{}

		// Display-name preference: QS names tend to be the cleanest.
		switch {
		case qsData[key] != nil:
			row.Name = qsData[key].name
		case theData[key] != nil:
			row.Name = theData[key].name
		case arwuData[key] != nil:
			row.Name = arwuData[key].name
		}

		var ranks []int
		if e := arwuData[key]; e != nil {
			row.ARWURank = e.rank
			ranks = append(ranks, e.rank)
		}
		if e := qsData[key]; e != nil {
			row.QSRank = e.rank
			ranks = append(ranks, e.rank)
		}
		if e := theData[key]; e != nil {
			row.THERank = e.rank
			ranks = append(ranks, e.rank)
		}

		if len(ranks) == 0 {
			continue
		}

		row.MeanRank = mean(ranks)
		row.MedianRank = median(ranks)
		row.SourceCount = len(ranks)

		if regionFor != nil {
			country := ""
			for _, data := range []map[string]*sourceEntry{qsData, theData, arwuData} {
				if e := data[key]; e != nil && e.country != "" {
					country = e.country
					break
				}
			}
			row.Region = regionFor(country)
		}

		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].MeanRank < rows[j].MeanRank })

	return rows, nil
}

// WriteMerged writes the merged table in the layout the grader and the
// eligibility filter load.
func WriteMerged(path string, rows []MergedRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create merged ranking file: %w", err)
	}
	defer f.Close()

	return writeMerged(f, rows)
}

func writeMerged(w io.Writer, rows []MergedRow) error {
	cw := csv.NewWriter(w)
	header := []string{"University Name", "QS Rank", "THE Rank", "ARWU Rank", "Mean Rank", "Median Rank", "Source Count", "Region"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, row := range rows {
		record := []string{
			row.Name,
			rankCell(row.QSRank),
			rankCell(row.THERank),
			rankCell(row.ARWURank),
			strconv.FormatFloat(row.MeanRank, 'f', 2, 64),
			strconv.FormatFloat(row.MedianRank, 'f', -1, 64),
			strconv.Itoa(row.SourceCount),
			row.Region,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func rankCell(rank int) string {
	if rank == 0 {
		return ""
	}
	return strconv.Itoa(rank)
}

func loadSource(src SourceFile) (map[string]*sourceEntry, error) {
	f, err := os.Open(src.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readSource(f, src)
}

func readSource(r io.Reader, src SourceFile) (map[string]*sourceEntry, error) {
	rows, header, err := readAll(r)
	if err != nil {
		return nil, err
	}

	nameIdx, err := indexOf(header, src.NameCol)
	if err != nil {
		return nil, err
	}
	rankIdx, err := indexOf(header, src.RankCol)
	if err != nil {
		// Some exports prefix the rank header with a BOM or year noise.
		rankIdx = fuzzyColumn(header, src.RankCol)
		if rankIdx < 0 {
			return nil, err
		}
	}
	countryIdx := -1
	if src.CountryCol != "" {
		countryIdx, _ = indexOf(header, src.CountryCol)
	}

	data := make(map[string]*sourceEntry)
	for _, row := range rows {
		if nameIdx >= len(row) || rankIdx >= len(row) {
			continue
		}
		name := strings.TrimSpace(row[nameIdx])
		rank, ok := CleanRank(row[rankIdx])
		if name == "" || !ok {
			continue
		}

		entry := &sourceEntry{name: name, rank: rank}
		if countryIdx >= 0 && countryIdx < len(row) {
			entry.country = strings.TrimSpace(row[countryIdx])
		}
		data[NormalizeName(name)] = entry
	}

	return data, nil
}

func fuzzyColumn(header []string, name string) int {
	for i, h := range header {
		if strings.Contains(h, name) {
			return i
		}
	}
	return -1
}

func mean(values []int) float64 {
	sum := 0
	for _, v := range values {
		sum += v
	}
	m := float64(sum) / float64(len(values))
	return float64(int(m*100+0.5)) / 100
}

func median(values []int) float64 {
	sorted := append([]int(nil), values...)
	sort.Ints(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return float64(sorted[n/2])
	}
	return float64(sorted[n/2-1]+sorted[n/2]) / 2
}
