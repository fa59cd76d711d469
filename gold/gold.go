// Package gold is the aggregated layer: one summary parquet file of brewery
// counts grouped by brewery type, country, and state. The whole file is
// recomputed from the silver tree on every run; there is no incremental
// path to get subtly wrong.
package gold

import (
	"path/filepath"
	"sort"

	"github.com/pkg/errors"

	"github.com/brewkit/brewkit"
	"github.com/brewkit/brewkit/colfile"
)

// FileName is the single gold output file.
const FileName = "breweries_aggregated.parquet"

// Aggregate groups records by (brewery_type, country, state) and counts
// them. Rows come back sorted by country, state, then brewery type, and the
// counts always sum to len(records).
func Aggregate(records []brewkit.Normalized) []brewkit.TypeCount {
	type key struct {
		breweryType string
		country     string
		state       string
	}
	counts := make(map[key]int64)
	for _, rec := range records {
		counts[key{rec.BreweryType, rec.Country, rec.State}]++
	}

	rows := make([]brewkit.TypeCount, 0, len(counts))
	for k, n := range counts {
		rows = append(rows, brewkit.TypeCount{
			BreweryType:  k.breweryType,
			Country:      k.country,
			State:        k.state,
			BreweryCount: n,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Country != rows[j].Country {
			return rows[i].Country < rows[j].Country
		}
		if rows[i].State != rows[j].State {
			return rows[i].State < rows[j].State
		}
		return rows[i].BreweryType < rows[j].BreweryType
	})
	return rows
}

// Write writes the aggregate rows to the gold file under dir, replacing any
// previous run's output, and returns the file path.
func Write(dir string, rows []brewkit.TypeCount) (string, error) {
	path := filepath.Join(dir, FileName)
	w, err := colfile.NewWriter(path, new(brewkit.TypeCount))
	if err != nil {
		return "", err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			w.Close()
			return "", errors.Wrapf(err, "writing gold file '%s'", path)
		}
	}
	return path, errors.Wrapf(w.Close(), "closing gold file '%s'", path)
}

// Load reads the gold file under dir.
func Load(dir string) ([]brewkit.TypeCount, error) {
	path := filepath.Join(dir, FileName)
	var rows []brewkit.TypeCount
	err := colfile.Read(path, new(brewkit.TypeCount), &rows)
	return rows, err
}
