// Package quality checks the gold output before anyone downstream reads it.
// It is the one stage that fails a run on data content rather than on an
// infrastructure fault; a failed check halts the pipeline so partial or
// degraded output is never published.
package quality

import (
	"github.com/pkg/errors"

	"github.com/brewkit/brewkit/gold"
)

// Summary describes a gold file that passed the check.
type Summary struct {
	Groups    int
	Breweries int64
	Countries int
	States    int
}

// Check loads the gold file under dir and asserts it is publishable: at
// least one row, counts that sum above zero, and no blank grouping columns.
func Check(dir string) (Summary, error) {
	rows, err := gold.Load(dir)
	if err != nil {
		return Summary{}, errors.Wrap(err, "loading gold output")
	}
	if len(rows) == 0 {
		return Summary{}, errors.New("data quality check failed: gold output has no rows")
	}

	var total int64
	countries := make(map[string]struct{})
	states := make(map[string]struct{})
	for i, row := range rows {
		if row.BreweryType == "" || row.Country == "" || row.State == "" {
			return Summary{}, errors.Errorf(
				"data quality check failed: blank grouping column in row %d (%+v)", i, row)
		}
		total += row.BreweryCount
		countries[row.Country] = struct{}{}
		states[row.State] = struct{}{}
	}
	if total == 0 {
		return Summary{}, errors.New("data quality check failed: brewery counts sum to zero")
	}

	return Summary{
		Groups:    len(rows),
		Breweries: total,
		Countries: len(countries),
		States:    len(states),
	}, nil
}
