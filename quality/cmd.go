package quality

import (
	"log"
	"time"

	"github.com/brewkit/brewkit"
	"github.com/brewkit/brewkit/catalog"
)

// Main holds the config for the check command.
type Main struct {
	Gold    string `help:"Gold directory holding the aggregated parquet file."`
	Catalog string `help:"Path to the bolt run catalog. Empty disables run recording."`
}

// NewMain gets a new Main with default values.
func NewMain() *Main {
	return &Main{
		Gold: "data/gold",
	}
}

// Run checks the gold output and reports the result. A failed check is a
// returned error, which the binary turns into a non-zero exit status.
func (m *Main) Run() error {
	start := time.Now()

	summary, err := Check(m.Gold)
	if err != nil {
		return err
	}
	log.Printf("data quality check passed: %d groups | %d breweries | %d countries | %d states",
		summary.Groups, summary.Breweries, summary.Countries, summary.States)

	if m.Catalog != "" {
		run := catalog.Run{
			Stage:    brewkit.LayerCheck,
			Started:  start,
			Duration: time.Since(start),
			Rows:     summary.Groups,
			Output:   m.Gold,
		}
		if err := catalog.Record(m.Catalog, run); err != nil {
			log.Printf("recording run in catalog: %v", err)
		}
	}
	return nil
}
