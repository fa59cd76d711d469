package gold

import (
	"log"
	"time"

	"github.com/pkg/errors"

	"github.com/brewkit/brewkit"
	"github.com/brewkit/brewkit/catalog"
	"github.com/brewkit/brewkit/silver"
)

// Main holds the config for the aggregate command.
type Main struct {
	Silver  string `help:"Silver directory holding the partitioned parquet tree."`
	Gold    string `help:"Output directory for the aggregated parquet file."`
	Catalog string `help:"Path to the bolt run catalog. Empty disables run recording."`
}

// NewMain gets a new Main with default values.
func NewMain() *Main {
	return &Main{
		Silver: "data/silver",
		Gold:   "data/gold",
	}
}

// Run recomputes the gold summary from the whole silver tree.
func (m *Main) Run() error {
	start := time.Now()

	records, err := silver.ReadTree(m.Silver)
	if err != nil {
		return errors.Wrap(err, "loading silver layer")
	}
	if len(records) == 0 {
		return errors.New("silver layer is empty, cannot aggregate")
	}
	log.Printf("loaded silver layer: %d rows", len(records))

	rows := Aggregate(records)
	path, err := Write(m.Gold, rows)
	if err != nil {
		return errors.Wrap(err, "writing gold output")
	}
	log.Printf("aggregated %d rows into %d groups: %s", len(records), len(rows), path)

	if m.Catalog != "" {
		run := catalog.Run{
			Stage:    brewkit.LayerGold,
			Started:  start,
			Duration: time.Since(start),
			Rows:     len(rows),
			Output:   path,
		}
		if err := catalog.Record(m.Catalog, run); err != nil {
			log.Printf("recording run in catalog: %v", err)
		}
	}
	return nil
}
