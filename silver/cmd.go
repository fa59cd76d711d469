package silver

import (
	"log"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/brewkit/brewkit"
	"github.com/brewkit/brewkit/bronze"
	"github.com/brewkit/brewkit/catalog"
	"github.com/brewkit/brewkit/termstat"
)

// Main holds the config for the transform command.
type Main struct {
	Bronze           string `help:"Bronze directory; the latest run file there is transformed."`
	Input            string `help:"Explicit raw JSON file to transform instead of the latest bronze run."`
	Silver           string `help:"Output directory for the partitioned parquet tree."`
	GeohashPrecision uint   `help:"Geohash length for records with coordinates."`
	Catalog          string `help:"Path to the bolt run catalog. Empty disables run recording."`
}

// NewMain gets a new Main with default values.
func NewMain() *Main {
	return &Main{
		Bronze:           "data/bronze",
		Silver:           "data/silver",
		GeohashPrecision: DefaultGeohashPrecision,
	}
}

// Run loads the bronze input, normalizes it, and writes the silver tree.
func (m *Main) Run() error {
	start := time.Now()

	var (
		records []map[string]interface{}
		path    string
		err     error
	)
	if m.Input != "" {
		path = m.Input
		records, err = bronze.LoadRun(path)
	} else {
		records, path, err = bronze.LoadLatest(m.Bronze)
	}
	if err != nil {
		return errors.Wrap(err, "loading bronze input")
	}
	if len(records) == 0 {
		return errors.Errorf("bronze file '%s' is empty, aborting transformation", path)
	}
	log.Printf("loaded %d records from %s", len(records), path)

	stats := termstat.NewCollector(os.Stderr, 10*time.Second)
	defer stats.Stop()
	norm := NewNormalizer()
	norm.Log = brewkit.StdLogger{Logger: log.Default()}
	norm.Stats = stats
	if m.GeohashPrecision > 0 {
		norm.GeohashPrecision = m.GeohashPrecision
	}
	normalized := norm.Normalize(records)
	if len(normalized) == 0 {
		return errors.New("no records survived normalization")
	}

	parts, err := WriteTree(m.Silver, normalized)
	if err != nil {
		return errors.Wrap(err, "writing silver tree")
	}
	log.Printf("wrote %d records across %d partitions under %s", len(normalized), parts, m.Silver)

	if m.Catalog != "" {
		run := catalog.Run{
			Stage:    brewkit.LayerSilver,
			Started:  start,
			Duration: time.Since(start),
			Rows:     len(normalized),
			Output:   m.Silver,
		}
		if err := catalog.Record(m.Catalog, run); err != nil {
			log.Printf("recording run in catalog: %v", err)
		}
	}
	return nil
}
