package bronze

import (
	"log"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/brewkit/brewkit"
	"github.com/brewkit/brewkit/catalog"
	"github.com/brewkit/brewkit/openbrewery"
	"github.com/brewkit/brewkit/s3"
	"github.com/brewkit/brewkit/termstat"
)

// Main holds the config for the fetch command.
type Main struct {
	BaseURL  string `help:"Base URL of the brewery listing API."`
	PerPage  int    `help:"Records to request per API page."`
	Bronze   string `help:"Directory the raw JSON run file is written to."`
	S3Bucket string `flag:"s3-bucket" help:"Optional S3 bucket to archive the raw file to after writing."`
	S3Region string `flag:"s3-region" help:"AWS region for the archive bucket."`
	Catalog  string `help:"Path to the bolt run catalog. Empty disables run recording."`

	archiver *s3.Archiver
}

// NewMain gets a new Main with default values.
func NewMain() *Main {
	return &Main{
		BaseURL:  openbrewery.DefaultBaseURL,
		PerPage:  openbrewery.DefaultPerPage,
		Bronze:   "data/bronze",
		S3Region: "us-east-1",
	}
}

// SetArchiver overrides the S3 archiver built from the flags, used by tests.
func (m *Main) SetArchiver(a *s3.Archiver) {
	m.archiver = a
}

// Run fetches every record from the API and writes one bronze run file.
// Network and HTTP failures propagate; the orchestrator owns retries.
func (m *Main) Run() error {
	start := time.Now()
	stats := termstat.NewCollector(os.Stderr, 10*time.Second)
	defer stats.Stop()
	client := openbrewery.NewClient(m.BaseURL,
		openbrewery.OptClientPerPage(m.PerPage),
		openbrewery.OptClientLogger(brewkit.StdLogger{Logger: log.Default()}),
		openbrewery.OptClientStats(stats),
	)
	records, err := client.FetchAll()
	if err != nil {
		return errors.Wrap(err, "fetching breweries")
	}
	if len(records) == 0 {
		return errors.New("no records fetched from API, aborting ingestion")
	}

	path, err := WriteRun(m.Bronze, records, start)
	if err != nil {
		return errors.Wrap(err, "writing bronze run")
	}
	log.Printf("saved %d records to bronze layer: %s", len(records), path)

	if m.S3Bucket != "" {
		if m.archiver == nil {
			m.archiver, err = s3.NewArchiver(m.S3Region, m.S3Bucket)
			if err != nil {
				return errors.Wrap(err, "creating archiver")
			}
		}
		key, err := m.archiver.Archive(path)
		if err != nil {
			return errors.Wrap(err, "archiving bronze run")
		}
		log.Printf("archived bronze run to s3://%s/%s", m.S3Bucket, key)
	}

	if m.Catalog != "" {
		run := catalog.Run{
			Stage:    brewkit.LayerBronze,
			Started:  start,
			Duration: time.Since(start),
			Rows:     len(records),
			Output:   path,
		}
		if err := catalog.Record(m.Catalog, run); err != nil {
			log.Printf("recording run in catalog: %v", err)
		}
	}
	return nil
}
