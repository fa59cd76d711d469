// Package pipeline chains the four stages in order inside one process:
// fetch, transform, aggregate, check. It exists for local runs and tests;
// in production an orchestrator invokes each stage as its own task so it
// can retry them independently.
package pipeline

import (
	"log"
	"time"

	"github.com/pkg/errors"

	"github.com/brewkit/brewkit/bronze"
	"github.com/brewkit/brewkit/gold"
	"github.com/brewkit/brewkit/openbrewery"
	"github.com/brewkit/brewkit/quality"
	"github.com/brewkit/brewkit/silver"
)

// Main holds the config for the pipeline command.
type Main struct {
	BaseURL          string `help:"Base URL of the brewery listing API."`
	PerPage          int    `help:"Records to request per API page."`
	Bronze           string `help:"Directory for raw JSON run files."`
	Silver           string `help:"Directory for the partitioned parquet tree."`
	Gold             string `help:"Directory for the aggregated parquet file."`
	S3Bucket         string `flag:"s3-bucket" help:"Optional S3 bucket to archive bronze files to."`
	S3Region         string `flag:"s3-region" help:"AWS region for the archive bucket."`
	GeohashPrecision uint   `help:"Geohash length for records with coordinates."`
	Catalog          string `help:"Path to the bolt run catalog. Empty disables run recording."`
}

// NewMain gets a new Main with default values.
func NewMain() *Main {
	return &Main{
		BaseURL:          openbrewery.DefaultBaseURL,
		PerPage:          openbrewery.DefaultPerPage,
		Bronze:           "data/bronze",
		Silver:           "data/silver",
		Gold:             "data/gold",
		S3Region:         "us-east-1",
		GeohashPrecision: silver.DefaultGeohashPrecision,
		Catalog:          "brewkit_runs.db",
	}
}

// Run executes the stages in order, stopping at the first error. No stage
// is retried; a failed run leaves earlier layers in place for inspection.
func (m *Main) Run() error {
	fetch := bronze.NewMain()
	fetch.BaseURL = m.BaseURL
	fetch.PerPage = m.PerPage
	fetch.Bronze = m.Bronze
	fetch.S3Bucket = m.S3Bucket
	fetch.S3Region = m.S3Region
	fetch.Catalog = m.Catalog

	transform := silver.NewMain()
	transform.Bronze = m.Bronze
	transform.Silver = m.Silver
	transform.GeohashPrecision = m.GeohashPrecision
	transform.Catalog = m.Catalog

	aggregate := gold.NewMain()
	aggregate.Silver = m.Silver
	aggregate.Gold = m.Gold
	aggregate.Catalog = m.Catalog

	check := quality.NewMain()
	check.Gold = m.Gold
	check.Catalog = m.Catalog

	stages := []struct {
		name string
		run  func() error
	}{
		{"fetch", fetch.Run},
		{"transform", transform.Run},
		{"aggregate", aggregate.Run},
		{"check", check.Run},
	}
	for _, stage := range stages {
		start := time.Now()
		log.Printf("starting %s stage", stage.name)
		if err := stage.run(); err != nil {
			return errors.Wrapf(err, "%s stage", stage.name)
		}
		log.Printf("%s stage done in %v", stage.name, time.Since(start))
	}
	return nil
}
