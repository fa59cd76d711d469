package pipeline_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brewkit/brewkit/catalog"
	"github.com/brewkit/brewkit/gold"
	"github.com/brewkit/brewkit/pipeline"
	"github.com/brewkit/brewkit/silver"
)

const page1 = `[
	{"id": "1", "name": "Brew A", "brewery_type": "micro", "state": "California", "country": "United States", "city": "Los Angeles", "latitude": "34.05", "longitude": "-118.24"},
	{"id": "2", "name": "Brew B", "brewery_type": "micro", "state": "California", "country": "United States", "city": "San Diego"},
	{"id": "3", "name": "Brew C", "brewery_type": "nano", "state": "Texas", "country": "United States", "city": "Austin"}
]`

const page2 = `[
	{"id": "4", "name": "Brew D", "brewery_type": "brewpub", "state": "Laois", "country": "Ireland"},
	{"id": "5", "name": "Brew E", "brewery_type": null, "state": null, "country": "United States"}
]`

func apiServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page") {
		case "1":
			fmt.Fprint(w, page1)
		case "2":
			fmt.Fprint(w, page2)
		default:
			fmt.Fprint(w, "[]")
		}
	}))
}

func TestPipelineEndToEnd(t *testing.T) {
	srv := apiServer()
	defer srv.Close()

	dir := t.TempDir()
	m := pipeline.NewMain()
	m.BaseURL = srv.URL
	m.Bronze = filepath.Join(dir, "bronze")
	m.Silver = filepath.Join(dir, "silver")
	m.Gold = filepath.Join(dir, "gold")
	m.Catalog = filepath.Join(dir, "runs.db")

	require.NoError(t, m.Run())

	// 5 raw records, 1 dropped for missing keys
	records, err := silver.ReadTree(m.Silver)
	require.NoError(t, err)
	require.Len(t, records, 4)

	// partitioning is lossless
	ca, err := silver.ReadPartition(m.Silver, "United States", "California")
	require.NoError(t, err)
	require.Len(t, ca, 2)

	// aggregation counts sum to the normalized total
	rows, err := gold.Load(m.Gold)
	require.NoError(t, err)
	var total int64
	for _, row := range rows {
		total += row.BreweryCount
	}
	require.Equal(t, int64(len(records)), total)

	// all four stages recorded their run
	c, err := catalog.Open(m.Catalog)
	require.NoError(t, err)
	defer c.Close()
	runs, err := c.Runs()
	require.NoError(t, err)
	require.Len(t, runs, 4)
	stages := []string{"bronze", "silver", "gold", "check"}
	for i, r := range runs {
		require.Equal(t, stages[i], r.Stage)
	}
}

func TestPipelineStopsAtFirstError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	dir := t.TempDir()
	m := pipeline.NewMain()
	m.BaseURL = srv.URL
	m.Bronze = filepath.Join(dir, "bronze")
	m.Silver = filepath.Join(dir, "silver")
	m.Gold = filepath.Join(dir, "gold")
	m.Catalog = ""

	err := m.Run()
	require.Error(t, err)
	require.Contains(t, err.Error(), "fetch stage")

	// later layers must not exist
	_, err = silver.ReadTree(m.Silver)
	require.Error(t, err)
	_, err = gold.Load(m.Gold)
	require.Error(t, err)
}

func TestPipelineRerunIsIdempotent(t *testing.T) {
	srv := apiServer()
	defer srv.Close()

	dir := t.TempDir()
	m := pipeline.NewMain()
	m.BaseURL = srv.URL
	m.Bronze = filepath.Join(dir, "bronze")
	m.Silver = filepath.Join(dir, "silver")
	m.Gold = filepath.Join(dir, "gold")
	m.Catalog = ""

	require.NoError(t, m.Run())
	first, err := silver.ReadTree(m.Silver)
	require.NoError(t, err)

	require.NoError(t, m.Run())
	second, err := silver.ReadTree(m.Silver)
	require.NoError(t, err)
	require.Equal(t, len(first), len(second), "rerun must not duplicate silver rows")
}
