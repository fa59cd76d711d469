package bronze_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/brewkit/brewkit/bronze"
	"github.com/brewkit/brewkit/catalog"
)

func TestFetchStage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "1" {
			fmt.Fprint(w, `[{"id": "1", "brewery_type": "micro", "state": "Texas"}]`)
			return
		}
		fmt.Fprint(w, "[]")
	}))
	defer srv.Close()

	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "runs.db")
	m := bronze.NewMain()
	m.BaseURL = srv.URL
	m.Bronze = filepath.Join(dir, "bronze")
	m.Catalog = catalogPath

	if err := m.Run(); err != nil {
		t.Fatalf("running fetch stage: %v", err)
	}

	records, path, err := bronze.LoadLatest(m.Bronze)
	if err != nil {
		t.Fatalf("loading bronze output: %v", err)
	}
	if len(records) != 1 || records[0]["id"] != "1" {
		t.Fatalf("unexpected bronze contents: %#v", records)
	}

	c, err := catalog.Open(catalogPath)
	if err != nil {
		t.Fatalf("opening catalog: %v", err)
	}
	defer c.Close()
	runs, err := c.Runs()
	if err != nil {
		t.Fatalf("reading catalog: %v", err)
	}
	if len(runs) != 1 || runs[0].Stage != "bronze" || runs[0].Rows != 1 || runs[0].Output != path {
		t.Fatalf("unexpected catalog entry: %+v", runs)
	}
}

func TestFetchStageEmptyAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "[]")
	}))
	defer srv.Close()

	m := bronze.NewMain()
	m.BaseURL = srv.URL
	m.Bronze = t.TempDir()
	if err := m.Run(); err == nil {
		t.Fatal("expected error when API returns no records")
	}
}

func TestFetchStagePropagatesHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	m := bronze.NewMain()
	m.BaseURL = srv.URL
	m.Bronze = t.TempDir()
	if err := m.Run(); err == nil {
		t.Fatal("expected error to propagate for orchestrator retry")
	}
}
