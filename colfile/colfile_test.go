package colfile_test

import (
	"path/filepath"
	"testing"

	"github.com/brewkit/brewkit"
	"github.com/brewkit/brewkit/colfile"
)

func TestWriteRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "breweries.parquet")
	lat, lon := 30.26, -97.74

	w, err := colfile.NewWriter(path, new(brewkit.Normalized))
	if err != nil {
		t.Fatalf("creating writer: %v", err)
	}
	rows := []brewkit.Normalized{
		{ID: "1", Name: "Brew A", BreweryType: "micro", Country: "United States", State: "Texas", Latitude: &lat, Longitude: &lon, Geohash: "9v6kpt"},
		{ID: "2", Name: "Brew B", BreweryType: "nano", Country: "United States", State: "Texas", City: "unknown"},
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			t.Fatalf("writing row: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing writer: %v", err)
	}

	var got []brewkit.Normalized
	if err := colfile.Read(path, new(brewkit.Normalized), &got); err != nil {
		t.Fatalf("reading: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if got[0].ID != "1" || got[0].Geohash != "9v6kpt" {
		t.Fatalf("unexpected first row: %#v", got[0])
	}
	if got[0].Latitude == nil || *got[0].Latitude != lat {
		t.Fatalf("optional latitude did not round trip: %#v", got[0].Latitude)
	}
	if got[1].Latitude != nil {
		t.Fatalf("nil latitude should stay nil, got %v", *got[1].Latitude)
	}
}

func TestReadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.parquet")
	w, err := colfile.NewWriter(path, new(brewkit.TypeCount))
	if err != nil {
		t.Fatalf("creating writer: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing writer: %v", err)
	}

	got := []brewkit.TypeCount{{BreweryType: "stale"}}
	if err := colfile.Read(path, new(brewkit.TypeCount), &got); err != nil {
		t.Fatalf("reading: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected dst resized to 0 rows, got %d", len(got))
	}
}

func TestReadMissingFile(t *testing.T) {
	var got []brewkit.TypeCount
	err := colfile.Read(filepath.Join(t.TempDir(), "nope.parquet"), new(brewkit.TypeCount), &got)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestReadBadDst(t *testing.T) {
	var notSlice brewkit.TypeCount
	if err := colfile.Read("whatever.parquet", new(brewkit.TypeCount), &notSlice); err == nil {
		t.Fatal("expected error for non-slice dst")
	}
}
