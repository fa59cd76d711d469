// Package bronze is the raw layer: one immutable timestamped JSON file per
// ingestion run, holding every record the API returned, untouched.
package bronze

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pkg/errors"
)

// FilePrefix is shared by every bronze run file; discovery globs on it.
const FilePrefix = "breweries_raw_"

const timestampLayout = "20060102_150405"

// Filename returns the run file name for an ingestion that started at t.
// The timestamp sorts lexically, so the newest run is always the last file.
func Filename(t time.Time) string {
	return FilePrefix + t.Format(timestampLayout) + ".json"
}

// WriteRun persists records as one pretty-printed JSON array under dir,
// named for the ingestion time, and returns the file path. The file is
// immutable once written; reruns produce new files.
func WriteRun(dir string, records []map[string]interface{}, t time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrapf(err, "creating bronze directory '%s'", dir)
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "encoding records")
	}
	path := filepath.Join(dir, Filename(t))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", errors.Wrapf(err, "writing '%s'", path)
	}
	return path, nil
}

// LatestRun returns the path of the most recent run file in dir.
func LatestRun(dir string) (string, error) {
	files, err := filepath.Glob(filepath.Join(dir, FilePrefix+"*.json"))
	if err != nil {
		return "", errors.Wrapf(err, "globbing '%s'", dir)
	}
	if len(files) == 0 {
		return "", errors.Errorf("no bronze files found in '%s'", dir)
	}
	sort.Strings(files)
	return files[len(files)-1], nil
}

// LoadRun reads a run file back into raw records.
func LoadRun(path string) ([]map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading '%s'", path)
	}
	var records []map[string]interface{}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrapf(err, "decoding '%s'", path)
	}
	return records, nil
}

// LoadLatest loads the most recent run file in dir, returning the records
// and the path they came from.
func LoadLatest(dir string) ([]map[string]interface{}, string, error) {
	path, err := LatestRun(dir)
	if err != nil {
		return nil, "", err
	}
	records, err := LoadRun(path)
	return records, path, err
}
