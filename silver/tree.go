package silver

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/brewkit/brewkit"
	"github.com/brewkit/brewkit/colfile"
)

// PartFileName is the parquet file written inside each partition directory.
const PartFileName = "breweries.parquet"

// PartitionPath returns the directory for a (country, state) partition.
func PartitionPath(dir, country, state string) string {
	return filepath.Join(dir, "country="+sanitize(country), "state="+sanitize(state))
}

// sanitize keeps partition values from escaping their directory. Slashes do
// occur in the wild ("Carinthia/Kärnten").
func sanitize(s string) string {
	return strings.NewReplacer("/", "_", string(os.PathSeparator), "_").Replace(s)
}

// WriteTree writes records under dir partitioned by country then state, one
// parquet file per partition. Grouping is by sanitized directory path, not by
// raw key, so key values that sanitize to the same path share a file rather
// than overwrite each other; the true values stay in the file columns.
// Partition directories being rewritten are removed first, so rerunning a
// transform for the same bronze input is idempotent. Returns the number of
// partitions written.
func WriteTree(dir string, records []brewkit.Normalized) (int, error) {
	parts := make(map[string][]brewkit.Normalized)
	for _, rec := range records {
		pdir := PartitionPath(dir, rec.Country, rec.State)
		parts[pdir] = append(parts[pdir], rec)
	}

	for pdir, rows := range parts {
		if err := os.RemoveAll(pdir); err != nil {
			return 0, errors.Wrapf(err, "clearing partition '%s'", pdir)
		}
		if err := writePartition(pdir, rows); err != nil {
			return 0, err
		}
	}
	return len(parts), nil
}

func writePartition(pdir string, rows []brewkit.Normalized) error {
	path := filepath.Join(pdir, PartFileName)
	w, err := colfile.NewWriter(path, new(brewkit.Normalized))
	if err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			w.Close()
			return errors.Wrapf(err, "writing partition '%s'", pdir)
		}
	}
	return errors.Wrapf(w.Close(), "closing partition '%s'", pdir)
}

// ReadPartition reads back the records of one (country, state) partition.
func ReadPartition(dir, country, state string) ([]brewkit.Normalized, error) {
	path := filepath.Join(PartitionPath(dir, country, state), PartFileName)
	var records []brewkit.Normalized
	err := colfile.Read(path, new(brewkit.Normalized), &records)
	return records, err
}

// ReadTree reads every parquet file under dir into one slice. Files are
// visited in sorted path order, so output is deterministic.
func ReadTree(dir string) ([]brewkit.Normalized, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.HasSuffix(path, ".parquet") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walking silver tree '%s'", dir)
	}
	if len(files) == 0 {
		return nil, errors.Errorf("no parquet files found under '%s'", dir)
	}
	sort.Strings(files)

	var all []brewkit.Normalized
	for _, f := range files {
		var records []brewkit.Normalized
		if err := colfile.Read(f, new(brewkit.Normalized), &records); err != nil {
			return nil, err
		}
		all = append(all, records...)
	}
	return all, nil
}
