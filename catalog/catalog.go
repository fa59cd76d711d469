// Package catalog is a boltdb-backed ledger of pipeline runs. Stages append
// a record after a successful run; the runs subcommand reads the history
// back. The catalog is advisory: stage correctness never depends on it, and
// stages that cannot reach it log and carry on.
package catalog

import (
	"encoding/binary"
	"encoding/json"
	"time"

	"github.com/boltdb/bolt"
	"github.com/pkg/errors"
)

var runsBucket = []byte("runs")

// Run is one completed stage execution.
type Run struct {
	Stage    string        `json:"stage"`
	Started  time.Time     `json:"started"`
	Duration time.Duration `json:"duration"`
	Rows     int           `json:"rows"`
	Output   string        `json:"output"`
}

// Catalog stores Runs in a bolt database.
type Catalog struct {
	db *bolt.DB
}

// Open opens (creating if necessary) the catalog at filename.
func Open(filename string) (*Catalog, error) {
	db, err := bolt.Open(filename, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "opening catalog '%s'", filename)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(runsBucket)
		return errors.Wrap(err, "creating runs bucket")
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Catalog{db: db}, nil
}

// Close syncs and closes the underlying database.
func (c *Catalog) Close() error {
	if err := c.db.Sync(); err != nil {
		return errors.Wrap(err, "syncing catalog")
	}
	return c.db.Close()
}

// Append adds a run to the ledger.
func (c *Catalog) Append(r Run) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(runsBucket)
		seq, err := b.NextSequence()
		if err != nil {
			return errors.Wrap(err, "getting sequence")
		}
		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, seq)
		data, err := json.Marshal(r)
		if err != nil {
			return errors.Wrap(err, "encoding run")
		}
		return errors.Wrap(b.Put(key, data), "storing run")
	})
}

// Runs returns every recorded run in insertion order.
func (c *Catalog) Runs() ([]Run, error) {
	var runs []Run
	err := c.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(runsBucket).ForEach(func(k, v []byte) error {
			var r Run
			if err := json.Unmarshal(v, &r); err != nil {
				return errors.Wrap(err, "decoding run")
			}
			runs = append(runs, r)
			return nil
		})
	})
	return runs, err
}

// Record is a convenience for stages: open the catalog at filename, append
// one run, and close again. Stages run to completion and exit, so holding
// the database open buys nothing.
func Record(filename string, r Run) error {
	c, err := Open(filename)
	if err != nil {
		return err
	}
	defer c.Close()
	return c.Append(r)
}
