// Package colfile wraps the parquet-go writer and reader with the small
// surface the pipeline needs: write a slice of tagged structs to a file,
// read a whole file back. Compression is always SNAPPY.
package colfile

import (
	"os"
	"path/filepath"
	"reflect"

	"github.com/pkg/errors"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
)

// Writer writes rows of a single tagged struct type to one parquet file.
type Writer struct {
	fw source.ParquetFile
	pw *writer.ParquetWriter
}

// NewWriter creates the file at path (and any missing parent directories)
// and returns a Writer for rows shaped like proto, which must be a pointer
// to a struct with parquet tags.
func NewWriter(path string, proto interface{}) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrapf(err, "creating directory for '%s'", path)
	}
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return nil, errors.Wrapf(err, "creating '%s'", path)
	}
	pw, err := writer.NewParquetWriter(fw, proto, 1)
	if err != nil {
		fw.Close()
		return nil, errors.Wrapf(err, "creating parquet writer for '%s'", path)
	}
	pw.RowGroupSize = 128 * 1024 * 1024
	pw.CompressionType = parquet.CompressionCodec_SNAPPY
	return &Writer{fw: fw, pw: pw}, nil
}

// Write buffers one row.
func (w *Writer) Write(row interface{}) error {
	return errors.Wrap(w.pw.Write(row), "writing row")
}

// Close flushes buffered rows, writes the footer, and closes the file. The
// file is not valid parquet until Close returns nil.
func (w *Writer) Close() error {
	if err := w.pw.WriteStop(); err != nil {
		w.fw.Close()
		return errors.Wrap(err, "finalizing parquet file")
	}
	return errors.Wrap(w.fw.Close(), "closing file")
}

// Read reads every row of the parquet file at path into dst, which must be a
// pointer to a slice of the struct type proto points at. dst is resized to
// the file's row count.
func Read(path string, proto interface{}, dst interface{}) error {
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Slice {
		return errors.Errorf("dst must be a pointer to a slice, got %T", dst)
	}

	fr, err := local.NewLocalFileReader(path)
	if err != nil {
		return errors.Wrapf(err, "opening '%s'", path)
	}
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, proto, 1)
	if err != nil {
		return errors.Wrapf(err, "creating parquet reader for '%s'", path)
	}
	defer pr.ReadStop()

	num := int(pr.GetNumRows())
	sl := v.Elem()
	sl.Set(reflect.MakeSlice(sl.Type(), num, num))
	if num == 0 {
		return nil
	}
	return errors.Wrapf(pr.Read(dst), "reading '%s'", path)
}
