package results

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// CSV writes rows as comma-separated values. Rows are held until Close so the
// header can cover every column any row carries; a row missing a column gets
// an empty field.
type CSV struct {
	w       *csv.Writer
	rows    []Row
	closers []io.Closer
	flush   func() error
}

// NewCSV writes to w. Close does not close w.
func NewCSV(w io.Writer) *CSV {
	return &CSV{w: csv.NewWriter(w)}
}

// CreateCSV creates the file at path. A ".zst" suffix compresses the output
// with zstd.
func CreateCSV(path string) (*CSV, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".zst") {
		bw := bufio.NewWriter(f)
		c := NewCSV(bw)
		c.flush = bw.Flush
		c.closers = []io.Closer{f}
		return c, nil
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	c := NewCSV(enc)
	c.closers = []io.Closer{enc, f}
	return c, nil
}

// Write queues one row.
func (c *CSV) Write(r Row) error {
	c.rows = append(c.rows, r)
	return nil
}

// Close writes the header and every queued row, then flushes buffered
// output and closes any file it opened.
func (c *CSV) Close() error {
	errs := []error{c.writeAll()}
	if c.flush != nil {
		errs = append(errs, c.flush())
	}
	for _, cl := range c.closers {
		errs = append(errs, cl.Close())
	}
	return errors.Join(errs...)
}

func (c *CSV) writeAll() error {
	if len(c.rows) == 0 {
		return nil
	}
	columns := UnionColumns(c.rows)
	if err := c.w.Write(columns); err != nil {
		return err
	}
	rec := make([]string, len(columns))
	for _, r := range c.rows {
		for i, col := range columns {
			rec[i] = r.Field(col)
		}
		if err := c.w.Write(rec); err != nil {
			return err
		}
	}
	c.rows = nil
	c.w.Flush()
	return c.w.Error()
}

// ReadCSV reads back a file written by CreateCSV, decompressing ".zst" files.
func ReadCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		r = dec
	}
	return csv.NewReader(r).ReadAll()
}
