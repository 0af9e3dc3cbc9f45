package perfctr

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// A Table holds the records of one Group in capture order.
type Table struct {
	Group   *Group
	Records []Record
}

func (t *Table) Header() []string { return t.Group.Header() }

func (t *Table) Rows() [][]string {
	rows := make([][]string, len(t.Records))
	for i := range t.Records {
		rows[i] = t.Records[i].Row()
	}
	return rows
}

// Column returns the values of the named metric column.
func (t *Table) Column(name string) ([]Value, bool) {
	i := t.Group.Index(name)
	if i < 0 {
		return nil, false
	}
	values := make([]Value, len(t.Records))
	for j := range t.Records {
		values[j] = t.Records[j].Values[i]
	}
	return values, true
}

func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header()); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows()); err != nil {
		return err
	}
	return cw.Error()
}

// WriteFile writes the table as CSV to path, creating parent
// directories as needed.
func (t *Table) WriteFile(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := t.WriteCSV(f); err != nil {
		f.Close()
		return fmt.Errorf("write %v: %w", path, err)
	}
	return f.Close()
}
