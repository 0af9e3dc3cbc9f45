package perfctr

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"go.uber.org/zap"
)

var ErrMissingFile = errors.New("log file not found")

// A Processor parses captured likwid-perfctr logs into one Table per
// Group. Unreadable files and unparsable runs are logged and skipped;
// they never stop the batch.
type Processor struct {
	Logger *zap.SugaredLogger
	Strict bool
}

func (p *Processor) logger() *zap.SugaredLogger {
	if p.Logger == nil {
		return zap.NewNop().Sugar()
	}
	return p.Logger
}

// ParseFile parses every run of the file at path. Runs with an
// unparsable header are skipped. The returned error is only about
// reading the file.
func (p *Processor) ParseFile(path string, group *Group) ([]Record, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %v", ErrMissingFile, path)
	} else if err != nil {
		return nil, err
	}

	builder := Builder{Group: group, Logger: p.logger().With("file", path), Strict: p.Strict}
	records := make([]Record, 0)
	i := 0
	for block := range SplitRuns(string(data)) {
		i++
		rec, err := builder.Build(block)
		if err != nil {
			p.logger().Warnw("skipping run", "file", path, "run", i, "error", err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// ProcessGroup parses the files whose path contains the group's files
// keyword, keeping the order of files and of runs within each file.
func (p *Processor) ProcessGroup(files []string, group *Group) *Table {
	table := &Table{Group: group}
	for _, path := range files {
		if !strings.Contains(path, group.FilesKeyword) {
			continue
		}
		records, err := p.ParseFile(path, group)
		if err != nil {
			p.logger().Warnw("skipping file", "group", group.Name, "file", path, "error", err)
			continue
		}
		table.Records = append(table.Records, records...)
	}
	return table
}

// Run processes every group and writes each non-empty table to the
// group's output file. Groups without records produce no file. The
// returned tables are the written ones, in group order; the error
// joins the write failures.
func (p *Processor) Run(files []string, groups []*Group) ([]*Table, error) {
	var tables []*Table
	var errs []error
	for _, group := range groups {
		p.logger().Infof("processing group %v", group.Name)
		table := p.ProcessGroup(files, group)
		if len(table.Records) == 0 {
			p.logger().Warnw("no data extracted", "group", group.Name)
			continue
		}
		if err := table.WriteFile(group.OutputFile); err != nil {
			p.logger().Errorw("failed to write group output", "group", group.Name, "path", group.OutputFile, "error", err)
			errs = append(errs, fmt.Errorf("group %v: %w", group.Name, err))
			continue
		}
		p.logger().Infof("created %v with %v runs", group.OutputFile, len(table.Records))
		tables = append(tables, table)
	}
	return tables, errors.Join(errs...)
}
