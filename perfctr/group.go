package perfctr

import (
	"errors"
	"fmt"
)

var ErrInvalidGroup = errors.New("invalid metric group")

// Base column names. Every output table starts with these, in this
// order.
const (
	ColBenchmark   = "Benchmark"
	ColProblemSize = "Problem Size"
	ColThreads     = "Number of threads"
	ColBlocks      = "Number of blocks"
	ColRuntime     = "Runtime (chrono)"
)

var BaseColumns = []string{ColBenchmark, ColProblemSize, ColThreads, ColBlocks, ColRuntime}

// A Column maps an output column to a metric of the likwid tables.
// The zero Stat is Sum and the zero Type is Float.
type Column struct {
	Name   string
	Metric string
	Stat   Statistic
	Type   ValueType
}

// A Group describes which metrics to extract from one category of log
// files and where to write them. Groups are created with NewGroup and
// must not be modified afterwards.
type Group struct {
	Name         string
	FilesKeyword string
	OutputFile   string
	Columns      []Column

	extractors []*Extractor
}

func NewGroup(name, filesKeyword, outputFile string, columns ...Column) (*Group, error) {
	g := &Group{
		Name:         name,
		FilesKeyword: filesKeyword,
		OutputFile:   outputFile,
		Columns:      append([]Column(nil), columns...),
	}
	if err := g.validate(); err != nil {
		return nil, err
	}
	g.extractors = make([]*Extractor, len(g.Columns))
	for i, col := range g.Columns {
		g.extractors[i] = NewExtractor(col.Metric)
	}
	return g, nil
}

func (g *Group) validate() error {
	switch {
	case g.Name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidGroup)
	case g.FilesKeyword == "":
		return fmt.Errorf("%w %v: empty files keyword", ErrInvalidGroup, g.Name)
	case g.OutputFile == "":
		return fmt.Errorf("%w %v: empty output file", ErrInvalidGroup, g.Name)
	case len(g.Columns) == 0:
		return fmt.Errorf("%w %v: no columns", ErrInvalidGroup, g.Name)
	}
	seen := make(map[string]bool, len(BaseColumns)+len(g.Columns))
	for _, name := range BaseColumns {
		seen[name] = true
	}
	for _, col := range g.Columns {
		if col.Name == "" || col.Metric == "" {
			return fmt.Errorf("%w %v: column %q has no name or metric", ErrInvalidGroup, g.Name, col.Name)
		}
		if seen[col.Name] {
			return fmt.Errorf("%w %v: duplicate column %q", ErrInvalidGroup, g.Name, col.Name)
		}
		seen[col.Name] = true
		if col.Stat < Sum || col.Stat > Avg {
			return fmt.Errorf("%w %v: column %q: %v", ErrInvalidGroup, g.Name, col.Name, col.Stat)
		}
		if col.Type != Float && col.Type != Int {
			return fmt.Errorf("%w %v: column %q: %v", ErrInvalidGroup, g.Name, col.Name, col.Type)
		}
	}
	return nil
}

// Header returns the output column names in emission order.
func (g *Group) Header() []string {
	header := append(make([]string, 0, len(BaseColumns)+len(g.Columns)), BaseColumns...)
	for _, col := range g.Columns {
		header = append(header, col.Name)
	}
	return header
}

// Index returns the position of the named metric column in g.Columns,
// or -1.
func (g *Group) Index(name string) int {
	for i, col := range g.Columns {
		if col.Name == name {
			return i
		}
	}
	return -1
}

func (g *Group) extractor(i int) *Extractor {
	if i < len(g.extractors) {
		return g.extractors[i]
	}
	return NewExtractor(g.Columns[i].Metric)
}
