package perfctr

import (
	"errors"
	"regexp"
	"strconv"

	"go.uber.org/zap"
)

// A Record is one parsed run. Values is aligned with the Columns of
// the Group it was built for and always has the same length.
type Record struct {
	Command     string
	Benchmark   string
	ProblemSize int
	Threads     int
	Blocks      Value
	Runtime     Value
	Values      []Value
}

// Row formats r in the column order of Group.Header.
func (r *Record) Row() []string {
	row := make([]string, 0, len(BaseColumns)+len(r.Values))
	row = append(row,
		r.Benchmark,
		strconv.Itoa(r.ProblemSize),
		strconv.Itoa(r.Threads),
		r.Blocks.String(),
		r.Runtime.String(),
	)
	for _, v := range r.Values {
		row = append(row, v.String())
	}
	return row
}

var elapsedRe = regexp.MustCompile(`Elapsed time is : (\d+\.\d+)`)

// ParseElapsed returns the wall-clock time the benchmark itself
// reported, or a null Float.
func ParseElapsed(block string) Value {
	m := elapsedRe.FindStringSubmatch(block)
	if m == nil {
		return Null(Float)
	}
	v, err := Coerce(m[1], Float)
	if err != nil {
		return Null(Float)
	}
	return v
}

// A Builder turns run blocks into Records for one Group.
type Builder struct {
	Group  *Group
	Logger *zap.SugaredLogger

	// Strict rejects a run if any of its metric cells fails to
	// convert. Otherwise such cells become null.
	Strict bool
}

func (b *Builder) logger() *zap.SugaredLogger {
	if b.Logger == nil {
		return zap.NewNop().Sugar()
	}
	return b.Logger
}

// Build parses block. It fails if the header cannot be parsed, or, in
// strict mode, if a metric cell cannot be converted.
func (b *Builder) Build(block string) (Record, error) {
	cmd, err := ParseCommand(block)
	if err != nil {
		return Record{}, err
	}
	b.logger().Debugf("processing data from run: %v", cmd.Line)

	rec := Record{
		Command:     cmd.Line,
		Benchmark:   cmd.Benchmark,
		ProblemSize: cmd.ProblemSize,
		Threads:     cmd.Threads,
		Blocks:      cmd.Blocks,
		Runtime:     ParseElapsed(block),
		Values:      make([]Value, len(b.Group.Columns)),
	}
	var errs []error
	for i, col := range b.Group.Columns {
		v, err := b.Group.extractor(i).Extract(block, col.Stat, col.Type)
		if err != nil {
			b.logger().Warnw("metric value is not a number",
				"group", b.Group.Name,
				"column", col.Name,
				"run", cmd.Line,
				"error", err,
			)
			errs = append(errs, err)
		}
		rec.Values[i] = v
	}
	if b.Strict && len(errs) > 0 {
		return Record{}, errors.Join(errs...)
	}
	return rec, nil
}
