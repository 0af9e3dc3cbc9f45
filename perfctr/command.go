package perfctr

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var ErrHeaderUnparsable = errors.New("header line does not match likwid-perfctr invocation")

// A Command is the benchmark invocation recorded in a run block header,
// e.g. "-m -g FLOPS_DP -C N:0-3 ./benchmark-blocked-omp -N 512 -B 16".
type Command struct {
	Line        string
	Benchmark   string
	Threads     int
	ProblemSize int
	Blocks      Value // null Int when -B is absent
}

var commandRe = regexp.MustCompile(`^-m\s+-g\s+\w+\s+-C\s+N:0-(\d+)\s+\./benchmark-([\w-]+)\s+-N\s+(\d+)(?:\s+-B\s+(\d+))?`)

// ParseCommand parses the first non-empty line of block.
// Core ranges are zero-based and inclusive, so N:0-3 runs 4 threads.
func ParseCommand(block string) (Command, error) {
	line := headerLine(block)
	m := commandRe.FindStringSubmatch(line)
	if m == nil {
		return Command{}, fmt.Errorf("%w: %q", ErrHeaderUnparsable, line)
	}
	rangeEnd, err := strconv.Atoi(m[1])
	if err != nil {
		return Command{}, fmt.Errorf("%w: core range: %w", ErrHeaderUnparsable, err)
	}
	size, err := strconv.Atoi(m[3])
	if err != nil {
		return Command{}, fmt.Errorf("%w: problem size: %w", ErrHeaderUnparsable, err)
	}
	cmd := Command{
		Line:        Separator + " " + line,
		Benchmark:   m[2],
		Threads:     rangeEnd + 1,
		ProblemSize: size,
		Blocks:      Null(Int),
	}
	if m[4] != "" {
		blocks, err := strconv.ParseInt(m[4], 10, 64)
		if err != nil {
			return Command{}, fmt.Errorf("%w: block size: %w", ErrHeaderUnparsable, err)
		}
		cmd.Blocks = IntValue(blocks)
	}
	return cmd, nil
}

func headerLine(block string) string {
	for line := range strings.Lines(block) {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
