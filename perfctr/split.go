package perfctr

import (
	"iter"
	"strings"
)

// Separator precedes the console output of every likwid-perfctr
// invocation in a captured log.
const Separator = "likwid-perfctr"

// SplitRuns yields the run blocks of a captured log in file order.
// A block is the text between one Separator and the next. Text before
// the first Separator and whitespace-only blocks are dropped.
func SplitRuns(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		start := strings.Index(text, Separator)
		if start < 0 {
			return
		}
		rest := text[start+len(Separator):]
		for {
			block, next, found := strings.Cut(rest, Separator)
			if strings.TrimSpace(block) != "" && !yield(block) {
				return
			}
			if !found {
				return
			}
			rest = next
		}
	}
}
