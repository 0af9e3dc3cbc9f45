package perfctr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGroupHeader(t *testing.T) {
	group := flopsGroup(t, "out.csv")
	require.Equal(t, []string{
		"Benchmark", "Problem Size", "Number of threads", "Number of blocks", "Runtime (chrono)",
		"Runtime (RDTSC)", "Instruction Count", "CPI",
	}, group.Header())
	require.Equal(t, 1, group.Index("Instruction Count"))
	require.Equal(t, -1, group.Index("Benchmark"))
}

func TestGroupDefaults(t *testing.T) {
	group, err := NewGroup("L2CACHE", "l2cache", "l2.csv", Column{Name: "L2 accesses", Metric: "L2 accesses"})
	require.Nil(t, err)
	require.Equal(t, Sum, group.Columns[0].Stat)
	require.Equal(t, Float, group.Columns[0].Type)
}

func TestGroupDoesNotAliasColumns(t *testing.T) {
	columns := []Column{{Name: "CPI", Metric: "CPI"}}
	group, err := NewGroup("FLOPS_DP", "flops_dp", "f.csv", columns...)
	require.Nil(t, err)
	columns[0].Name = "changed"
	require.Equal(t, "CPI", group.Columns[0].Name)
}

func TestGroupValidation(t *testing.T) {
	cpi := Column{Name: "CPI", Metric: "CPI"}
	for _, tc := range []struct {
		name, keyword, output string
		columns               []Column
	}{
		{"", "k", "o", []Column{cpi}},
		{"G", "", "o", []Column{cpi}},
		{"G", "k", "", []Column{cpi}},
		{"G", "k", "o", nil},
		{"G", "k", "o", []Column{cpi, cpi}},
		{"G", "k", "o", []Column{{Name: "Benchmark", Metric: "x"}}},
		{"G", "k", "o", []Column{{Name: "x"}}},
		{"G", "k", "o", []Column{{Metric: "x"}}},
		{"G", "k", "o", []Column{{Name: "x", Metric: "x", Stat: Statistic(4)}}},
		{"G", "k", "o", []Column{{Name: "x", Metric: "x", Type: ValueType(2)}}},
	} {
		_, err := NewGroup(tc.name, tc.keyword, tc.output, tc.columns...)
		require.ErrorIs(t, err, ErrInvalidGroup, "%+v", tc)
	}
}
