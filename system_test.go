package main

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sivukhin/likwid-parser/perfctr"
)

const l3Run = `likwid-perfctr -m -g L3CACHE -C N:0-1 ./benchmark-blocked-omp -N 256 -B 4
 Elapsed time is : 0.250000
+------------------------------+---------+----------+---------+---------+----------+
|             Event            | Counter |    Sum   |   Min   |   Max   |    Avg   |
+------------------------------+---------+----------+---------+---------+----------+
| L3_ACCESS_ALL_TYPES STAT     |  CPMC0  |   500000 |  240000 |  260000 |   250000 |
+------------------------------+---------+----------+---------+---------+----------+
likwid-perfctr -m -g L3CACHE -C N:0-0 ./benchmark-blas -N 256
 Elapsed time is : 0.100000
| L3_ACCESS_ALL_TYPES |  CPMC0  |   123456 |
`

func TestHostStat(t *testing.T) {
	info := HostStat()
	require.Equal(t, runtime.GOARCH, info.Arch)
	require.Contains(t, info.Meta(), "hostname")
}

func TestSystemRun(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "blocked-l3cache.out")
	require.Nil(t, os.WriteFile(input, []byte(l3Run), 0o644))
	output := filepath.Join(dir, "data", "l3_cache_data.csv")
	group, err := perfctr.NewGroup("L3CACHE", "l3cache", output,
		perfctr.Column{Name: L3AccessAll, Metric: "L3_ACCESS_ALL_TYPES", Type: perfctr.Int},
	)
	require.Nil(t, err)

	dsn := filepath.Join(dir, "results.db")
	system := System{
		processor: perfctr.Processor{Logger: Logger},
		storage:   Storage{Batch: "test-batch"},
		groups:    []*perfctr.Group{group},
		files:     []string{input, filepath.Join(dir, "missing-l3cache.out")},
		dsn:       dsn,
	}
	tables, err := system.Run()
	require.Nil(t, err)
	require.Len(t, tables, 1)

	csv, err := os.ReadFile(output)
	require.Nil(t, err)
	require.Equal(t, "Benchmark,Problem Size,Number of threads,Number of blocks,Runtime (chrono),L3_ACCESS_ALL_TYPES\n"+
		"blocked-omp,256,2,4,0.25,500000\n"+
		"blas,256,1,,0.1,123456\n", string(csv))

	db, err := system.storage.ConnectDb(dsn)
	require.Nil(t, err)
	defer db.Close()
	var count, sum int
	require.Nil(t, db.QueryRow(`SELECT count(*), sum("L3_ACCESS_ALL_TYPES") FROM likwid_l3cache`).Scan(&count, &sum))
	require.Equal(t, 2, count)
	require.Equal(t, 623456, sum)

	parameters, err := system.storage.Parameters(db)
	require.Nil(t, err)
	require.Equal(t, "false", parameters["strict"])
}

func TestSystemRunWithoutDatabase(t *testing.T) {
	dir := t.TempDir()
	system := System{
		processor: perfctr.Processor{Logger: Logger},
		storage:   Storage{Batch: "empty"},
		groups:    DefaultGroups(),
		files:     []string{filepath.Join(dir, "basic-flops_dp.out")},
	}
	tables, err := system.Run()
	require.Nil(t, err)
	require.Empty(t, tables)
}
