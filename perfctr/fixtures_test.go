package perfctr

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const singleThreadRun = `likwid-perfctr -m -g FLOPS_DP -C N:0-0 ./benchmark-basic-omp -N 128
--------------------------------------------------------------------------------
CPU name:	AMD EPYC 7763 64-Core Processor
CPU type:	AMD K19 (Zen3) architecture
CPU clock:	2.45 GHz
--------------------------------------------------------------------------------
Working on problem size N=128
 Elapsed time is : 0.002069
--------------------------------------------------------------------------------
Region region_1, Group 1: FLOPS_DP
+-------------------+------------+
|    Region Info    | HWThread 0 |
+-------------------+------------+
| RDTSC Runtime [s] |   0.002073 |
|     call count    |          1 |
+-------------------+------------+

+----------------------+---------+------------+
|         Event        | Counter | HWThread 0 |
+----------------------+---------+------------+
|   ACTUAL_CPU_CLOCK   |  FIXC1  |    5436789 |
|     MAX_CPU_CLOCK    |  FIXC2  |    4567890 |
| RETIRED_INSTRUCTIONS |   PMC0  |   12345678 |
|  CPU_CLOCKS_UNHALTED |   PMC1  |    5432100 |
+----------------------+---------+------------+

+----------------------+------------+
|        Metric        | HWThread 0 |
+----------------------+------------+
|  Runtime (RDTSC) [s] |     0.0021 |
| Runtime unhalted [s] |     0.0022 |
|          CPI         |       0.44 |
+----------------------+------------+

`

const multiThreadRun = `likwid-perfctr -m -g FLOPS_DP -C N:0-3 ./benchmark-blocked-omp -N 512 -B 16
--------------------------------------------------------------------------------
CPU name:	AMD EPYC 7763 64-Core Processor
--------------------------------------------------------------------------------
Working on problem size N=512
 Elapsed time is : 0.012345
--------------------------------------------------------------------------------
Region region_1, Group 1: FLOPS_DP
+----------------------+---------+------------+------------+------------+------------+
|         Event        | Counter | HWThread 0 | HWThread 1 | HWThread 2 | HWThread 3 |
+----------------------+---------+------------+------------+------------+------------+
| RETIRED_INSTRUCTIONS |   PMC0  |    9000000 |   10000000 |   10000000 |   11000000 |
+----------------------+---------+------------+------------+------------+------------+

+---------------------------+---------+----------+---------+----------+----------+
|           Event           | Counter |    Sum   |   Min   |    Max   |    Avg   |
+---------------------------+---------+----------+---------+----------+----------+
| RETIRED_INSTRUCTIONS STAT |   PMC0  | 40000000 | 9000000 | 11000000 | 10000000 |
+---------------------------+---------+----------+---------+----------+----------+

+----------------------+------------+------------+------------+------------+
|        Metric        | HWThread 0 | HWThread 1 | HWThread 2 | HWThread 3 |
+----------------------+------------+------------+------------+------------+
|  Runtime (RDTSC) [s] |     0.0100 |     0.0100 |     0.0120 |     0.0080 |
|          CPI         |     0.3900 |     0.4000 |     0.4000 |     0.4100 |
+----------------------+------------+------------+------------+------------+

+---------------------------+--------+--------+--------+--------+
|           Metric          |   Sum  |   Min  |   Max  |   Avg  |
+---------------------------+--------+--------+--------+--------+
|  Runtime (RDTSC) [s] STAT | 0.0400 | 0.0080 | 0.0120 | 0.0100 |
|          CPI STAT         | 1.6000 | 0.3900 | 0.4100 | 0.4000 |
+---------------------------+--------+--------+--------+--------+

`

const badHeaderRun = `likwid-perfctr -g FLOPS_DP ./benchmark-basic-omp
ERROR: no core list given
`

func flopsGroup(t *testing.T, output string) *Group {
	t.Helper()
	group, err := NewGroup("FLOPS_DP", "flops_dp", output,
		Column{Name: "Runtime (RDTSC)", Metric: "Runtime (RDTSC) [s]", Stat: Max},
		Column{Name: "Instruction Count", Metric: "RETIRED_INSTRUCTIONS", Type: Int},
		Column{Name: "CPI", Metric: "CPI", Stat: Avg},
	)
	require.Nil(t, err)
	return group
}

func writeFile(t *testing.T, dir, name string, parts ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.Nil(t, os.WriteFile(path, []byte(strings.Join(parts, "")), 0o644))
	return path
}

func observedLogger() (*zap.SugaredLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core).Sugar(), logs
}
