package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sivukhin/likwid-parser/perfctr"
)

const (
	RuntimeRDTSC     = "Runtime (RDTSC)"
	InstructionCount = "Instruction Count"
	CPI              = "CPI"
	L2Accesses       = "L2 accesses"
	L2Misses         = "L2 misses"
	L3AccessAll      = "L3_ACCESS_ALL_TYPES"
)

func DefaultGroups() []*perfctr.Group {
	return []*perfctr.Group{
		mustGroup(perfctr.NewGroup("FLOPS_DP", "flops_dp", "data/flops_dp_data.csv",
			perfctr.Column{Name: RuntimeRDTSC, Metric: "Runtime (RDTSC) [s]", Stat: perfctr.Max},
			perfctr.Column{Name: InstructionCount, Metric: "RETIRED_INSTRUCTIONS", Type: perfctr.Int},
			perfctr.Column{Name: CPI, Metric: "CPI", Stat: perfctr.Avg},
		)),
		mustGroup(perfctr.NewGroup("L2CACHE", "l2cache", "data/l2_cache_data.csv",
			perfctr.Column{Name: L2Accesses, Metric: "L2 accesses", Type: perfctr.Int},
			perfctr.Column{Name: L2Misses, Metric: "L2 misses", Type: perfctr.Int},
		)),
		mustGroup(perfctr.NewGroup("L3CACHE", "l3cache", "data/l3_cache_data.csv",
			perfctr.Column{Name: L3AccessAll, Metric: "L3_ACCESS_ALL_TYPES", Type: perfctr.Int},
		)),
	}
}

func mustGroup(group *perfctr.Group, err error) *perfctr.Group {
	if err != nil {
		panic(err)
	}
	return group
}

type groupsFile struct {
	Groups []groupEntry `yaml:"groups"`
}

type groupEntry struct {
	Name         string        `yaml:"name"`
	FilesKeyword string        `yaml:"files_keyword"`
	OutputFile   string        `yaml:"output_file"`
	Columns      []columnEntry `yaml:"columns"`
}

type columnEntry struct {
	Name   string `yaml:"name"`
	Metric string `yaml:"metric"`
	Stat   string `yaml:"stat"`
	Type   string `yaml:"type"`
}

// LoadGroups reads group definitions from a YAML file:
//
//	groups:
//	  - name: FLOPS_DP
//	    files_keyword: flops_dp
//	    output_file: data/flops_dp_data.csv
//	    columns:
//	      - {name: CPI, metric: CPI, stat: Avg}
//	      - {name: Instruction Count, metric: RETIRED_INSTRUCTIONS, type: int}
func LoadGroups(path string) ([]*perfctr.Group, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseGroups(data)
}

func ParseGroups(data []byte) ([]*perfctr.Group, error) {
	var file groupsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode groups: %w", err)
	}
	if len(file.Groups) == 0 {
		return nil, fmt.Errorf("no groups defined")
	}
	groups := make([]*perfctr.Group, 0, len(file.Groups))
	for _, entry := range file.Groups {
		columns := make([]perfctr.Column, 0, len(entry.Columns))
		for _, c := range entry.Columns {
			stat, err := perfctr.ParseStatistic(c.Stat)
			if err != nil {
				return nil, fmt.Errorf("group %v, column %v: %w", entry.Name, c.Name, err)
			}
			typ, err := perfctr.ParseValueType(c.Type)
			if err != nil {
				return nil, fmt.Errorf("group %v, column %v: %w", entry.Name, c.Name, err)
			}
			columns = append(columns, perfctr.Column{Name: c.Name, Metric: c.Metric, Stat: stat, Type: typ})
		}
		group, err := perfctr.NewGroup(entry.Name, entry.FilesKeyword, entry.OutputFile, columns...)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, nil
}
