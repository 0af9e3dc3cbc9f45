package main

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/mem"

	"github.com/sivukhin/likwid-parser/perfctr"
)

// A System runs one parsing batch: it writes the CSV outputs and, if a
// results DSN is configured, mirrors the written tables into the
// database.
type System struct {
	processor perfctr.Processor
	storage   Storage
	groups    []*perfctr.Group
	files     []string
	dsn       string
}

type SysInfo struct {
	Arch     string
	Hostname string
	Platform string
	CPUCount int
	CPUFreq  float64
	RAM      float64
}

// HostStat describes the machine the parser runs on. Counters that
// gopsutil cannot read stay zero.
func HostStat() SysInfo {
	info := SysInfo{Arch: runtime.GOARCH}
	if hostStat, err := host.Info(); err == nil {
		info.Hostname = hostStat.Hostname
		info.Platform = hostStat.Platform
	}
	if cpuStat, err := cpu.Info(); err == nil && len(cpuStat) > 0 {
		totalFreq := 0.0
		for _, c := range cpuStat {
			totalFreq += c.Mhz
		}
		info.CPUCount = len(cpuStat)
		info.CPUFreq = totalFreq / float64(len(cpuStat)) * 1000
	}
	if vmStat, err := mem.VirtualMemory(); err == nil {
		info.RAM = float64(vmStat.Total) / 1024 / 1024 / 1024
	}
	return info
}

func (info SysInfo) Meta() map[string]any {
	return map[string]any{
		"arch":     info.Arch,
		"hostname": info.Hostname,
		"platform": info.Platform,
		"ram":      info.RAM,
		"cpu":      info.CPUCount,
		"freq":     info.CPUFreq,
	}
}

func (s *System) Run() ([]*perfctr.Table, error) {
	Logger.Infof("start batch %v over %v files and %v groups", s.storage.Batch, len(s.files), len(s.groups))

	info := HostStat()
	Logger.Infof("host stat: %+v", info)

	tables, err := s.processor.Run(s.files, s.groups)
	if err != nil {
		Logger.Errorf("failed to write some outputs: %v", err)
	}
	if s.dsn == "" || len(tables) == 0 {
		return tables, err
	}
	return tables, errors.Join(err, s.store(info, tables))
}

func (s *System) store(info SysInfo, tables []*perfctr.Table) error {
	db, err := s.storage.ConnectDb(s.dsn)
	if err != nil {
		return fmt.Errorf("unable to connect to results db: %w", err)
	}
	defer db.Close()

	meta := info.Meta()
	meta["files"] = strings.Join(s.files, ",")
	meta["strict"] = s.processor.Strict
	if err := s.storage.InitResultsDb(db, meta); err != nil {
		return fmt.Errorf("unable to initialize results db: %w", err)
	}
	for _, table := range tables {
		if err := s.storage.InitGroupTable(db, table.Group); err != nil {
			return fmt.Errorf("unable to create table for group %v: %w", table.Group.Name, err)
		}
		if err := s.storage.UpdateGroupDb(db, table); err != nil {
			return fmt.Errorf("failed to store group %v: %w", table.Group.Name, err)
		}
		Logger.Infof("stored %v runs of group %v in %v", len(table.Records), table.Group.Name, TableName(table.Group))
	}
	return nil
}
