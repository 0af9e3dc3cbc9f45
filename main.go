package main

import (
	"os"

	"github.com/google/uuid"

	"github.com/sivukhin/likwid-parser/perfctr"
)

func main() {
	cfg := LoadConfig(os.Args[1:])
	if logger, err := NewLogger(cfg.LogLevel, cfg.LogFile); err == nil {
		Logger = logger
	} else {
		Logger.Errorf("failed to reconfigure logger, keep defaults: %v", err)
	}
	defer Logger.Sync()

	groups := DefaultGroups()
	if cfg.GroupsFile != "" {
		var err error
		groups, err = LoadGroups(cfg.GroupsFile)
		if err != nil {
			Logger.Fatalf("failed to load groups from %v: %v", cfg.GroupsFile, err)
		}
	}

	system := System{
		processor: perfctr.Processor{Logger: Logger, Strict: cfg.Strict},
		storage:   Storage{Batch: uuid.New().String()},
		groups:    groups,
		files:     cfg.Files,
		dsn:       cfg.ResultsDSN,
	}
	if _, err := system.Run(); err != nil {
		Logger.Errorf("batch %v finished with errors: %v", system.storage.Batch, err)
		os.Exit(1)
	}
	Logger.Infof("batch %v finished", system.storage.Batch)
}
