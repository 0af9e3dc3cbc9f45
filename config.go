package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var defaultFiles = []string{
	"data/raw/basic-flops_dp.out",
	"data/raw/basic-l2cache.out",
	"data/raw/basic-l3cache.out",
	"data/raw/blas-flops_dp.out",
	"data/raw/blas-l2cache.out",
	"data/raw/blas-l3cache.out",
	"data/raw/blocked-flops_dp.out",
	"data/raw/blocked-l2cache.out",
	"data/raw/blocked-l3cache.out",
}

type Config struct {
	Files      []string
	GroupsFile string
	Strict     bool
	ResultsDSN string
	LogLevel   string
	LogFile    string
}

// LoadConfig reads the environment, after loading .env files if any
// are present. Positional args, if given, replace the input file list.
func LoadConfig(args []string, envFiles ...string) Config {
	_ = godotenv.Load(envFiles...)

	cfg := Config{
		Files:      ListEnv("LIKWID_FILES", defaultFiles),
		GroupsFile: StringEnv("LIKWID_GROUPS", ""),
		Strict:     BoolEnv("LIKWID_STRICT", false),
		ResultsDSN: StringEnv("LIKWID_RESULTS_DSN", ""),
		LogLevel:   StringEnv("LOG_LEVEL", "INFO"),
		LogFile:    StringEnv("LOG_FILE", ""),
	}
	if len(args) > 0 {
		cfg.Files = args
	}
	return cfg
}

func StringEnv(key string, def string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	return value
}

func BoolEnv(key string, def bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return def
	}
	return parsed
}

func ListEnv(key string, def []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return def
	}
	var list []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}
