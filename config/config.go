package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr        string
	SaveDir     string
	TickHz      int
	BroadcastHz int
	Seed        uint64
	LogLevel    slog.Level
}

func Defaults() Config {
	return Config{
		Addr:        ":8080",
		SaveDir:     "saves",
		TickHz:      60,
		BroadcastHz: 30,
		LogLevel:    slog.LevelInfo,
	}
}

// Load reads the given .env files (".env" when none are named) into the
// environment, then builds a Config from ABSORB_* variables. A missing
// .env file is not an error; everything has a default.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	c := Defaults()
	var err error
	if v, ok := lookup("ABSORB_ADDR"); ok {
		c.Addr = v
	}
	if v, ok := lookup("ABSORB_SAVE_DIR"); ok {
		c.SaveDir = v
	}
	if c.TickHz, err = intVar("ABSORB_TICK_HZ", c.TickHz); err != nil {
		return Config{}, err
	}
	if c.BroadcastHz, err = intVar("ABSORB_BROADCAST_HZ", c.BroadcastHz); err != nil {
		return Config{}, err
	}
	if v, ok := lookup("ABSORB_SEED"); ok {
		if c.Seed, err = strconv.ParseUint(v, 10, 64); err != nil {
			return Config{}, fmt.Errorf("ABSORB_SEED: %w", err)
		}
	}
	if v, ok := lookup("ABSORB_LOG_LEVEL"); ok {
		if err := c.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return Config{}, fmt.Errorf("ABSORB_LOG_LEVEL: %w", err)
		}
	}
	if c.BroadcastHz > c.TickHz {
		return Config{}, fmt.Errorf("broadcast rate %d above tick rate %d", c.BroadcastHz, c.TickHz)
	}
	return c, nil
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(name)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func intVar(name string, def int) (int, error) {
	v, ok := lookup(name)
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s: must be positive, got %d", name, n)
	}
	return n, nil
}
