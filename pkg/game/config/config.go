// Package config assembles run settings from four layers, lowest first:
// built-in defaults, a .env file, FLOORFORGE_* environment variables and
// command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"floorforge/pkg/game/console"
	"floorforge/pkg/game/generator"
)

// EnvPrefix starts every environment variable the settings read
const EnvPrefix = "FLOORFORGE_"

// DefaultEnvFile is read when -env is not given. It may be missing.
const DefaultEnvFile = ".env"

// Settings is everything a run of the command needs
type Settings struct {
	Seed          int64
	Floors        int
	FloorLength   int
	Storerooms    int
	UniqueChance  int
	UniqueCount   int
	RandomScenery bool
	MaxRetries    int
	Margin        float64
	StepDelay     time.Duration

	Library string // room library JSON; empty means the built-in one
	EnvFile string
	Dump    string // level dump path; empty disables the dump
	Verify  bool
	Items   bool
	Locale  string
	Verbose bool

	// Interactive reads reset and quit commands from stdin while generating
	Interactive bool
}

// Defaults returns the settings used when nothing overrides them
func Defaults() Settings {
	gen := generator.DefaultConfig()
	return Settings{
		Floors:        gen.Floors,
		FloorLength:   gen.FloorLength,
		Storerooms:    gen.Storerooms,
		UniqueChance:  gen.UniqueRoomChance,
		UniqueCount:   gen.UniqueRoomCount,
		RandomScenery: true,
		MaxRetries:    gen.MaxRetries,
		Margin:        gen.PlacementMargin,
		EnvFile:       DefaultEnvFile,
		Verify:        true,
		Locale:        "en_GB",
	}
}

func (s *Settings) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Int64Var(&s.Seed, "seed", s.Seed, "random seed (0 picks one from the clock)")
	fs.IntVar(&s.Floors, "floors", s.Floors, "number of floors")
	fs.IntVar(&s.FloorLength, "floor-length", s.FloorLength, "connecting rooms per floor")
	fs.IntVar(&s.Storerooms, "storerooms", s.Storerooms, "storerooms across the level")
	fs.IntVar(&s.UniqueChance, "unique-chance", s.UniqueChance, "percent chance for each unique room to be used")
	fs.IntVar(&s.UniqueCount, "unique-count", s.UniqueCount, "maximum unique rooms per level (0 for no limit)")
	fs.BoolVar(&s.RandomScenery, "random-scenery", s.RandomScenery, "pick room scenery at random instead of the first variant")
	fs.IntVar(&s.MaxRetries, "max-retries", s.MaxRetries, "restarts allowed before giving up")
	fs.Float64Var(&s.Margin, "margin", s.Margin, "overlap tolerance so neighbouring rooms may touch")
	fs.DurationVar(&s.StepDelay, "step-delay", s.StepDelay, "pause after each placed room")
	fs.StringVar(&s.Library, "library", s.Library, "room library JSON file (default built-in)")
	fs.StringVar(&s.EnvFile, "env", s.EnvFile, "environment file to read")
	fs.StringVar(&s.Dump, "dump", s.Dump, "write a level dump to this file")
	fs.BoolVar(&s.Verify, "verify", s.Verify, "check the finished level")
	fs.BoolVar(&s.Items, "items", s.Items, "distribute items over the spawn points")
	fs.StringVar(&s.Locale, "locale", s.Locale, "message catalog language")
	fs.BoolVar(&s.Verbose, "verbose", s.Verbose, "log every placement")
	fs.BoolVar(&s.Interactive, "interactive", s.Interactive, "accept r (reset) and q (quit) on stdin while generating")
	return fs
}

// EnvName returns the environment variable for a flag, e.g. FLOORFORGE_FLOOR_LENGTH
func EnvName(flagName string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(flagName, "-", "_"))
}

// Parse builds settings from args. lookup reads the process environment
// (os.LookupEnv in production). Flags given on the command line win over the
// environment, which wins over the env file.
func Parse(name string, args []string, lookup func(string) (string, bool), usage io.Writer) (Settings, error) {
	s := Defaults()
	flags := s.flagSet(name)
	flags.SetOutput(usage)
	if err := flags.Parse(args); err != nil {
		return s, err
	}
	if flags.NArg() > 0 {
		return s, fmt.Errorf("unexpected arguments: %v", flags.Args())
	}

	explicit := make(map[string]bool)
	flags.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	file, err := readEnvFile(s.EnvFile, explicit["env"])
	if err != nil {
		return s, err
	}

	var errs []error
	flags.VisitAll(func(f *flag.Flag) {
		if explicit[f.Name] || f.Name == "env" {
			return
		}
		key := EnvName(f.Name)
		value, ok := lookup(key)
		if !ok {
			value, ok = file[key]
		}
		if !ok {
			return
		}
		if err := flags.Set(f.Name, value); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
	})
	return s, errors.Join(errs...)
}

// readEnvFile loads the env file without touching the process environment.
// A missing default file is not an error; a missing file asked for is.
func readEnvFile(path string, required bool) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return values, nil
}

// Generator returns the generator configuration for these settings
func (s Settings) Generator(log *console.Logger) generator.Config {
	cfg := generator.DefaultConfig()
	cfg.Seed = s.Seed
	cfg.Floors = s.Floors
	cfg.FloorLength = s.FloorLength
	cfg.Storerooms = s.Storerooms
	cfg.UniqueRoomChance = s.UniqueChance
	cfg.UniqueRoomCount = s.UniqueCount
	cfg.RandomScenery = s.RandomScenery
	cfg.MaxRetries = s.MaxRetries
	cfg.PlacementMargin = s.Margin
	cfg.StepDelay = s.StepDelay
	cfg.Log = log
	return cfg
}

// LogLevel returns the console level the settings ask for
func (s Settings) LogLevel() console.Level {
	if s.Verbose {
		return console.LevelDebug
	}
	return console.LevelInfo
}
