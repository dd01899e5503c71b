package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/mamaar/deskcalc/internal/config"
)

// Flags holds all command line flags
type Flags struct {
	Version *bool
	Json    *bool
	Trace   *bool

	// Config starts from DESKCALC_* environment variables; its flags
	// override them.
	Config config.Config
}

// GlobalFlags holds the parsed command line flags
var GlobalFlags *Flags

// InitFlags initializes all command line flags
func InitFlags() *Flags {
	cfg, err := config.ParseEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	f := &Flags{
		Version: flag.Bool("version", false, "Show version information"),
		Json:    flag.Bool("json", false, "Output results in JSON format"),
		Trace:   flag.Bool("trace", false, "Print the display after every key"),
		Config:  cfg,
	}
	f.Config.Bind(flag.CommandLine)
	return f
}

// ParseFlags parses command line flags with custom usage
func ParseFlags(usage func()) {
	if GlobalFlags == nil {
		GlobalFlags = InitFlags()
	}
	flag.Usage = usage
	flag.Parse()
	if err := GlobalFlags.Config.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
