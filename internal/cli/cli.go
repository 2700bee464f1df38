// Package cli implements the darlkom command-line interface.
//
// darlkom renders design DNA descriptors into procedural pattern images.
// Commands read a descriptor library (JSON, v2 or legacy schema), resolve
// one or more descriptors by id and hand them to the render pipeline.
//
// # Commands
//
//   - render: full-fidelity render of one descriptor
//   - thumbnail: small labeled preview of one descriptor
//   - hybrid: blend up to three descriptors by structure, palette and material role
//   - gallery: thumbnails for every descriptor in a library
//   - classify, list: inspect a library
//   - migrate: convert legacy entries to the v2 schema
//   - cache: manage the artifact cache
//
// # Configuration
//
// Defaults come from pkg/pipeline, then from an optional TOML file at
// $XDG_CONFIG_HOME/darlkom/config.toml (or --config), then from flags.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Reasonofmoon/darlkom-banana/pkg/buildinfo"
	"github.com/Reasonofmoon/darlkom-banana/pkg/cache"
	"github.com/Reasonofmoon/darlkom-banana/pkg/dna"
	"github.com/Reasonofmoon/darlkom-banana/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "darlkom"

	// defaultLibrary is read when neither --library nor the config names one.
	defaultLibrary = "dna.json"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before any subcommand runs.
	Config Config

	configPath string
	library    string
	noCache    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "darlkom renders design DNA descriptors as procedural patterns",
		Long:         `darlkom turns design DNA descriptors (palette, layout, material and mood) into procedurally generated pattern images, as thumbnails, full renders or hybrids of several descriptors.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/darlkom/config.toml)")
	pf.StringVarP(&c.library, "library", "l", "", "descriptor library JSON (default from config, then "+defaultLibrary+")")
	pf.BoolVar(&c.noCache, "no-cache", false, "disable the artifact cache")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.thumbnailCommand())
	root.AddCommand(c.hybridCommand())
	root.AddCommand(c.galleryCommand())
	root.AddCommand(c.classifyCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.migrateCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file. A missing default file is not an error.
func (c *CLI) loadConfig() error {
	path, explicit := c.configPath, c.configPath != ""
	if !explicit {
		p, err := configFile()
		if err != nil {
			return nil
		}
		path = p
	}
	cfg, err := LoadConfig(path, explicit, c.Logger)
	if err != nil {
		return err
	}
	c.Config = cfg
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() (*pipeline.Runner, error) {
	ch, err := c.newCache()
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ch, c.Logger), nil
}

func (c *CLI) newCache() (cache.Cache, error) {
	if c.noCache || c.Config.Cache.Disabled {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// loadLibrary reads the library named by --library, the config, or the default.
func (c *CLI) loadLibrary(ctx context.Context, runner *pipeline.Runner) (*dna.Library, error) {
	return runner.LoadLibrary(ctx, c.libraryPath())
}

func (c *CLI) libraryPath() string {
	switch {
	case c.library != "":
		return c.library
	case c.Config.Library != "":
		return c.Config.Library
	}
	return defaultLibrary
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/darlkom/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configFile returns the default config path (~/.config/darlkom/config.toml).
func configFile() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
// An empty string yields nil so the pipeline default applies.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			if f == "jpg" {
				f = pipeline.FormatJPEG
			}
			out = append(out, f)
		}
	}
	return out
}
