/*
Package main implements the crossforge analysis server and CLI.

CrossForge scores crossword grids against a ranked answer corpus: how
many words still fit each slot, which candidate placements strangle
their crossings, and where a grid has gone structurally wrong. It can
run as a MessagePack IPC server for integration with grid editors, or
as a CLI for one-shot queries and corpus management.

# Usage

Start the IPC server over the configured answer database:

	crossforge serve

Import the seed wordlists into the database:

	crossforge import --dir data/seed_lists

Query a pattern directly (underscore is the wildcard):

	crossforge suggest P_A_O

Analyze a grid file ('#' black, '.' empty, letters as themselves):

	crossforge analyze themeless.txt
	crossforge validate themeless.txt --symmetry

# Configuration

Runtime configuration is a TOML file under ~/.config/crossforge:

	[server]
	max_limit = 64
	max_grid_dim = 25

	[engine]
	suggest_limit = 30
	cache_size = 4096

	[store]
	path = "data/crossforge.db"

The config file is created with defaults if it doesn't exist.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. A
suggestion request and its ranked reply:

	{"id": "req1", "cmd": "suggest", "p": "P_A_O", "lim": 24}
	{"id": "req1", "s": [{"w": "PIANO", "sc": 90}], "c": 1, "t": 0}

Grid commands (crossings, fillability, slots, validate) ship the grid
inline; see the server package for the full envelope.
*/
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/crossforge/crossforge/pkg/config"
)

const (
	Version = "0.3.0"
	AppName = "crossforge"
)

var (
	flagConfig string
	flagDebug  bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:     AppName,
	Short:   "Crossword fillability and crossing analysis engine",
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagDebug {
			log.SetLevel(log.DebugLevel)
			log.SetReportTimestamp(true)
		} else {
			log.SetLevel(log.WarnLevel)
		}
		loaded, path, err := config.LoadConfigWithPriority(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		log.Debugf("Using config file: (%s)", path)
		cfg = loaded
		return nil
	},
}

// sigHandler exits normally on interrupt so editors see a clean EOF.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

func main() {
	sigHandler()

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "d", false, "Toggle debug mode")

	rootCmd.AddCommand(serveCmd, importCmd, suggestCmd, analyzeCmd, validateCmd, wordsCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
