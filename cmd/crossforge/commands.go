package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/crossforge/crossforge/internal/store"
	"github.com/crossforge/crossforge/internal/utils"
	"github.com/crossforge/crossforge/pkg/analyze"
	"github.com/crossforge/crossforge/pkg/engine"
	"github.com/crossforge/crossforge/pkg/grid"
	"github.com/crossforge/crossforge/pkg/index"
	"github.com/crossforge/crossforge/pkg/server"
	"github.com/crossforge/crossforge/pkg/wordlist"
)

// loadEngine builds an engine from the answer database. A missing
// database is not fatal; the engine starts empty and the server can
// still validate grids and extract slots.
func loadEngine() (*engine.Engine, error) {
	e := engine.NewWithCacheSize(cfg.Engine.CacheSize)
	if !utils.FileExists(cfg.Store.Path) {
		log.Warnf("Answer database %s not found, starting with empty corpus", cfg.Store.Path)
		return e, nil
	}
	db, err := store.Open(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("opening answer database: %w", err)
	}
	defer db.Close()

	entries, err := db.LoadEntries()
	if err != nil {
		return nil, fmt.Errorf("loading answers: %w", err)
	}
	e.LoadCorpus(entries)
	return e, nil
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MessagePack IPC server on stdin/stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEngine()
		if err != nil {
			return err
		}
		showStartupInfo(e)
		return server.NewServer(e, cfg).Start()
	},
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(e *engine.Engine) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("database: ( %s )", utils.GetAbsolutePath(cfg.Store.Path))
	log.Infof("corpus: %d words", e.Snapshot().Corpus.Len())
	log.Info("status: ready")

	log.SetLevel(currentLevel)
}

var importDir string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import seed wordlists into the answer database",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := importDir
		if dir == "" {
			dir = cfg.Import.SeedDir
		}
		entries, stats, err := wordlist.LoadSeedDir(dir)
		if err != nil {
			return err
		}

		if err := utils.EnsureDir(filepath.Dir(cfg.Store.Path)); err != nil {
			return err
		}
		db, err := store.Open(cfg.Store.Path)
		if err != nil {
			return fmt.Errorf("opening answer database: %w", err)
		}
		defer db.Close()

		inserted, updated, err := db.ImportEntries(entries)
		if err != nil {
			return fmt.Errorf("importing answers: %w", err)
		}

		fmt.Printf("Imported %d answers (%d new, %d updated)\n", stats.Total, inserted, updated)
		fmt.Printf("  phrases: %d\n", stats.Phrases)
		sources := make([]string, 0, len(stats.BySource))
		for src := range stats.BySource {
			sources = append(sources, src)
		}
		sort.Strings(sources)
		for _, src := range sources {
			fmt.Printf("  %s: %d\n", src, stats.BySource[src])
		}
		return nil
	},
}

var suggestLimit int

var suggestCmd = &cobra.Command{
	Use:   "suggest PATTERN",
	Short: "Rank corpus words matching a pattern ('_' is the wildcard)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := index.Parse(args[0])
		if err != nil {
			return err
		}
		e, err := loadEngine()
		if err != nil {
			return err
		}
		snap := e.Snapshot()
		matches := snap.QueryPattern(p, suggestLimit)
		total := snap.Count(p)

		for _, m := range matches {
			fmt.Printf("%-20s %3d  %s\n", m.Word, m.Score, m.Display)
		}
		if total > len(matches) {
			fmt.Printf("... and %d more\n", total-len(matches))
		}
		return nil
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze GRIDFILE",
	Short: "Show per-slot fillability for a grid file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := readGrid(args[0])
		if err != nil {
			return err
		}
		e, err := loadEngine()
		if err != nil {
			return err
		}
		overview := e.Snapshot().Fillability(g)

		for _, sf := range overview.Slots {
			state := fmt.Sprintf("%d fills", sf.Count)
			if sf.Complete {
				state = "complete"
				if sf.Count == 0 {
					state = "complete (not in corpus)"
				}
			}
			fmt.Printf("%3d-%-6s %-8s [%s] %s\n",
				sf.Slot.Number, sf.Slot.Direction, string(sf.Severity), sf.Slot.Pattern, state)
		}
		fmt.Printf("\ndanger %d / tight %d / okay %d / good %d\n",
			overview.Summary[analyze.SeverityDanger],
			overview.Summary[analyze.SeverityTight],
			overview.Summary[analyze.SeverityOkay],
			overview.Summary[analyze.SeverityGood])
		return nil
	},
}

var validateSymmetry bool

var validateCmd = &cobra.Command{
	Use:   "validate GRIDFILE",
	Short: "Check a grid file for structural problems",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := readGrid(args[0])
		if err != nil {
			return err
		}
		report := grid.Validate(g, validateSymmetry)
		if report.Valid {
			fmt.Println("ok")
			return nil
		}
		for _, w := range report.Warnings {
			fmt.Printf("%s: %s\n", w.Type, w.Message)
		}
		return nil
	},
}

var (
	wordsPrefix string
	wordsMin    int
	wordsMax    int
	wordsLimit  int
)

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "List answers from the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.Open(cfg.Store.Path)
		if err != nil {
			return fmt.Errorf("opening answer database: %w", err)
		}
		defer db.Close()

		entries, err := db.ListAnswers(store.AnswerFilter{
			Prefix:    wordsPrefix,
			MinLength: wordsMin,
			MaxLength: wordsMax,
			Limit:     wordsLimit,
		})
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Printf("%-20s %3d  %s\n", e.Word, e.Score, e.Source)
		}
		total, err := db.CountAnswers()
		if err != nil {
			return err
		}
		fmt.Printf("%d shown of %d total\n", len(entries), total)
		return nil
	},
}

func readGrid(path string) (*grid.Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return grid.ParseText(string(data))
}

func init() {
	importCmd.Flags().StringVar(&importDir, "dir", "", "Seed list directory (default from config)")
	suggestCmd.Flags().IntVar(&suggestLimit, "limit", 30, "Number of suggestions to show")
	validateCmd.Flags().BoolVar(&validateSymmetry, "symmetry", false, "Also check 180-degree rotational symmetry")
	wordsCmd.Flags().StringVar(&wordsPrefix, "prefix", "", "Filter by word prefix")
	wordsCmd.Flags().IntVar(&wordsMin, "min", 0, "Minimum word length")
	wordsCmd.Flags().IntVar(&wordsMax, "max", 0, "Maximum word length")
	wordsCmd.Flags().IntVar(&wordsLimit, "limit", 50, "Maximum answers to list")
}
