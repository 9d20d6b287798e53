// Package main provides the CLI entrypoint for padtype.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/padtype/internal/config"
	"github.com/verte-zerg/padtype/internal/dispatch"
	"github.com/verte-zerg/padtype/internal/feed"
	"github.com/verte-zerg/padtype/internal/layout"
	"github.com/verte-zerg/padtype/internal/model"
	"github.com/verte-zerg/padtype/internal/render"
	"github.com/verte-zerg/padtype/internal/store"
)

const (
	defaultThreshold = 0.55
	defaultSectors   = 4
	defaultMaxLen    = 2
	defaultRateHz    = 120
	defaultFeedURL   = "ws://127.0.0.1:9867/sticks"
)

var (
	runThreshold float64
	runSectors   int
	runMaxLen    int
	runRateHz    int
	runFeedURL   string
	runReplay    string
	runTablePath string

	buildDBPath  string
	buildOutPath string

	importDBPath    string
	importKeysPath  string
	importPairsPath string

	showTablePath string

	freqDBPath string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "padtype",
		Short:         "Type with two analog sticks",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runRunCmd,
	}

	rootCmd.Flags().Float64Var(&runThreshold, "threshold", defaultThreshold, "center threshold radius (0-1)")
	rootCmd.Flags().IntVar(&runSectors, "sectors", defaultSectors, "angular sectors per stick")
	rootCmd.Flags().IntVar(&runMaxLen, "max-length", defaultMaxLen, "dialing-step cap per gesture")
	rootCmd.Flags().IntVar(&runRateHz, "rate", defaultRateHz, "sampling rate in Hz")
	rootCmd.Flags().StringVar(&runFeedURL, "feed", defaultFeedURL, "websocket URL of the stick sample bridge")
	rootCmd.Flags().StringVar(&runReplay, "replay", "", "replay frames from a JSONL file instead of the feed")
	rootCmd.Flags().StringVar(&runTablePath, "table", "", "mapping table artifact path")

	rootCmd.AddCommand(newBuildCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newFreqCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runRunCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFloatConfig(cmd, "threshold", &runThreshold, fileCfg.Input.CenterThreshold)
	applyIntConfig(cmd, "sectors", &runSectors, fileCfg.Input.SectorCount)
	applyIntConfig(cmd, "max-length", &runMaxLen, fileCfg.Input.MaxGestureLength)
	applyIntConfig(cmd, "rate", &runRateHz, fileCfg.Input.SampleRateHz)
	applyStringConfig(cmd, "feed", &runFeedURL, fileCfg.Input.FeedURL)
	applyStringConfig(cmd, "table", &runTablePath, fileCfg.Input.TablePath)

	opts := model.RunOptions{
		CenterThreshold:  runThreshold,
		SectorCount:      runSectors,
		MaxGestureLength: runMaxLen,
		SampleRateHz:     runRateHz,
		FeedURL:          runFeedURL,
		TablePath:        runTablePath,
	}
	if opts.TablePath == "" {
		opts.TablePath = config.DefaultTablePath()
	}

	table, err := layout.Load(opts.TablePath)
	if err != nil {
		return fmt.Errorf("failed to load mapping table: %w", err)
	}
	if table.Sectors() != opts.SectorCount || table.MaxLen() != opts.MaxGestureLength {
		return fmt.Errorf("table built for sectors=%d max-length=%d, runtime configured for %d/%d",
			table.Sectors(), table.MaxLen(), opts.SectorCount, opts.MaxGestureLength)
	}

	var source feed.Source
	if runReplay != "" {
		source, err = feed.OpenReplay(runReplay)
	} else {
		source, err = feed.DialSocket(opts.FeedURL)
	}
	if err != nil {
		return err
	}
	defer func() {
		if cerr := source.Close(); cerr != nil {
			logErrf("failed to close feed: %v\n", cerr)
		}
	}()

	dispatcher := dispatch.NewDispatcher(table, dispatch.WriterSink{W: cmd.OutOrStdout()})
	engine, err := dispatch.NewEngine(opts, source, dispatcher)
	if err != nil {
		return err
	}

	if runReplay != "" {
		err = engine.Drain()
	} else {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		err = engine.Run(ctx)
		if errors.Is(err, context.Canceled) {
			err = nil
		}
	}
	if dispatcher.Misses() > 0 {
		logErrf("%d completed inputs had no mapping\n", dispatcher.Misses())
	}
	return err
}

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the mapping table from recorded frequencies",
		Args:  cobra.NoArgs,
		RunE:  runBuildCmd,
	}
	cmd.Flags().StringVar(&buildDBPath, "db", "", "frequency database path")
	cmd.Flags().StringVar(&buildOutPath, "out", "", "output artifact path")
	return cmd
}

func runBuildCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	sectors := defaultSectors
	maxLen := defaultMaxLen
	if fileCfg.Input.SectorCount != nil {
		sectors = *fileCfg.Input.SectorCount
	}
	if fileCfg.Input.MaxGestureLength != nil {
		maxLen = *fileCfg.Input.MaxGestureLength
	}

	dbPath := buildDBPath
	if dbPath == "" {
		dbPath = config.DefaultDBPath()
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	keys, err := st.KeyCounts(ctx)
	if err != nil {
		return fmt.Errorf("failed to load key counts: %w", err)
	}
	if len(keys) == 0 {
		return fmt.Errorf("no frequency data recorded; run: padtype import")
	}
	pairs, err := st.PairCounts(ctx)
	if err != nil {
		return fmt.Errorf("failed to load pair counts: %w", err)
	}

	layers := []layout.LayerSpec{{Mods: 0, Keys: keys, Pairs: pairs}}
	for _, lc := range fileCfg.Layers {
		layers = append(layers, configuredLayer(lc, keys, pairs))
	}

	table, err := layout.Build(layout.BuildOptions{Sectors: sectors, MaxLen: maxLen}, layers)
	if err != nil {
		return fmt.Errorf("failed to build mapping: %w", err)
	}

	outPath := buildOutPath
	if outPath == "" {
		outPath = config.DefaultTablePath()
	}
	if err := table.Save(outPath); err != nil {
		return err
	}
	logErrf("Wrote %s (%d entries)\n", outPath, table.Len())
	return nil
}

// configuredLayer resolves a config-declared modifier layer against the
// recorded frequencies. Keys without observations keep their declared order
// through a descending synthetic count.
func configuredLayer(lc config.LayerConfig, keys []model.KeyCount, pairs []model.PairCount) layout.LayerSpec {
	recorded := make(map[string]float64, len(keys))
	for _, kc := range keys {
		recorded[kc.Key] = kc.Count
	}
	spec := layout.LayerSpec{Mods: uint8(lc.Mods), Pairs: pairs}
	for i, key := range lc.Keys {
		count, ok := recorded[key]
		if !ok {
			count = float64(len(lc.Keys) - i)
		}
		spec.Keys = append(spec.Keys, model.KeyCount{Key: key, Count: count})
	}
	return spec
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import key-frequency and co-occurrence logs",
		Args:  cobra.NoArgs,
		RunE:  runImportCmd,
	}
	cmd.Flags().StringVar(&importDBPath, "db", "", "frequency database path")
	cmd.Flags().StringVar(&importKeysPath, "keys", "", "key counts CSV (key,count)")
	cmd.Flags().StringVar(&importPairsPath, "pairs", "", "pair counts CSV (a,b,count)")
	return cmd
}

func runImportCmd(_ *cobra.Command, _ []string) error {
	if importKeysPath == "" && importPairsPath == "" {
		return fmt.Errorf("nothing to import: pass --keys and/or --pairs")
	}
	dbPath := importDBPath
	if dbPath == "" {
		dbPath = config.DefaultDBPath()
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	if importKeysPath != "" {
		counts, err := readKeyCounts(importKeysPath)
		if err != nil {
			return err
		}
		if err := st.AddKeyCounts(ctx, counts); err != nil {
			return fmt.Errorf("failed to store key counts: %w", err)
		}
		logErrf("Imported %d key rows\n", len(counts))
	}
	if importPairsPath != "" {
		pairs, err := readPairCounts(importPairsPath)
		if err != nil {
			return err
		}
		if err := st.AddPairCounts(ctx, pairs); err != nil {
			return fmt.Errorf("failed to store pair counts: %w", err)
		}
		logErrf("Imported %d pair rows\n", len(pairs))
	}
	return nil
}

func readKeyCounts(path string) ([]model.KeyCount, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logErrf("failed to close %s: %v\n", path, cerr)
		}
	}()
	counts, err := store.ParseKeyCounts(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return counts, nil
}

func readPairCounts(path string) ([]model.PairCount, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logErrf("failed to close %s: %v\n", path, cerr)
		}
	}()
	pairs, err := store.ParsePairCounts(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pairs, nil
}

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a mapping table artifact",
		Args:  cobra.NoArgs,
		RunE:  runShowCmd,
	}
	cmd.Flags().StringVar(&showTablePath, "table", "", "mapping table artifact path")
	return cmd
}

func runShowCmd(cmd *cobra.Command, _ []string) error {
	path := showTablePath
	if path == "" {
		path = config.DefaultTablePath()
	}
	table, err := layout.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load mapping table: %w", err)
	}
	return render.Layout(cmd.OutOrStdout(), table)
}

func newFreqCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "freq",
		Short: "Show recorded key frequencies",
		Args:  cobra.NoArgs,
		RunE:  runFreqCmd,
	}
	cmd.Flags().StringVar(&freqDBPath, "db", "", "frequency database path")
	return cmd
}

func runFreqCmd(cmd *cobra.Command, _ []string) error {
	dbPath := freqDBPath
	if dbPath == "" {
		dbPath = config.DefaultDBPath()
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	counts, err := st.KeyCounts(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load key counts: %w", err)
	}
	return render.Frequencies(cmd.OutOrStdout(), counts)
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# padtype configuration
# Uncomment a value to enable it. CLI flags override config values.

[input]
# center-threshold = %.2f   # Radius below which a stick is centered (0-1)
# sector-count = %d          # Angular sectors per stick
# max-gesture-length = %d    # Dialing-step cap per gesture
# sample-rate-hz = %d      # Sampling rate
# feed-url = %q
# table-path = ""           # Defaults to the XDG data dir

# Extra modifier layers for `+"`padtype build`"+`. Keys are placed in the
# declared order unless the frequency store knows better.
# [[layer]]
# mods = 1
# keys = ["E", "O", "T", "A", "I", "S", "J", "R"]
`,
		defaultThreshold,
		defaultSectors,
		defaultMaxLen,
		defaultRateHz,
		defaultFeedURL,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
