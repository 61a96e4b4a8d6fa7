package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"typeahead/internal/config"
	"typeahead/internal/domain"
	"typeahead/internal/eventbus"
	"typeahead/internal/logging"
	"typeahead/internal/search"
	"typeahead/internal/source"
	"typeahead/internal/ui"
)

// Build information set via ldflags
var version = "dev"

// Output formats for the chosen entry
const (
	formatDisplay = "display"
	formatID      = "id"
	formatJSON    = "json"
)

// exitCanceled is the exit status when nothing was chosen
const exitCanceled = 1

// flagKeys maps command line flags to config keys. The same keys are
// read from TYPEAHEAD_* environment variables.
var flagKeys = map[string]string{
	"debounce":    "combobox.debounce_ms",
	"max-visible": "combobox.max_visible",
	"height":      "combobox.height",
	"label":       "combobox.label",
	"source":      "source.kind",
	"root":        "source.roots",
	"depth":       "source.max_depth",
	"latency":     "source.latency_ms",
	"log-level":   "log.level",
	"log-file":    "log.file",
}

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		if errors.Is(err, ui.ErrCanceled) {
			os.Exit(exitCanceled)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "typeahead [file]",
		Short: "Pick one entry from a list with a type-ahead search box",
		Long: `typeahead reads candidates from a file, stdin or the git repositories
below a directory and lets you pick one with a debounced search box.
The chosen entry is printed to stdout.

List files hold one entry per line, optionally followed by tab-separated
label=value fields. Files ending in .toml are read as catalogs.`,
		Args:          cobra.MaximumNArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), v, args)
		},
	}

	addFlags(cmd.Flags())
	bindFlags(v, cmd.Flags())

	return cmd
}

func addFlags(f *pflag.FlagSet) {
	f.StringP("config", "c", "", "config file (default "+config.NewConfigService().Path()+")")
	f.StringP("format", "f", formatDisplay, "output format: display, id or json")
	f.Int("debounce", 0, "milliseconds to wait after the last keystroke")
	f.Int("max-visible", 0, "maximum number of candidates listed")
	f.Int("height", 0, "rows shown before the list scrolls")
	f.String("label", "", "label shown above the search box")
	f.String("source", "", "candidate source: list or repos")
	f.StringSlice("root", nil, "directory to scan for repositories (repeatable)")
	f.Int("depth", 0, "maximum directory depth scanned below each root")
	f.Int("latency", 0, "artificial search latency in milliseconds")
	f.String("log-level", "", "log level: trace, debug, info, warn, error or off")
	f.String("log-file", "", "log file (default "+logging.DefaultPath()+")")
}

// bindFlags binds every flag to its config key and enables TYPEAHEAD_*
// environment overrides for the same keys
func bindFlags(v *viper.Viper, f *pflag.FlagSet) {
	v.SetEnvPrefix("TYPEAHEAD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	f.VisitAll(func(fl *pflag.Flag) {
		name := fl.Name
		if key, ok := flagKeys[name]; ok {
			name = key
		}
		_ = v.BindPFlag(name, fl)
	})
}

// readyMarker reports whether TYPEAHEAD_E2E_TEST asks for the
// __READY__ marker used by the pty tests
func readyMarker(v *viper.Viper) bool {
	return v.GetBool("e2e_test")
}

// loadConfig reads the TOML config and applies flag and environment
// overrides on top of it
func loadConfig(v *viper.Viper, args []string) (*config.Config, error) {
	svc := config.NewConfigService()
	if path := v.GetString("config"); path != "" {
		svc = config.NewConfigServiceAt(path)
	}

	cfg, err := svc.Load()
	if err != nil {
		return nil, err
	}

	if v.IsSet("combobox.debounce_ms") {
		cfg.Combobox.DebounceMs = v.GetInt("combobox.debounce_ms")
	}
	if v.IsSet("combobox.max_visible") {
		cfg.Combobox.MaxVisible = v.GetInt("combobox.max_visible")
	}
	if v.IsSet("combobox.height") {
		cfg.Combobox.Height = v.GetInt("combobox.height")
	}
	if v.IsSet("combobox.label") {
		cfg.Combobox.Label = v.GetString("combobox.label")
	}
	if v.IsSet("source.kind") {
		cfg.Source.Kind = v.GetString("source.kind")
	}
	if v.IsSet("source.roots") {
		cfg.Source.Roots = v.GetStringSlice("source.roots")
	}
	if v.IsSet("source.max_depth") {
		cfg.Source.MaxDepth = v.GetInt("source.max_depth")
	}
	if v.IsSet("source.latency_ms") {
		cfg.Source.LatencyMs = v.GetInt("source.latency_ms")
	}
	if v.IsSet("log.level") {
		cfg.Log.Level = v.GetString("log.level")
	}
	if v.IsSet("log.file") {
		cfg.Log.File = v.GetString("log.file")
	}

	if len(args) == 1 {
		cfg.Source.Kind = config.SourceList
		cfg.Source.Path = args[0]
	}

	return cfg, nil
}

func run(ctx context.Context, v *viper.Viper, args []string) error {
	format := v.GetString("format")
	switch format {
	case formatDisplay, formatID, formatJSON:
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	cfg, err := loadConfig(v, args)
	if err != nil {
		return err
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(cfg.Log.Level)
	logCfg.Format = cfg.Log.Format
	logCfg.File = cfg.Log.File
	closer, err := logging.Setup(logCfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGTERM)
	defer cancel()

	// Create event bus
	bus := eventbus.New()
	defer bus.Close()

	stdinPiped := !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd())

	uiModel := ui.NewModel(bus, cfg, ui.WithReadyMarker(readyMarker(v)))

	opts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
		tea.WithOutput(os.Stderr),
		tea.WithContext(ctx),
	}
	if stdinPiped {
		// candidates arrive on stdin, keys come from the terminal
		opts = append(opts, tea.WithInputTTY())
	}
	p := tea.NewProgram(uiModel, opts...)
	uiModel.SetProgram(p)

	// Forward events to the UI
	forward := func(e eventbus.DomainEvent) { p.Send(ui.EventMsg{Event: e}) }
	for _, t := range []eventbus.EventType{
		eventbus.EventSearchCompleted,
		eventbus.EventSearchFailed,
		eventbus.EventCatalogLoaded,
		eventbus.EventError,
	} {
		bus.Subscribe(t, forward)
	}

	listKind := cfg.Source.Kind == config.SourceList || cfg.Source.Kind == ""
	if listKind && (cfg.Source.Path == "" || cfg.Source.Path == "-") && !stdinPiped {
		return errors.New("no candidates: pass a list file or pipe one on stdin")
	}
	src, err := source.New(cfg.Source, bus, os.Stdin)
	if err != nil {
		return err
	}

	searchSvc := search.NewService(bus, src, cfg.Source.Timeout())
	defer searchSvc.Stop()

	// Start initial scan
	go func() {
		if err := source.Preload(ctx, src); err != nil && ctx.Err() == nil {
			bus.Publish(eventbus.ErrorEvent{Message: "Failed to load candidates", Err: err})
		}
	}()

	log.Info().Str("source", cfg.Source.Kind).Str("version", version).Msg("typeahead: starting")

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running program: %w", err)
	}

	chosen, err := uiModel.Result()
	if err != nil {
		log.Info().Msg("typeahead: canceled")
		return err
	}

	return printEntry(os.Stdout, chosen, format)
}

// jsonEntry is the json output shape. Extra keeps its label order.
type jsonEntry struct {
	ID      string                                 `json:"id"`
	Display string                                 `json:"display"`
	Extra   *orderedmap.OrderedMap[string, string] `json:"extra,omitempty"`
}

func printEntry(w io.Writer, e domain.Entry, format string) error {
	switch format {
	case formatID:
		_, err := fmt.Fprintln(w, e.ID)
		return err
	case formatJSON:
		out := jsonEntry{ID: e.ID, Display: e.Display}
		if e.Extra != nil && e.Extra.Len() > 0 {
			out.Extra = e.Extra
		}
		return json.NewEncoder(w).Encode(out)
	default:
		_, err := fmt.Fprintln(w, e.Display)
		return err
	}
}
