package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/macropower/carousel/pkg/config"
	"github.com/macropower/carousel/pkg/log"
	"github.com/macropower/carousel/pkg/pager"
	"github.com/macropower/carousel/pkg/source"
	"github.com/macropower/carousel/pkg/ui"
	"github.com/macropower/carousel/pkg/ui/theme"
)

const (
	cmdExamples = `  # Page through paragraphs of a file:
  carousel notes.md

  # Cards separated by "---" lines, reloaded when the file changes:
  carousel slides.md --separator --- --watch

  # Read from stdin:
  fortune -l | carousel -

  # Cards from a command, filtered with CEL:
  carousel --exec "git log --format='%s%n%b%n'" --filter 'item.title.startsWith("fix")'

  # Send cards to a file (disables TUI):
  carousel notes.md --filter 'item.index < 3' > first.md`
)

var ErrNoSource = errors.New("no source: pass a path, - for stdin, or --exec")

type RunArgs struct {
	*RootArgs

	Path         string
	ConfigPath   string
	Exec         string
	Separator    string
	Filter       string
	Orientation  string
	Theme        string
	ItemFraction float64
	InitialIndex int
	Watch        bool
	WriteConfig  bool
	ShowConfig   bool
}

func NewRunArgs(rootArgs *RootArgs) *RunArgs {
	return &RunArgs{
		RootArgs: rootArgs,
	}
}

func (ra *RunArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&ra.ConfigPath, "config", "", "Path to the carousel configuration file")
	cmd.Flags().StringVarP(&ra.Exec, "exec", "e", "", "Read cards from the output of a command line")
	cmd.Flags().StringVar(&ra.Separator, "separator", "", "Line separating cards (default: blank lines)")
	cmd.Flags().StringVar(&ra.Filter, "filter", "", "CEL expression over item.title, item.body and item.index")
	cmd.Flags().StringVar(&ra.Orientation, "orientation", "", "Scroll axis, horizontal or vertical")
	cmd.Flags().StringVar(&ra.Theme, "theme", "", "Theme name")
	cmd.Flags().Float64Var(&ra.ItemFraction, "item-fraction", 0, "Fraction of the terminal a card occupies")
	cmd.Flags().IntVar(&ra.InitialIndex, "initial-index", 0, "Card focused on start")
	cmd.Flags().BoolVarP(&ra.Watch, "watch", "w", false, "Reload the file when it changes")
	cmd.Flags().BoolVar(&ra.WriteConfig, "write-config", false, "Write the default configuration file and exit")
	cmd.Flags().BoolVar(&ra.ShowConfig, "show-config", false, "Print the active configuration and exit")

	err := cmd.MarkFlagFilename("config", "yaml", "yml")
	if err != nil {
		panic(fmt.Errorf("mark config flag: %w", err))
	}

	err = cmd.RegisterFlagCompletionFunc("orientation",
		cobra.FixedCompletions([]string{"horizontal", "vertical"}, cobra.ShellCompDirectiveNoFileComp),
	)
	if err != nil {
		panic(err)
	}
}

func NewRunCmd(ra *RunArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "run [path]",
		Short:   "Default command, can be used explicitly if path is ambiguous",
		Example: cmdExamples,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				ra.Path = args[0]
			}

			return run(cmd, ra)
		},
	}
	ra.AddFlags(cmd)

	bindEnvVars(cmd)

	return cmd
}

func run(cmd *cobra.Command, ra *RunArgs) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configPath := ra.ConfigPath
	if configPath == "" {
		configPath = config.GetPath()
	}

	err := config.WriteDefault(configPath, false)
	if err != nil {
		slog.Error("write default config", slog.Any("err", err))
	}

	if ra.WriteConfig {
		// Exit early after writing the default config.
		// Also, if there was an error, it should be fatal.
		return err
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	ra.applyFlags(cmd, cfg)

	err = cfg.Validate()
	if err != nil {
		return err //nolint:wrapcheck // Already describes the config.
	}

	if ra.ShowConfig {
		slog.Info("active configuration", slog.String("path", configPath))

		return showConfig(cmd.OutOrStdout(), cfg)
	}

	shutdown, err := setupTracing(ctx, ra.TraceEndpoint)
	if err != nil {
		return err
	}

	defer func() {
		err := shutdown(context.WithoutCancel(ctx))
		if err != nil {
			slog.Error("shut down tracing", slog.Any("err", err))
		}
	}()

	loader, err := newLoader(cmd, ra, cfg)
	if err != nil {
		return err
	}

	cards, err := loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("load cards from %s: %w", loader.Source(), err)
	}

	// If stdout is not a terminal, print the cards instead.
	if !isTerminal(cmd.OutOrStdout()) {
		return writeCards(cmd.OutOrStdout(), cards, cfg.Source.Separator)
	}

	opts, err := cfg.Pager.PagerOpts()
	if err != nil {
		return fmt.Errorf("pager: %w", err)
	}

	p, err := pager.New(cards, opts...)
	if err != nil {
		return fmt.Errorf("pager: %w", err)
	}

	modelOpts := []ui.ModelOpt{ui.WithReloader(loader.Load)}

	if ra.Watch {
		events, stop, err := watch(ctx, loader)
		if err != nil {
			return err
		}

		defer stop()

		modelOpts = append(modelOpts, ui.WithEvents(events))
	}

	logBuf := log.NewCircularBuffer(100)

	logHandler, err := log.CreateHandlerWithStrings(logBuf, ra.LogLevel, ra.LogFormat)
	if err != nil {
		return fmt.Errorf("create log handler: %w", err)
	}

	slog.SetDefault(slog.New(logHandler))

	_, err = ui.NewProgram(ctx, cfg.UI, p, modelOpts...).Run()

	flushLogs(cmd.ErrOrStderr(), logBuf)

	if err != nil {
		return fmt.Errorf("ui program failure: %w", err)
	}

	return nil
}

func loadConfig(path string) (*config.Config, error) {
	cl, err := config.NewLoaderFromFile(path, config.WithColor(true))
	if err != nil {
		slog.Warn("could not read config, using defaults", slog.Any("err", err))

		return config.New(), nil
	}

	cfg, err := cl.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}

	return cfg, nil
}

// applyFlags overrides configuration values with flags set on cmd.
func (ra *RunArgs) applyFlags(cmd *cobra.Command, cfg *config.Config) {
	set := func(name string, apply func()) {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}

	set("separator", func() { cfg.Source.Separator = ra.Separator })
	set("filter", func() { cfg.Source.Filter = ra.Filter })
	set("orientation", func() { cfg.Pager.Orientation = ra.Orientation })
	set("item-fraction", func() { cfg.Pager.ItemFraction = ra.ItemFraction })
	set("initial-index", func() { cfg.Pager.InitialIndex = ra.InitialIndex })
	set("theme", func() { cfg.UI.Theme = ra.Theme })
}

// newLoader selects the card source from the arguments.
func newLoader(cmd *cobra.Command, ra *RunArgs, cfg *config.Config) (*source.Loader, error) {
	var src source.Source

	switch {
	case ra.Exec != "":
		src = source.Command{Line: ra.Exec, Env: os.Environ()}
	case ra.Path == "-":
		src = source.NewReader(cmd.InOrStdin(), "stdin")
	case ra.Path != "":
		src = source.File{Path: ra.Path}
	default:
		return nil, ErrNoSource
	}

	opts, err := cfg.Source.LoaderOpts()
	if err != nil {
		return nil, err //nolint:wrapcheck // Already wrapped.
	}

	return source.NewLoader(src, opts...), nil
}

func watch(ctx context.Context, loader *source.Loader) (<-chan source.Event, func(), error) {
	f, ok := loader.Source().(source.File)
	if !ok {
		slog.Warn("only file sources can be watched", slog.String("source", loader.Source().String()))

		return nil, func() {}, nil
	}

	w, err := source.NewWatcher(loader, f.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("watch %q: %w", f.Path, err)
	}

	ch := make(chan source.Event)
	w.Subscribe(ch)

	ctx, cancel := context.WithCancel(ctx)
	go w.Run(ctx)

	return ch, func() {
		cancel()
		w.Close()
	}, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && term.IsTerminal(int(f.Fd()))
}

// writeCards prints cards separated the way they were read.
func writeCards(w io.Writer, cards []source.Card, separator string) error {
	sep := "\n\n"
	if s := strings.TrimSpace(separator); s != "" {
		sep = "\n" + s + "\n"
	}

	texts := make([]string, len(cards))
	for i, c := range cards {
		texts[i] = c.Text()
	}

	_, err := fmt.Fprintln(w, strings.Join(texts, sep))
	if err != nil {
		return fmt.Errorf("write to stdout: %w", err)
	}

	return nil
}

func showConfig(w io.Writer, cfg *config.Config) error {
	b, err := cfg.MarshalYAML()
	if err != nil {
		return err //nolint:wrapcheck // Already wrapped.
	}

	if !isTerminal(w) {
		_, err = w.Write(b)
		if err != nil {
			return fmt.Errorf("write config: %w", err)
		}

		return nil
	}

	return highlightYAML(w, string(b), theme.New(cfg.UI.Theme))
}

func flushLogs(w io.Writer, buf *log.CircularBuffer) {
	slog.Debug("flush logs to console",
		slog.Int("count", buf.Size()),
		slog.Int("max", buf.Capacity()),
		slog.Int("dropped", buf.Dropped()),
	)

	_, err := buf.WriteTo(w)
	if err != nil {
		panic(err)
	}
}
