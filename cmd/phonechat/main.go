package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"phonechat/cmd/phonechat/ui"
	"phonechat/internal/chat"
	"phonechat/internal/config"
	"phonechat/internal/emoji"
	"phonechat/internal/fixture"
	"phonechat/internal/logging"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

var (
	// Global flags
	verbose     bool
	configPath  string
	fixturePath string
	watch       bool
	dark        bool
	at          string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "phonechat",
	Short: "phonechat - a simulated phone chat screen in the terminal",
	Long: `phonechat draws a phone running a messenger conversation.

Messages, the status bar and the clock are all editable, so the screen can
be staged exactly as wanted. A YAML fixture seeds the conversation and the
moments feed; with --watch the screen follows edits to the file.

Run without arguments to start the interactive screen.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The interactive screen owns the terminal, so it gets no stderr logger.
		if !cmd.HasParent() {
			logger = zap.NewNop()
			return nil
		}

		zapConfig := zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapConfig.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
	RunE: runInteractive,
}

// renderCmd prints one frame of the chat screen
var renderCmd = &cobra.Command{
	Use:   "render [fixture]",
	Short: "Print the chat screen for a fixture and exit",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderFrame(cmd, args, false)
	},
}

// momentsCmd prints one frame of the moments feed
var momentsCmd = &cobra.Command{
	Use:   "moments [fixture]",
	Short: "Print the moments feed for a fixture and exit",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderFrame(cmd, args, true)
	},
}

// emojiCmd lists the picker
var emojiCmd = &cobra.Command{
	Use:   "emoji",
	Short: "List the emoji tokens usable in messages",
	Args:  cobra.NoArgs,
	RunE:  listEmoji,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", ".phonechat/config.yaml", "Config file")
	rootCmd.PersistentFlags().StringVarP(&fixturePath, "fixture", "f", "", "Conversation fixture (YAML)")
	rootCmd.PersistentFlags().BoolVar(&dark, "dark", false, "Use the dark palette")

	rootCmd.Flags().BoolVarP(&watch, "watch", "w", false, "Reload the fixture when it changes")

	renderCmd.Flags().StringVar(&at, "at", "", "Render as if the clock read this time (年-月-日 时:分:秒)")
	momentsCmd.Flags().StringVar(&at, "at", "", "Render as if the clock read this time (年-月-日 时:分:秒)")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(momentsCmd)
	rootCmd.AddCommand(emojiCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// session is the configuration and seed shared by every command.
type session struct {
	cfg     *config.Config
	fixture *fixture.File
	styles  ui.Styles
}

// loadSession reads the config, applies flags, starts file logging and
// loads the fixture if one is configured.
func loadSession(cmd *cobra.Command, args []string) (*session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if len(args) > 0 {
		cfg.Fixture.Path = args[0]
	}
	if cmd.Flags().Changed("fixture") {
		cfg.Fixture.Path = fixturePath
	}
	if cmd.Flags().Changed("watch") {
		cfg.Fixture.Watch = watch
	}
	if dark {
		cfg.UI.Dark = true
	}
	if verbose {
		cfg.Logging.DebugMode = true
		cfg.Logging.Level = "debug"
	}

	if err := logging.Initialize(cfg.Logging.Dir, cfg.Logging); err != nil {
		logger.Warn("file logging disabled", zap.Error(err))
	}
	logging.Boot("phonechat %s starting (fixture=%q watch=%v)", cfg.Version, cfg.Fixture.Path, cfg.Fixture.Watch)

	s := &session{cfg: cfg, styles: ui.DefaultStyles()}
	if cfg.UI.Dark {
		s.styles = ui.NewStyles(ui.DarkTheme())
	}

	if cfg.Fixture.Path != "" {
		f, err := fixture.Load(cfg.Fixture.Path)
		if err != nil {
			return nil, err
		}
		s.fixture = f
		logger.Debug("fixture loaded",
			zap.String("path", cfg.Fixture.Path),
			zap.Int("messages", len(f.Messages)),
			zap.Int("moments", len(f.Moments)))
	}
	return s, nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	s, err := loadSession(cmd, args)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	m, err := ui.New(ui.Options{
		Context: ctx,
		Config:  s.cfg,
		Fixture: s.fixture,
		Styles:  &s.styles,
	})
	if err != nil {
		return err
	}
	defer m.Shutdown()

	g, gctx := errgroup.WithContext(ctx)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(gctx))

	if s.cfg.Fixture.Watch && s.cfg.Fixture.Path != "" {
		report := func(err error) { p.Send(ui.FixtureErrorMsg{Err: err}) }
		w := fixture.NewWatcher(s.cfg.Fixture.Path, s.cfg.GetFixtureDebounce(),
			func(f *fixture.File) { p.Send(ui.FixtureReloadedMsg{File: f}) },
			report,
		)
		g.Go(func() error { return watchFixture(gctx, w, report) })
	}
	g.Go(func() error {
		// Leaving the program stops the watcher.
		defer cancel()
		_, err := p.Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})
	return g.Wait()
}

// watchFixture runs w until ctx ends. A watcher that cannot start is shown
// on the screen and the session carries on without reloads.
func watchFixture(ctx context.Context, w *fixture.Watcher, report func(error)) error {
	err := w.Run(ctx)
	if err != nil && ctx.Err() == nil {
		logging.Get(logging.CategoryFixture).Warn("watcher stopped: %v", err)
		report(err)
	}
	return nil
}

func renderFrame(cmd *cobra.Command, args []string, showMoments bool) error {
	s, err := loadSession(cmd, args)
	if err != nil {
		return err
	}

	now := time.Now
	if at != "" {
		t, err := chat.ParseDivider(at, time.Now())
		if err != nil {
			return err
		}
		now = func() time.Time { return t }
	}

	m, err := ui.New(ui.Options{
		Context: cmd.Context(),
		Config:  s.cfg,
		Fixture: s.fixture,
		Styles:  &s.styles,
		Moments: showMoments,
		Now:     now,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), m.View())
	return nil
}

func listEmoji(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, e := range emoji.Picker() {
		fmt.Fprintf(out, "%s\t%s\n", e.Glyph, e.Token())
	}
	return nil
}
