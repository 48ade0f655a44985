package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"multipick/internal/config"
	"multipick/internal/discovery"
	"multipick/internal/eventbus"
	"multipick/internal/ui"
	"multipick/internal/ui/views"
)

type options struct {
	configPath string
	logPath    string
	hidden     bool
	print0     bool
	list       bool
	initConfig bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "multipick [dir]",
		Short:        "Pick directory entries with the mouse and print their paths",
		SilenceUsage: true,
		Args:         cobra.MaximumNArgs(1),
		Example: strings.TrimSpace(`
  # Pick entries of the current directory
  multipick

  # Feed the picked files to another command
  multipick --print0 ~/Downloads | xargs -0 rm

  # Print what would be selectable, without the UI
  multipick --list --hidden .
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return run(cmd.Context(), opts, dir, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "Config file (default "+config.DefaultPath()+")")
	cmd.Flags().StringVar(&opts.logPath, "log", "", "Log file (overrides log_file from the config)")
	cmd.Flags().BoolVar(&opts.hidden, "hidden", false, "Show dotfiles")
	cmd.Flags().BoolVarP(&opts.print0, "print0", "0", false, "Separate printed paths with NUL instead of newline")
	cmd.Flags().BoolVar(&opts.list, "list", false, "Print the selectable entries and exit")
	cmd.Flags().BoolVar(&opts.initConfig, "init-config", false, "Write the default config file and exit")

	return cmd
}

func run(ctx context.Context, opts *options, dir string, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Nothing may reach the terminal until the log file is known
	log.SetOutput(io.Discard)

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", dir, err)
	}

	bus := eventbus.New()
	defer bus.Close()

	configSvc := config.NewConfigServiceWithBus(opts.configPath, bus)
	if opts.initConfig {
		return writeDefaultConfig(configSvc, out)
	}

	cfg, err := configSvc.Load()
	if err != nil {
		return err
	}
	if opts.hidden {
		cfg.ShowHidden = true
	}

	closeLog := setupLogging(opts.logPath, cfg.LogFile, configSvc.Path())
	defer closeLog()
	log.Printf("Starting multipick in %s", absDir)

	if opts.list {
		items, err := discovery.Scan(ctx, absDir)
		if err != nil {
			return err
		}
		return printPaths(out, ui.EligiblePaths(items, cfg.Include, cfg.ShowHidden), opts.print0)
	}

	picked, err := runPicker(ctx, bus, cfg, absDir)
	if err != nil {
		return err
	}
	return printPaths(out, picked, opts.print0)
}

func writeDefaultConfig(configSvc config.ConfigService, out io.Writer) error {
	if _, err := os.Stat(configSvc.Path()); err == nil {
		return fmt.Errorf("%s already exists", configSvc.Path())
	}
	if err := configSvc.Save(config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Fprintln(out, configSvc.Path())
	return nil
}

// setupLogging sends the standard logger to a file. A relative config path
// is placed next to the config file. The terminal belongs to the UI, so a
// log file that cannot be opened silences logging.
func setupLogging(flagPath, configPath, configFile string) func() {
	path := flagPath
	if path == "" {
		path = configPath
		if path != "" && !filepath.IsAbs(path) {
			path = filepath.Join(filepath.Dir(configFile), path)
		}
	}
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	log.SetOutput(logFile)
	return func() { _ = logFile.Close() }
}

// runPicker runs the UI and returns the confirmed paths, or nil when the
// user quit without confirming
func runPicker(ctx context.Context, bus eventbus.EventBus, cfg *config.Config, absDir string) ([]string, error) {
	views.ConfigureColorProfile()

	discoverySvc := discovery.NewDiscoveryService(bus)

	model := ui.NewModel(bus, cfg, absDir)
	defer model.Close()

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
		tea.WithContext(ctx),
	)
	model.SetProgram(p)

	// Forward the events the UI cares about
	eventChan := make(chan eventbus.DomainEvent, 100)
	forwardEvent := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Printf("Event channel full, dropping %s", e.Type())
		}
	}
	var unsubscribe []func()
	for _, t := range []eventbus.EventType{
		eventbus.EventScanStarted,
		eventbus.EventItemsScanned,
		eventbus.EventScanCompleted,
		eventbus.EventError,
	} {
		unsubscribe = append(unsubscribe, bus.Subscribe(t, forwardEvent))
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case event := <-eventChan:
				p.Send(ui.EventMsg{Event: event})
			case <-done:
				return
			}
		}
	}()

	if err := discoverySvc.StartScan(ctx, absDir); err != nil {
		return nil, err
	}

	log.Printf("Starting UI...")
	_, runErr := p.Run()

	discoverySvc.StopScan()
	for _, fn := range unsubscribe {
		fn()
	}

	if runErr != nil {
		if errors.Is(runErr, tea.ErrProgramKilled) && ctx.Err() != nil {
			log.Printf("Interrupted")
			return nil, nil
		}
		log.Printf("Error running program: %v", runErr)
		return nil, runErr
	}
	log.Printf("UI exited normally")
	return model.Confirmed(), nil
}

func printPaths(out io.Writer, paths []string, print0 bool) error {
	sep := "\n"
	if print0 {
		sep = "\x00"
	}
	for _, p := range paths {
		if _, err := io.WriteString(out, p+sep); err != nil {
			return err
		}
	}
	return nil
}
