// Command realtycalc runs loan, comparison and rental investment simulations from a YAML input file.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/immocalc/realty-calculator/internal/calculation"
	"github.com/immocalc/realty-calculator/internal/config"
	"github.com/immocalc/realty-calculator/internal/domain"
	"github.com/immocalc/realty-calculator/internal/logging"
	"github.com/immocalc/realty-calculator/internal/output"
	"github.com/immocalc/realty-calculator/internal/snapshot"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app carries what every subcommand needs once the persistent flags are resolved.
type app struct {
	settingsPath string
	inputPath    string
	logLevel     string
	format       string
	outDir       string
	debug        bool

	settings *config.Settings
	logger   *zap.SugaredLogger
	engine   *calculation.CalculationEngine
	store    snapshot.Store
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "realtycalc",
		Short: "Real estate loan and rental investment calculator",
		Long: `realtycalc simulates mortgages (amortization, total cost, debt service ratio,
borrowing capacity), compares 2 to 5 loan offers side by side and evaluates
the profitability of a buy-to-let investment over ten years.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.inputPath, "config", "c", "", "calculation input file (YAML)")
	flags.StringVar(&a.settingsPath, "settings", "", "settings file (default: ./realtycalc.yaml)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	flags.StringVarP(&a.format, "format", "f", "", "output format: "+formatHelp())
	flags.StringVarP(&a.outDir, "out", "o", "", "write reports to this directory instead of stdout")
	flags.BoolVar(&a.debug, "debug", false, "log intermediate calculation values")

	root.AddCommand(
		newLoanCmd(a),
		newCompareCmd(a),
		newInvestCmd(a),
		newNotaryCmd(a),
		newRatesCmd(a),
		newBreakEvenCmd(a),
		newRestoreCmd(a),
		newSnapshotsCmd(a),
		newExampleCmd(a),
		newVersionCmd(),
	)
	return root
}

func formatHelp() string {
	return strings.Join(output.AvailableFormatterNames(), ", ") + " or all"
}

func (a *app) setup() error {
	settings, err := config.LoadSettings(a.settingsPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		settings.Logging.Level = a.logLevel
	}
	if a.debug {
		settings.Logging.Level = "debug"
	}
	if a.format != "" {
		settings.Output.Format = a.format
	}
	if a.outDir != "" {
		settings.Output.Directory = a.outDir
	}
	a.settings = settings

	logger, err := logging.New(settings.Logging.Level, settings.Logging.Format)
	if err != nil {
		return err
	}
	a.logger = logger

	a.engine = calculation.NewCalculationEngine()
	a.engine.SetLogger(logger)
	a.engine.Debug = a.debug
	if settings.Rates.File != "" {
		history, err := calculation.LoadRateHistory(settings.Rates.File)
		if err != nil {
			return err
		}
		a.engine.RateHistory = history
	}
	return nil
}

func (a *app) teardown() error {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warnf("closing snapshot store: %v", err)
		}
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	return nil
}

// openStore connects the configured snapshot store on first use.
func (a *app) openStore() (snapshot.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	store, err := snapshot.NewStore(a.settings.Store)
	if err != nil {
		return nil, err
	}
	a.logger.Debugf("snapshot store: %s", a.settings.Store.Kind)
	a.store = store
	return store, nil
}

// loadInput reads the --config file.
func (a *app) loadInput() (*domain.CalculationInput, error) {
	if a.inputPath == "" {
		return nil, fmt.Errorf("an input file is required (--config); run 'realtycalc example' for a template")
	}
	return config.NewInputParser().LoadFromFile(a.inputPath)
}

// emit prints the report to w, or writes it to the output directory.
func (a *app) emit(w io.Writer, report *domain.Report) error {
	format := a.settings.Output.Format
	if a.settings.Output.Directory != "" || output.NormalizeFormatName(format) == "all" {
		files, err := output.GenerateReport(report, format, a.settings.Output.Directory)
		if err != nil {
			return err
		}
		for _, f := range files {
			fmt.Fprintf(w, "Report written to %s\n", f)
		}
		return nil
	}
	data, err := output.Render(report, format)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// save stores a snapshot of the report and prints its id.
func (a *app) save(ctx context.Context, w io.Writer, report *domain.Report, borrower *domain.Borrower, suggest bool) error {
	store, err := a.openStore()
	if err != nil {
		return err
	}
	snap, err := snapshot.FromReport(report, borrower, suggest)
	if err != nil {
		return err
	}
	if err := store.Save(ctx, snap); err != nil {
		return err
	}
	a.logger.Infof("saved %s snapshot %s", snap.Kind, snap.ID)
	fmt.Fprintf(w, "Snapshot saved: %s\n", snap.ID)
	return nil
}
