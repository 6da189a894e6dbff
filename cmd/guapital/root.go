package main

import (
	"fmt"

	"github.com/ohitsming/guapital-sub001/internal/calculation"
	"github.com/ohitsming/guapital-sub001/internal/config"
	"github.com/ohitsming/guapital-sub001/internal/domain"
	"github.com/ohitsming/guapital-sub001/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// app holds the persistent flags shared by every command
type app struct {
	configPath string
	format     string
	ratesFile  string
	logLevel   string

	settings config.Settings
	logger   *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:           "guapital",
		Short:         "Financial trajectory engine",
		Long:          "Project net worth, time to financial independence and FIRE milestones from an account snapshot.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Settings file (default $GUAPITAL_CONFIG or ~/.config/guapital/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&a.format, "format", "f", "console", "Output format")
	rootCmd.PersistentFlags().StringVar(&a.ratesFile, "rates", "", "Category rate table YAML (overrides rates.file)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (overrides log.level)")

	rootCmd.AddCommand(
		a.reportCmd(),
		a.fireCmd(),
		a.projectCmd(),
		a.scenariosCmd(),
		a.milestonesCmd(),
		a.amortizeCmd(),
		a.ratesCmd(),
		a.exampleCmd(),
		a.snapshotCmd(),
		a.jobCmd(),
		a.serveCmd(),
	)
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	settings, err := config.LoadSettings(a.configPath)
	if err != nil {
		return err
	}
	if a.ratesFile != "" {
		settings.Rates.File = a.ratesFile
	}
	if a.logLevel != "" {
		settings.Log.Level = a.logLevel
	}
	a.settings = settings
	a.logger = logging.NewWithWriter(cmd.ErrOrStderr(), settings.Log.Level, settings.Log.Format)
	return nil
}

// engine builds a calculation engine with the configured rate table
func (a *app) engine() (*calculation.CalculationEngine, error) {
	engine := calculation.NewCalculationEngine()
	if a.settings.Rates.File != "" {
		table, err := config.LoadRateTable(a.settings.Rates.File)
		if err != nil {
			return nil, err
		}
		engine = calculation.NewCalculationEngineWithRates(table)
	}
	engine.SetLogger(a.logger)
	return engine, nil
}

// evaluate loads a snapshot file and runs the engine over it
func (a *app) evaluate(cmd *cobra.Command, path string) (*domain.TrajectoryReport, error) {
	snap, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	engine, err := a.engine()
	if err != nil {
		return nil, err
	}
	report, err := engine.Evaluate(cmd.Context(), snap)
	if err != nil {
		return nil, fmt.Errorf("evaluating %s: %w", path, err)
	}
	return report, nil
}
