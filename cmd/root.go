package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hackerhouse/hhboard/internal/config"
	"github.com/hackerhouse/hhboard/internal/logging"
	"github.com/hackerhouse/hhboard/internal/output"
	"github.com/hackerhouse/hhboard/internal/outputters"
	"github.com/hackerhouse/hhboard/internal/ruleset"
	"github.com/hackerhouse/hhboard/internal/scoring"
)

var (
	rootPath     string
	quiet        bool
	verbose      bool
	outputFormat string
	outputFile   string
	demo         bool
	rulesFile    string
	logLevel     string
)

// Swapped out by tests.
var (
	exitFunc           = os.Exit
	stdout   io.Writer = os.Stdout
	nowFunc            = time.Now
)

var rootCmd = &cobra.Command{
	Use:   "hhboard",
	Short: "Hacker House scoreboard - score activities, rank builders, count down to demo day",
	Long: `hhboard is the scoring engine behind the Hacker House accountability dashboard.

It scores self-reported activities against the rule table, maps point totals
to levels, ranks builders on the leaderboard and counts down to demo day.

Run without a subcommand to show the leaderboard.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runLeaderboard(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitFunc(1)
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		exitFunc(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootPath, "root", "r", "", "Data root directory (default: current directory)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Print only the essential value")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "console", "Output format (console|json|markdown)")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "Write output to a file instead of stdout")
	rootCmd.PersistentFlags().BoolVar(&demo, "demo", false, "Use the built-in demo leaderboard")
	rootCmd.PersistentFlags().StringVar(&rulesFile, "rules", "", "YAML rule-table override")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Diagnostic log level (debug|info|warn|error)")

	_ = viper.BindPFlag("root", rootCmd.PersistentFlags().Lookup("root"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("demo", rootCmd.PersistentFlags().Lookup("demo"))
	_ = viper.BindPFlag("rulesFile", rootCmd.PersistentFlags().Lookup("rules"))
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// session is what every subcommand needs after startup.
type session struct {
	cfg       *config.Config
	table     *scoring.Table
	formatter output.Formatter
	closeLog  io.Closer
}

func (s *session) Close() {
	if s.closeLog != nil {
		_ = s.closeLog.Close()
	}
}

// setup loads configuration, installs the logger, loads the rule table and
// picks the output formatter.
func setup() (*session, error) {
	cfg, err := config.LoadConfig(rootPath)
	if err != nil {
		return nil, fmt.Errorf("error loading configuration: %w", err)
	}

	closer, err := logging.Setup(logging.Options{Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		return nil, fmt.Errorf("error configuring logging: %w", err)
	}
	s := &session{cfg: cfg, closeLog: closer}

	s.table = scoring.DefaultTable()
	if cfg.RulesFile != "" {
		table, err := ruleset.Load(cfg.RulesFile)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("error loading rule table: %w", err)
		}
		s.table = table
		slog.Debug("cmd.rules_loaded", "path", cfg.RulesFile)
	}

	s.formatter, err = outputters.NewOutputter(cfg, stdout).Formatter()
	if err != nil {
		s.Close()
		return nil, err
	}

	return s, nil
}
