package command

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"propchain/internal/config"
)

// Version is overridden at link time.
var Version = "dev"

// CLI is the shared state handed to every subcommand. It is filled in by
// the root command once flags are parsed.
type CLI struct {
	Config *config.Config
	Log    zerolog.Logger

	configPath string
	logLevel   string
	outputDir  string
	dir        string
	strict     bool
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	cli := &CLI{Log: zerolog.Nop()}

	cmd := &cobra.Command{
		Use:   "propchain",
		Short: "Generate typed property chain tables for reactive call sites",
		Long: "propchain finds reactive.WhenChanged, WhenChanging, OneWayBind and\n" +
			"TwoWayBind call sites, groups the property chains they name by host\n" +
			"and value type, and generates the path tables the runtime resolves\n" +
			"those expressions against.\n",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return cli.setup(cmd)
		},
	}

	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetVersionTemplate("{{.Version}}\n")

	flags := cmd.PersistentFlags()
	flags.StringVarP(&cli.configPath, "config", "c", config.DefaultFile, "Path to the project config file")
	flags.StringVar(&cli.logLevel, "log-level", "", "Log level (overrides log_level)")
	flags.StringVarP(&cli.outputDir, "out", "o", "", "Write every generated file to this directory")
	flags.StringVarP(&cli.dir, "dir", "C", "", "Directory package patterns are resolved in")
	flags.BoolVar(&cli.strict, "strict", false, "Fail when any call site is rejected")

	cmd.AddCommand(
		NewGenCommand(cli),
		NewPlanCommand(cli),
		NewWatchCommand(cli),
		NewVersionCommand(),
	)

	return cmd
}

// setup loads the config and lets flags override it.
func (c *CLI) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadOrDefault(c.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = c.logLevel
	}

	if flags.Changed("out") {
		cfg.OutputDir = c.outputDir
	}

	if flags.Changed("strict") {
		cfg.Strict = c.strict
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	c.Config = cfg
	c.Log = newLogger(cmd.ErrOrStderr(), cfg.Level())

	return nil
}

func newLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.NewConsoleWriter(func(cw *zerolog.ConsoleWriter) {
		cw.Out = w
		cw.NoColor = os.Getenv("NO_COLOR") != ""
	})).Level(level).With().Timestamp().Logger()
}

// Execute runs the root command and exits on failure.
func Execute() {
	root := NewRootCommand()

	if err := root.Execute(); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		os.Exit(1)
	}
}
