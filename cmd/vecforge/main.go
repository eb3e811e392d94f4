package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cmathews/vecforge/internal/config"
	"github.com/cmathews/vecforge/internal/logger"
	"github.com/cmathews/vecforge/internal/provision"
)

var (
	// Version info (set by ldflags)
	version = "dev"

	// Flags
	configPath  string
	debug       bool
	skipInstall bool
	assumeYes   bool
)

// Exit codes, one per pipeline stage so automation can tell failures apart.
const (
	ExitSuccess     = 0
	ExitConfigError = 1
	ExitDetect      = 2
	ExitInstall     = 3
	ExitService     = 4
	ExitConfigWrite = 5
	ExitProvision   = 6
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vecforge",
		Short: "Provision a PostgreSQL + pgvector host",
		Long: `vecforge provisions a host for vector-search workloads: it installs
PostgreSQL and the pgvector extension, derives tuning values from the
detected hardware, writes postgresql.conf and pg_hba.conf, restarts the
service, and creates an application role and database.

The run is one-shot by design: re-running against a provisioned host fails
on the duplicate role/database instead of silently reusing old state.

Commands:
  vecforge provision             Run the full provisioning pipeline
  vecforge plan                  Show what would be written, change nothing
  vecforge config init           Write a default config file`,
		Version: version,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default /etc/vecforge/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(
		newProvisionCmd(),
		newPlanCmd(),
		newConfigCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		// Error already printed by cobra
		os.Exit(1)
	}
}

func loadConfig() *config.Config {
	var cfg *config.Config
	var err error

	if configPath != "" {
		cfg, err = config.LoadConfigFromPath(configPath)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(ExitConfigError)
	}
	return cfg
}

func initLogging(cfg *config.Config) {
	logLevel := logger.LevelInfo
	if debug || cfg.Debug {
		logLevel = logger.LevelDebug
	}
	logger.InitLogger(logLevel, cfg.LogFile)
}

// newProvisionCmd creates the provision subcommand
func newProvisionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Run the full provisioning pipeline",
		Long: `Run the full pipeline: detect hardware, install packages, write tuned
configuration (backing up existing files), restart the service, and create
the application role, database, and vector extension.

The generated password is printed once and stored nowhere.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			initLogging(cfg)
			defer logger.Close()

			if !assumeYes && !confirm(cfg) {
				fmt.Fprintln(os.Stderr, "Aborted.")
				os.Exit(ExitConfigError)
			}

			p, err := newPipeline(cfg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(ExitConfigError)
			}
			p.SkipInstall = skipInstall

			report, err := p.Run(cmd.Context())
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(exitCodeFor(err))
			}

			report.Print(os.Stdout)
			return nil
		},
	}
	cmd.Flags().BoolVar(&skipInstall, "skip-install", false, "assume packages and cluster are already installed")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

// confirm shows the run summary and asks the operator to proceed.
func confirm(cfg *config.Config) bool {
	fmt.Printf("About to provision this host:\n")
	fmt.Printf("  service:   %s (data dir %s)\n", cfg.Postgres.Service, cfg.Postgres.DataDir)
	fmt.Printf("  packages:  %s\n", strings.Join(cfg.Install.Packages, ", "))
	fmt.Printf("  app role:  %s, database %s\n", cfg.App.Username, cfg.App.Database)
	fmt.Printf("Existing configuration files will be backed up and overwritten.\n")
	fmt.Print("Proceed? [y/N] ")

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, provision.ErrDetect):
		return ExitDetect
	case errors.Is(err, provision.ErrInstall):
		return ExitInstall
	case errors.Is(err, provision.ErrConfigWrite):
		return ExitConfigWrite
	case errors.Is(err, provision.ErrService):
		return ExitService
	case errors.Is(err, provision.ErrProvision):
		return ExitProvision
	default:
		return 1
	}
}

// newPlanCmd creates the plan subcommand
func newPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Show the derived tuning and rendered configuration",
		Long: `Detect hardware, compute the tuning profile, and print the configuration
files that provision would write. Nothing on the host is changed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			initLogging(cfg)
			defer logger.Close()

			p, err := newPipeline(cfg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(ExitConfigError)
			}

			hw, profile, err := p.Plan()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(ExitDetect)
			}

			printPlan(cfg, hw.MemoryGB(), hw.CPUCores, profile)
			return nil
		},
	}
}

// newConfigCmd creates the config subcommand group
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the vecforge configuration file",
	}
	cmd.AddCommand(newConfigInitCmd())
	return cmd
}
