package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/arrsync/arr"
	"github.com/s0up4200/arrsync/config"
	"github.com/s0up4200/arrsync/filter"
	"github.com/s0up4200/arrsync/importer"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger

	// Command flags
	dryRun bool

	// Build information
	appVersion = "dev"
	appBuild   = "unknown"
)

// rootCmd runs one manual import sync when invoked without a subcommand
var rootCmd = &cobra.Command{
	Use:   "arrsync",
	Short: "Sync manual imports between Sonarr or Radarr and the download folder",
	Long: `arrsync asks Sonarr or Radarr which files in the import folder can be
imported, submits every acceptable file as a single manual import command and
optionally deletes rejected files along with the folders they leave empty.

Configuration is read from the environment (ARR_URL, ARR_API_KEY, IMPORT_PATH,
...) and optionally from a config file. Each invocation performs one pass; use
an external scheduler to run it periodically.`,
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
	RunE:              runSync,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// SetVersion records build information shown by the version command.
func SetVersion(version, buildTime string) {
	appVersion = version
	appBuild = buildTime
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (environment variables take precedence)")
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "d", false, "report decisions without importing or deleting anything")

	// Add subcommands
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
}

// initializeApp loads and validates the configuration and sets up the logger.
// A configuration error aborts before any network or filesystem access.
func initializeApp(cmd *cobra.Command, args []string) error {
	return loadConfig(cmd, (*config.Config).Validate)
}

func loadConfig(cmd *cobra.Command, validate func(*config.Config) error) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override dry-run from command line if specified
	if cmd.Flags().Changed("dry-run") {
		cfg.DryRun = dryRun
	}

	logger = setupLogger(cfg.Log, cmd.OutOrStdout())

	if err := validate(cfg); err != nil {
		logger.WithLevel(zerolog.FatalLevel).Err(err).Msg("Invalid configuration")
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig, out io.Writer) zerolog.Logger {
	level, err := config.ParseLogLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	if strings.EqualFold(cfg.Format, "json") {
		return zerolog.New(out).Level(level).With().Timestamp().Logger()
	}

	// Console format
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    !isTerminal(out),
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	client, err := arr.NewClient(cfg.Arr.URL, cfg.Arr.APIKey, logger,
		arr.WithTimeout(cfg.Arr.Timeout),
		arr.WithUserAgent("arrsync/"+appVersion),
	)
	if err != nil {
		return fmt.Errorf("failed to create %s client: %w", cfg.Arr.Variant, err)
	}

	var deleteFilter *filter.Expression
	if cfg.Delete.RejectedFilter != "" {
		deleteFilter, err = filter.Compile(cfg.Delete.RejectedFilter)
		if err != nil {
			return fmt.Errorf("invalid delete filter: %w", err)
		}
	}

	syncer, err := importer.New(client, importer.Options{
		Variant:             cfg.Arr.Variant,
		ImportPath:          cfg.Import.Path,
		FilterExistingFiles: cfg.Import.FilterExistingFiles,
		DryRun:              cfg.DryRun,
		Cleanup: importer.CleanupOptions{
			DeleteFiles:        cfg.Delete.RejectedItems,
			DeleteEmptyFolders: cfg.Delete.RejectedItemFolders,
			DownloadPrefix:     cfg.Download.FolderPrefix,
			Filter:             deleteFilter,
		},
	}, logger)
	if err != nil {
		return err
	}

	if cfg.DryRun {
		logger.Info().Msg("DRY RUN MODE - nothing will be imported or deleted")
	}

	logger.Info().
		Str("software", cfg.Arr.Variant.String()).
		Str("folder", cfg.Import.Path).
		Msg("Starting manual import sync")

	result, err := syncer.Run(ctx)
	if err != nil {
		// Run errors are reported only; the exit code stays 0.
		event := logger.Error().Err(err)
		var apiErr *arr.APIError
		if errors.As(err, &apiErr) {
			event = event.Int("status", apiErr.StatusCode).Str("body", apiErr.Body)
		}
		event.Msg("Error during manual import item request")
		return nil
	}

	if cfg.DryRun {
		return importer.WriteReport(cmd.OutOrStdout(), result)
	}

	return nil
}

// versionCmd prints build information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	// No configuration needed
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "arrsync %s (built %s)\n", appVersion, appBuild)
	},
}
