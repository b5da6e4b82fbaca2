package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/arrsync/arr"
	"github.com/s0up4200/arrsync/config"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Test connection to Sonarr or Radarr",
	Long:  `Test the connection to the configured arr server and display the effective sync settings.`,
	// The connection check does not need the import settings
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd, (*config.Config).ValidateConnection)
	},
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Testing connection to %s at %s...\n", cfg.Arr.Variant, cfg.Arr.URL)

	status, err := arr.GetSystemStatus(cmd.Context(), cfg.Arr.Variant, cfg.Arr.URL, cfg.Arr.APIKey, cfg.Arr.Timeout)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "✓ Connection successful!")
	fmt.Fprintf(out, "- %s version: %s\n", status.AppName, status.Version)

	fmt.Fprintf(out, "\nSync settings:\n")
	fmt.Fprintf(out, "- Import folder: %s\n", cfg.Import.Path)
	fmt.Fprintf(out, "- Filter existing files: %s\n", boolToStatus(cfg.Import.FilterExistingFiles))
	fmt.Fprintf(out, "- Delete rejected items: %s\n", boolToStatus(cfg.Delete.RejectedItems))
	fmt.Fprintf(out, "- Delete empty folders: %s\n", boolToStatus(cfg.Delete.RejectedItemFolders))
	if cfg.Delete.RejectedFilter != "" {
		fmt.Fprintf(out, "- Delete filter: %s\n", cfg.Delete.RejectedFilter)
	}
	if cfg.Download.FolderPrefix != "" {
		fmt.Fprintf(out, "- Download folder prefix: %s\n", cfg.Download.FolderPrefix)
	}

	return nil
}

func boolToStatus(b bool) string {
	if b {
		return "Enabled"
	}
	return "Disabled"
}
