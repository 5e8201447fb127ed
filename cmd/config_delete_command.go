package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configDeleteYes bool

var configDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the active configuration file.",
	Long: `Delete the configuration file currently selected by ojtlog.

Only the YAML file goes away. The database it points at (database.dsn), every
account and logged entry, and any .env file stay where they are. Afterwards
auth.jwt_secret must come from OJTLOG_AUTH_JWT_SECRET or a new file written by
"ojtlog config create". A new file carries a freshly generated secret, so
bearer tokens issued before are no longer accepted.

The command asks for confirmation unless --yes is given.`,
	Example: `
  # Delete active config
  ojtlog config delete

  # Delete config at a custom path without prompting
  ojtlog --configFile ./custom-ojtlog.yaml config delete --yes
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := viper.ConfigFileUsed()
		if configPath == "" {
			return fmt.Errorf("no configuration file found")
		}

		if err := deleteConfigFile(configPath, configDeleteYes, deletePromptInput, deletePromptOutput); err != nil {
			return err
		}

		fmt.Printf("Configuration file deleted: %s\n", configPath)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configDeleteCmd)
	configDeleteCmd.Flags().BoolVarP(&configDeleteYes, "yes", "y", false, "Delete without asking for confirmation")
}

// deleteConfigFile removes path after a "Y" confirmation unless skipConfirm.
func deleteConfigFile(path string, skipConfirm bool, input io.Reader, output io.Writer) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("configuration file %s does not exist", path)
		}
		return fmt.Errorf("stat configuration file: %w", err)
	}

	if !skipConfirm {
		confirmed, err := confirmDeletePrompt(input, output, "configuration file "+path)
		if err != nil {
			return err
		}
		if !confirmed {
			return fmt.Errorf("delete aborted: confirmation was not 'Y'")
		}
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete configuration file: %w", err)
	}
	return nil
}
