package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the ojtlog configuration file.",
	Long: `Create, edit, display, and delete the ojtlog configuration file.

The configuration stores:
- server.port / read_timeout / write_timeout
- database.driver (sqlite|postgres) and database.dsn
- auth.jwt_secret, auth.token_ttl and optional auth.google client settings
- tracking.default_required_hours / page_size
- export.filename_prefix

Every key can be overridden by an OJTLOG_ environment variable, e.g. OJTLOG_AUTH_JWT_SECRET.`,
	Example: `
  # Create default config in $HOME/.ojtlog.yaml
  ojtlog config create

  # Show active config and source file
  ojtlog config show

  # Open active config in editor (creates example if missing)
  ojtlog config edit

  # Delete active config file
  ojtlog config delete
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
