package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"ojtlog/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values. Secrets are masked.`,
	Example: `
  # Show active configuration
  ojtlog config show
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Println("Config file loaded from:", configPath)
		} else {
			fmt.Println("No config file loaded; using defaults and environment.")
		}
		fmt.Println("Configuration:")
		fmt.Printf("server.port: %d\n", cfg.Server.Port)
		fmt.Printf("server.read_timeout: %s\n", cfg.Server.ReadTimeout)
		fmt.Printf("server.write_timeout: %s\n", cfg.Server.WriteTimeout)
		fmt.Printf("database.driver: %s\n", cfg.Database.Driver)
		fmt.Printf("database.dsn: %s\n", cfg.Database.DSN)
		fmt.Printf("auth.jwt_secret: %s\n", maskSecret(cfg.Auth.JWTSecret))
		fmt.Printf("auth.token_ttl: %s\n", cfg.Auth.TokenTTL)
		fmt.Printf("auth.google.enabled: %t\n", cfg.Auth.Google.Enabled())
		if cfg.Auth.Google.Enabled() {
			fmt.Printf("auth.google.client_id: %s\n", cfg.Auth.Google.ClientID)
			fmt.Printf("auth.google.redirect_url: %s\n", cfg.Auth.Google.RedirectURL)
		}
		fmt.Printf("tracking.default_required_hours: %g\n", cfg.Tracking.DefaultRequiredHours)
		fmt.Printf("tracking.page_size: %d\n", cfg.Tracking.PageSize)
		fmt.Printf("export.filename_prefix: %s\n", cfg.Export.FilenamePrefix)
		return nil
	},
}

// maskSecret keeps the first and last two characters.
func maskSecret(secret string) string {
	if len(secret) <= 4 {
		return "****"
	}
	return secret[:2] + "****" + secret[len(secret)-2:]
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
