/*
Copyright © 2025 riad@rsworld.eu

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"ojtlog/config"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ojtlog",
	Short: "Log on-the-job training hours, track progress, and export timesheets.",
	Long: `
**********************************************
*                 OJT LOG                    *
**********************************************

This CLI runs the OJT hour-logging API and offers local helpers around the same
database: account setup, timesheet import, progress reports and CSV/Excel export.

Supported databases:
- SQLite (default, file based)
- PostgreSQL
`,
	Example: `
  # Create configuration file
  ojtlog config create

  # Create an account and print a token for API calls
  ojtlog user add --email student@example.com --name "Juan Dela Cruz" --password "s3cret-pass"
  ojtlog user token --email student@example.com

  # Start the API server
  ojtlog serve

  # Import an existing timesheet
  ojtlog import -i ./timesheet.xlsx --user student@example.com --supervisor "Ms. Cruz"

  # Show progress against the required hours
  ojtlog stats --user student@example.com

  # Export all logs to Excel
  ojtlog export --user student@example.com --format excel
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.ojtlog.yaml, then ./.ojtlog.yaml)")
}

// initConfig reads in .env, the config file and ENV variables if set.
func initConfig() {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".ojtlog")
	}

	viper.SetEnvPrefix(config.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "No config file found. Create one first with: ojtlog config create")
	}
}
