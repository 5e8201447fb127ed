package cmd

import (
	"context"
	"fmt"
	"strings"

	"ojtlog/auth"
	"ojtlog/ojt"
	"ojtlog/storage"

	"github.com/spf13/cobra"
)

var (
	userEmail    string
	userName     string
	userPassword string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage accounts and issue API tokens.",
	Long: `Create password accounts in the configured database and print bearer tokens
for them. Accounts created through Google sign-in have no password.`,
	Example: `
  # Create a password account
  ojtlog user add --email student@example.com --name "Juan Dela Cruz" --password "s3cret-pass"

  # Print a token valid for auth.token_ttl
  ojtlog user token --email student@example.com
`,
}

var userAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a password account.",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, store, err := openConfiguredStore()
		if err != nil {
			return err
		}
		defer store.Close()

		user, err := addUser(cmd.Context(), store, userEmail, userName, userPassword)
		if err != nil {
			return err
		}
		fmt.Printf("Account created. ID: %s, Email: %s\n", user.ID, user.Email)
		return nil
	},
}

var userTokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print a bearer token for an existing account.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, store, err := openConfiguredStore()
		if err != nil {
			return err
		}
		defer store.Close()

		user, err := lookupUser(cmd.Context(), store, userEmail)
		if err != nil {
			return err
		}
		token, expires, err := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL).Issue(user.ID, user.Email)
		if err != nil {
			return err
		}
		fmt.Println(token)
		fmt.Printf("Expires at: %s\n", expires.Format("2006-01-02 15:04:05 MST"))
		return nil
	},
}

func addUser(ctx context.Context, store *storage.Store, email, name, password string) (ojt.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return ojt.User{}, fmt.Errorf("a valid --email is required")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return ojt.User{}, err
	}
	return store.CreateUser(ctx, ojt.User{Email: email, Name: strings.TrimSpace(name), PasswordHash: hash})
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userAddCmd)
	userCmd.AddCommand(userTokenCmd)

	userCmd.PersistentFlags().StringVar(&userEmail, "email", "", "Account email")
	userAddCmd.Flags().StringVar(&userName, "name", "", "Display name, used as the default student name")
	userAddCmd.Flags().StringVar(&userPassword, "password", "", "Password (at least 8 characters)")

	_ = userCmd.MarkPersistentFlagRequired("email")
	_ = userAddCmd.MarkFlagRequired("password")
}
