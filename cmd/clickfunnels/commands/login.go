package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"syscall"

	"github.com/fivetwenty-io/clickfunnels-node/internal/auth"
	"github.com/fivetwenty-io/clickfunnels-node/internal/constants"
	"github.com/fivetwenty-io/clickfunnels-node/pkg/cfclient"
	"github.com/fivetwenty-io/clickfunnels-node/pkg/clickfunnels"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var domain string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store a ClickFunnels API token",
		Long: `Verify a ClickFunnels API token against the accounts host and store it
in the configuration file. The token is taken from --token, from
CLICKFUNNELS_API_TOKEN, or read from the terminal without echo.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			token := viper.GetString("api_token")

			if token == "" {
				_, _ = fmt.Fprint(os.Stderr, "API token: ")

				byteToken, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read token: %w", err)
				}

				_, _ = fmt.Fprintln(os.Stderr)
				token = string(byteToken)
			}

			token = auth.NormalizeToken(token)
			if token == "" {
				return constants.ErrEmptyToken
			}

			if domain == "" {
				domain = viper.GetString("domain")
			}

			ctx, cancel := context.WithTimeout(context.Background(), constants.ShortHTTPTimeout)
			defer cancel()

			me, err := verifyToken(ctx, domain, token)
			if err != nil {
				return err
			}

			if domain != "" {
				normalized, err := cfclient.NormalizeDomain(domain)
				if err != nil {
					return err
				}

				viper.Set("domain", normalized)
			}

			manager := auth.NewConfigTokenManager(NewConfigPersister(), "")

			err = manager.UpdateToken(ctx, token)
			if err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Logged in as %s\n", describeMe(me))

			return nil
		},
	}

	cmd.Flags().StringVar(&domain, "domain", "", "API domain to log in to (default myclickfunnels.com)")

	return cmd
}

// NewCredentialCommand creates the credential command group.
func NewCredentialCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credential",
		Short: "Manage the API credential",
		Long:  "Inspect and test the configured ClickFunnels API token",
	}

	cmd.AddCommand(newCredentialTestCommand())

	return cmd
}

func newCredentialTestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Test the configured API token",
		Long:  "Call GET /me on the accounts host with the configured API token",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			if config.APIToken == "" {
				return constants.ErrNoAPIToken
			}

			ctx, cancel := context.WithTimeout(context.Background(), constants.ShortHTTPTimeout)
			defer cancel()

			me, err := verifyToken(ctx, config.Domain, config.APIToken)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(os.Stdout, "Credential OK: %s\n", describeMe(me))

			return nil
		},
	}
}

func verifyToken(ctx context.Context, domain, token string) (json.RawMessage, error) {
	client, err := cfclient.New(ctx, &clickfunnels.Config{
		APIToken:    token,
		Domain:      domain,
		HTTPTimeout: constants.ShortHTTPTimeout,
		Logger:      clickfunnels.NewSlogLogger(newLogger()),
		Debug:       viper.GetBool("verbose"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	me, err := client.Me(ctx)
	if err != nil {
		if clickfunnels.IsUnauthorized(err) || clickfunnels.IsForbidden(err) {
			return nil, fmt.Errorf("token rejected: %w", err)
		}

		return nil, fmt.Errorf("credential test failed: %w", err)
	}

	return me, nil
}

// describeMe picks a readable identity out of the /me response.
func describeMe(me json.RawMessage) string {
	var user struct {
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		ID        int64  `json:"id"`
	}

	if json.Unmarshal(me, &user) != nil {
		return constants.NotAvailable
	}

	switch {
	case user.Email != "":
		return user.Email
	case user.FirstName != "" || user.LastName != "":
		return user.FirstName + " " + user.LastName
	case user.ID != 0:
		return fmt.Sprintf("user %d", user.ID)
	default:
		return constants.NotAvailable
	}
}
