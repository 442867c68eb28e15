package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/fivetwenty-io/clickfunnels-node/internal/node"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewOptionsCommand creates the options command.
func NewOptionsCommand() *cobra.Command {
	var (
		team      string
		workspace string
	)

	cmd := &cobra.Command{
		Use:   "options LOADER",
		Short: "List dropdown options",
		Long:  "Run a dropdown loader of the node. Loaders: " + strings.Join(node.Loaders(), ", "),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext()
			defer cancel()

			s, err := newSession(ctx)
			if err != nil {
				return err
			}

			shared := map[string]interface{}{}
			applyScope(shared, s.config, team, workspace)

			n, closeCache, err := s.newNode(false)
			if err != nil {
				return err
			}
			defer closeCache()

			options, err := n.LoadOptions(ctx, args[0], node.NewMapParameters(shared))
			if err != nil {
				return fmt.Errorf("failed to load options: %w", err)
			}

			err = renderOptions(options)
			if err != nil {
				return err
			}

			return s.printStats()
		},
	}

	cmd.Flags().StringVar(&team, "team", "", "team ID (overrides team_id from config)")
	cmd.Flags().StringVar(&workspace, "workspace", "", "workspace selector (overrides workspace from config)")

	return cmd
}

func renderOptions(options []node.OptionValue) error {
	return renderOutput(options, func() error {
		if len(options) == 0 {
			_, _ = os.Stdout.WriteString("No options found\n")

			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Name", "Value")

		for _, option := range options {
			_ = table.Append([]string{option.Name, option.Value})
		}

		return renderTable(table)
	})
}
