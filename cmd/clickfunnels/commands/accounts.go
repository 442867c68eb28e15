package commands

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/fivetwenty-io/clickfunnels-node/internal/constants"
	"github.com/fivetwenty-io/clickfunnels-node/pkg/clickfunnels"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewTeamsCommand creates the teams command.
func NewTeamsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "teams",
		Short: "List teams",
		Long:  "List the teams the API token has access to",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext()
			defer cancel()

			s, err := newSession(ctx)
			if err != nil {
				return err
			}

			items, err := s.client.RequestAllAccounts(ctx, http.MethodGet, "/teams", nil, nil)
			if err != nil {
				return fmt.Errorf("failed to list teams: %w", err)
			}

			teams := make([]clickfunnels.Team, 0, len(items))

			for _, item := range items {
				var team clickfunnels.Team

				err = json.Unmarshal(item, &team)
				if err != nil {
					return fmt.Errorf("failed to decode team: %w", err)
				}

				teams = append(teams, team)
			}

			err = renderOutput(teams, func() error {
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Name")

				for _, team := range teams {
					_ = table.Append([]string{strconv.FormatInt(team.ID, 10), team.Name})
				}

				return renderTable(table)
			})
			if err != nil {
				return err
			}

			return s.printStats()
		},
	}
}

// NewWorkspacesCommand creates the workspaces command.
func NewWorkspacesCommand() *cobra.Command {
	var team string

	cmd := &cobra.Command{
		Use:   "workspaces",
		Short: "List workspaces of a team",
		Long:  "List the workspaces of a team together with the selector value used by the node",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext()
			defer cancel()

			s, err := newSession(ctx)
			if err != nil {
				return err
			}

			if team == "" {
				team = s.config.TeamID
			}

			if team == "" {
				return constants.ErrNoTeam
			}

			teamID, err := clickfunnels.ValidateNumericID(team, "team ID")
			if err != nil {
				return err
			}

			items, err := s.client.RequestAllAccounts(ctx, http.MethodGet, "/teams/"+teamID+"/workspaces", nil, nil)
			if err != nil {
				return fmt.Errorf("failed to list workspaces: %w", err)
			}

			workspaces := make([]clickfunnels.Workspace, 0, len(items))

			for _, item := range items {
				var workspace clickfunnels.Workspace

				err = json.Unmarshal(item, &workspace)
				if err != nil {
					return fmt.Errorf("failed to decode workspace: %w", err)
				}

				workspaces = append(workspaces, workspace)
			}

			err = renderOutput(workspaces, func() error {
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Name", "Subdomain", "Selector")

				for _, workspace := range workspaces {
					_ = table.Append([]string{
						strconv.FormatInt(workspace.ID, 10),
						workspace.Name,
						workspace.Subdomain,
						workspace.Selector().Encode(),
					})
				}

				return renderTable(table)
			})
			if err != nil {
				return err
			}

			return s.printStats()
		},
	}

	cmd.Flags().StringVar(&team, "team", "", "team ID (overrides team_id from config)")

	return cmd
}
