package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/clickfunnels-node/internal/constants"
	"github.com/fivetwenty-io/clickfunnels-node/internal/node"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	var (
		resource       string
		operation      string
		params         []string
		itemsFile      string
		team           string
		workspace      string
		continueOnFail bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a node operation",
		Long: `Run one (resource, operation) pair of the ClickFunnels node.

Parameters are given as --param key=value; values that parse as JSON are
passed as JSON (numbers, booleans, objects), anything else as text. With
--items, each object of the JSON array becomes one input item whose values
override the shared parameters.`,
		Example: `  clickfunnels run --resource contact --operation getAll --param limit=10
  clickfunnels run --resource contact --operation upsert --param email=ada@example.com \
    --param 'additionalFields={"tag_ids":"1, 2"}'
  clickfunnels run --resource tag --operation delete --items tags.json --continue-on-fail`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if resource == "" {
				return constants.ErrResourceRequired
			}

			if operation == "" {
				return constants.ErrOperationRequired
			}

			shared, err := parseParams(params)
			if err != nil {
				return err
			}

			var items []map[string]interface{}

			if itemsFile != "" {
				items, err = readItems(itemsFile)
				if err != nil {
					return err
				}
			}

			ctx, cancel := commandContext()
			defer cancel()

			s, err := newSession(ctx)
			if err != nil {
				return err
			}

			applyScope(shared, s.config, team, workspace)
			shared["resource"] = resource
			shared["operation"] = operation

			n, closeCache, err := s.newNode(continueOnFail)
			if err != nil {
				return err
			}
			defer closeCache()

			parameters := node.NewMapParameters(shared, items...)

			results, err := n.Execute(ctx, parameters, parameters.ItemCount())
			if err != nil {
				_ = s.printStats()

				return fmt.Errorf("%s.%s failed: %w", resource, operation, err)
			}

			err = renderResults(results)
			if err != nil {
				return err
			}

			return s.printStats()
		},
	}

	cmd.Flags().StringVarP(&resource, "resource", "r", "", "resource name, e.g. contact")
	cmd.Flags().StringVarP(&operation, "operation", "p", "", "operation name, e.g. getAll")
	cmd.Flags().StringArrayVar(&params, "param", nil, "parameter as key=value (repeatable)")
	cmd.Flags().StringVar(&itemsFile, "items", "", "JSON file with an array of per-item parameter objects")
	cmd.Flags().StringVar(&team, "team", "", "team ID (overrides team_id from config)")
	cmd.Flags().StringVar(&workspace, "workspace", "", `workspace selector, e.g. '{"id":42,"subdomain":"myshop"}'`)
	cmd.Flags().BoolVar(&continueOnFail, "continue-on-fail", false, "report failing items as error results instead of aborting")

	return cmd
}

// applyScope fills teamId and workspaceId from flags or the configuration
// unless --param already set them.
func applyScope(shared map[string]interface{}, config *Config, team, workspace string) {
	if team == "" {
		team = config.TeamID
	}

	if workspace == "" {
		workspace = config.Workspace
	}

	if _, ok := shared["teamId"]; !ok && team != "" {
		shared["teamId"] = team
	}

	if _, ok := shared["workspaceId"]; !ok && workspace != "" {
		shared["workspaceId"] = workspace
	}
}

// parseParams turns key=value pairs into parameter values.
func parseParams(pairs []string) (map[string]interface{}, error) {
	params := make(map[string]interface{}, len(pairs))

	for _, pair := range pairs {
		parts := strings.SplitN(pair, "=", constants.KeyValueSplitParts)
		if len(parts) != constants.KeyValueSplitParts || strings.TrimSpace(parts[0]) == "" {
			return nil, fmt.Errorf("%w: %s", constants.ErrInvalidParam, pair)
		}

		params[strings.TrimSpace(parts[0])] = parseParamValue(parts[1])
	}

	return params, nil
}

// parseParamValue decodes value as JSON when possible. Numbers stay
// json.Number so large IDs keep their digits.
func parseParamValue(value string) interface{} {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || !json.Valid([]byte(trimmed)) {
		return value
	}

	decoder := json.NewDecoder(bytes.NewReader([]byte(trimmed)))
	decoder.UseNumber()

	var decoded interface{}

	err := decoder.Decode(&decoded)
	if err != nil {
		return value
	}

	return decoded
}

// readItems loads the per-item parameter objects from a JSON file.
func readItems(path string) ([]map[string]interface{}, error) {
	if strings.Contains(path, "..") {
		return nil, fmt.Errorf("%w: %s", constants.ErrDirectoryTraversal, path)
	}

	// #nosec G304 -- the path is supplied by the operator running the CLI
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read items file: %w", err)
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var items []map[string]interface{}

	err = decoder.Decode(&items)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", constants.ErrItemsNotArray, err)
	}

	return items, nil
}

// renderResults prints node results. JSON and YAML output the payloads the
// way the host would receive them.
func renderResults(results []node.Result) error {
	payloads := make([]json.RawMessage, 0, len(results))
	for _, result := range results {
		payloads = append(payloads, result.Payload())
	}

	var structured interface{} = payloads

	decoded := make([]interface{}, 0, len(payloads))

	for _, payload := range payloads {
		var value interface{}
		if json.Unmarshal(payload, &value) == nil {
			decoded = append(decoded, value)
		}
	}

	// yaml.v3 cannot encode json.RawMessage as an object, so give it decoded values.
	if len(decoded) == len(payloads) {
		structured = decoded
	}

	return renderOutput(structured, func() error {
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Item", "Status", "Result")

		for _, result := range results {
			status := "ok"
			text := string(result.JSON)

			if result.Error != "" {
				status = "error"
				text = result.Error
			}

			_ = table.Append([]string{
				strconv.Itoa(result.Item),
				status,
				truncate(text, constants.StringTruncationLength),
			})
		}

		return renderTable(table)
	})
}
