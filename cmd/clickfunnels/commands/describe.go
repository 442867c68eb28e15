package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/fivetwenty-io/clickfunnels-node/internal/constants"
	"github.com/fivetwenty-io/clickfunnels-node/internal/node"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewDescribeCommand creates the describe command.
func NewDescribeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "describe [RESOURCE]",
		Short: "Describe the node schema",
		Long:  "Show the resources and operations of the node, or the fields of every operation of one resource",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema := node.Describe()

			if len(args) == 0 {
				return renderOutput(schema, func() error {
					return displayResourcesTable(schema)
				})
			}

			resource, ok := schema.Resource(args[0])
			if !ok {
				return fmt.Errorf("%w: %s", constants.ErrUnknownResource, args[0])
			}

			return renderOutput(resource, func() error {
				return displayOperationsTable(resource)
			})
		},
	}
}

func displayResourcesTable(schema *node.Schema) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Resource", "Operations", "Host")

	for _, resource := range schema.Resources {
		operations := make([]string, 0, len(resource.Operations))
		host := ""

		for _, operation := range resource.Operations {
			operations = append(operations, operation.Name)
			host = string(operation.Host)
		}

		_ = table.Append([]string{resource.Name, strings.Join(operations, ", "), host})
	}

	return renderTable(table)
}

func displayOperationsTable(resource *node.ResourceSchema) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Operation", "Method", "Path", "Fields")

	for _, operation := range resource.Operations {
		fields := make([]string, 0, len(operation.Fields))

		for _, field := range operation.Fields {
			name := field.Name
			if field.Required {
				name += "*"
			}

			fields = append(fields, name)
		}

		_ = table.Append([]string{operation.Name, operation.Method, operation.Path, strings.Join(fields, ", ")})
	}

	return renderTable(table)
}
