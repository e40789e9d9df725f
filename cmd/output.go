package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// OutputFormat represents the output format for CLI commands
type OutputFormat string

const (
	OutputFormatTable OutputFormat = "table"
	OutputFormatJSON  OutputFormat = "json"
	OutputFormatYAML  OutputFormat = "yaml"
)

// outputFormat is shared by every listing command.
var outputFormat string

func addOutputFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", string(OutputFormatTable), "Output format (table, json, yaml)")
}

// render writes data as JSON or YAML, or calls fillTable for table output.
func render(cmd *cobra.Command, data interface{}, fillTable func(t table.Writer)) error {
	out := cmd.OutOrStdout()
	switch OutputFormat(outputFormat) {
	case OutputFormatJSON:
		b, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(b))
		return err
	case OutputFormatYAML:
		b, err := yaml.Marshal(data)
		if err != nil {
			return err
		}
		_, err = out.Write(b)
		return err
	case OutputFormatTable, "":
		t := newTable(out)
		fillTable(t)
		t.Render()
		return nil
	default:
		return fmt.Errorf("unknown output format %q", outputFormat)
	}
}

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleRounded)
	return t
}

func header(columns ...string) table.Row {
	row := make(table.Row, len(columns))
	for i, col := range columns {
		row[i] = text.FgHiCyan.Sprint(strings.ToUpper(col))
	}
	return row
}

func printNote(cmd *cobra.Command, format string, args ...interface{}) {
	fmt.Fprintln(cmd.OutOrStdout(), text.FgYellow.Sprintf(format, args...))
}

func marker(on bool, symbol string) string {
	if on {
		return symbol
	}
	return ""
}
