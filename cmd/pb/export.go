package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jacksmith/pb/internal/cli"
	"github.com/jacksmith/pb/internal/model"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write all contacts to stdout",
	Long: `Write every contact to stdout, sorted by name.

JSON output has the same layout as the contacts file, so it can be used
as a backup. YAML output is a list for reading or further processing.

Examples:
  pb export > backup.json
  pb export --format yaml`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var exportFormat string

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "output format (json, yaml)")
	exportCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})
	rootCmd.AddCommand(exportCmd)
}

// exportRecord is one contact in YAML exports.
type exportRecord struct {
	ID            string `yaml:"id"`
	model.Contact `yaml:",inline"`
}

func runExport(cmd *cobra.Command, args []string) error {
	var format string
	switch strings.ToLower(exportFormat) {
	case "json":
		format = "json"
	case "yaml", "yml":
		format = "yaml"
	default:
		return &cli.ValidationError{Field: "format", Message: fmt.Sprintf("%q (expected json or yaml)", exportFormat)}
	}

	s, err := openBook()
	if err != nil {
		return err
	}
	entries := s.book.List()

	if format == "yaml" {
		records := make([]exportRecord, len(entries))
		for i, e := range entries {
			records[i] = exportRecord{ID: e.ID.String(), Contact: e.Contact}
		}
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("failed to encode contacts: %w", err)
		}
		return enc.Close()
	}

	data, err := model.EncodeContacts(entries)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
