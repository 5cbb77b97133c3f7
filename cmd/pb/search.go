package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jacksmith/pb/internal/book"
	"github.com/jacksmith/pb/internal/cli"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <field=value>...",
	Short: "Find contacts by exact field values",
	Long: `Find contacts whose fields equal the given values, ignoring case.

Every condition must match. Field names accept unique prefixes.

Examples:
  pb search surname=lee
  pb search name=anna org=acme
  pb search "organization=Foo, Bar & Baz"`,
	Aliases: []string{"find"},
	Args:    cobra.MinimumNArgs(1),
	RunE:    runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

// parseCriteria turns field=value arguments into search criteria.
func parseCriteria(args []string) ([]book.Criterion, error) {
	criteria := make([]book.Criterion, 0, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, &cli.ValidationError{Field: "condition", Message: fmt.Sprintf("%q is not in field=value form", arg)}
		}
		field, err := cli.MatchField(name)
		if err != nil {
			return nil, cli.Translate(err, "")
		}
		criteria = append(criteria, book.Criterion{Field: field, Value: value})
	}
	return criteria, nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	criteria, err := parseCriteria(args)
	if err != nil {
		return err
	}

	s, err := openBook()
	if err != nil {
		return err
	}

	for _, f := range book.DuplicateFields(criteria) {
		fmt.Fprintln(os.Stderr, cli.Yellow(fmt.Sprintf("warning: %s given more than once; all values must match", f)))
	}

	found, err := s.book.Search(criteria...)
	if err != nil {
		return cli.Translate(err, "")
	}
	if len(found) == 0 {
		fmt.Println("No contacts found.")
		return nil
	}

	cli.ContactTable(found).Render(os.Stdout)
	return nil
}
