package main

import (
	"fmt"
	"os"

	"github.com/jacksmith/pb/internal/book"
	"github.com/jacksmith/pb/internal/cli"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List contacts",
	Long: `List contacts sorted by name, one page at a time.

The page size comes from page_size in .pbconfig.yaml, PB_PAGE_SIZE or
--page-size.

Examples:
  pb list
  pb list --page 2
  pb list --all`,
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	RunE:    runList,
}

var (
	listPage int
	listAll  bool
)

func init() {
	listCmd.Flags().IntVar(&listPage, "page", 1, "page to show")
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "show every contact")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := openBook()
	if err != nil {
		return err
	}

	entries := s.book.List()
	if len(entries) == 0 {
		fmt.Println("No contacts.")
		return nil
	}

	if listAll {
		cli.ContactTable(entries).Render(os.Stdout)
		return nil
	}

	p := book.NewPager(len(entries), s.cfg.PageSize)
	if err := p.Goto(listPage); err != nil {
		return &cli.ValidationError{Field: "page", Message: err.Error()}
	}

	cli.ContactTable(book.Window(entries, p)).Render(os.Stdout)
	fmt.Println(cli.Gray(fmt.Sprintf("page %d of %d", p.Page(), p.Pages())))
	return nil
}
