package main

import (
	"os"

	"github.com/jacksmith/pb/internal/cli"
	"github.com/jacksmith/pb/internal/model"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a contact",
	Long: `Show a single contact.

Examples:
  pb show 4821`,
	Args:              cobra.ExactArgs(1),
	RunE:              runShow,
	ValidArgsFunction: completeContactIDs,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := model.ParseID(args[0])
	if err != nil {
		return cli.Translate(err, args[0])
	}

	s, err := openBook()
	if err != nil {
		return err
	}

	c, err := s.book.Get(id)
	if err != nil {
		return cli.Translate(err, args[0])
	}

	cli.RenderCard(os.Stdout, model.Entry{ID: id, Contact: c})
	return nil
}
