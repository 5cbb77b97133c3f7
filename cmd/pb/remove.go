package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jacksmith/pb/internal/cli"
	"github.com/jacksmith/pb/internal/model"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a contact",
	Long: `Remove a contact.

The contact is shown and you are asked to confirm, unless --yes is given
or confirm_remove is false in .pbconfig.yaml.

Examples:
  pb remove 4821
  pb remove 4821 --yes`,
	Aliases:           []string{"rm"},
	Args:              cobra.ExactArgs(1),
	RunE:              runRemove,
	ValidArgsFunction: completeContactIDs,
}

var removeYes bool

// confirmInput is where remove reads its confirmation.
var confirmInput io.Reader = os.Stdin

func init() {
	removeCmd.Flags().BoolVarP(&removeYes, "yes", "y", false, "do not ask for confirmation")
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
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

	if !removeYes && s.cfg.ConfirmRemove {
		cli.RenderCard(os.Stdout, model.Entry{ID: id, Contact: c})
		ok, err := cli.NewPrompter(confirmInput, os.Stdout).Confirm("Remove this contact?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if err := s.book.Remove(id); err != nil {
		return cli.Translate(err, args[0])
	}

	fmt.Printf("%s removed.\n", id)
	return nil
}
