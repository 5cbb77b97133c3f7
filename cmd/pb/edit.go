package main

import (
	"fmt"

	"github.com/jacksmith/pb/internal/cli"
	"github.com/jacksmith/pb/internal/model"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <id> [<field> <value>]",
	Short: "Edit a contact",
	Long: `Change one field of a contact, or edit the whole contact in $EDITOR.

Fields: name, surname, patronymic, organization, work_number,
personal_number. Any unique prefix works ("org", "work").

Examples:
  pb edit 4821 surname Park
  pb edit 4821 org "Initech"
  pb edit 4821 work_number ""
  pb edit 4821 -i                  # open in $EDITOR`,
	Args:              cobra.RangeArgs(1, 3),
	RunE:              runEdit,
	ValidArgsFunction: completeEditArgs,
}

var editInteractive bool

func init() {
	editCmd.Flags().BoolVarP(&editInteractive, "interactive", "i", false, "edit in $EDITOR")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	switch {
	case editInteractive && len(args) != 1:
		return &cli.ValidationError{Message: "-i takes only a contact ID"}
	case !editInteractive && len(args) != 3:
		return &cli.ValidationError{Message: "expected <id> <field> <value>, or <id> -i"}
	}

	id, err := model.ParseID(args[0])
	if err != nil {
		return cli.Translate(err, args[0])
	}

	s, err := openBook()
	if err != nil {
		return err
	}

	if editInteractive {
		return runEditInteractive(s, id)
	}

	field, err := cli.MatchField(args[1])
	if err != nil {
		return cli.Translate(err, args[0])
	}

	if err := s.book.Edit(id, field, args[2]); err != nil {
		return cli.Translate(err, args[0])
	}

	fmt.Printf("%s updated.\n", id)
	return nil
}

func runEditInteractive(s *session, id model.ID) error {
	c, err := s.book.Get(id)
	if err != nil {
		return cli.Translate(err, id.String())
	}

	updated, changed, err := cli.EditContact(id, c)
	if err != nil {
		return err
	}
	if len(changed) == 0 {
		fmt.Println("No changes.")
		return nil
	}

	for _, f := range changed {
		if err := s.book.Edit(id, f, updated.Get(f)); err != nil {
			return cli.Translate(err, id.String())
		}
	}

	fmt.Printf("%s updated.\n", id)
	return nil
}
