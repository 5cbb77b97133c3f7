package main

import (
	"fmt"

	"github.com/jacksmith/pb/internal/model"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a contact",
	Long: `Add a new contact and print its ID.

Fields left out are stored empty.

Examples:
  pb add --name Anna --surname Lee --organization Acme
  pb add --name Anna --work-number "+1 555 0100" --personal-number 0199`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

var addContact model.Contact

func init() {
	addCmd.Flags().StringVar(&addContact.Name, "name", "", "first name")
	addCmd.Flags().StringVar(&addContact.Surname, "surname", "", "surname")
	addCmd.Flags().StringVar(&addContact.Patronymic, "patronymic", "", "patronymic")
	addCmd.Flags().StringVar(&addContact.Organization, "organization", "", "organization")
	addCmd.Flags().StringVar(&addContact.WorkNumber, "work-number", "", "work phone")
	addCmd.Flags().StringVar(&addContact.PersonalNumber, "personal-number", "", "personal phone")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	s, err := openBook()
	if err != nil {
		return err
	}

	id, err := s.book.Add(addContact)
	if err != nil {
		return err
	}

	if name := addContact.FullName(); name != "" {
		fmt.Printf("%s %s\n", id, name)
	} else {
		fmt.Println(id)
	}
	return nil
}
