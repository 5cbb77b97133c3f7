package main

import (
	"os"

	"github.com/jacksmith/pb/internal/menu"
	"github.com/spf13/cobra"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Open the interactive menu",
	Long: `Open the interactive numbered menu.

This is what pb does when run without a subcommand. Enter 0 at the main
menu, or send end-of-input (Ctrl-D), to quit.`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	rootCmd.AddCommand(menuCmd)
}

func runMenu(cmd *cobra.Command, args []string) error {
	s, err := openBook()
	if err != nil {
		return err
	}

	m := menu.New(s.book, os.Stdin, os.Stdout, menu.Options{
		PageSize: s.cfg.PageSize,
		Clear:    true,
		Logger:   s.log,
	})
	return m.Run()
}
