package main

import (
	"github.com/backkem/pngme/pkg/commands"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(printCmd)
	rootCmd.AddCommand(listCmd)
}

var printCmd = &cobra.Command{
	Use:   "print <file>",
	Short: "Print every chunk of a PNG file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmds, err := newCommands(cmd)
		if err != nil {
			return err
		}
		return cmds.Print(commands.PrintArgs{Path: args[0]})
	},
}

var listCmd = &cobra.Command{
	Use:   "list <file>",
	Short: "List chunks one per line with their properties",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmds, err := newCommands(cmd)
		if err != nil {
			return err
		}
		return cmds.List(commands.PrintArgs{Path: args[0]})
	},
}
