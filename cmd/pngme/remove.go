package main

import (
	"github.com/backkem/pngme/pkg/commands"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(removeCmd)
}

var removeCmd = &cobra.Command{
	Use:   "remove <file> <chunk_type>",
	Short: "Remove the first chunk of a type",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmds, err := newCommands(cmd)
		if err != nil {
			return err
		}
		_, err = cmds.Remove(commands.RemoveArgs{Path: args[0], ChunkType: args[1]})
		return err
	},
}
