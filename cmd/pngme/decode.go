package main

import (
	"github.com/backkem/pngme/pkg/commands"
	"github.com/spf13/cobra"
)

var decodePassphrase string

func init() {
	decodeCmd.Flags().StringVar(&decodePassphrase, "passphrase", "", "open a sealed message")
	rootCmd.AddCommand(decodeCmd)
}

var decodeCmd = &cobra.Command{
	Use:   "decode <file> <chunk_type>",
	Short: "Print the message hidden in a PNG file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmds, err := newCommands(cmd)
		if err != nil {
			return err
		}
		_, err = cmds.Decode(commands.DecodeArgs{
			Path:       args[0],
			ChunkType:  args[1],
			Passphrase: decodePassphrase,
		})
		return err
	},
}
