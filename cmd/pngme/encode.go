package main

import (
	"github.com/backkem/pngme/pkg/commands"
	"github.com/spf13/cobra"
)

var encodePassphrase string

func init() {
	encodeCmd.Flags().StringVar(&encodePassphrase, "passphrase", "", "seal the message with a passphrase")
	rootCmd.AddCommand(encodeCmd)
}

var encodeCmd = &cobra.Command{
	Use:   "encode <file> <chunk_type> <message> [output_file]",
	Short: "Hide a message in a PNG file",
	Long:  `Adds a chunk of the given type holding the message. The chunk goes before IEND. Without output_file the input is rewritten.`,
	Args:  cobra.RangeArgs(3, 4),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmds, err := newCommands(cmd)
		if err != nil {
			return err
		}

		encodeArgs := commands.EncodeArgs{
			Path:       args[0],
			ChunkType:  args[1],
			Message:    args[2],
			Passphrase: encodePassphrase,
		}
		if len(args) == 4 {
			encodeArgs.OutputPath = args[3]
		}
		return cmds.Encode(encodeArgs)
	},
}
