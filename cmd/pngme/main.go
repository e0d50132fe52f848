// pngme hides messages in PNG files.
//
// Usage:
//
//	pngme encode <file> <chunk_type> <message> [output_file]
//	pngme decode <file> <chunk_type>
//	pngme remove <file> <chunk_type>
//	pngme print <file>
//	pngme list <file>
//
// Options:
//
//	--log-level    disabled, error, warn, info, debug or trace (default: error)
//	--passphrase   seal (encode) or open (decode) the message
//
// Example:
//
//	pngme encode dice.png ruSt "This is a secret message!"
//	pngme decode dice.png ruSt
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
