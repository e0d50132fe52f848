package main

import (
	"fmt"
	"strings"

	"github.com/backkem/pngme/pkg/commands"
	"github.com/backkem/pngme/pkg/storage"
	"github.com/pion/logging"
	"github.com/spf13/cobra"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:           "pngme",
	Short:         "Hide messages in PNG files",
	Long:          `pngme stores text messages in ancillary PNG chunks, reads them back and removes them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "error", "log level: disabled, error, warn, info, debug, trace")
}

var logLevels = map[string]logging.LogLevel{
	"disabled": logging.LogLevelDisabled,
	"error":    logging.LogLevelError,
	"warn":     logging.LogLevelWarn,
	"info":     logging.LogLevelInfo,
	"debug":    logging.LogLevelDebug,
	"trace":    logging.LogLevelTrace,
}

func newLoggerFactory() (logging.LoggerFactory, error) {
	level, ok := logLevels[strings.ToLower(logLevel)]
	if !ok {
		return nil, fmt.Errorf("unknown log level %q", logLevel)
	}
	factory := logging.NewDefaultLoggerFactory()
	factory.DefaultLogLevel = level
	return factory, nil
}

// newCommands wires file storage and logging for a single invocation.
func newCommands(cmd *cobra.Command) (*commands.Commands, error) {
	loggerFactory, err := newLoggerFactory()
	if err != nil {
		return nil, err
	}

	fileConfig := storage.DefaultFileConfig()
	fileConfig.LoggerFactory = loggerFactory

	return commands.New(commands.Config{
		Storage:       storage.NewFileStorage(fileConfig),
		Output:        cmd.OutOrStdout(),
		LoggerFactory: loggerFactory,
	})
}
