package cmd

import (
	"github.com/spf13/cobra"
)

// Version information
var (
	version string
	commit  string
	date    string
)

// SetVersionInfo sets the version information
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

var rootCmd = &cobra.Command{
	Use:   "iotexsetup [api-key] [llm-model] [audio-model]",
	Short: "Register the IoTeX AI gateway with OpenClaw",
	Long: `Registers the IoTeX AI gateway as a model provider in an existing
OpenClaw installation: writes the model catalog and API credentials into
OpenClaw's config files, enables audio transcription through the gateway,
and restarts the OpenClaw service.

Run without arguments for interactive setup, or pass the API key (and
optionally the models) for unattended use:

  iotexsetup
  iotexsetup sk-xxx
  iotexsetup sk-xxx gemini-2.5-flash whisper-1 --default`,
	Args:          cobra.RangeArgs(0, 3),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSetup,
}

// Execute executes the root command
func Execute() error {
	rootCmd.Version = version

	rootCmd.SetVersionTemplate(`iotexsetup {{.Version}}
Commit: ` + commit + `
Date: ` + date + `
`)

	return rootCmd.Execute()
}
