package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"iotexsetup/config"
)

var flagKeepRunning bool

func init() {
	removeCmd.Flags().BoolVar(&flagKeepRunning, "keep-running", false, "skip the service restart after removal")
	rootCmd.AddCommand(removeCmd)
}

var removeCmd = &cobra.Command{
	Use:          "remove",
	Short:        "Remove the gateway registration from OpenClaw",
	Long:         "Deletes the IoTeX AI gateway provider, its model registrations, credential and audio settings from the local OpenClaw config.",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		mainPath, err := config.MainConfigPath()
		if err != nil {
			return err
		}
		mainStore := config.NewStore(mainPath)

		doc, err := mainStore.Read()
		if err != nil {
			if errors.Is(err, config.ErrDocumentNotFound) {
				return fmt.Errorf("OpenClaw config not found at %s", mainPath)
			}
			return err
		}

		cleaned, err := config.RemoveProviderConfig(doc)
		if err != nil {
			return err
		}
		changed := cleaned != doc
		if changed {
			if err := mainStore.Write(cleaned); err != nil {
				return err
			}
		}

		authPath, err := config.AuthStorePath()
		if err != nil {
			return err
		}
		authStore := config.NewStore(authPath)
		if store, err := authStore.Read(); err == nil {
			cleanedStore, err := config.RemoveAuthProfile(store)
			if err != nil {
				return err
			}
			if cleanedStore != store {
				if err := authStore.Write(cleanedStore); err != nil {
					return err
				}
				changed = true
			}
		}

		if !changed {
			fmt.Println("The IoTeX AI gateway was not registered, nothing to remove")
			return nil
		}

		fmt.Println("✓ IoTeX AI gateway removed from the OpenClaw config")
		if flagKeepRunning {
			fmt.Println("💡 Restart the OpenClaw service to apply the change")
			return nil
		}
		return restartService()
	},
}
