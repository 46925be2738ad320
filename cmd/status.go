package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"iotexsetup/config"
	"iotexsetup/internal/utils"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:          "status",
	Short:        "Show the gateway registration state",
	Long:         "Shows whether the IoTeX AI gateway is registered in the local OpenClaw config, and with which models.",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		mainPath, err := config.MainConfigPath()
		if err != nil {
			return err
		}
		doc, err := config.NewStore(mainPath).Read()
		if err != nil {
			if errors.Is(err, config.ErrDocumentNotFound) {
				return fmt.Errorf("OpenClaw config not found at %s", mainPath)
			}
			return err
		}

		provider := gjson.Get(doc, "models.providers."+config.ProviderName)
		if !provider.Exists() {
			fmt.Println("The IoTeX AI gateway is not registered")
			fmt.Println("\n💡 Run 'iotexsetup' to set it up")
			return nil
		}

		fmt.Println("IoTeX AI gateway registration:")
		fmt.Printf("  Gateway:  %s\n", provider.Get("baseUrl").String())
		fmt.Printf("  API key:  %s\n", utils.MaskAPIKey(provider.Get("apiKey").String()))
		fmt.Printf("  Models:   %d registered\n", len(provider.Get("models").Array()))

		if primary := gjson.Get(doc, "agents.defaults.model.primary").String(); primary != "" {
			fmt.Printf("  Default:  %s\n", primary)
		}

		audio := gjson.Get(doc, "tools.media.audio")
		if audio.Get("enabled").Bool() {
			for _, m := range audio.Get("models").Array() {
				if m.Get("profile").String() == config.ProfileName {
					fmt.Printf("  Audio:    %s\n", m.Get("model").String())
					break
				}
			}
		}

		authPath, err := config.AuthStorePath()
		if err != nil {
			return err
		}
		store, err := config.NewStore(authPath).Read()
		if err == nil && gjson.Get(store, "profiles."+config.ProfileName).Exists() {
			fmt.Println("  Auth:     credential stored")
		} else {
			fmt.Println("  ⚠️  Auth:    credential missing, re-run 'iotexsetup'")
		}

		return nil
	},
}
