package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"iotexsetup/config"
	"iotexsetup/config/validation"
	"iotexsetup/internal/catalog"
	"iotexsetup/internal/prompt"
	"iotexsetup/internal/restart"
	"iotexsetup/internal/utils"
	"iotexsetup/internal/wizard"
)

var (
	flagDefault    bool
	flagYes        bool
	flagWizard     bool
	flagGatewayURL string
)

func init() {
	rootCmd.Flags().BoolVarP(&flagDefault, "default", "d", false, "set the chosen chat model as OpenClaw's default")
	rootCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "accept the recommended models without prompting")
	rootCmd.Flags().BoolVarP(&flagWizard, "wizard", "w", false, "run the full-screen setup wizard")
	rootCmd.Flags().StringVar(&flagGatewayURL, "gateway-url", "", "override the gateway base URL (for self-hosted deployments)")
}

func runSetup(cmd *cobra.Command, args []string) error {
	req, cancelled, err := buildRequest(args)
	if err != nil {
		return err
	}
	if cancelled {
		fmt.Println("Setup cancelled")
		return nil
	}

	if err := applySetup(req); err != nil {
		return err
	}

	printSummary(req)
	return restartService()
}

// buildRequest assembles the onboarding request from arguments, flags and,
// when something is missing, the controlling terminal.
func buildRequest(args []string) (config.SetupRequest, bool, error) {
	gatewayURL := utils.NormalizeURL(flagGatewayURL)
	if err := validation.ValidateGatewayURL(gatewayURL); err != nil {
		return config.SetupRequest{}, false, err
	}

	if flagWizard {
		req, accepted, err := wizard.Run()
		if err != nil {
			return config.SetupRequest{}, false, err
		}
		req.GatewayURL = gatewayURL
		if flagDefault {
			req.SetAsDefault = true
		}
		return req, !accepted, nil
	}

	req := config.SetupRequest{
		SetAsDefault: flagDefault,
		GatewayURL:   gatewayURL,
	}

	// Arguments are classified, not positional: the API key is recognized
	// by its sk- prefix, the remaining tokens are chat then audio model ids
	var modelArgs []string
	for _, arg := range args {
		if req.APIKey == "" && strings.HasPrefix(arg, "sk-") {
			req.APIKey = arg
			continue
		}
		modelArgs = append(modelArgs, arg)
	}
	if len(modelArgs) > 0 {
		req.LLMModelID = modelArgs[0]
	}
	if len(modelArgs) > 1 {
		req.AudioModelID = modelArgs[1]
	}
	if len(modelArgs) > 2 {
		return config.SetupRequest{}, false, fmt.Errorf("unexpected argument %q", modelArgs[2])
	}

	// Arguments are validated before anything is prompted or written
	if req.APIKey != "" {
		if err := validation.ValidateAPIKey(req.APIKey); err != nil {
			return config.SetupRequest{}, false, err
		}
	}
	if req.LLMModelID != "" {
		if err := validation.ValidateModel(req.LLMModelID, catalog.KindLLM); err != nil {
			return config.SetupRequest{}, false, err
		}
	}
	if req.AudioModelID != "" {
		if err := validation.ValidateModel(req.AudioModelID, catalog.KindAudio); err != nil {
			return config.SetupRequest{}, false, err
		}
	}

	if err := resolveMissing(&req); err != nil {
		return config.SetupRequest{}, false, err
	}
	return req, false, nil
}

// resolveMissing fills the request fields not covered by arguments, asking
// on the terminal when one is available and --yes was not given.
func resolveMissing(req *config.SetupRequest) error {
	complete := req.APIKey != "" && req.LLMModelID != "" && req.AudioModelID != ""
	if complete {
		return nil
	}

	var term *prompt.Terminal
	if !flagYes {
		term, _ = prompt.New()
		if term != nil {
			defer term.Close()
		}
	}

	if req.APIKey == "" {
		if term == nil {
			return prompt.ErrMissingCredential
		}
		key, err := term.PromptAPIKey()
		if err != nil {
			return err
		}
		req.APIKey = key
	}

	if req.LLMModelID == "" {
		req.LLMModelID = catalog.DefaultLLM().ID
		if term != nil {
			entry, err := term.SelectModel("Choose a chat model:", catalog.LLMModels())
			if err != nil {
				return err
			}
			req.LLMModelID = entry.ID
		}
	}

	if req.AudioModelID == "" {
		req.AudioModelID = catalog.DefaultAudio().ID
		if term != nil {
			entry, err := term.SelectModel("Choose an audio transcription model:", catalog.AudioModels())
			if err != nil {
				return err
			}
			req.AudioModelID = entry.ID
		}
	}

	if !req.SetAsDefault && term != nil {
		setDefault, err := term.Confirm(
			fmt.Sprintf("Set %s/%s as the default agent model?", config.ProviderName, req.LLMModelID), false)
		if err != nil {
			return err
		}
		req.SetAsDefault = setDefault
	}

	return nil
}

// applySetup merges the provider into both OpenClaw documents. Documents are
// only rewritten when the merge actually changed them.
func applySetup(req config.SetupRequest) error {
	mainPath, err := config.MainConfigPath()
	if err != nil {
		return err
	}
	mainStore := config.NewStore(mainPath)

	doc, err := mainStore.Read()
	if err != nil {
		if errors.Is(err, config.ErrDocumentNotFound) {
			return fmt.Errorf("OpenClaw config not found at %s, finish the OpenClaw installation first", mainPath)
		}
		return err
	}

	merged, err := config.MergeProviderConfig(doc, req)
	if err != nil {
		return err
	}
	if merged != doc {
		if err := mainStore.Write(merged); err != nil {
			return err
		}
	}

	authPath, err := config.AuthStorePath()
	if err != nil {
		return err
	}
	authStore := config.NewStore(authPath)

	// A missing or unreadable store is recreated rather than reported
	store, err := authStore.Read()
	if err != nil {
		store = ""
	}

	mergedStore, err := config.MergeAuthProfile(store, req)
	if err != nil {
		return err
	}
	if mergedStore != store {
		if err := authStore.Write(mergedStore); err != nil {
			return err
		}
	}

	return nil
}

func printSummary(req config.SetupRequest) {
	fmt.Println("\n✅ IoTeX AI gateway registered with OpenClaw")
	fmt.Printf("  Gateway:     %s\n", req.BaseURL())
	fmt.Printf("  API key:     %s\n", utils.MaskAPIKey(req.APIKey))
	fmt.Printf("  Chat model:  %s/%s\n", config.ProviderName, req.LLMModelID)
	fmt.Printf("  Audio model: %s\n", req.AudioModelID)
	if req.SetAsDefault {
		fmt.Printf("  Default:     %s/%s\n", config.ProviderName, req.LLMModelID)
	}
	fmt.Println()
}

// restartService bounces OpenClaw so the new provider is picked up. The
// config is already written at this point, so a failure here must say so.
func restartService() error {
	if err := restart.New().Restart(); err != nil {
		return fmt.Errorf("config updated, but the service restart failed: %w", err)
	}
	return nil
}
