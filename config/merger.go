package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"iotexsetup/internal/catalog"
)

// Provider constants for the IoTeX AI gateway
const (
	ProviderName      = "iotex"
	ProfileName       = "iotex:default"
	DefaultGatewayURL = "https://ai-gateway.iotex.ai/v1"
	APIProtocol       = "openai-completions"
)

// SetupRequest carries the validated onboarding inputs. Immutable once built.
type SetupRequest struct {
	APIKey       string
	LLMModelID   string
	AudioModelID string
	SetAsDefault bool
	GatewayURL   string // empty means DefaultGatewayURL
}

// BaseURL returns the gateway base URL for this request
func (r SetupRequest) BaseURL() string {
	if r.GatewayURL != "" {
		return r.GatewayURL
	}
	return DefaultGatewayURL
}

type providerModel struct {
	ID   string    `json:"id"`
	Name string    `json:"name"`
	Cost modelCost `json:"cost"`
}

// modelCost carries the zero-cost billing fields the gateway advertises
type modelCost struct {
	Input  float64 `json:"input"`
	Output float64 `json:"output"`
}

type providerDescriptor struct {
	BaseURL string          `json:"baseUrl"`
	APIKey  string          `json:"apiKey"`
	API     string          `json:"api"`
	Models  []providerModel `json:"models"`
}

type audioModelEntry struct {
	Provider string `json:"provider"`
	Profile  string `json:"profile"`
	BaseURL  string `json:"baseUrl"`
	Model    string `json:"model"`
}

// escapeKey escapes a literal object key for use in a gjson/sjson path.
// Model ids contain dots, which would otherwise read as path separators.
func escapeKey(key string) string {
	replacer := strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`)
	return replacer.Replace(key)
}

// registryKey is the agent-defaults model registry key for a gateway model
func registryKey(modelID string) string {
	return ProviderName + "/" + modelID
}

// MergeProviderConfig applies the provider upserts to the raw JSON text of
// OpenClaw's main config document and returns the updated text. Every upsert
// is idempotent and keys unrelated to the iotex provider are left untouched.
func MergeProviderConfig(doc string, req SetupRequest) (string, error) {
	if !gjson.Valid(doc) {
		return "", fmt.Errorf("invalid JSON in config document")
	}

	// 1. Full overwrite of the provider descriptor so it always reflects
	// the current catalog
	descriptor := providerDescriptor{
		BaseURL: req.BaseURL(),
		APIKey:  req.APIKey,
		API:     APIProtocol,
	}
	for _, m := range catalog.LLMModels() {
		descriptor.Models = append(descriptor.Models, providerModel{ID: m.ID, Name: m.Name})
	}
	descriptorJSON, err := json.Marshal(descriptor)
	if err != nil {
		return "", fmt.Errorf("failed to marshal provider descriptor: %w", err)
	}
	doc, err = sjson.SetRaw(doc, "models.providers."+ProviderName, string(descriptorJSON))
	if err != nil {
		return "", fmt.Errorf("failed to set provider descriptor: %w", err)
	}

	// 2. Registry entries for every known model; existing entries keep any
	// user customization
	for _, id := range catalog.IDs(catalog.KindLLM) {
		path := "agents.defaults.models." + escapeKey(registryKey(id))
		if gjson.Get(doc, path).Exists() {
			continue
		}
		doc, err = sjson.SetRaw(doc, path, "{}")
		if err != nil {
			return "", fmt.Errorf("failed to register model %s: %w", id, err)
		}
	}

	// 3. Primary model pointer, only when asked
	if req.SetAsDefault {
		doc, err = sjson.Set(doc, "agents.defaults.model.primary", registryKey(req.LLMModelID))
		if err != nil {
			return "", fmt.Errorf("failed to set primary model: %w", err)
		}
	}

	// 4. Auth profile entry, full overwrite
	doc, err = sjson.SetRaw(doc, "auth.profiles."+ProfileName,
		fmt.Sprintf(`{"provider":%q,"mode":"api_key"}`, ProviderName))
	if err != nil {
		return "", fmt.Errorf("failed to set auth profile: %w", err)
	}

	// 5. Audio transcription: find-or-append keyed on baseUrl OR profile
	doc, err = mergeAudioModel(doc, req)
	if err != nil {
		return "", err
	}

	return doc, nil
}

// mergeAudioModel enables transcription and upserts the gateway's audio
// model entry. The first existing entry whose baseUrl or profile matches
// this provider is replaced in place; otherwise the entry is appended.
func mergeAudioModel(doc string, req SetupRequest) (string, error) {
	doc, err := sjson.Set(doc, "tools.media.audio.enabled", true)
	if err != nil {
		return "", fmt.Errorf("failed to enable audio transcription: %w", err)
	}

	entry := audioModelEntry{
		Provider: ProviderName,
		Profile:  ProfileName,
		BaseURL:  req.BaseURL(),
		Model:    req.AudioModelID,
	}
	entryJSON, err := json.Marshal(entry)
	if err != nil {
		return "", fmt.Errorf("failed to marshal audio model entry: %w", err)
	}

	matchIdx := -1
	models := gjson.Get(doc, "tools.media.audio.models")
	if models.IsArray() {
		for i, m := range models.Array() {
			if m.Get("baseUrl").String() == req.BaseURL() || m.Get("profile").String() == ProfileName {
				matchIdx = i
				break
			}
		}
	}

	path := "tools.media.audio.models.-1" // append
	if matchIdx >= 0 {
		path = fmt.Sprintf("tools.media.audio.models.%d", matchIdx)
	}
	doc, err = sjson.SetRaw(doc, path, string(entryJSON))
	if err != nil {
		return "", fmt.Errorf("failed to upsert audio model entry: %w", err)
	}

	return doc, nil
}

// emptyAuthStore is the fallback when the auth-profile store is absent or
// unreadable. Any content the unreadable file had is discarded on the next
// write; the Store layer keeps a timestamped backup of it.
const emptyAuthStore = `{"version":1,"profiles":{}}`

// MergeAuthProfile upserts the iotex:default credential into the raw JSON
// text of the auth-profile store. A missing or unparsable store is treated
// as empty rather than surfaced.
func MergeAuthProfile(store string, req SetupRequest) (string, error) {
	if !gjson.Valid(store) || !gjson.Parse(store).IsObject() {
		store = emptyAuthStore
	}

	store, err := sjson.Set(store, "version", 1)
	if err != nil {
		return "", fmt.Errorf("failed to set store version: %w", err)
	}

	profileJSON, err := json.Marshal(map[string]string{
		"type":     "api_key",
		"provider": ProviderName,
		"key":      req.APIKey,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal auth profile: %w", err)
	}

	store, err = sjson.SetRaw(store, "profiles."+ProfileName, string(profileJSON))
	if err != nil {
		return "", fmt.Errorf("failed to set auth profile: %w", err)
	}

	return store, nil
}

// RemoveProviderConfig deletes every iotex key this tool manages from the
// main config document. The primary model pointer is cleared only when it
// points at a gateway model.
func RemoveProviderConfig(doc string) (string, error) {
	if !gjson.Valid(doc) {
		return "", fmt.Errorf("invalid JSON in config document")
	}

	var err error
	doc, err = sjson.Delete(doc, "models.providers."+ProviderName)
	if err != nil {
		return "", fmt.Errorf("failed to delete provider descriptor: %w", err)
	}

	for _, id := range catalog.IDs(catalog.KindLLM) {
		doc, err = sjson.Delete(doc, "agents.defaults.models."+escapeKey(registryKey(id)))
		if err != nil {
			return "", fmt.Errorf("failed to delete registry entry for %s: %w", id, err)
		}
	}

	if strings.HasPrefix(gjson.Get(doc, "agents.defaults.model.primary").String(), ProviderName+"/") {
		doc, err = sjson.Delete(doc, "agents.defaults.model.primary")
		if err != nil {
			return "", fmt.Errorf("failed to clear primary model: %w", err)
		}
	}

	doc, err = sjson.Delete(doc, "auth.profiles."+ProfileName)
	if err != nil {
		return "", fmt.Errorf("failed to delete auth profile: %w", err)
	}

	// Delete matching audio entries from the end so indices stay valid
	models := gjson.Get(doc, "tools.media.audio.models")
	if models.IsArray() {
		entries := models.Array()
		for i := len(entries) - 1; i >= 0; i-- {
			if entries[i].Get("provider").String() != ProviderName && entries[i].Get("profile").String() != ProfileName {
				continue
			}
			doc, err = sjson.Delete(doc, fmt.Sprintf("tools.media.audio.models.%d", i))
			if err != nil {
				return "", fmt.Errorf("failed to delete audio model entry: %w", err)
			}
		}
	}

	return doc, nil
}

// RemoveAuthProfile deletes the iotex:default credential from the store text
func RemoveAuthProfile(store string) (string, error) {
	if !gjson.Valid(store) || !gjson.Parse(store).IsObject() {
		return emptyAuthStore, nil
	}
	out, err := sjson.Delete(store, "profiles."+ProfileName)
	if err != nil {
		return "", fmt.Errorf("failed to delete auth profile: %w", err)
	}
	return out, nil
}
