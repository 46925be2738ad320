package config

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"iotexsetup/internal/catalog"
)

func testRequest() SetupRequest {
	return SetupRequest{
		APIKey:       "sk-test-1234567890",
		LLMModelID:   "gemini-2.5-flash",
		AudioModelID: "whisper-1",
	}
}

func TestMergeProviderConfigWritesDescriptor(t *testing.T) {
	// Arrange
	doc := `{"channels":{"telegram":{"token":"tg-123"}}}`

	// Act
	merged, err := MergeProviderConfig(doc, testRequest())
	if err != nil {
		t.Fatalf("MergeProviderConfig failed: %v", err)
	}

	// Assert
	provider := gjson.Get(merged, "models.providers.iotex")
	if !provider.Exists() {
		t.Fatal("provider descriptor was not written")
	}
	if got := provider.Get("baseUrl").String(); got != DefaultGatewayURL {
		t.Errorf("baseUrl = %q, want %q", got, DefaultGatewayURL)
	}
	if got := provider.Get("apiKey").String(); got != "sk-test-1234567890" {
		t.Errorf("apiKey = %q, want the request key", got)
	}
	if got := provider.Get("api").String(); got != APIProtocol {
		t.Errorf("api = %q, want %q", got, APIProtocol)
	}
	if got := int(provider.Get("models.#").Int()); got != len(catalog.LLMModels()) {
		t.Errorf("descriptor lists %d models, want %d", got, len(catalog.LLMModels()))
	}
	if provider.Get("models.0.cost.input").Float() != 0 || provider.Get("models.0.cost.output").Float() != 0 {
		t.Error("gateway models must advertise zero cost")
	}

	// Unrelated keys are untouched
	if got := gjson.Get(merged, "channels.telegram.token").String(); got != "tg-123" {
		t.Errorf("unrelated key was modified: %q", got)
	}
}

func TestMergeProviderConfigRegistersEveryModel(t *testing.T) {
	merged, err := MergeProviderConfig(`{}`, testRequest())
	if err != nil {
		t.Fatalf("MergeProviderConfig failed: %v", err)
	}

	for _, id := range catalog.IDs(catalog.KindLLM) {
		path := "agents.defaults.models." + escapeKey("iotex/"+id)
		if !gjson.Get(merged, path).Exists() {
			t.Errorf("registry entry missing for %s", id)
		}
	}
}

func TestMergeProviderConfigKeepsCustomizedRegistryEntry(t *testing.T) {
	// A user-tuned registry entry must survive re-registration
	doc, err := sjson.SetRaw(`{}`, `agents.defaults.models.iotex/gemini-2\.5-flash`, `{"alias":"flash"}`)
	if err != nil {
		t.Fatalf("failed to build fixture: %v", err)
	}

	merged, err := MergeProviderConfig(doc, testRequest())
	if err != nil {
		t.Fatalf("MergeProviderConfig failed: %v", err)
	}

	if got := gjson.Get(merged, `agents.defaults.models.iotex/gemini-2\.5-flash.alias`).String(); got != "flash" {
		t.Errorf("user customization lost, alias = %q", got)
	}
}

func TestMergeProviderConfigPrimaryPointer(t *testing.T) {
	cases := []struct {
		name         string
		doc          string
		setAsDefault bool
		wantPrimary  string
	}{
		{
			name:         "set when requested",
			doc:          `{}`,
			setAsDefault: true,
			wantPrimary:  "iotex/gemini-2.5-flash",
		},
		{
			name:         "absent when not requested",
			doc:          `{}`,
			setAsDefault: false,
			wantPrimary:  "",
		},
		{
			name:         "existing pointer preserved when not requested",
			doc:          `{"agents":{"defaults":{"model":{"primary":"anthropic/claude-sonnet-4"}}}}`,
			setAsDefault: false,
			wantPrimary:  "anthropic/claude-sonnet-4",
		},
		{
			name:         "existing pointer overwritten when requested",
			doc:          `{"agents":{"defaults":{"model":{"primary":"anthropic/claude-sonnet-4"}}}}`,
			setAsDefault: true,
			wantPrimary:  "iotex/gemini-2.5-flash",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := testRequest()
			req.SetAsDefault = c.setAsDefault

			merged, err := MergeProviderConfig(c.doc, req)
			if err != nil {
				t.Fatalf("MergeProviderConfig failed: %v", err)
			}

			if got := gjson.Get(merged, "agents.defaults.model.primary").String(); got != c.wantPrimary {
				t.Errorf("primary = %q, want %q", got, c.wantPrimary)
			}
		})
	}
}

func TestMergeProviderConfigAudioAppend(t *testing.T) {
	doc := `{"tools":{"media":{"audio":{"enabled":false,"models":[{"provider":"openai","profile":"openai:default","baseUrl":"https://api.openai.com/v1","model":"whisper-1"}]}}}}`

	merged, err := MergeProviderConfig(doc, testRequest())
	if err != nil {
		t.Fatalf("MergeProviderConfig failed: %v", err)
	}

	if !gjson.Get(merged, "tools.media.audio.enabled").Bool() {
		t.Error("audio transcription was not enabled")
	}
	models := gjson.Get(merged, "tools.media.audio.models").Array()
	if len(models) != 2 {
		t.Fatalf("expected 2 audio entries after append, got %d", len(models))
	}
	if got := models[0].Get("provider").String(); got != "openai" {
		t.Errorf("foreign audio entry was modified: provider = %q", got)
	}
	if got := models[1].Get("model").String(); got != "whisper-1" {
		t.Errorf("appended entry model = %q, want whisper-1", got)
	}
	if got := models[1].Get("profile").String(); got != ProfileName {
		t.Errorf("appended entry profile = %q, want %q", got, ProfileName)
	}
}

func TestMergeProviderConfigAudioReplaceInPlace(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{
			name: "matched on baseUrl",
			doc:  `{"tools":{"media":{"audio":{"models":[{"provider":"other","baseUrl":"` + DefaultGatewayURL + `","model":"stale"},{"provider":"openai","baseUrl":"https://api.openai.com/v1","model":"whisper-1"}]}}}}`,
		},
		{
			name: "matched on profile",
			doc:  `{"tools":{"media":{"audio":{"models":[{"provider":"iotex","profile":"iotex:default","baseUrl":"https://old.example.com/v1","model":"stale"},{"provider":"openai","baseUrl":"https://api.openai.com/v1","model":"whisper-1"}]}}}}`,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := testRequest()
			req.AudioModelID = "whisper-large-v3"

			merged, err := MergeProviderConfig(c.doc, req)
			if err != nil {
				t.Fatalf("MergeProviderConfig failed: %v", err)
			}

			models := gjson.Get(merged, "tools.media.audio.models").Array()
			if len(models) != 2 {
				t.Fatalf("expected in-place replacement to keep 2 entries, got %d", len(models))
			}
			if got := models[0].Get("model").String(); got != "whisper-large-v3" {
				t.Errorf("entry not replaced in place: model = %q", got)
			}
			if got := models[0].Get("baseUrl").String(); got != DefaultGatewayURL {
				t.Errorf("replaced entry baseUrl = %q, want %q", got, DefaultGatewayURL)
			}
			if got := models[1].Get("provider").String(); got != "openai" {
				t.Errorf("foreign audio entry was modified: provider = %q", got)
			}
		})
	}
}

func TestMergeProviderConfigRejectsInvalidDocument(t *testing.T) {
	if _, err := MergeProviderConfig(`{"broken":`, testRequest()); err == nil {
		t.Error("expected an error for unparsable config document")
	}
}

func TestMergeAuthProfile(t *testing.T) {
	cases := []struct {
		name  string
		store string
	}{
		{"empty store", ""},
		{"missing fields", `{}`},
		{"corrupt store", `{"version":1,"profiles":`},
		{"existing store", `{"version":1,"profiles":{"openai:default":{"type":"api_key","provider":"openai","key":"sk-other"}}}`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			merged, err := MergeAuthProfile(c.store, testRequest())
			if err != nil {
				t.Fatalf("MergeAuthProfile failed: %v", err)
			}

			if !gjson.Valid(merged) {
				t.Fatal("merged store is not valid JSON")
			}
			if got := gjson.Get(merged, "version").Int(); got != 1 {
				t.Errorf("version = %d, want 1", got)
			}
			profile := gjson.Get(merged, "profiles.iotex:default")
			if got := profile.Get("type").String(); got != "api_key" {
				t.Errorf("profile type = %q, want api_key", got)
			}
			if got := profile.Get("provider").String(); got != ProviderName {
				t.Errorf("profile provider = %q, want %q", got, ProviderName)
			}
			if got := profile.Get("key").String(); got != "sk-test-1234567890" {
				t.Errorf("profile key = %q, want the request key", got)
			}
		})
	}
}

func TestMergeAuthProfileKeepsOtherProfiles(t *testing.T) {
	store := `{"version":1,"profiles":{"openai:default":{"type":"api_key","provider":"openai","key":"sk-other"}}}`

	merged, err := MergeAuthProfile(store, testRequest())
	if err != nil {
		t.Fatalf("MergeAuthProfile failed: %v", err)
	}

	if got := gjson.Get(merged, "profiles.openai:default.key").String(); got != "sk-other" {
		t.Errorf("foreign profile was modified: key = %q", got)
	}
}

func TestRemoveProviderConfig(t *testing.T) {
	req := testRequest()
	req.SetAsDefault = true
	doc := `{"channels":{"telegram":{"token":"tg-123"}},"tools":{"media":{"audio":{"models":[{"provider":"openai","baseUrl":"https://api.openai.com/v1","model":"whisper-1"}]}}}}`

	merged, err := MergeProviderConfig(doc, req)
	if err != nil {
		t.Fatalf("MergeProviderConfig failed: %v", err)
	}
	removed, err := RemoveProviderConfig(merged)
	if err != nil {
		t.Fatalf("RemoveProviderConfig failed: %v", err)
	}

	if gjson.Get(removed, "models.providers.iotex").Exists() {
		t.Error("provider descriptor still present after removal")
	}
	for _, id := range catalog.IDs(catalog.KindLLM) {
		if gjson.Get(removed, "agents.defaults.models."+escapeKey("iotex/"+id)).Exists() {
			t.Errorf("registry entry for %s still present after removal", id)
		}
	}
	if gjson.Get(removed, "agents.defaults.model.primary").Exists() {
		t.Error("gateway primary pointer still present after removal")
	}
	if gjson.Get(removed, "auth.profiles.iotex:default").Exists() {
		t.Error("auth profile entry still present after removal")
	}
	models := gjson.Get(removed, "tools.media.audio.models").Array()
	if len(models) != 1 || models[0].Get("provider").String() != "openai" {
		t.Errorf("audio entries after removal = %s", gjson.Get(removed, "tools.media.audio.models").Raw)
	}
	if got := gjson.Get(removed, "channels.telegram.token").String(); got != "tg-123" {
		t.Errorf("unrelated key was modified: %q", got)
	}
}

func TestRemoveProviderConfigKeepsForeignPrimary(t *testing.T) {
	doc := `{"agents":{"defaults":{"model":{"primary":"anthropic/claude-sonnet-4"}}}}`

	removed, err := RemoveProviderConfig(doc)
	if err != nil {
		t.Fatalf("RemoveProviderConfig failed: %v", err)
	}

	if got := gjson.Get(removed, "agents.defaults.model.primary").String(); got != "anthropic/claude-sonnet-4" {
		t.Errorf("foreign primary pointer was cleared: %q", got)
	}
}

func TestRemoveAuthProfile(t *testing.T) {
	merged, err := MergeAuthProfile(`{"version":1,"profiles":{"openai:default":{"key":"sk-other"}}}`, testRequest())
	if err != nil {
		t.Fatalf("MergeAuthProfile failed: %v", err)
	}
	removed, err := RemoveAuthProfile(merged)
	if err != nil {
		t.Fatalf("RemoveAuthProfile failed: %v", err)
	}

	if gjson.Get(removed, "profiles.iotex:default").Exists() {
		t.Error("profile still present after removal")
	}
	if got := gjson.Get(removed, "profiles.openai:default.key").String(); got != "sk-other" {
		t.Errorf("foreign profile was modified: key = %q", got)
	}
}

// genSetupRequest draws a request over the full catalog and both values of
// the default flag
func genSetupRequest() gopter.Gen {
	llmIDs := catalog.IDs(catalog.KindLLM)
	audioIDs := catalog.IDs(catalog.KindAudio)
	return gopter.CombineGens(
		gen.IntRange(0, len(llmIDs)-1),
		gen.IntRange(0, len(audioIDs)-1),
		gen.Bool(),
		gen.AlphaString(),
	).Map(func(vals []interface{}) SetupRequest {
		return SetupRequest{
			APIKey:       "sk-" + vals[3].(string),
			LLMModelID:   llmIDs[vals[0].(int)],
			AudioModelID: audioIDs[vals[1].(int)],
			SetAsDefault: vals[2].(bool),
		}
	})
}

func TestMergeProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("merging twice equals merging once", prop.ForAll(
		func(req SetupRequest) bool {
			once, err := MergeProviderConfig(`{}`, req)
			if err != nil {
				return false
			}
			twice, err := MergeProviderConfig(once, req)
			if err != nil {
				return false
			}
			return once == twice
		},
		genSetupRequest(),
	))

	properties.Property("unrelated keys survive any merge", prop.ForAll(
		func(req SetupRequest, key, value string) bool {
			doc, err := sjson.Set(`{}`, "unrelated."+escapeKey(key), value)
			if err != nil {
				return false
			}
			merged, err := MergeProviderConfig(doc, req)
			if err != nil {
				return false
			}
			return gjson.Get(merged, "unrelated."+escapeKey(key)).String() == value
		},
		genSetupRequest(),
		gen.Identifier(),
		gen.AlphaString(),
	))

	properties.Property("auth merge recovers any store text", prop.ForAll(
		func(req SetupRequest, garbage string) bool {
			merged, err := MergeAuthProfile(garbage, req)
			if err != nil {
				return false
			}
			return gjson.Valid(merged) &&
				gjson.Get(merged, "profiles.iotex:default.key").String() == req.APIKey
		},
		genSetupRequest(),
		gen.AnyString(),
	))

	properties.Property("remove after merge leaves no gateway keys", prop.ForAll(
		func(req SetupRequest) bool {
			merged, err := MergeProviderConfig(`{}`, req)
			if err != nil {
				return false
			}
			removed, err := RemoveProviderConfig(merged)
			if err != nil {
				return false
			}
			return !gjson.Get(removed, "models.providers.iotex").Exists() &&
				!gjson.Get(removed, "auth.profiles.iotex:default").Exists()
		},
		genSetupRequest(),
	))

	properties.TestingRun(t)
}
