// Package catalog holds the static tables of models the IoTeX AI gateway
// serves, used for menus and for validating user-supplied model ids.
package catalog

// Kind distinguishes the two model tables
type Kind string

const (
	KindLLM   Kind = "llm"
	KindAudio Kind = "audio"
)

// Entry describes a single gateway model with its display metadata
type Entry struct {
	ID        string
	Name      string
	Provider  string
	PriceNote string
}

// llmModels is ordered: the first entry is the recommended default
var llmModels = []Entry{
	{ID: "gemini-2.5-flash", Name: "Gemini 2.5 Flash", Provider: "google", PriceNote: "free via gateway"},
	{ID: "gpt-4o", Name: "GPT-4o", Provider: "openai", PriceNote: "free via gateway"},
	{ID: "claude-sonnet-4", Name: "Claude Sonnet 4", Provider: "anthropic", PriceNote: "free via gateway"},
	{ID: "deepseek-chat", Name: "DeepSeek Chat", Provider: "deepseek", PriceNote: "free via gateway"},
	{ID: "llama-3.3-70b", Name: "Llama 3.3 70B", Provider: "meta", PriceNote: "free via gateway"},
}

var audioModels = []Entry{
	{ID: "whisper-1", Name: "Whisper v1", Provider: "openai", PriceNote: "free via gateway"},
	{ID: "whisper-large-v3", Name: "Whisper Large v3", Provider: "openai", PriceNote: "free via gateway"},
}

// LLMModels returns the ordered list of chat models
func LLMModels() []Entry {
	result := make([]Entry, len(llmModels))
	copy(result, llmModels)
	return result
}

// AudioModels returns the ordered list of transcription models
func AudioModels() []Entry {
	result := make([]Entry, len(audioModels))
	copy(result, audioModels)
	return result
}

// DefaultLLM returns the recommended chat model
func DefaultLLM() Entry {
	return llmModels[0]
}

// DefaultAudio returns the recommended transcription model
func DefaultAudio() Entry {
	return audioModels[0]
}

// Models returns the table for a kind
func Models(kind Kind) []Entry {
	if kind == KindAudio {
		return AudioModels()
	}
	return LLMModels()
}

// IsKnown reports whether id exists in the table for kind
func IsKnown(id string, kind Kind) bool {
	for _, e := range Models(kind) {
		if e.ID == id {
			return true
		}
	}
	return false
}

// IDs returns just the model ids for a kind, preserving order
func IDs(kind Kind) []string {
	models := Models(kind)
	ids := make([]string, 0, len(models))
	for _, e := range models {
		ids = append(ids, e.ID)
	}
	return ids
}
