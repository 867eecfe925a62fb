package prompts

// DefaultKey is used when the client sends an unknown prompt_selection.
const DefaultKey = "summarizer"

type Repo interface {
	Get(key string) (Prompt, bool)
	List() []Prompt
}

type Service interface {
	// GetOrDefault never fails: unknown keys fall back to DefaultKey.
	GetOrDefault(key string) Prompt
	List() []Prompt
}

type Prompt struct {
	Key         string `json:"key"`
	Description string `json:"description"`
	System      string `json:"-"`
}
