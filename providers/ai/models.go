package ai

// MessageRole represents the role of a message; compatible with string.
type MessageRole string

const (
	RoleSystem    MessageRole = "system"    // System instructions/configuration
	RoleUser      MessageRole = "user"      // End-user message
	RoleAssistant MessageRole = "assistant" // Model response
)

// Message represents a single message in a conversation.
type Message struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content,omitempty"`
	// Name identifies the speaker in multi-party transcripts.
	Name string `json:"name,omitempty"`
}

// GenerationConfig tunes sampling for a request. Zero values mean provider
// defaults.
type GenerationConfig struct {
	MaxTokens   int     `json:"max_tokens,omitempty"`
	Temperature float32 `json:"temperature,omitempty"` // Sampling temperature [0..2]. Higher => more random.
	TopP        float32 `json:"top_p,omitempty"`       // Nucleus sampling [0..1]. Alternative to temperature.
}

// ChatRequest represents a request to send a chat message.
type ChatRequest struct {
	Model            string            `json:"model,omitempty"`
	Messages         []Message         `json:"messages"`
	SystemPrompt     string            `json:"system_prompt,omitempty"`
	GenerationConfig *GenerationConfig `json:"generation_config,omitempty"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens,omitempty"`
	CompletionTokens int `json:"completion_tokens,omitempty"`
	TotalTokens      int `json:"total_tokens,omitempty"`
}

// ChatResponse represents the response from a chat completion.
type ChatResponse struct {
	Id           string `json:"id"`
	Model        string `json:"model"`
	Content      string `json:"content"`
	FinishReason string `json:"finish_reason,omitempty"`
	Usage        *Usage `json:"usage,omitempty"`
}
