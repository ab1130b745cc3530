package llm

// Message is one chat turn.
type Message struct {
	Role    string `json:"role"` // RoleUser or RoleAssistant
	Content string `json:"content"`
}

// CompletionRequest is the provider-neutral completion input.
type CompletionRequest struct {
	// Model overrides the adapter default.
	Model        string    `json:"model,omitempty"`
	Messages     []Message `json:"messages"`
	SystemPrompt string    `json:"system_prompt,omitempty"`
	// Temperature of 0 uses the adapter default.
	Temperature float64 `json:"temperature,omitempty"`
	// MaxTokens of 0 uses the adapter default, then the provider default.
	MaxTokens int `json:"max_tokens,omitempty"`
}

// CompletionResponse is the provider-neutral completion output.
type CompletionResponse struct {
	Content string `json:"content"`
	Model   string `json:"model"`
	Usage   Usage  `json:"usage"`
}

// Usage reports token consumption.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}
