package llm

import (
	"fmt"
	"strings"

	"github.com/walletfy/walletfy/internal/common"
)

// Provider endpoint defaults. Chutes is the default provider the app ships
// with; any OpenAI-compatible endpoint works.
const (
	chutesBaseURL = "https://llm.chutes.ai/v1/chat/completions"
	chutesModel   = "deepseek-ai/DeepSeek-V3.1"
	openAIBaseURL = "https://api.openai.com/v1/chat/completions"
	openAIModel   = "gpt-4o-mini"
)

// NewClient creates a chat client based on the provided configuration.
func NewClient(cfg Config) (Client, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "chutes":
		if cfg.BaseURL == "" {
			cfg.BaseURL = chutesBaseURL
		}
		if cfg.Model == "" {
			cfg.Model = chutesModel
		}
		return newStreamingClient(cfg)
	case "openai":
		if cfg.BaseURL == "" {
			cfg.BaseURL = openAIBaseURL
		}
		if cfg.Model == "" {
			cfg.Model = openAIModel
		}
		return newStreamingClient(cfg)
	default:
		return nil, fmt.Errorf("%w: unsupported LLM provider %q", common.ErrInvalidConfig, cfg.Provider)
	}
}
