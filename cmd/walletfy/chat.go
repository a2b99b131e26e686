package main

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/walletfy/walletfy/internal/command"
	"github.com/walletfy/walletfy/internal/common"
	"github.com/walletfy/walletfy/internal/dates"
	"github.com/walletfy/walletfy/internal/llm"
	"github.com/walletfy/walletfy/internal/session"
	"github.com/walletfy/walletfy/internal/tui"
)

func chatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Open the interactive financial assistant",
		Long: `Start a chat session with the AI assistant. The assistant can analyze
your finances, create new events from conversation, and walk you through
deleting events safely.`,
		RunE: runChat,
	}

	cmd.Flags().String("provider", "", "LLM provider (chutes, openai)")
	cmd.Flags().String("model", "", "Model name override")

	_ = viper.BindPFlag("llm.provider", cmd.Flags().Lookup("provider"))
	_ = viper.BindPFlag("llm.model", cmd.Flags().Lookup("model"))

	return cmd
}

func runChat(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	client, err := llm.NewClient(llm.Config{
		Provider:    viper.GetString("llm.provider"),
		BaseURL:     viper.GetString("llm.base_url"),
		APIKey:      viper.GetString("llm.api_key"),
		Model:       viper.GetString("llm.model"),
		Temperature: viper.GetFloat64("llm.temperature"),
		MaxTokens:   viper.GetInt("llm.max_tokens"),
	})
	if err != nil {
		if errors.Is(err, common.ErrMissingConfig) {
			return common.NewUserError("El asistente necesita una clave de API", err)
		}
		return fmt.Errorf("failed to create LLM client: %w", err)
	}

	extractor := command.NewExtractor(dates.NewParser(nil), nil)
	processor := session.NewProcessor(extractor)

	chatModel, err := tui.NewChatModel(store, client, processor)
	if err != nil {
		return err
	}

	program := tea.NewProgram(chatModel, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("chat session failed: %w", err)
	}

	return nil
}
