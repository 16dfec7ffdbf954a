package ai

import (
	"context"
	"fmt"
	"log"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/curryhouse/menubot/backend/internal/config"
	"github.com/curryhouse/menubot/backend/internal/model/chat"
)

// Service wraps the upstream chat model behind a compiled prompt chain.
type Service struct {
	chatModel    model.ChatModel
	cfg          config.AIConfig
	systemPrompt string
	chain        compose.Runnable[map[string]any, *schema.Message]
}

// NewService creates the AI service with the menu system prompt baked in.
func NewService(ctx context.Context, cfg config.AIConfig, systemPrompt string) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &Service{
		chatModel:    chatModel,
		cfg:          cfg,
		systemPrompt: systemPrompt,
		chain:        runnable,
	}, nil
}

// Reply produces exactly one assistant reply for a user message given the
// prior turns of the session.
func (s *Service) Reply(ctx context.Context, history []chat.Turn, userMessage string) (string, error) {
	input := map[string]any{
		"system":  s.systemPrompt,
		"history": buildHistoryMessages(history),
		"query":   userMessage,
	}

	response, err := s.chain.Invoke(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to run chat chain: %w", err)
	}

	log.Printf("[ai] generated response, model=%s, length=%d", s.cfg.Model, len(response.Content))
	return response.Content, nil
}

// buildHistoryMessages converts stored turns into model messages. The session
// store already caps the number of retained turns.
func buildHistoryMessages(history []chat.Turn) []*schema.Message {
	if len(history) == 0 {
		return nil
	}

	messages := make([]*schema.Message, 0, len(history)*2)
	for _, turn := range history {
		messages = append(messages, schema.UserMessage(turn.UserMessage))
		messages = append(messages, schema.AssistantMessage(turn.AssistantResponse, nil))
	}
	return messages
}
