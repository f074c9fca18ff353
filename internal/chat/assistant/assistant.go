package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/acai-travel/lights-assistant/internal/chat/model"
	"github.com/acai-travel/lights-assistant/internal/chat/tools"
	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

const (
	DefaultModel         = "gpt-3.5-turbo-0125"
	DefaultMaxToolRounds = 15
)

// ErrTooManyToolRounds is returned when the model keeps calling tools
// without ever answering
var ErrTooManyToolRounds = errors.New("too many tool calls, unable to generate reply")

type Assistant struct {
	cli           openai.Client
	registry      *tools.Registry
	model         string
	systemPrompt  string
	maxToolRounds int
}

type Option func(*Assistant)

// WithModel sets the chat model id
func WithModel(name string) Option {
	return func(a *Assistant) { a.model = name }
}

// WithSystemPrompt sets the instructions sent ahead of the transcript
func WithSystemPrompt(prompt string) Option {
	return func(a *Assistant) { a.systemPrompt = prompt }
}

// WithMaxToolRounds bounds the number of model round trips per reply
func WithMaxToolRounds(n int) Option {
	return func(a *Assistant) { a.maxToolRounds = n }
}

// WithRequestOptions passes options such as base URL or API key to the OpenAI client
func WithRequestOptions(opts ...option.RequestOption) Option {
	return func(a *Assistant) { a.cli = openai.NewClient(opts...) }
}

func New(registry *tools.Registry, opts ...Option) *Assistant {
	a := &Assistant{
		cli:           openai.NewClient(),
		registry:      registry,
		model:         DefaultModel,
		maxToolRounds: DefaultMaxToolRounds,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Reply lets the model answer the transcript, running any tool calls it asks
// for along the way. Only the final assistant message is returned.
func (a *Assistant) Reply(ctx context.Context, transcript *model.Transcript) ([]model.Message, error) {
	if transcript.Len() == 0 {
		return nil, errors.New("conversation has no messages")
	}

	slog.InfoContext(ctx, "Generating reply", "messages", transcript.Len(), "model", a.model)

	var msgs []openai.ChatCompletionMessageParamUnion
	if strings.TrimSpace(a.systemPrompt) != "" {
		msgs = append(msgs, openai.SystemMessage(a.systemPrompt))
	}

	for _, m := range transcript.Messages() {
		switch m.Role {
		case model.RoleUser:
			msgs = append(msgs, openai.UserMessage(m.Content))
		case model.RoleAssistant:
			msgs = append(msgs, openai.AssistantMessage(m.Content))
		}
	}

	for i := 0; i < a.maxToolRounds; i++ {
		resp, err := a.cli.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Model:    openai.ChatModel(a.model),
			Messages: msgs,
			Tools:    a.registry.Definitions(),
		})

		if err != nil {
			return nil, fmt.Errorf("failed to get chat completion: %w", err)
		}

		if len(resp.Choices) == 0 {
			return nil, errors.New("no choices returned by OpenAI")
		}

		slog.DebugContext(ctx, "Chat completion received", "round", i, "total_tokens", resp.Usage.TotalTokens)

		if message := resp.Choices[0].Message; len(message.ToolCalls) > 0 {
			msgs = append(msgs, message.ToParam())

			for _, call := range message.ToolCalls {
				slog.InfoContext(ctx, "Tool call received", "name", call.Function.Name, "args", call.Function.Arguments)

				result, err := a.registry.Invoke(ctx, call.Function.Name, call.Function.Arguments)
				switch {
				case errors.Is(err, tools.ErrUnknownTool):
					msgs = append(msgs, openai.ToolMessage("unknown tool: "+call.Function.Name, call.ID))
				case err != nil:
					msgs = append(msgs, openai.ToolMessage("tool execution failed: "+err.Error(), call.ID))
				default:
					msgs = append(msgs, openai.ToolMessage(result, call.ID))
				}
			}

			continue
		}

		return []model.Message{{
			Role:    model.RoleAssistant,
			Content: resp.Choices[0].Message.Content,
		}}, nil
	}

	return nil, ErrTooManyToolRounds
}
