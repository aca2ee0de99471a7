package guess

import (
	"context"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/languoid-cli/internal/languoid"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "claude-sonnet-4-5-20250929"

// messageCreator is the slice of the SDK the guesser needs; tests fake it.
type messageCreator interface {
	CreateText(ctx context.Context, model, system, task string) (string, error)
}

// AnthropicGuesser implements Guesser on the Anthropic API.
type AnthropicGuesser struct {
	creator messageCreator
	model   string
}

// NewAnthropicGuesser creates a guesser with the given API key and model.
// The key arrives as a plain config value; no global credential state is
// consulted.
func NewAnthropicGuesser(apiKey, model string) *AnthropicGuesser {
	if model == "" {
		model = DefaultModel
	}
	return &AnthropicGuesser{
		creator: &sdkCreator{client: sdk.NewClient(option.WithAPIKey(apiKey))},
		model:   model,
	}
}

// Guess asks the model to pick the candidate id for the language name.
// The reply is sanity-checked against the candidate set; an implausible
// reply yields an empty guess.
func (g *AnthropicGuesser) Guess(ctx context.Context, language string, candidates []languoid.Node) (string, error) {
	task, err := BuildTask(language, candidates)
	if err != nil {
		return "", err
	}

	reply, err := g.creator.CreateText(ctx, g.model, role, task)
	if err != nil {
		return "", err
	}
	reply = strings.TrimSpace(reply)

	if !SanityCheck(reply, candidates) {
		zap.L().Warn("guess: model reply not in candidate set, discarding",
			zap.String("language", language),
			zap.String("reply", reply),
		)
		return "", nil
	}
	return reply, nil
}

// sdkCreator implements messageCreator on the official SDK.
type sdkCreator struct {
	client sdk.Client
}

func (c *sdkCreator) CreateText(ctx context.Context, model, system, task string) (string, error) {
	msg, err := c.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:       sdk.Model(model),
		MaxTokens:   4096,
		Temperature: sdk.Float(0),
		System:      []sdk.TextBlockParam{{Text: system}},
		Messages:    []sdk.MessageParam{sdk.NewUserMessage(sdk.NewTextBlock(task))},
	})
	if err != nil {
		return "", eris.Wrap(err, "guess: create message")
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}
