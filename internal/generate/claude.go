package generate

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// DefaultMaxTokens bounds a single report. Full NIDL reports with many
// option tables run long.
const DefaultMaxTokens = 16000

// Claude streams from the Anthropic Messages API.
type Claude struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

func NewClaude(apiKey, model string) *Claude {
	return &Claude{
		client:    anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:     model,
		maxTokens: DefaultMaxTokens,
	}
}

func (c *Claude) Name() string { return "anthropic" }

func (c *Claude) Stream(ctx context.Context, p Prompt, onChunk ChunkFunc) error {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages:  []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(p.User))},
	}
	if p.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: p.System}}
	}

	stream := c.client.Messages.NewStreaming(ctx, params)
	defer stream.Close()
	for stream.Next() {
		event := stream.Current()
		variant, ok := event.AsAny().(anthropic.ContentBlockDeltaEvent)
		if !ok {
			continue
		}
		if delta, ok := variant.Delta.AsAny().(anthropic.TextDelta); ok && delta.Text != "" {
			if err := onChunk(delta.Text); err != nil {
				return err
			}
		}
	}
	return classify("anthropic", stream.Err())
}
