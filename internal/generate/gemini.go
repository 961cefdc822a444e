package generate

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Gemini streams from the Gemini API, optionally grounded with Google Search.
type Gemini struct {
	apiKey string
	model  string
	search bool
}

func NewGemini(apiKey, model string, search bool) *Gemini {
	return &Gemini{apiKey: apiKey, model: model, search: search}
}

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) Stream(ctx context.Context, p Prompt, onChunk ChunkFunc) error {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: g.apiKey})
	if err != nil {
		return fmt.Errorf("create gemini client: %w", err)
	}

	config := &genai.GenerateContentConfig{}
	if p.System != "" {
		config.SystemInstruction = genai.NewContentFromText(p.System, genai.RoleUser)
	}
	if g.search {
		config.Tools = append(config.Tools, &genai.Tool{GoogleSearch: &genai.GoogleSearch{}})
	}

	for resp, err := range client.Models.GenerateContentStream(ctx, g.model, genai.Text(p.User), config) {
		if err != nil {
			return classify("gemini", err)
		}
		if text := resp.Text(); text != "" {
			if err := onChunk(text); err != nil {
				return err
			}
		}
	}
	return nil
}
