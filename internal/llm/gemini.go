package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Gemini is a Client backed by a Google Gemini chat session. The session
// keeps the multi-turn history server-side style: each Send continues the
// same conversation.
type Gemini struct {
	chat *genai.Chat
}

// NewGemini creates a Gemini chat session with the given key, sampling
// config and system prompt.
func NewGemini(ctx context.Context, apiKey string, cfg Config, systemPrompt string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	gc := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(cfg.Temperature)),
		TopP:        genai.Ptr(float32(cfg.TopP)),
		TopK:        genai.Ptr(float32(cfg.TopK)),
	}
	if systemPrompt != "" {
		gc.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	chat, err := client.Chats.Create(ctx, cfg.Model, gc, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start gemini chat: %w", err)
	}

	return &Gemini{chat: chat}, nil
}

// Send submits one user message and returns the model's text reply.
func (g *Gemini) Send(ctx context.Context, message string) (string, error) {
	resp, err := g.chat.SendMessage(ctx, genai.Part{Text: message})
	if err != nil {
		return "", err
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned an empty response")
	}
	return text, nil
}
