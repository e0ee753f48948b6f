package embeddings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/venturemesh/partnermatch/internal/util"
)

const (
	defaultModel = "gemini-embedding-001"

	maxAttempts = 3
	retryPause  = 2 * time.Second
)

// Gemini produces embeddings through the Google GenAI API.
type Gemini struct {
	client    *genai.Client
	modelName string
}

// NewGemini creates a provider configured for the Gemini API backend.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	return &Gemini{client: client, modelName: model}, nil
}

// Embed sends the texts to Gemini and returns one vector per input, in order.
func (g *Gemini) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if g == nil || g.client == nil {
		return nil, errors.New("gemini provider is not initialized")
	}
	if len(texts) == 0 {
		return nil, nil
	}

	contents := make([]*genai.Content, 0, len(texts))
	for _, text := range texts {
		if strings.TrimSpace(text) == "" {
			return nil, errors.New("text to embed must not be empty")
		}
		contents = append(contents, genai.NewContentFromText(text, genai.RoleUser))
	}

	var resp *genai.EmbedContentResponse
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		resp, err = g.client.Models.EmbedContent(ctx, g.modelName, contents, nil)
		if err == nil {
			break
		}
		if attempt == maxAttempts {
			return nil, fmt.Errorf("embed content after %d attempts: %w", maxAttempts, err)
		}
		if waitErr := util.WaitFor(ctx, retryPause); waitErr != nil {
			return nil, waitErr
		}
	}

	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("gemini api returned %d embeddings for %d inputs", len(resp.Embeddings), len(texts))
	}

	vectors := make([][]float32, len(resp.Embeddings))
	for i, emb := range resp.Embeddings {
		if emb == nil || len(emb.Values) == 0 {
			return nil, fmt.Errorf("gemini api returned empty embedding at index %d", i)
		}
		vectors[i] = emb.Values
	}

	return vectors, nil
}

func (g *Gemini) Model() string {
	if g == nil {
		return ""
	}
	return g.modelName
}
