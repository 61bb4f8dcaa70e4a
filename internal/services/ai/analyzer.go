package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// ClipCandidate is one suggested viral moment in the source video.
type ClipCandidate struct {
	Start string  `json:"start"`
	End   string  `json:"end"`
	Hook  string  `json:"hook"`
	Score float64 `json:"score"`
}

// Analyzer scores transcript moments for short-form potential through an
// OpenAI-compatible chat API (a local Ollama endpoint works as well).
type Analyzer struct {
	client *openai.Client
	model  string
}

// NewAnalyzer creates an analyzer. baseURL may be empty for the default
// endpoint; model defaults to gpt-4o-mini.
func NewAnalyzer(apiKey, baseURL, model string) *Analyzer {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &Analyzer{client: openai.NewClientWithConfig(cfg), model: model}
}

const systemPrompt = `You are an expert short-form video strategist. Given a timestamped transcript you find the moments most likely to perform on TikTok, Reels and Shorts.

Selection criteria:
1. HOOK FACTOR: grabs attention in the first 3 seconds
2. EMOTIONAL TRIGGERS: funny, shocking, controversial, relatable or inspiring
3. COMPLETE CONTEXT: each clip must stand alone as a finished thought
4. OPTIMAL LENGTH: 15-90 seconds

Respond with JSON only, no prose:
{"clips":[{"start":"HH:MM:SS","end":"HH:MM:SS","hook":"...","score":0.0}]}`

// AnalyzeTranscript returns clip candidates for an SRT transcript,
// ordered as the model emitted them (normally best first).
func (a *Analyzer) AnalyzeTranscript(ctx context.Context, srtText, videoTitle, channelName string, numClips int) ([]ClipCandidate, error) {
	if numClips < 1 {
		numClips = 3
	}

	user := fmt.Sprintf("Channel: %s\nVideo title: %s\nFind the best %d moments.\n\nTranscript:\n%s",
		channelName, videoTitle, numClips, srtText)

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("analysis request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("analysis returned no choices")
	}

	return parseCandidates(resp.Choices[0].Message.Content)
}

// parseCandidates extracts the JSON payload, tolerating markdown fences
// some models wrap around it.
func parseCandidates(content string) ([]ClipCandidate, error) {
	content = strings.TrimSpace(content)
	if i := strings.Index(content, "{"); i > 0 {
		content = content[i:]
	}
	if i := strings.LastIndex(content, "}"); i >= 0 {
		content = content[:i+1]
	}

	var parsed struct {
		Clips []ClipCandidate `json:"clips"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse analysis response: %w", err)
	}

	return parsed.Clips, nil
}
