// Package gemini is the optional generative backend: free-form answers
// for the chat router and article summaries. Every caller must tolerate
// its absence; construction failure or an exhausted budget only means
// the deterministic paths run instead.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"newsgenie/internal/news"
	"newsgenie/internal/ratelimit"
)

// contextArticles is how many top articles feed the answer prompt.
const contextArticles = 8

type Client struct {
	client  *genai.Client
	model   string
	limiter *ratelimit.Limiter
}

func NewClient(ctx context.Context, apiKey, model string, limiter *ratelimit.Limiter) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Client{client: client, model: model, limiter: limiter}, nil
}

func (c *Client) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

// Available reports whether a request is worth attempting right now.
func (c *Client) Available() bool {
	return c != nil && c.client != nil && c.limiter.Allow()
}

// Answer responds to a free-text question using the top articles of the
// batch as grounding context.
func (c *Client) Answer(ctx context.Context, question string, articles []news.Article) (string, error) {
	if err := c.limiter.Use(); err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(`You are a helpful news assistant. Answer the user's question based only on the articles below.

%s

User question: %s

Provide a helpful and concise answer:`, buildContext(articles), question)

	return c.generate(ctx, prompt)
}

// Summarize produces a two-to-three sentence summary of one article.
func (c *Client) Summarize(ctx context.Context, a news.Article) (string, error) {
	if err := c.limiter.Use(); err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(`Summarize this news article in two or three sentences. Do not add opinions or introductory phrases.

Title: %s
Source: %s
Content: %s`, a.Title, a.Source, a.Summary)

	return c.generate(ctx, prompt)
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.model)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from gemini")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		b.WriteString(fmt.Sprintf("%v", part))
	}
	return strings.TrimSpace(b.String()), nil
}

// buildContext lays out the top articles as prompt context:
// title, category, source, then the display summary.
func buildContext(articles []news.Article) string {
	var b strings.Builder
	b.WriteString("Available articles:\n")
	for i, a := range articles {
		if i >= contextArticles {
			break
		}
		fmt.Fprintf(&b, "%d. [%s] %s (%s)\n", i+1, a.Category, a.Title, a.Source)
		if s := a.DisplaySummary(); s != "" {
			fmt.Fprintf(&b, "   %s\n", s)
		}
	}
	return b.String()
}
