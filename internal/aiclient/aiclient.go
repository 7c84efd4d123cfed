// Package aiclient calls the AI-summary service (spec §4.G item 2, §6).
package aiclient

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// Client calls a Gemini-shaped generateContent endpoint.
type Client struct {
	http   *resty.Client
	apiKey string
}

// New builds a Client against baseURL (the provider's generateContent
// endpoint) authenticated with apiKey.
func New(baseURL, apiKey string) *Client {
	return &Client{
		http:   resty.New().SetBaseURL(baseURL),
		apiKey: apiKey,
	}
}

// Input is the subset of a token's details the summary prompt is built
// from (spec §4.G item 2: "{name, symbol, uri, x_content}").
type Input struct {
	Name     string
	Symbol   string
	URI      string
	XContent string // first social post text, if any
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type candidate struct {
	Content content `json:"content"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

// Summarize calls the AI-summary service and returns its text. A failure
// here is fatal for the enclosing alert (spec §4.G item 2: "failure is
// fatal for this alert"), so the caller must abort the mint's dispatch
// rather than send a degraded message.
func (c *Client) Summarize(ctx context.Context, in Input) (string, error) {
	prompt := buildPrompt(in)
	req := generateRequest{Contents: []content{{Parts: []part{{Text: prompt}}}}}

	var out generateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(req).
		SetResult(&out).
		Post("")
	if err != nil {
		return "", fmt.Errorf("ai summary request: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("ai summary request failed: %s", resp.Status())
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("ai summary response had no candidates")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

// buildPrompt picks one of two prompt variants depending on whether a
// social post was found for this mint, mirroring
// original_source/src/ai.rs's with/without-X-content templates.
func buildPrompt(in Input) string {
	if in.XContent != "" {
		return fmt.Sprintf(
			"A new token %q (%s) just launched on pump.fun, metadata uri %s. "+
				"Its most recent social post reads: %q. "+
				"Write a two-sentence, neutral summary of what this token appears to be about.",
			in.Name, in.Symbol, in.URI, in.XContent,
		)
	}
	return fmt.Sprintf(
		"A new token %q (%s) just launched on pump.fun, metadata uri %s. "+
			"No social posts were found for it yet. "+
			"Write a two-sentence, neutral summary of what this token appears to be about, "+
			"noting the absence of social presence.",
		in.Name, in.Symbol, in.URI,
	)
}
