package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"pagesmith/types"
)

const errBodyLimit = 512

// OpenAI calls the Responses API.
type OpenAI struct {
	url    string
	apiKey string
	model  string
	tools  []string
	client *http.Client
}

type responsesTool struct {
	Type string `json:"type"`
}

type responsesRequest struct {
	Model        string          `json:"model"`
	Instructions string          `json:"instructions,omitempty"`
	Input        string          `json:"input"`
	Tools        []responsesTool `json:"tools,omitempty"`
	ToolChoice   string          `json:"tool_choice,omitempty"`
}

type responsesResponse struct {
	OutputText string `json:"output_text"`
	Output     []struct {
		Type    string `json:"type"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("openai API error: status %d, body: %s", e.Status, e.Body)
}

func NewOpenAI(cfg types.LLMConfig) *OpenAI {
	return &OpenAI{
		url:    strings.TrimRight(cfg.BaseURL, "/") + "/responses",
		apiKey: cfg.APIKey,
		model:  cfg.Model,
		tools:  cfg.Tools,
		// Timeout 0 means no client-side limit.
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

func (o *OpenAI) Generate(ctx context.Context, req Request) (string, error) {
	payload := responsesRequest{
		Model:        o.model,
		Instructions: req.Instructions,
		Input:        req.Input,
	}
	for _, t := range o.tools {
		payload.Tools = append(payload.Tools, responsesTool{Type: t})
	}
	if len(payload.Tools) > 0 {
		payload.ToolChoice = "auto"
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode/100 != 2 {
		snippet := string(respBody)
		if len(snippet) > errBodyLimit {
			snippet = snippet[:errBodyLimit]
		}
		return "", &StatusError{Status: resp.StatusCode, Body: snippet}
	}

	var out responsesResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if out.Error != nil && out.Error.Message != "" {
		return "", fmt.Errorf("openai API error: %s", out.Error.Message)
	}

	return out.text(), nil
}

// text mirrors the SDK's output_text helper: every output_text part of every
// message, in order.
func (r *responsesResponse) text() string {
	if r.OutputText != "" {
		return r.OutputText
	}
	var b strings.Builder
	for _, item := range r.Output {
		if item.Type != "message" {
			continue
		}
		for _, part := range item.Content {
			if part.Type == "output_text" {
				b.WriteString(part.Text)
			}
		}
	}
	return b.String()
}
