package model

import "context"

// Request is a prompt for a single model call.
type Request struct {
	Instructions string // system/persona turn
	Input        string // user turn
}

// Generator submits a prompt to a hosted model and returns its reply text.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// TokenCounter estimates the prompt size in model tokens.
type TokenCounter interface {
	Count(text string) (int, error)
}
