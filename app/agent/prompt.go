package agent

import (
	"fmt"

	"pagesmith/model"
)

const (
	separator        = "--------------------"
	emptyPlaceholder = "(empty)"
)

const systemPrompt = `You are a web page editing agent. You update HTML documents in response to high-level requests.
Return a complete, valid, standalone HTML document tailored to the user's request.
Preserve existing helpful structure when appropriate.
The reply MUST begin with <!DOCTYPE html> and contain the whole document.
Do NOT add explanations, comments about the changes, or markdown code fences.`

// BuildPrompt composes the model request for editing prior (the content of
// the page named label) according to instruction.
func BuildPrompt(prior, instruction, label string) model.Request {
	if prior == "" {
		prior = emptyPlaceholder
	}

	input := fmt.Sprintf(`Current document (%s):
%s
%s
%s

User request: %s

Return only the updated HTML document.`, label, separator, prior, separator, instruction)

	return model.Request{
		Instructions: systemPrompt,
		Input:        input,
	}
}
