package api

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"pagesmith/app/agent"
	"pagesmith/page"
	"pagesmith/store"
	"pagesmith/types"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Synthesizer produces a validated HTML document from the prior page content
// and an edit instruction.
type Synthesizer interface {
	Synthesize(ctx context.Context, prior, instruction, label string) (string, error)
}

type CreateHandler struct {
	agent   Synthesizer
	pages   *page.Store
	journal store.Journal
	model   string
	logger  *slog.Logger
}

func NewCreateHandler(a Synthesizer, pages *page.Store, journal store.Journal, model string, logger *slog.Logger) *CreateHandler {
	return &CreateHandler{
		agent:   a,
		pages:   pages,
		journal: journal,
		model:   model,
		logger:  logger,
	}
}

func (h *CreateHandler) HandleCreate(c *fiber.Ctx) error {
	var params types.CreateParams
	if c.BodyParser(&params) != nil {
		return ErrBadRequest()
	}

	if errors := types.Validate(&params); len(errors) > 0 {
		return ErrPromptRequired()
	}

	pagePath, err := page.Resolve(params.CurrentPage)
	if err != nil {
		h.logger.Warn("rejected page reference", "current_page", params.CurrentPage)
		return ErrInvalidPage()
	}

	ctx := c.UserContext()
	prior := h.pages.Load(pagePath)

	html, err := h.agent.Synthesize(ctx, prior, params.Prompt, pagePath)
	if err != nil {
		return h.synthesisError(pagePath, err)
	}

	doc, err := h.pages.Persist(html)
	if err != nil {
		h.logger.Error("failed to persist generated page", "error", err)
		return ErrGenerationFailed()
	}

	h.record(ctx, doc, pagePath, params.Prompt)

	return c.JSON(types.CreateResponse{Filename: doc.Filename})
}

func (h *CreateHandler) synthesisError(pagePath string, err error) error {
	switch {
	case errors.Is(err, agent.ErrEmptyResponse):
		return ErrUpstream(ReasonEmptyResponse, "No HTML content returned from model.")
	case errors.Is(err, agent.ErrMarkdownFence):
		return ErrUpstream(ReasonMarkdownFence, "Model wrapped the document in markdown.")
	case errors.Is(err, agent.ErrNotHTMLDocument):
		return ErrUpstream(ReasonNotHTMLDocument, "Model did not return a complete HTML document.")
	case errors.Is(err, agent.ErrPromptTooLarge):
		return ErrPromptTooLarge()
	}
	h.logger.Error("failed to process create request", "page", pagePath, "error", err)
	return ErrGenerationFailed()
}

// record journals a persisted page. The page is already on disk, so a
// journal failure is only logged.
func (h *CreateHandler) record(ctx context.Context, doc *types.GeneratedDocument, source, prompt string) {
	gen := types.Generation{
		ID:         uuid.New(),
		Filename:   doc.Filename,
		SourcePage: source,
		Prompt:     prompt,
		Title:      agent.Title(doc.HTML),
		Size:       len(doc.HTML),
		Model:      h.model,
		CreatedAt:  doc.CreatedAt.UTC().Truncate(time.Millisecond),
	}
	if err := h.journal.Record(ctx, gen); err != nil {
		h.logger.Warn("failed to journal generation", "filename", doc.Filename, "error", err)
		return
	}
	h.logger.Info("page generated", "filename", doc.Filename, "source", source, "bytes", gen.Size)
}
