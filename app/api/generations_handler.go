package api

import (
	"pagesmith/store"
	"pagesmith/types"

	"github.com/gofiber/fiber/v2"
)

const defaultGenerationsLimit = 20

type GenerationsHandler struct {
	journal store.Journal
}

func NewGenerationsHandler(journal store.Journal) *GenerationsHandler {
	return &GenerationsHandler{
		journal: journal,
	}
}

func (h *GenerationsHandler) HandleList(c *fiber.Ctx) error {
	var params types.GenerationsParams
	if c.QueryParser(&params) != nil {
		return ErrBadRequest()
	}

	if errors := types.Validate(&params); len(errors) > 0 {
		return NewValidationError(errors)
	}

	limit := params.Limit
	if limit == 0 {
		limit = defaultGenerationsLimit
	}

	gens, err := h.journal.Recent(c.UserContext(), limit)
	if err != nil {
		return err
	}
	if gens == nil {
		gens = []types.Generation{}
	}

	return c.JSON(types.GenerationsResponse{Generations: gens})
}
