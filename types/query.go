package types

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type Validater interface {
	Validate() map[string]string
}

type CreateParams struct {
	Prompt      string `json:"prompt" validate:"required"`
	CurrentPage string `json:"currentPage"`
}

type CreateResponse struct {
	Filename string `json:"filename"`
}

type GenerationsParams struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
}

type GenerationsResponse struct {
	Generations []Generation `json:"generations"`
}

func Validate(v Validater) map[string]string {
	return v.Validate()
}

// Validate trims the prompt before checking it so whitespace-only prompts fail.
func (params *CreateParams) Validate() map[string]string {
	params.Prompt = strings.TrimSpace(params.Prompt)
	return validateStruct(params)
}

func (params *GenerationsParams) Validate() map[string]string {
	return validateStruct(params)
}

func validateStruct(s any) map[string]string {
	if err := validate.Struct(s); err != nil {
		errs, ok := err.(validator.ValidationErrors)
		if !ok {
			return map[string]string{"request": err.Error()}
		}
		errors := make(map[string]string)
		for _, e := range errs {
			errors[e.Field()] = fmt.Sprintf("failed on '%s' tag", e.Tag())
		}
		return errors
	}
	return nil
}
