package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	domainerrors "survey/internal/domain/errors"
	"survey/internal/usecase"
)

// GenerateHandler holds dependencies for the questionnaire route.
type GenerateHandler struct {
	uc usecase.QuestionnaireUsecase
}

// NewGenerateHandler is the constructor for GenerateHandler, injected by Fx.
func NewGenerateHandler(uc usecase.QuestionnaireUsecase) *GenerateHandler {
	return &GenerateHandler{uc: uc}
}

// Generate handles POST /generate. Validation runs on the raw input, so
// an explicit out-of-range question_count fails while an omitted one is
// defaulted later by the usecase.
func (h *GenerateHandler) Generate(c echo.Context) error {
	var input usecase.GenerateInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, domainerrors.ErrorResponse{Detail: "Invalid request body"})
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	questionnaire, err := h.uc.Generate(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, questionnaire)
}
