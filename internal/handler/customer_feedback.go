package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bar-table-reservation/internal/model"
	"github.com/iliyamo/bar-table-reservation/internal/repository"
)

// FeedbackHandler lets customers rate a bar after a visit.
type FeedbackHandler struct {
	Feedback *repository.FeedbackRepo
	Bars     *repository.BarRepo
}

func NewFeedbackHandler(feedback *repository.FeedbackRepo, bars *repository.BarRepo) *FeedbackHandler {
	if feedback == nil || bars == nil {
		panic("nil repository passed to NewFeedbackHandler")
	}
	return &FeedbackHandler{Feedback: feedback, Bars: bars}
}

// CreateFeedback handles POST /v1/bars/:bar_id/feedback.
func (h *FeedbackHandler) CreateFeedback(c echo.Context) error {
	accountID, err := getAccountID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	barID, ok := pathID(c, "bar_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bar id"})
	}
	var req struct {
		BookingID uint64 `json:"booking_id"`
		Rating    uint8  `json:"rating"`
		Comment   string `json:"comment"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Rating < 1 || req.Rating > 5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
	}

	ctx := c.Request().Context()
	if _, err := h.Bars.GetByID(ctx, barID); err != nil {
		if err == repository.ErrBarNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "bar not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bar"})
	}

	f := &model.Feedback{
		AccountID: accountID,
		BarID:     barID,
		BookingID: req.BookingID,
		Rating:    req.Rating,
		Comment:   strings.TrimSpace(req.Comment),
	}
	if err := h.Feedback.Create(ctx, f); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save feedback"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": f})
}
