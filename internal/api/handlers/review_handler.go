package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/salidas/internal/service"
	"github.com/maheshrc27/salidas/internal/transfer"
)

type ReviewHandler struct {
	s service.ReviewService
}

func NewReviewHandler(service service.ReviewService) *ReviewHandler {
	return &ReviewHandler{s: service}
}

func (h *ReviewHandler) ListReviews(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	reviews, err := h.s.List(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(reviews)
}

func (h *ReviewHandler) SaveReview(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	var input transfer.ReviewInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	review, err := h.s.Save(c.Context(), GetUserID(c), id, &input)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(review)
}
