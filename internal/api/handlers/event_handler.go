package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/salidas/internal/models"
	"github.com/maheshrc27/salidas/internal/service"
	"github.com/maheshrc27/salidas/internal/transfer"
)

type EventHandler struct {
	s service.EventService
}

func NewEventHandler(service service.EventService) *EventHandler {
	return &EventHandler{s: service}
}

func (h *EventHandler) ListEvents(c *fiber.Ctx) error {
	events, err := h.s.List(c.Context(), models.EventStatus(c.Query("status")))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(events)
}

func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	userID := GetUserID(c)

	cover, err := formFile(c, "cover")
	if err != nil {
		return writeError(c, err)
	}

	event, err := h.s.Create(c.Context(), userID, &transfer.EventCreation{
		Title:    c.FormValue("title"),
		Location: c.FormValue("location"),
		Link:     c.FormValue("link"),
	}, cover)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(event)
}

func (h *EventHandler) GetEvent(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	event, err := h.s.Get(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(event)
}

func (h *EventHandler) RemoveEvent(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	if err := h.s.Remove(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *EventHandler) ToggleStatus(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	event, err := h.s.ToggleStatus(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(event)
}

func (h *EventHandler) AssignDate(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	var schedule transfer.EventSchedule
	if err := c.BodyParser(&schedule); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	event, err := h.s.AssignDate(c.Context(), id, &schedule)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(event)
}

func (h *EventHandler) ClearDate(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	event, err := h.s.ClearDate(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(event)
}

func (h *EventHandler) ReplaceCover(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	cover, err := formFile(c, "cover")
	if err != nil {
		return writeError(c, err)
	}

	event, err := h.s.ReplaceCover(c.Context(), id, cover)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(event)
}

func (h *EventHandler) Summary(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	summary, err := h.s.Summary(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="salida_%d_resumen.txt"`, id))
	return c.SendString(summary)
}
