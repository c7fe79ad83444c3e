package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/salidas/internal/calendar"
	"github.com/maheshrc27/salidas/internal/service"
)

type CalendarHandler struct {
	s service.EventService
}

func NewCalendarHandler(service service.EventService) *CalendarHandler {
	return &CalendarHandler{s: service}
}

func (h *CalendarHandler) Day(c *fiber.Ctx) error {
	view, err := h.s.Day(c.Context(), c.Query("day"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(view)
}

func (h *CalendarHandler) Month(c *fiber.Ctx) error {
	counts, err := h.s.Month(c.Context(), c.Query("month"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(counts)
}

// DefaultTime proposes 19:00 on the picked day, read on the viewer's clock.
// Without tz the viewer is assumed to be in Quito.
func (h *CalendarHandler) DefaultTime(c *fiber.Ctx) error {
	day, err := calendar.ParseDayKey(c.Query("day"))
	if err != nil {
		return writeError(c, service.ValidationErrors{"day": err.Error()})
	}

	viewer := calendar.Display.Location()
	if tz := c.Query("tz"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return writeError(c, service.ValidationErrors{"tz": err.Error()})
		}
		viewer = loc
	}

	picked := time.Date(day.Year, day.Month, day.Day, 12, 0, 0, 0, viewer)
	return c.JSON(fiber.Map{
		"date_start": calendar.DefaultEventTime(picked, viewer),
	})
}

func (h *CalendarHandler) Feed(c *fiber.Ctx) error {
	feed, err := h.s.Feed(c.Context(), c.Hostname())
	if err != nil {
		return writeError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/calendar; charset=utf-8")
	return c.SendString(feed)
}
