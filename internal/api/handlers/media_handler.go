package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/salidas/internal/service"
	"github.com/maheshrc27/salidas/internal/transfer"
)

type MediaHandler struct {
	s service.MediaService
}

func NewMediaHandler(service service.MediaService) *MediaHandler {
	return &MediaHandler{s: service}
}

// uploadResponse reports the files saved before a failure alongside it.
func uploadResponse[T any](c *fiber.Ctx, saved []T, err error) error {
	if err == nil {
		return c.Status(fiber.StatusCreated).JSON(transfer.UploadResult[T]{Saved: saved})
	}
	if len(saved) == 0 {
		return writeError(c, err)
	}
	return c.Status(statusFor(err)).JSON(transfer.UploadResult[T]{Saved: saved, Error: err.Error()})
}

func (h *MediaHandler) ListPhotos(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	photos, err := h.s.ListPhotos(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(photos)
}

func (h *MediaHandler) UploadPhotos(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	files, err := formFiles(c, "files")
	if err != nil {
		return writeError(c, err)
	}

	saved, err := h.s.UploadPhotos(c.Context(), GetUserID(c), id, files)
	return uploadResponse(c, saved, err)
}

func (h *MediaHandler) RemovePhoto(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	if err := h.s.RemovePhoto(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *MediaHandler) ListVideos(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	videos, err := h.s.ListVideos(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(videos)
}

func (h *MediaHandler) UploadVideos(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	files, err := formFiles(c, "files")
	if err != nil {
		return writeError(c, err)
	}

	saved, err := h.s.UploadVideos(c.Context(), GetUserID(c), id, files)
	return uploadResponse(c, saved, err)
}

func (h *MediaHandler) RemoveVideo(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	if err := h.s.RemoveVideo(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
