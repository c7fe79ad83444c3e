package handlers

import (
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/maheshrc27/salidas/internal/service"
	"github.com/maheshrc27/salidas/internal/transfer"
)

func GetUserID(c *fiber.Ctx) uuid.UUID {
	userID, _ := c.Locals("user_id").(string)
	id, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, service.ValidationErrors{name: "invalid id"}
	}
	return id, nil
}

// statusFor maps service errors onto HTTP statuses.
func statusFor(err error) int {
	var verrs service.ValidationErrors
	switch {
	case errors.As(err, &verrs), errors.Is(err, service.ErrUnsupportedFile):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrNoSession):
		return fiber.StatusUnauthorized
	case errors.Is(err, service.ErrEventNotFound),
		errors.Is(err, service.ErrPhotoNotFound),
		errors.Is(err, service.ErrVideoNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrEventNotDone):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func writeError(c *fiber.Ctx, err error) error {
	var verrs service.ValidationErrors
	if errors.As(err, &verrs) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": verrs,
		})
	}

	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		slog.Error(err.Error(), "path", c.Path())
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func readFile(fh *multipart.FileHeader) (transfer.File, error) {
	f, err := fh.Open()
	if err != nil {
		slog.Info(err.Error())
		return transfer.File{}, err
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		slog.Info(err.Error())
		return transfer.File{}, err
	}
	return transfer.File{Filename: fh.Filename, Content: content}, nil
}

// formFile reads the single file under field, or returns nil when the field
// is absent.
func formFile(c *fiber.Ctx, field string) (*transfer.File, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}
	file, err := readFile(fh)
	if err != nil {
		return nil, err
	}
	return &file, nil
}

func formFiles(c *fiber.Ctx, field string) ([]transfer.File, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, service.ValidationErrors{field: "Unable to parse form"}
	}

	headers := form.File[field]
	files := make([]transfer.File, 0, len(headers))
	for _, fh := range headers {
		file, err := readFile(fh)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}
