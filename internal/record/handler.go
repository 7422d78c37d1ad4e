package record

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

const uploadFailedPrefix = "Failed to upload files: "

// Handler adapts HTTP requests to the record service.
type Handler struct {
	service *Service
	log     *zap.Logger
}

func NewHandler(s *Service, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{service: s, log: log}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/retrieve", h.retrieve)
	app.Get("/error", h.errorPage)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/bulk-upload", h.bulkUpload)
	app.Post("/upload-data", h.uploadData)
	app.Post("/api/v1/records", h.saveRecords)
}

func (h *Handler) bulkUpload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(uploadFailedPrefix + err.Error())
	}

	headers := form.File["files"]
	sources := make([]Source, 0, len(headers))
	for _, fh := range headers {
		sources = append(sources, FromFileHeader(fh))
	}

	if err := h.service.BulkUpload(c.UserContext(), sources); err != nil {
		if errors.Is(err, ErrNoFiles) {
			return c.Status(fiber.StatusBadRequest).SendString(uploadFailedPrefix + err.Error())
		}
		h.log.Warn("bulk upload failed", zap.Int("files", len(sources)), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).SendString(uploadFailedPrefix + err.Error())
	}

	return c.Redirect("/", fiber.StatusFound)
}

func (h *Handler) uploadData(c *fiber.Ctx) error {
	rec := new(Record)
	if err := c.BodyParser(rec); err != nil {
		h.log.Warn("invalid form submission", zap.Error(err))
		return c.Redirect("/error", fiber.StatusFound)
	}
	if _, err := h.service.SaveRecord(c.UserContext(), detached(*rec)); err != nil {
		h.log.Error("form submission not saved", zap.Error(err))
		return c.Redirect("/error", fiber.StatusFound)
	}
	return c.Redirect("/", fiber.StatusFound)
}

func (h *Handler) retrieve(c *fiber.Ctx) error {
	args := c.Context().QueryArgs()
	if !args.Has("name") || !args.Has("email") {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	recs, err := h.service.RetrieveRecords(c.UserContext(), c.Query("name"), c.Query("email"))
	if err != nil {
		h.log.Error("retrieve failed", zap.Error(err))
		c.Status(fiber.StatusInternalServerError)
		return nil
	}
	if len(recs) == 0 {
		c.Status(fiber.StatusNotFound)
		return nil
	}
	return c.JSON(recs)
}

func (h *Handler) saveRecords(c *fiber.Ctx) error {
	var recs []Record
	if err := c.BodyParser(&recs); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	for i := range recs {
		recs[i].ID = ""
	}

	saved, err := h.service.SaveRecords(c.UserContext(), recs)
	if err != nil {
		if errors.Is(err, ErrNoRecords) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
		h.log.Error("batch save failed", zap.Int("records", len(recs)), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(saved)
}

func (h *Handler) errorPage(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).SendString("error")
}

// detached copies form values out of the request buffer, which fasthttp reuses
// once the handler returns. The caller-supplied ID is dropped.
func detached(rec Record) Record {
	return Record{
		FirstName:        utils.CopyString(rec.FirstName),
		LastName:         utils.CopyString(rec.LastName),
		PhoneNumber:      utils.CopyString(rec.PhoneNumber),
		Email:            utils.CopyString(rec.Email),
		AdditionalFields: utils.CopyString(rec.AdditionalFields),
	}
}
