package handler

import (
	"github.com/gofiber/fiber/v2"

	"noteapi/internal/http/middleware"
	"noteapi/internal/service"
)

// UploadAttachment attaches an uploaded file (multipart field "file") to a
// note.
func UploadAttachment(attSvc service.AttachmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		att, err := attSvc.Upload(c.UserContext(),
			c.Params("id"), c.Params("noteId"), middleware.CallerID(c),
			f, fh.Filename, ct, fh.Size,
		)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(att)
	}
}

// ListAttachments returns the note's attachments, newest first.
func ListAttachments(attSvc service.AttachmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		atts, err := attSvc.List(c.UserContext(), c.Params("id"), c.Params("noteId"), middleware.CallerID(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": atts})
	}
}

// GetAttachment returns a presigned download URL for the attachment.
func GetAttachment(attSvc service.AttachmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		url, err := attSvc.DownloadURL(c.UserContext(),
			c.Params("id"), c.Params("noteId"), c.Params("attId"), middleware.CallerID(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"url": url})
	}
}

// DeleteAttachment removes the attachment's object and metadata.
func DeleteAttachment(attSvc service.AttachmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := attSvc.Delete(c.UserContext(),
			c.Params("id"), c.Params("noteId"), c.Params("attId"), middleware.CallerID(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
