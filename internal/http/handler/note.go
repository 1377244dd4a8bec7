package handler

import (
	"github.com/gofiber/fiber/v2"

	"noteapi/internal/http/middleware"
	"noteapi/internal/service"
)

type noteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ListNotes returns the folder's notes, most recently edited first.
func ListNotes(noteSvc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		notes, err := noteSvc.List(c.UserContext(), c.Params("id"), middleware.CallerID(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": notes})
	}
}

// CreateNote adds a note to the folder, authored by the caller.
func CreateNote(noteSvc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req noteRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		note, err := noteSvc.Create(c.UserContext(), c.Params("id"), middleware.CallerID(c), req.Title, req.Content)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(note)
	}
}

// UpdateNote overwrites the note's title and content.
func UpdateNote(noteSvc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req noteRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		err := noteSvc.Update(c.UserContext(), c.Params("id"), c.Params("noteId"), middleware.CallerID(c), req.Title, req.Content)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DeleteNote removes a note; deleting an already-deleted note also returns
// 204.
func DeleteNote(noteSvc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := noteSvc.Delete(c.UserContext(), c.Params("id"), c.Params("noteId"), middleware.CallerID(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
