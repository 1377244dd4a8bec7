package handler

import (
	"github.com/gofiber/fiber/v2"

	"noteapi/internal/http/middleware"
	"noteapi/internal/service"
)

type createFolderRequest struct {
	Name string `json:"name"`
}

type shareFolderRequest struct {
	Email string `json:"email"`
}

type collaboratorInfo struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// ListFolders returns every folder the caller owns or collaborates on,
// newest first.
func ListFolders(folderSvc service.FolderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		folders, err := folderSvc.ListAccessible(c.UserContext(), middleware.CallerID(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": folders})
	}
}

// CreateFolder makes a new folder owned by the caller.
func CreateFolder(folderSvc service.FolderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createFolderRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		folder, err := folderSvc.Create(c.UserContext(), req.Name, middleware.CallerID(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(folder)
	}
}

// GetFolder returns a single folder with its collaborator list expanded to
// emails for display. Email lookups are best effort; an unresolvable ID
// yields an empty email rather than failing the whole request.
func GetFolder(folderSvc service.FolderService, userSvc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		folder, err := folderSvc.Get(c.UserContext(), c.Params("id"), middleware.CallerID(c))
		if err != nil {
			return writeServiceError(c, err)
		}

		collaborators := make([]collaboratorInfo, 0, len(folder.SharedWith))
		for _, id := range folder.SharedWith {
			email, _ := userSvc.EmailOf(c.UserContext(), id)
			collaborators = append(collaborators, collaboratorInfo{UserID: id, Email: email})
		}

		return c.JSON(fiber.Map{
			"folder":        folder,
			"collaborators": collaborators,
		})
	}
}

// ShareFolder resolves the collaborator email to a user ID and grants that
// user access. Owner only; sharing twice succeeds without change.
func ShareFolder(folderSvc service.FolderService, userSvc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req shareFolderRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		collaborator, err := userSvc.ResolveEmail(c.UserContext(), req.Email)
		if err != nil {
			return writeServiceError(c, err)
		}

		if err := folderSvc.Share(c.UserContext(), c.Params("id"), middleware.CallerID(c), collaborator.ID); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"shared_with": collaborator.ID})
	}
}

// DeleteFolder removes the folder and its notes. Owner only.
func DeleteFolder(folderSvc service.FolderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := folderSvc.Delete(c.UserContext(), c.Params("id"), middleware.CallerID(c)); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
