package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"noteapi/internal/http/middleware"
	"noteapi/internal/service"
)

// Services bundles the injected services for route registration.
type Services struct {
	Users       service.UserService
	Folders     service.FolderService
	Notes       service.NoteService
	Attachments service.AttachmentService
}

// RegisterRoutes attaches all HTTP routes to the Fiber app. Handlers stay
// thin; business rules count on the services.
func RegisterRoutes(app *fiber.App, db *sql.DB, authSecret []byte, svcs Services) {
	// Health: /health checks DB connectivity, /healthz is bare liveness.
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	app.Post("/auth/register", Register(svcs.Users))
	app.Post("/auth/login", Login(svcs.Users))

	// Everything below requires a valid bearer token.
	auth := middleware.Auth(authSecret)

	app.Get("/users/me", auth, CurrentUser(svcs.Users))
	app.Get("/users/resolve", auth, ResolveUser(svcs.Users))

	app.Get("/folders", auth, ListFolders(svcs.Folders))
	app.Post("/folders", auth, CreateFolder(svcs.Folders))
	app.Get("/folders/:id", auth, GetFolder(svcs.Folders, svcs.Users))
	app.Delete("/folders/:id", auth, DeleteFolder(svcs.Folders))
	app.Post("/folders/:id/share", auth, ShareFolder(svcs.Folders, svcs.Users))

	app.Get("/folders/:id/notes", auth, ListNotes(svcs.Notes))
	app.Post("/folders/:id/notes", auth, CreateNote(svcs.Notes))
	app.Put("/folders/:id/notes/:noteId", auth, UpdateNote(svcs.Notes))
	app.Delete("/folders/:id/notes/:noteId", auth, DeleteNote(svcs.Notes))

	app.Post("/folders/:id/notes/:noteId/attachments", auth, UploadAttachment(svcs.Attachments))
	app.Get("/folders/:id/notes/:noteId/attachments", auth, ListAttachments(svcs.Attachments))
	app.Get("/folders/:id/notes/:noteId/attachments/:attId", auth, GetAttachment(svcs.Attachments))
	app.Delete("/folders/:id/notes/:noteId/attachments/:attId", auth, DeleteAttachment(svcs.Attachments))
}

// HealthCheck reports whether the database dependency is reachable.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a bare liveness endpoint.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
