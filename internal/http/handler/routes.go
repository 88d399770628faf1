package handler

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"blogapi/internal/service"
	"blogapi/internal/validation"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, db *sql.DB, articles service.ArticleService, comments service.CommentService, exports service.ExportService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api/articles")
	api.Get("/", ListArticles(articles))
	api.Post("/", CreateArticle(articles))
	api.Get("/:id", GetArticle(articles))
	api.Put("/:id", UpdateArticle(articles))
	api.Delete("/:id", DeleteArticle(articles))
	api.Get("/:id/comments", ListComments(comments))
	api.Post("/:id/comments", CreateComment(comments))
	api.Post("/:id/export", ExportArticle(exports))
}

// HealthCheck godoc
// @Summary      Readiness probe
// @Description  Pings the database.
// @Tags         ops
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  errorPayload
// @Router       /health [get]
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if db == nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe godoc
// @Summary  Liveness probe
// @Tags     ops
// @Success  200
// @Router   /healthz [get]
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// parseID reads the :id path parameter. Only positive integers are accepted.
func parseID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func notFoundMessage(id int64) string {
	return fmt.Sprintf("article not found with id: %d", id)
}

// ListArticles godoc
// @Summary  List articles with comment counts
// @Tags     articles
// @Produce  json
// @Success  200  {array}   service.ArticleSummary
// @Failure  500  {object}  errorPayload
// @Router   /api/articles [get]
func ListArticles(svc service.ArticleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.List(c.UserContext())
		if err != nil {
			return writeServiceError(c, err, "")
		}
		return c.JSON(res)
	}
}

// GetArticle godoc
// @Summary  Get an article with its comments
// @Tags     articles
// @Produce  json
// @Param    id   path      int  true  "Article ID"
// @Success  200  {object}  service.ArticleDetail
// @Failure  400  {object}  errorPayload
// @Failure  404  {object}  errorPayload
// @Router   /api/articles/{id} [get]
func GetArticle(svc service.ArticleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		res, err := svc.GetDetailed(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err, notFoundMessage(id))
		}
		return c.JSON(res)
	}
}

// CreateArticle godoc
// @Summary  Create an article
// @Tags     articles
// @Accept   json
// @Produce  json
// @Param    body  body      service.ArticleInput  true  "Article"
// @Success  201   {object}  service.ArticleSummary
// @Failure  400   {object}  errorPayload
// @Router   /api/articles [post]
func CreateArticle(svc service.ArticleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.ArticleInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "malformed request body")
		}
		if err := validation.Struct(in); err != nil {
			return writeServiceError(c, err, "")
		}
		res, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err, "")
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// UpdateArticle godoc
// @Summary  Replace title and content of an article
// @Tags     articles
// @Accept   json
// @Produce  json
// @Param    id    path      int                   true  "Article ID"
// @Param    body  body      service.ArticleInput  true  "Article"
// @Success  200   {object}  service.ArticleSummary
// @Failure  400   {object}  errorPayload
// @Failure  404   {object}  errorPayload
// @Router   /api/articles/{id} [put]
func UpdateArticle(svc service.ArticleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var in service.ArticleInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "malformed request body")
		}
		if err := validation.Struct(in); err != nil {
			return writeServiceError(c, err, "")
		}
		res, err := svc.Update(c.UserContext(), id, in)
		if err != nil {
			return writeServiceError(c, err, notFoundMessage(id))
		}
		return c.JSON(res)
	}
}

// DeleteArticle godoc
// @Summary  Delete an article and all of its comments
// @Tags     articles
// @Param    id   path  int  true  "Article ID"
// @Success  204
// @Failure  400  {object}  errorPayload
// @Failure  404  {object}  errorPayload
// @Router   /api/articles/{id} [delete]
func DeleteArticle(svc service.ArticleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err, notFoundMessage(id))
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ListComments godoc
// @Summary  List the comments of an article
// @Tags     comments
// @Produce  json
// @Param    id   path      int  true  "Article ID"
// @Success  200  {array}   service.CommentResponse
// @Failure  404  {object}  errorPayload
// @Router   /api/articles/{id}/comments [get]
func ListComments(svc service.CommentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		res, err := svc.ListForArticle(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err, notFoundMessage(id))
		}
		return c.JSON(res)
	}
}

// CreateComment godoc
// @Summary  Add a comment to an article
// @Tags     comments
// @Accept   json
// @Produce  json
// @Param    id    path      int                   true  "Article ID"
// @Param    body  body      service.CommentInput  true  "Comment"
// @Success  201   {object}  service.CommentResponse
// @Failure  400   {object}  errorPayload
// @Failure  404   {object}  errorPayload
// @Router   /api/articles/{id}/comments [post]
func CreateComment(svc service.CommentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var in service.CommentInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "malformed request body")
		}
		if err := validation.Struct(in); err != nil {
			return writeServiceError(c, err, "")
		}
		res, err := svc.Create(c.UserContext(), id, in)
		if err != nil {
			return writeServiceError(c, err, notFoundMessage(id))
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// ExportArticle godoc
// @Summary      Export an article snapshot
// @Description  Stores the detailed view as JSON in object storage and returns a presigned download URL.
// @Tags         articles
// @Produce      json
// @Param        id   path      int  true  "Article ID"
// @Success      201  {object}  service.ExportResult
// @Failure      404  {object}  errorPayload
// @Failure      503  {object}  errorPayload
// @Router       /api/articles/{id}/export [post]
func ExportArticle(svc service.ExportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		res, err := svc.Export(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err, notFoundMessage(id))
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}
