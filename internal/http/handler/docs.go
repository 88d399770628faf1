package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/swaggo/swag"
)

// RegisterDocs serves the Swagger UI under /swagger. The public host and scheme
// are fixed here, before the server starts, so handlers only ever read spec.
func RegisterDocs(app *fiber.App, spec *swag.Spec, host string, schemes ...string) {
	spec.Host = host
	spec.Schemes = schemes
	app.Get("/swagger/*", swagger.HandlerDefault)
}
