package middlewares

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	helper "suryaghar_backend/internals/helpers"
)

// RecoveryMiddleware turns a panic into an error for ErrorHandler.
func RecoveryMiddleware() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
	})
}

const recoveryPage = `<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><meta name="viewport" content="width=device-width,initial-scale=1">
<title>Something went wrong</title></head>
<body style="font-family:sans-serif;text-align:center;padding:4rem 1rem">
<h1>Something went wrong</h1>
<p>An unexpected error occurred while loading this page.</p>
<button onclick="location.reload()" style="padding:.6rem 1.4rem;font-size:1rem">Reload page</button>
</body>
</html>`

// ErrorHandler answers API paths with the standard JSON error body and page
// requests with a static recovery page.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := ""
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code, msg = fe.Code, fe.Message
	}
	if code >= 500 {
		log.Printf("[ERROR] %s %s: %v", c.Method(), c.Path(), err)
		msg = ""
	}

	if strings.HasPrefix(c.Path(), "/api") {
		return helper.JsonError(c, code, msg)
	}
	if code == fiber.StatusNotFound {
		return c.Status(code).SendString("Not Found")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(code).SendString(recoveryPage)
}
