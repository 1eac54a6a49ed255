package middleware

import (
	"errors"

	"receiptly/pkg/auth"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SubjectKey is the Locals key under which the authenticated subject is stored.
const SubjectKey = "subject"

// AuthMiddleware verifies the bearer token before any handler work runs.
// A missing secret is reported as a server error, never as a caller error.
func AuthMiddleware(verifier *auth.Verifier, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		subject, err := verifier.Verify(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			if errors.Is(err, auth.ErrServerMisconfigured) {
				logger.Error("Token verification unavailable", zap.Error(err))
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "Server misconfigured",
				})
			}
			logger.Warn("Rejected credential", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or missing token",
			})
		}

		c.Locals(SubjectKey, subject)
		return c.Next()
	}
}
