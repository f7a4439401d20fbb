package handlers

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"luna-empenos/internal/core/domain"
	"luna-empenos/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// currentUserID reads the acting user id placed in locals by the auth
// middleware. Every engine operation requires it; there is no fallback actor.
func currentUserID(c *fiber.Ctx) (uint, bool) {
	userID, ok := c.Locals("userID").(uint)
	return userID, ok && userID != 0
}

// parseIDParam parses the :id path parameter
func parseIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

// parseDate parses a YYYY-MM-DD date string
func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.Local)
}

// roleFromString maps a request role to a known role, defaulting to EMPLOYEE
func roleFromString(s string) domain.Role {
	if strings.EqualFold(s, string(domain.RoleAdmin)) {
		return domain.RoleAdmin
	}
	return domain.RoleEmployee
}

// mapDomainError translates a service error kind to the matching HTTP
// response. fallback is the message used for unexpected failures.
func mapDomainError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrValidation):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, domain.ErrPreconditionFailed):
		return response.UnprocessableEntity(c, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		return response.Unauthorized(c, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, err.Error())
	default:
		return response.InternalServerError(c, fallback)
	}
}
