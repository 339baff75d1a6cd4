package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/callcenter-service/internal/repository"
	apperrors "github.com/spec-kit/callcenter-service/pkg/util"
)

// pathID parses a numeric route parameter.
func pathID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError(name+" must be a positive integer", nil)
	}
	return id, nil
}

// pageRequest reads page/limit query parameters. Bounds are applied later
// by PageRequest.Normalize.
func pageRequest(c *fiber.Ctx) repository.PageRequest {
	return repository.PageRequest{
		Page:  c.QueryInt("page", 1),
		Limit: c.QueryInt("limit", 0),
	}
}

// optionalInt64Query returns nil when the parameter is absent or malformed.
func optionalInt64Query(c *fiber.Ctx, name string) *int64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	val, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &val
}

// optionalTimeQuery accepts RFC 3339 timestamps or plain dates.
func optionalTimeQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return &ts, nil
	}
	if ts, err := time.Parse("2006-01-02", raw); err == nil {
		return &ts, nil
	}
	return nil, apperrors.NewValidationError(name+" must be an RFC 3339 timestamp or YYYY-MM-DD date", nil)
}
