package dto

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/callcenter-service/internal/repository"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success    bool                 `json:"success"`
	Data       any                  `json:"data,omitempty"`
	Message    string               `json:"message,omitempty"`
	Error      string               `json:"error,omitempty"`
	Details    map[string]any       `json:"details,omitempty"`
	Pagination *repository.PageMeta `json:"pagination,omitempty"`
}

// OK writes a 200 envelope.
func OK(c *fiber.Ctx, data any) error {
	return c.JSON(Response{Success: true, Data: data})
}

// OKMessage writes a 200 envelope with a human-readable message.
func OKMessage(c *fiber.Ctx, message string, data any) error {
	return c.JSON(Response{Success: true, Message: message, Data: data})
}

// Created writes a 201 envelope.
func Created(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(Response{Success: true, Data: data})
}

// Page writes a 200 envelope with pagination metadata.
func Page(c *fiber.Ctx, data any, meta repository.PageMeta) error {
	return c.JSON(Response{Success: true, Data: data, Pagination: &meta})
}
