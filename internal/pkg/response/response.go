package response

import "github.com/gofiber/fiber/v2"

// Envelope represents the uniform API response body
type Envelope struct {
	Success bool        `json:"success"`
	Status  int         `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
	Stack   string      `json:"stack,omitempty"`
}

// Success sends a 200 success response
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(Envelope{
		Success: true,
		Status:  fiber.StatusOK,
		Message: message,
		Data:    data,
	})
}

// Created sends a 201 created response
func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Envelope{
		Success: true,
		Status:  fiber.StatusCreated,
		Message: message,
		Data:    data,
	})
}

// Error sends an error response
func Error(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Envelope{
		Success: false,
		Status:  statusCode,
		Message: message,
	})
}

// NotImplemented sends a 501 response
func NotImplemented(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotImplemented, message)
}

// TooManyRequests sends a 429 response
func TooManyRequests(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusTooManyRequests, message)
}
