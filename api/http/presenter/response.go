package presenter

import "github.com/gofiber/fiber/v2"

// SuccessResponse is the uniform body for every successful endpoint. Data is
// always present, null when an endpoint has nothing to return.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// ErrorResponse deliberately has no data key.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func Success(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(SuccessResponse{Success: true, Message: message, Data: data})
}

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(ErrorResponse{Success: false, Message: message})
}
