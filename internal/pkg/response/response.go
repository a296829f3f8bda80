package response

import "github.com/gofiber/fiber/v3"

// SemanticResponse is the uniform JSON envelope for every endpoint.
type SemanticResponse struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

const (
	MessageOK                  = "ok"
	MessageBadRequest          = "bad request"
	MessageNotFound            = "not found"
	MessageInternalServerError = "internal server error"
	MessageError               = "error"
)

func Success(c fiber.Ctx, status int, message string, data interface{}) error {
	return write(c, status, message, data)
}

func Error(c fiber.Ctx, status int, message string, data interface{}) error {
	return write(c, status, message, data)
}

func write(c fiber.Ctx, status int, message string, data interface{}) error {
	if status < 100 || status > 599 {
		status = fiber.StatusInternalServerError
	}
	if message == "" {
		message = defaultMessage(status)
	}
	return c.Status(status).JSON(SemanticResponse{Status: status, Message: message, Data: data})
}

func defaultMessage(status int) string {
	switch {
	case status == fiber.StatusOK:
		return MessageOK
	case status == fiber.StatusBadRequest:
		return MessageBadRequest
	case status == fiber.StatusNotFound:
		return MessageNotFound
	case status >= 500:
		return MessageInternalServerError
	default:
		return MessageError
	}
}
