package response

import (
	"github.com/gofiber/fiber/v2"
)

// SuccessBody is the standard success envelope.
type SuccessBody struct {
	Status   string      `json:"status"`
	Message  string      `json:"message"`
	Data     interface{} `json:"data"`
	Metadata interface{} `json:"metadata,omitempty"`
}

// ErrorBody is the standard error envelope.
type ErrorBody struct {
	Status string      `json:"status"`
	Error  ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Message    string      `json:"message"`
	StatusCode int         `json:"statusCode"`
	Details    interface{} `json:"details,omitempty"`
}

// Meta is the metadata object of a success body. Listing endpoints put the
// data source, the fallback warning and pagination here.
type Meta map[string]interface{}

// WithWarning adds "warning" when w is not empty.
func (m Meta) WithWarning(w string) Meta {
	if w != "" {
		m["warning"] = w
	}
	return m
}

const statusSuccess = "success"
const statusError = "error"

func send(c *fiber.Ctx, code int, message string, data interface{}, metadata interface{}) error {
	if metadata == nil {
		metadata = Meta{}
	}
	return c.Status(code).JSON(SuccessBody{
		Status:   statusSuccess,
		Message:  message,
		Data:     data,
		Metadata: metadata,
	})
}

// Success sends 200 with the standard success format.
func Success(c *fiber.Ctx, message string, data interface{}, metadata interface{}) error {
	return send(c, fiber.StatusOK, message, data, metadata)
}

// SuccessCreated sends 201 with the standard success format.
func SuccessCreated(c *fiber.Ctx, message string, data interface{}, metadata interface{}) error {
	return send(c, fiber.StatusCreated, message, data, metadata)
}

// Error sends statusCode with the standard error format.
func Error(c *fiber.Ctx, message string, statusCode int, details interface{}) error {
	if details == nil {
		details = map[string]interface{}{}
	}
	return c.Status(statusCode).JSON(ErrorBody{
		Status: statusError,
		Error: ErrorDetail{
			Message:    message,
			StatusCode: statusCode,
			Details:    details,
		},
	})
}

// Unauthorized sends 401 in the standard error format.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, message, fiber.StatusUnauthorized, nil)
}

// ValidationFailed sends 400 with per-field messages in error.details.
func ValidationFailed(c *fiber.Ctx, fields map[string]string) error {
	return Error(c, "Datos inválidos", fiber.StatusBadRequest, fields)
}

// NotFound sends 404 in the standard error format.
func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, message, fiber.StatusNotFound, nil)
}
