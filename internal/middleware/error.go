package middleware

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pilgrim-testimonies/internal/domain"
)

type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	TraceID string            `json:"trace_id,omitempty"`
}

// ErrorHandler maps pipeline errors onto HTTP responses. Provider and store
// details stay in the server log; clients get generic messages plus a short
// trace ID to quote when reporting a problem.
func ErrorHandler(c *fiber.Ctx, err error) error {
	traceID := uuid.New().String()[:8]

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Submission failed validation",
			Fields:  verr.Fields,
			TraceID: traceID,
		})
	}

	var uerr *domain.UploadError
	if errors.As(err, &uerr) {
		log.Printf("[%s] upload error: %v", traceID, err)
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Code:    "UPLOAD_FAILED",
			Message: "Media upload failed, please try again",
			TraceID: traceID,
		})
	}

	var serr *domain.StoreWriteError
	if errors.As(err, &serr) {
		log.Printf("[%s] store write error: %v", traceID, err)
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Code:    "STORE_ERROR",
			Message: "Could not save the submission, please try again later",
			TraceID: traceID,
		})
	}

	var ferr *domain.FetchError
	if errors.As(err, &ferr) {
		log.Printf("[%s] fetch error: %v", traceID, err)
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Code:    "FETCH_ERROR",
			Message: "Could not load testimonials right now",
			TraceID: traceID,
		})
	}

	if errors.Is(err, domain.ErrStoreNotConfigured) || errors.Is(err, domain.ErrLeadStoreNotConfigured) {
		log.Printf("[%s] configuration error: %v", traceID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Code:    "CONFIG_ERROR",
			Message: "Server configuration error",
			TraceID: traceID,
		})
	}

	code := fiber.StatusInternalServerError
	message := "Internal server error"
	errorCode := "INTERNAL_ERROR"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message

		switch code {
		case fiber.StatusBadRequest:
			errorCode = "BAD_REQUEST"
		case fiber.StatusUnauthorized:
			errorCode = "UNAUTHORIZED"
		case fiber.StatusForbidden:
			errorCode = "FORBIDDEN"
		case fiber.StatusNotFound:
			errorCode = "NOT_FOUND"
		case fiber.StatusMethodNotAllowed:
			errorCode = "METHOD_NOT_ALLOWED"
		}
	} else {
		log.Printf("[%s] unhandled error: %v", traceID, err)
	}

	return c.Status(code).JSON(ErrorResponse{
		Code:    errorCode,
		Message: message,
		TraceID: traceID,
	})
}

func BadRequest(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusBadRequest, message)
}

func Unauthorized(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusUnauthorized, message)
}
