// Package validation binds incoming requests onto typed payloads and turns
// validation failures into client-facing *errs.HTTPError values.
package validation

import (
	"errors"
	"fmt"
	"io"

	"github.com/deppfellow/accounts-api/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// MIMEApplicationJSON is the only media type accepted on write requests.
// Parameters such as charset are not accepted.
const MIMEApplicationJSON = echo.MIMEApplicationJSON

// Validatable is implemented by request payload types that know how to
// validate themselves.
type Validatable interface {
	Validate() error
}

// JSONBody is implemented by payloads that carry a JSON request body. The
// Content-Type is checked before anything else, and the raw body is handed
// over undecoded so the domain model can apply its own type checks.
type JSONBody interface {
	SetBody(body []byte)
}

var binder = &echo.DefaultBinder{}

// BindAndValidate populates payload from the request and validates it.
//
// Steps, each failing fast:
//  1. JSONBody payloads require Content-Type application/json (415).
//  2. Path parameters are bound onto `param` tags.
//  3. JSONBody payloads receive the raw body.
//  4. payload.Validate() runs (400).
func BindAndValidate(c echo.Context, payload Validatable) error {
	body, wantsBody := payload.(JSONBody)
	if wantsBody {
		if err := CheckContentType(c, MIMEApplicationJSON); err != nil {
			return err
		}
	}

	if err := binder.BindPathParams(c, payload); err != nil {
		return errs.NewBadRequestError("Invalid path parameter", false, nil, nil, nil)
	}

	if wantsBody {
		raw, err := io.ReadAll(c.Request().Body)
		if err != nil {
			// BodyLimit reports an oversized body while it is read.
			var echoErr *echo.HTTPError
			if errors.As(err, &echoErr) {
				return echoErr
			}
			return errs.NewBadRequestError("Unable to read request body", false, nil, nil, nil)
		}
		body.SetBody(raw)
	}

	if err := payload.Validate(); err != nil {
		return ToHTTPError(err)
	}

	return nil
}

// CheckContentType requires the request Content-Type to equal mediaType.
func CheckContentType(c echo.Context, mediaType string) error {
	if c.Request().Header.Get(echo.HeaderContentType) == mediaType {
		return nil
	}
	return errs.NewUnsupportedMediaTypeError("Content-Type must be " + mediaType)
}

// ToHTTPError converts validation failures into a 400 *errs.HTTPError.
// Values that already are *errs.HTTPError or *echo.HTTPError pass through
// unchanged.
func ToHTTPError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		return echoErr
	}

	msg, fieldErrors := extractValidationError(err)
	return errs.NewBadRequestError(msg, true, nil, fieldErrors, nil)
}

// extractValidationError reads validator.ValidationErrors. Field names are
// whatever the validator's tag name func reports.
func extractValidationError(err error) (string, []errs.FieldError) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "Validation failed: " + err.Error(), nil
	}

	fieldErrors := make([]errs.FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		msg := "is required"
		if fe.Tag() != "required" {
			msg = fmt.Sprintf("failed the %s rule", fe.Tag())
		}
		fieldErrors = append(fieldErrors, errs.FieldError{Field: fe.Field(), Error: msg})
	}

	return "Validation failed", fieldErrors
}
