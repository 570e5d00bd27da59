// Package model holds the domain entities served by the API.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the wire and storage format of Account.DateJoined.
const DateLayout = time.DateOnly

var validate = newValidator()

// newValidator reports field errors under their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// now is replaced in tests.
var now = time.Now

// Account is a single customer account record.
type Account struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name" validate:"required"`
	Email       string    `json:"email" validate:"required"`
	Address     string    `json:"address" validate:"required"`
	PhoneNumber *string   `json:"phone_number"`
	DateJoined  time.Time `json:"date_joined"`
}

// FieldIssue is one problem found while deserializing a payload.
type FieldIssue struct {
	Field   string
	Message string
}

// ValidationError reports a payload that is not a mapping, lacks required
// keys, or carries values of the wrong type.
type ValidationError struct {
	Issues []FieldIssue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "Invalid Account"
	}

	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Field == "" {
			parts = append(parts, issue.Message)
			continue
		}
		parts = append(parts, issue.Field+" "+issue.Message)
	}
	return "Invalid Account: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, message string) {
	e.Issues = append(e.Issues, FieldIssue{Field: field, Message: message})
}

// DataError reports a request body that is not valid JSON.
type DataError struct {
	Err error
}

func (e *DataError) Error() string {
	return "Invalid Account: body of request is not valid JSON: " + e.Err.Error()
}

func (e *DataError) Unwrap() error {
	return e.Err
}

// Decode parses a JSON request body into a new Account.
func Decode(body []byte) (*Account, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, &ValidationError{Issues: []FieldIssue{{Message: "body of request contained no data"}}}
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &DataError{Err: err}
	}

	account := &Account{}
	if err := account.Deserialize(payload); err != nil {
		return nil, err
	}
	return account, nil
}

// Deserialize replaces the mutable fields of a from payload, which must be a
// map[string]any as produced by encoding/json. ID is never read from the
// payload. On failure a is left unchanged.
func (a *Account) Deserialize(payload any) error {
	data, ok := payload.(map[string]any)
	if !ok {
		return &ValidationError{Issues: []FieldIssue{{Message: "body of request contained bad or no data"}}}
	}

	verr := &ValidationError{}
	name := requiredString(data, "name", verr)
	email := requiredString(data, "email", verr)
	address := requiredString(data, "address", verr)

	var phone *string
	switch v := data["phone_number"].(type) {
	case nil:
	case string:
		phone = &v
	default:
		verr.add("phone_number", fmt.Sprintf("must be a string, got %s", jsonType(v)))
	}

	joined := today()
	switch v := data["date_joined"].(type) {
	case nil:
	case string:
		if v != "" {
			parsed, err := time.Parse(DateLayout, v)
			if err != nil {
				verr.add("date_joined", "must be a date formatted as YYYY-MM-DD")
				break
			}
			joined = parsed
		}
	default:
		verr.add("date_joined", fmt.Sprintf("must be a string, got %s", jsonType(v)))
	}

	if len(verr.Issues) > 0 {
		return verr
	}

	a.Name = name
	a.Email = email
	a.Address = address
	a.PhoneNumber = phone
	a.DateJoined = joined
	return nil
}

// Serialize returns the JSON-ready representation of a.
func (a *Account) Serialize() map[string]any {
	var phone any
	if a.PhoneNumber != nil {
		phone = *a.PhoneNumber
	}

	return map[string]any{
		"id":           a.ID,
		"name":         a.Name,
		"email":        a.Email,
		"address":      a.Address,
		"phone_number": phone,
		"date_joined":  a.DateJoined.Format(DateLayout),
	}
}

// Validate applies the struct tag rules. Required strings must be non-empty.
func (a *Account) Validate() error {
	return validate.Struct(a)
}

func (a Account) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Serialize())
}

func requiredString(data map[string]any, key string, verr *ValidationError) string {
	raw, present := data[key]
	if !present || raw == nil {
		verr.add(key, "is required")
		return ""
	}

	s, ok := raw.(string)
	if !ok {
		verr.add(key, fmt.Sprintf("must be a string, got %s", jsonType(raw)))
		return ""
	}
	return s
}

func jsonType(v any) string {
	switch v.(type) {
	case bool:
		return "boolean"
	case float64, json.Number:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func today() time.Time {
	y, m, d := now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseAccountID accepts the positive decimal ids the store assigns.
func ParseAccountID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
