package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/kinobon/ai-driven-internal-systems-dev/internal/service/validate"
)

const (
	InvalidJSON = "invalid_json"

	// Upper bound of a request body read by Bind
	MaxBodyBytes = 1 << 20
)

var errTrailingData = errors.New("unexpected data after JSON value")

type Struct any

// Error breakdown of a rejected request body
type FlattenedErrors struct {
	FormErrors  []string            `json:"formErrors"`
	FieldErrors map[string][]string `json:"fieldErrors"`
}

func NewFormErrors(messages ...string) FlattenedErrors {
	return FlattenedErrors{FormErrors: messages, FieldErrors: map[string][]string{}}
}

// Request body could not be decoded or failed validation
type RequestError struct {
	Details FlattenedErrors
	Err     error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("bad request body: %v", e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

func JSON(w http.ResponseWriter, data any) {
	JSONWithStatus(w, data, http.StatusOK)
}

// JSONWithStatus sends data as json and enforces status code
func JSONWithStatus(w http.ResponseWriter, data any, code int) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)

	if err := enc.Encode(data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(buf.Bytes())
}

// Bind decodes JSON request body into type T and validates it using struct tags.
// The body must hold a single JSON value of at most MaxBodyBytes.
// Returns *RequestError for decoding or validation failures.
func Bind[T Struct](r *http.Request) (T, error) {
	var value T

	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, MaxBodyBytes))

	err := dec.Decode(&value)
	if err != nil {
		return value, &RequestError{Details: DecodeErrors(err), Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return value, &RequestError{Details: NewFormErrors(InvalidJSON), Err: errTrailingData}
	}

	err = validate.Struct(value)
	if err != nil {
		var errs validator.ValidationErrors
		if !errors.As(err, &errs) {
			return value, fmt.Errorf("validation not possible. Err: %w", err)
		}
		return value, &RequestError{Details: ValidationErrors(errs), Err: err}
	}

	return value, nil
}

// Flatten decoding error
func DecodeErrors(err error) FlattenedErrors {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return FlattenedErrors{
			FormErrors: []string{},
			FieldErrors: map[string][]string{
				typeErr.Field: {fmt.Sprintf("Expected %s, received %s", typeName(typeErr), typeErr.Value)},
			},
		}
	}

	return NewFormErrors(InvalidJSON)
}

// Flatten ValidationErrors into user-friendly per field messages
func ValidationErrors(errs validator.ValidationErrors) FlattenedErrors {
	flat := FlattenedErrors{
		FormErrors:  []string{},
		FieldErrors: make(map[string][]string, len(errs)),
	}

	for _, fe := range errs {
		field := fe.Field()
		flat.FieldErrors[field] = append(flat.FieldErrors[field], fieldMessage(fe))
	}

	return flat
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be %s characters or fewer", field, fe.Param())
	case "email":
		return field + " must be a valid email address"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "datetime":
		return field + " must follow ISO 8601 format"
	case validate.RoleKeyTag:
		return field + " may contain only lowercase letters, digits, ':', '_' and '-'"
	default:
		return field + " is invalid"
	}
}

func typeName(err *json.UnmarshalTypeError) string {
	if err.Type == nil {
		return "value"
	}
	// *string fields are reported as string
	return strings.TrimPrefix(err.Type.String(), "*")
}
