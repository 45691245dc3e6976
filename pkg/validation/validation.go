// Package validation describes request-shape errors in the same form for
// every service: a list of field errors located in the request body.
package validation

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Error types reported in FieldError.Type.
const (
	TypeMissing         = "missing"
	TypeJSONInvalid     = "json_invalid"
	TypeStringType      = "string_type"
	TypeFloatType       = "float_type"
	TypeModelAttributes = "model_attributes_type"
	TypeFiniteNumber    = "finite_number"
)

// FieldError locates a single problem in a request.
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

func (f FieldError) String() string {
	return fmt.Sprintf("%s: %s", strings.Join(f.Loc, "."), f.Msg)
}

// Error is returned when a request does not match its declared shape.
type Error struct {
	Detail []FieldError `json:"detail"`
}

// New returns an Error carrying the given field errors.
func New(fields ...FieldError) *Error {
	return &Error{Detail: fields}
}

// Missing reports a required body field that was absent or null.
func Missing(field string) FieldError {
	return FieldError{Loc: []string{"body", field}, Msg: "Field required", Type: TypeMissing}
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Detail))
	for _, f := range e.Detail {
		parts = append(parts, f.String())
	}
	return "validation error: " + strings.Join(parts, "; ")
}

// GRPCStatus lets status.FromError recognise validation failures.
func (e *Error) GRPCStatus() *status.Status {
	return status.New(codes.InvalidArgument, e.Error())
}

// DecodeJSON decodes a JSON object from r into v, converting decoder failures
// into an *Error. The body must hold exactly one JSON value.
func DecodeJSON(r io.Reader, v interface{}) error {
	dec := json.NewDecoder(r)
	if err := dec.Decode(v); err != nil {
		return FromDecodeError(err)
	}

	var extra json.RawMessage
	if err := dec.Decode(&extra); err != io.EOF {
		return New(FieldError{
			Loc:  []string{"body", fmt.Sprintf("%d", dec.InputOffset())},
			Msg:  "JSON decode error: unexpected content after the top-level value",
			Type: TypeJSONInvalid,
		})
	}
	return nil
}

// Join extends a field-level decode failure with the errors validate reports
// for fields the decoder did not already locate. Body-level failures and
// non-validation errors are returned unchanged.
func Join(decodeErr error, validate func() error) error {
	verr, ok := decodeErr.(*Error)
	if !ok {
		return decodeErr
	}
	seen := map[string]bool{}
	for _, f := range verr.Detail {
		if len(f.Loc) < 2 {
			return verr
		}
		seen[strings.Join(f.Loc, ".")] = true
	}
	more, ok := validate().(*Error)
	if !ok {
		return verr
	}
	for _, f := range more.Detail {
		if !seen[strings.Join(f.Loc, ".")] {
			verr.Detail = append(verr.Detail, f)
		}
	}
	return verr
}

// FromDecodeError maps an encoding/json error onto field errors.
func FromDecodeError(err error) error {
	switch err {
	case io.EOF:
		return New(FieldError{Loc: []string{"body"}, Msg: "Field required", Type: TypeMissing})
	case io.ErrUnexpectedEOF:
		return New(FieldError{Loc: []string{"body"}, Msg: "JSON decode error: unexpected end of input", Type: TypeJSONInvalid})
	}

	switch e := err.(type) {
	case *json.SyntaxError:
		return New(FieldError{
			Loc:  []string{"body", fmt.Sprintf("%d", e.Offset)},
			Msg:  "JSON decode error: " + e.Error(),
			Type: TypeJSONInvalid,
		})
	case *json.UnmarshalTypeError:
		if e.Field == "" {
			return New(FieldError{
				Loc:  []string{"body"},
				Msg:  "Input should be a valid dictionary or object to extract fields from",
				Type: TypeModelAttributes,
			})
		}
		loc := append([]string{"body"}, strings.Split(e.Field, ".")...)
		switch kindOf(e.Type) {
		case reflect.String:
			return New(FieldError{Loc: loc, Msg: "Input should be a valid string", Type: TypeStringType})
		case reflect.Float32, reflect.Float64:
			return New(FieldError{Loc: loc, Msg: "Input should be a valid number", Type: TypeFloatType})
		}
		return New(FieldError{Loc: loc, Msg: "Input should be a valid " + kindOf(e.Type).String(), Type: "type_error"})
	}
	return err
}

func kindOf(t reflect.Type) reflect.Kind {
	if t == nil {
		return reflect.Invalid
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Kind()
}
