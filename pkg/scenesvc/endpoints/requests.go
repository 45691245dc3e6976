package endpoints

import (
	"math"

	"github.com/world-in-progress/yggdrasilsvc/pkg/validation"
)

type Request interface {
	validate() error
}

// AddRequest collects the request parameters for the Add method.
type AddRequest struct {
	A *float64 `json:"a"`
	B *float64 `json:"b"`
}

// validate reports every missing operand at once. A sum that overflows to
// an infinity has no JSON encoding, so it is rejected here too.
func (r AddRequest) validate() error {
	var fields []validation.FieldError
	if r.A == nil {
		fields = append(fields, validation.Missing("a"))
	}
	if r.B == nil {
		fields = append(fields, validation.Missing("b"))
	}
	if len(fields) > 0 {
		return validation.New(fields...)
	}
	if sum := *r.A + *r.B; math.IsInf(sum, 0) || math.IsNaN(sum) {
		return validation.New(validation.FieldError{
			Loc:  []string{"body"},
			Msg:  "Sum is not representable as a finite JSON number",
			Type: validation.TypeFiniteNumber,
		})
	}
	return nil
}

// DecodeError folds what validate finds into err, a failure from decoding r,
// so a single response lists every bad field.
func (r AddRequest) DecodeError(err error) error {
	return validation.Join(err, r.validate)
}
