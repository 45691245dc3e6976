package endpoints

import "github.com/world-in-progress/yggdrasilsvc/pkg/validation"

type Request interface {
	validate() error
}

// CreateNodeRequest collects the request parameters for the CreateNode method.
type CreateNodeRequest struct {
	Name *string `json:"name"`
}

func (r CreateNodeRequest) validate() error {
	if r.Name == nil {
		return validation.New(validation.Missing("name"))
	}
	return nil
}

// DecodeError folds what validate finds into err, a failure from decoding r,
// so a single response lists every bad field.
func (r CreateNodeRequest) DecodeError(err error) error {
	return validation.Join(err, r.validate)
}
