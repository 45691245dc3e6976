package endpoints

import (
	"net/http"

	httptransport "github.com/go-kit/kit/transport/http"
)

var (
	_ httptransport.Headerer = (*CreateNodeResponse)(nil)

	_ httptransport.StatusCoder = (*CreateNodeResponse)(nil)
)

// CreateNodeResponse collects the response values for the CreateNode method.
type CreateNodeResponse struct {
	ID string `json:"_id"`
}

func (r CreateNodeResponse) StatusCode() int {
	return http.StatusOK
}

func (r CreateNodeResponse) Headers() http.Header {
	return http.Header{}
}
