package shared

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-kit/kit/ratelimit"
	"github.com/go-kit/kit/sd/lb"
	"github.com/sony/gobreaker"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/world-in-progress/yggdrasilsvc/pkg/validation"
)

// ErrorWrapper is the JSON body of every failed HTTP response.
type ErrorWrapper struct {
	Error  string                  `json:"error"`
	Detail []validation.FieldError `json:"detail,omitempty"`
}

// JSONErrorDecoder turns a non-200 JSON response back into an error. 422
// responses become *validation.Error so clients see the same type the
// server produced.
func JSONErrorDecoder(r *http.Response) error {
	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		return fmt.Errorf("expected JSON formatted error, got Content-Type %s", contentType)
	}
	var w ErrorWrapper
	if err := json.NewDecoder(r.Body).Decode(&w); err != nil {
		return err
	}
	if r.StatusCode == http.StatusUnprocessableEntity && len(w.Detail) > 0 {
		return validation.New(w.Detail...)
	}
	return errors.New(w.Error)
}

// EncodeHTTPError is a transport/http.ErrorEncoder shared by every service.
func EncodeHTTPError(_ context.Context, err error, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	if lberr, ok := err.(lb.RetryError); ok && lberr.Final != nil {
		err = lberr.Final
	}

	if verr, ok := err.(*validation.Error); ok {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(ErrorWrapper{Error: verr.Error(), Detail: verr.Detail})
		return
	}

	if st, ok := status.FromError(err); ok {
		w.WriteHeader(HTTPStatusFromCode(st.Code()))
		json.NewEncoder(w).Encode(ErrorWrapper{Error: st.Message()})
		return
	}

	switch err {
	case io.ErrUnexpectedEOF, io.EOF:
		w.WriteHeader(http.StatusBadRequest)
	case ratelimit.ErrLimited:
		w.WriteHeader(http.StatusTooManyRequests)
	case gobreaker.ErrOpenState, gobreaker.ErrTooManyRequests, lb.ErrNoEndpoints:
		w.WriteHeader(http.StatusServiceUnavailable)
	default:
		switch err.(type) {
		case *json.SyntaxError, *json.UnmarshalTypeError:
			w.WriteHeader(http.StatusBadRequest)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}
	json.NewEncoder(w).Encode(ErrorWrapper{Error: err.Error()})
}

// GRPCEncodeError converts a domain error into a gRPC status error.
func GRPCEncodeError(err error) error {
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if ok {
		return status.Error(st.Code(), st.Message())
	}
	switch err {
	case ratelimit.ErrLimited:
		return status.Error(codes.ResourceExhausted, err.Error())
	case gobreaker.ErrOpenState, gobreaker.ErrTooManyRequests:
		return status.Error(codes.Unavailable, err.Error())
	default:
		return status.Error(codes.Internal, "internal server error")
	}
}

// HTTPStatusFromCode converts a gRPC error code into the corresponding HTTP
// response status.
// See: https://github.com/googleapis/googleapis/blob/master/google/rpc/code.proto
func HTTPStatusFromCode(code codes.Code) int {
	switch code {
	case codes.OK:
		return http.StatusOK
	case codes.Canceled:
		return http.StatusRequestTimeout
	case codes.Unknown:
		return http.StatusInternalServerError
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.DeadlineExceeded:
		return http.StatusGatewayTimeout
	case codes.NotFound:
		return http.StatusNotFound
	case codes.AlreadyExists:
		return http.StatusConflict
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.ResourceExhausted:
		return http.StatusTooManyRequests
	case codes.FailedPrecondition:
		return http.StatusBadRequest
	case codes.Aborted:
		return http.StatusConflict
	case codes.OutOfRange:
		return http.StatusBadRequest
	case codes.Unimplemented:
		return http.StatusNotImplemented
	case codes.Internal:
		return http.StatusInternalServerError
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	case codes.DataLoss:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}
