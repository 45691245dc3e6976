// Package shared holds the transport helpers every service and the router
// use: JSON request encoding, error encoding and status mapping.
package shared

import (
	"bytes"
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
)

// EncodeJSONRequest is a transport/http.EncodeRequestFunc that
// JSON-encodes any request to the request body. Primarily useful in a client.
func EncodeJSONRequest(_ context.Context, r *http.Request, request interface{}) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(request); err != nil {
		return err
	}
	r.Header.Set("Content-Type", "application/json; charset=utf-8")
	r.ContentLength = int64(buf.Len())
	r.Body = ioutil.NopCloser(&buf)
	return nil
}

// ParseInstance sanitizes an instance string of the form "host:port" into a
// base URL.
func ParseInstance(instance string) (*url.URL, error) {
	if !strings.HasPrefix(instance, "http") {
		instance = "http://" + instance
	}
	return url.Parse(instance)
}

// CopyURL returns a copy of base pointing at path.
func CopyURL(base *url.URL, path string) *url.URL {
	next := *base
	next.Path = path
	return &next
}

// HealthHandler answers liveness and consul health checks.
func HealthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}
