package transports

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-kit/kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/world-in-progress/yggdrasilsvc/pkg/shared"
	"github.com/world-in-progress/yggdrasilsvc/pkg/validation"
)

func newHTTPServer(t *testing.T) *httptest.Server {
	t.Helper()
	otTracer, zipkinTracer := newTracers(t)
	srv := httptest.NewServer(NewHTTPHandler(newEndpoints(t), otTracer, zipkinTracer, log.NewNopLogger()))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+AddPath, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHTTPAdd(t *testing.T) {
	srv := newHTTPServer(t)

	cases := []struct {
		body string
		want float64
	}{
		{`{"a": 2.5, "b": 3.5}`, 6.0},
		{`{"a": 1, "b": 2}`, 3},
		{`{"a": -0.5, "b": 0.25}`, -0.25},
		{`{"b": 1e10, "a": 1e-10}`, 1e10 + 1e-10},
	}
	for _, tc := range cases {
		resp := post(t, srv, tc.body)
		require.Equal(t, http.StatusOK, resp.StatusCode, tc.body)

		var body struct {
			Result float64 `json:"result"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, tc.want, body.Result, tc.body)
	}
}

func TestHTTPAddSustainedTraffic(t *testing.T) {
	srv := newHTTPServer(t)

	for i := 0; i < 150; i++ {
		resp := post(t, srv, `{"a": 2.5, "b": 3.5}`)
		require.Equal(t, http.StatusOK, resp.StatusCode, "request #%d", i)
	}
}

func TestHTTPAddValidation(t *testing.T) {
	srv := newHTTPServer(t)

	cases := []struct {
		name string
		body string
		typ  string
	}{
		{"missing a", `{"b": 1}`, validation.TypeMissing},
		{"missing b", `{"a": 1}`, validation.TypeMissing},
		{"null b", `{"a": 1, "b": null}`, validation.TypeMissing},
		{"string operand", `{"a": "one", "b": 1}`, validation.TypeFloatType},
		{"overflow", `{"a": 1.7e308, "b": 1.7e308}`, validation.TypeFiniteNumber},
		{"array body", `[1, 2]`, validation.TypeModelAttributes},
		{"trailing garbage", `{"a": 1, "b": 2} and more`, validation.TypeJSONInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := post(t, srv, tc.body)
			require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

			var w shared.ErrorWrapper
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&w))
			require.NotEmpty(t, w.Detail)
			assert.Equal(t, tc.typ, w.Detail[0].Type)
		})
	}
}

func TestHTTPAddReportsEveryBadOperand(t *testing.T) {
	srv := newHTTPServer(t)

	resp := post(t, srv, `{"a": "x"}`)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var w shared.ErrorWrapper
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&w))
	require.Len(t, w.Detail, 2)
	assert.Equal(t, []string{"body", "a"}, w.Detail[0].Loc)
	assert.Equal(t, validation.TypeFloatType, w.Detail[0].Type)
	assert.Equal(t, []string{"body", "b"}, w.Detail[1].Loc)
	assert.Equal(t, validation.TypeMissing, w.Detail[1].Type)
}

func TestHTTPClient(t *testing.T) {
	srv := newHTTPServer(t)
	otTracer, zipkinTracer := newTracers(t)

	client, err := NewHTTPClient(srv.URL, otTracer, zipkinTracer, log.NewNopLogger())
	require.NoError(t, err)

	result, err := client.Add(context.Background(), 2.5, 3.5)
	require.NoError(t, err)
	assert.Equal(t, 6.0, result)
}

func TestHTTPClientSurfacesValidationError(t *testing.T) {
	srv := newHTTPServer(t)
	otTracer, zipkinTracer := newTracers(t)

	client, err := NewHTTPClient(srv.URL, otTracer, zipkinTracer, log.NewNopLogger())
	require.NoError(t, err)

	_, err = client.Add(context.Background(), 1.7e308, 1.7e308)
	_, ok := err.(*validation.Error)
	assert.True(t, ok, "expected *validation.Error, got %T", err)
}
