package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type payload struct {
	Name *string  `json:"name"`
	A    *float64 `json:"a"`
}

func decodeErr(t *testing.T, body string) *Error {
	t.Helper()
	var p payload
	err := DecodeJSON(strings.NewReader(body), &p)
	require.Error(t, err)
	verr, ok := err.(*Error)
	require.True(t, ok, "expected *Error, got %T", err)
	require.Len(t, verr.Detail, 1)
	return verr
}

func TestDecodeJSON(t *testing.T) {
	var p payload
	require.NoError(t, DecodeJSON(strings.NewReader(`{"name":"root","a":1.5}`), &p))
	require.NotNil(t, p.Name)
	assert.Equal(t, "root", *p.Name)
	assert.Equal(t, 1.5, *p.A)
}

func TestDecodeJSONErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
		loc  []string
		typ  string
	}{
		{"empty body", ``, []string{"body"}, TypeMissing},
		{"truncated", `{"name":`, []string{"body"}, TypeJSONInvalid},
		{"syntax", `{"name" "x"}`, nil, TypeJSONInvalid},
		{"string field given number", `{"name": 5}`, []string{"body", "name"}, TypeStringType},
		{"float field given string", `{"a": "x"}`, []string{"body", "a"}, TypeFloatType},
		{"not an object", `[1, 2]`, []string{"body"}, TypeModelAttributes},
		{"trailing garbage", `{"name": "root"} this is not json`, nil, TypeJSONInvalid},
		{"second value", `{"name": "root"}{"name": "leaf"}`, nil, TypeJSONInvalid},
		{"stray brace", `{"name": "root"}}`, nil, TypeJSONInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			verr := decodeErr(t, tc.body)
			assert.Equal(t, tc.typ, verr.Detail[0].Type)
			if tc.loc != nil {
				assert.Equal(t, tc.loc, verr.Detail[0].Loc)
			}
		})
	}
}

func TestDecodeJSONAllowsTrailingWhitespace(t *testing.T) {
	var p payload
	require.NoError(t, DecodeJSON(strings.NewReader("{\"name\":\"root\"}\n\t "), &p))
	assert.Equal(t, "root", *p.Name)
}

func TestJoin(t *testing.T) {
	missingAB := func() error { return New(Missing("a"), Missing("b")) }

	t.Run("field errors gain missing fields", func(t *testing.T) {
		err := Join(New(FieldError{Loc: []string{"body", "a"}, Type: TypeFloatType}), missingAB)
		verr, ok := err.(*Error)
		require.True(t, ok)
		require.Len(t, verr.Detail, 2)
		assert.Equal(t, TypeFloatType, verr.Detail[0].Type)
		assert.Equal(t, []string{"body", "b"}, verr.Detail[1].Loc)
		assert.Equal(t, TypeMissing, verr.Detail[1].Type)
	})

	t.Run("body errors stand alone", func(t *testing.T) {
		err := Join(New(FieldError{Loc: []string{"body"}, Type: TypeJSONInvalid}), missingAB)
		require.Len(t, err.(*Error).Detail, 1)
	})

	t.Run("valid remainder", func(t *testing.T) {
		err := Join(New(FieldError{Loc: []string{"body", "a"}, Type: TypeFloatType}), func() error { return nil })
		require.Len(t, err.(*Error).Detail, 1)
	})

	t.Run("nil decode error", func(t *testing.T) {
		assert.NoError(t, Join(nil, missingAB))
	})
}

func TestErrorMessageAndStatus(t *testing.T) {
	err := New(Missing("a"), Missing("b"))
	assert.Equal(t, "validation error: body.a: Field required; body.b: Field required", err.Error())

	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.InvalidArgument, st.Code())
}
