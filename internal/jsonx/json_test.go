package jsonx

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count,omitempty"`
}

func TestDecode(t *testing.T) {
	t.Parallel()

	v, err := Decode[sample]([]byte(`{"name":"stage","count":3}`))
	require.NoError(t, err)
	assert.Equal(t, sample{Name: "stage", Count: 3}, v)
}

func TestMarshalOmitEmpty(t *testing.T) {
	t.Parallel()

	b, err := Marshal(sample{Name: "x"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"x"}`, string(b))
}

func TestUnmarshalReader(t *testing.T) {
	t.Parallel()

	var v sample

	require.NoError(t, UnmarshalReader(bytes.NewBufferString(`{"name":"reader"}`), &v))
	assert.Equal(t, "reader", v.Name)
}

func TestDecodeInvalid(t *testing.T) {
	t.Parallel()

	_, err := Decode[sample]([]byte(`{"name":`))
	assert.Error(t, err)
}
