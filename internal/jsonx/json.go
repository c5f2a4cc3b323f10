// Package jsonx picks the fastest JSON codec available for the platform.
package jsonx

import (
	"io"
	"runtime"

	"github.com/bytedance/sonic"
	jsoniter "github.com/json-iterator/go"
)

// UseSonic reports whether sonic's JIT codec is used. It only supports amd64.
const UseSonic = runtime.GOARCH == "amd64" && runtime.GOOS == "linux"

var iter = jsoniter.ConfigCompatibleWithStandardLibrary

func Unmarshal(data []byte, v any) error {
	if UseSonic {
		return sonic.Unmarshal(data, v)
	}

	return iter.Unmarshal(data, v)
}

func UnmarshalReader(reader io.Reader, v any) error {
	if UseSonic {
		return sonic.ConfigDefault.NewDecoder(reader).Decode(v)
	}

	return iter.NewDecoder(reader).Decode(v)
}

func Marshal(v any) ([]byte, error) {
	if UseSonic {
		return sonic.Marshal(v)
	}

	return iter.Marshal(v)
}

// Decode unmarshals data into a new value of type T.
func Decode[T any](data []byte) (T, error) {
	var v T

	err := Unmarshal(data, &v)

	return v, err
}
