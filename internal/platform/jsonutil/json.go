// Package jsonutil centralises JSON encoding on goccy/go-json.
package jsonutil

import (
	"io"

	gojson "github.com/goccy/go-json"
)

type Encoder = gojson.Encoder
type Decoder = gojson.Decoder

var encodeOptions = []gojson.EncodeOptionFunc{gojson.DisableHTMLEscape()}

func Marshal(val any) ([]byte, error) {
	return gojson.MarshalWithOption(val, encodeOptions...)
}

func MarshalIndent(val any, indent string) ([]byte, error) {
	return gojson.MarshalIndentWithOption(val, "", indent, encodeOptions...)
}

func Unmarshal(data []byte, val any) error {
	return gojson.Unmarshal(data, val)
}

func NewEncoder(w io.Writer) *Encoder {
	return gojson.NewEncoder(w)
}

func NewDecoder(r io.Reader) *Decoder {
	return gojson.NewDecoder(r)
}
