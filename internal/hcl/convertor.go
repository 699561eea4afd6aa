package hcl

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// ErrNullDocument is returned when a JSON document decodes to null.
var ErrNullDocument = errors.New("document is null")

// Converter moves tagged Go values to and from JSON. The cty type implied
// from the Go type gates the input, so unknown keys, missing keys and
// mistyped values are all rejected. String values are carried by
// encoding/json because cty normalizes strings to NFC, and a namespace or
// path must survive byte for byte.
type Converter struct{}

// NewConverter creates a new converter.
func NewConverter() *Converter {
	return &Converter{}
}

// MarshalJSON encodes v. A nil slice is encoded as an empty list rather than
// null.
func (c *Converter) MarshalJSON(v any) ([]byte, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice && rv.IsNil() {
		v = reflect.MakeSlice(rv.Type(), 0, 0).Interface()
	}

	if _, err := gocty.ImpliedType(v); err != nil {
		return nil, fmt.Errorf("unable to infer cty.Type: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// UnmarshalJSON decodes data into target, which must be a non-nil pointer.
func (c *Converter) UnmarshalJSON(data []byte, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("target must be a non-nil pointer, got %T", target)
	}

	ty, err := gocty.ImpliedType(rv.Elem().Interface())
	if err != nil {
		return fmt.Errorf("unable to infer cty.Type: %w", err)
	}
	val, err := ctyjson.Unmarshal(data, ty)
	if err != nil {
		return err
	}
	if val.IsNull() {
		return ErrNullDocument
	}
	if err := checkNoNulls(val); err != nil {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(target)
}

// checkNoNulls rejects null leaves, which cty/json produces for missing
// object attributes.
func checkNoNulls(val cty.Value) error {
	return cty.Walk(val, func(path cty.Path, v cty.Value) (bool, error) {
		if v.IsNull() {
			return false, fmt.Errorf("%s: value is required", formatPath(path))
		}
		return true, nil
	})
}

// formatPath renders a cty path as $[0].spec.ns for error messages.
func formatPath(path cty.Path) string {
	out := "$"
	for _, step := range path {
		switch s := step.(type) {
		case cty.GetAttrStep:
			out += "." + s.Name
		case cty.IndexStep:
			if s.Key.Type().Equals(cty.Number) {
				out += fmt.Sprintf("[%s]", s.Key.AsBigFloat().Text('f', -1))
			} else if s.Key.Type().Equals(cty.String) {
				out += fmt.Sprintf("[%q]", s.Key.AsString())
			}
		}
	}
	return out
}
