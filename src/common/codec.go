package common

import (
	"bytes"
	"fmt"
	"reflect"

	"github.com/ugorji/go/codec"
)

var mapStringInterface = reflect.TypeOf(map[string]interface{}(nil))

// JSONHandle returns the codec handle used for every JSON payload of the SDK.
// Maps decode as map[string]interface{} at every depth and integers decode as
// int64.
func JSONHandle() *codec.JsonHandle {
	jh := new(codec.JsonHandle)
	jh.Canonical = true
	jh.MapType = mapStringInterface
	jh.SignedInteger = true
	return jh
}

// EncodeJSON ...
func EncodeJSON(v interface{}) ([]byte, error) {
	b := new(bytes.Buffer)
	enc := codec.NewEncoder(b, JSONHandle())

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

// DecodeJSON decodes a single JSON value from data into v. Anything but
// whitespace after that value is an error.
func DecodeJSON(data []byte, v interface{}) error {
	dec := codec.NewDecoderBytes(data, JSONHandle())
	if err := dec.Decode(v); err != nil {
		return err
	}

	n := dec.NumBytesRead()
	if n > len(data) {
		n = len(data)
	}
	if rest := bytes.TrimSpace(data[n:]); len(rest) > 0 {
		return fmt.Errorf("invalid character %q after top-level value", rest[0])
	}

	return nil
}

// DecodeJSONMap decodes a JSON object. A JSON null yields a nil map; any
// other non-object value is an error.
func DecodeJSONMap(data []byte) (map[string]interface{}, error) {
	var v interface{}
	if err := DecodeJSON(data, &v); err != nil {
		return nil, err
	}

	switch m := v.(type) {
	case nil:
		return nil, nil
	case map[string]interface{}:
		return m, nil
	default:
		return nil, fmt.Errorf("expected a JSON object, got %T", v)
	}
}
