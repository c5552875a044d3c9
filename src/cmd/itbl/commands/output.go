package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/itblio/itbl/src/callback"
	"github.com/itblio/itbl/src/common"
)

// result collects the outcome of an SDK call so that commands can turn it
// into an exit status.
type result struct {
	out io.Writer
	err error
}

func newResult(out io.Writer) *result {
	return &result{out: out}
}

func (r *result) onSuccess() callback.OnSuccessHandler {
	return func(data map[string]interface{}) {
		if data == nil {
			return
		}
		if err := printJSON(r.out, data); err != nil {
			r.err = err
		}
	}
}

func (r *result) onFailure() callback.OnFailureHandler {
	return func(reason *string, data []byte) {
		if len(data) > 0 {
			r.err = fmt.Errorf("%s: %s", callback.Value(reason), data)
			return
		}
		r.err = fmt.Errorf("%s", callback.Value(reason))
	}
}

func printJSON(out io.Writer, v interface{}) error {
	b, err := common.EncodeJSON(v)
	if err != nil {
		return err
	}

	if _config.Pretty {
		var buf bytes.Buffer
		if err := json.Indent(&buf, b, "", "  "); err != nil {
			return err
		}
		b = buf.Bytes()
	}

	_, err = fmt.Fprintln(out, string(b))
	return err
}

// decodeFieldsArg reads an optional JSON object argument.
func decodeFieldsArg(args []string, i int) (map[string]interface{}, error) {
	if len(args) <= i || args[i] == "" {
		return nil, nil
	}

	fields, err := common.DecodeJSONMap([]byte(args[i]))
	if err != nil {
		return nil, fmt.Errorf("Could not parse json: %s", err)
	}

	return fields, nil
}
