package internal

import (
	"encoding/json"
	"io"
)

// DecodeJSON decodes body into v and closes it. An empty body leaves v
// untouched. What follows the JSON value is drained so that the connection
// goes back to the pool.
func DecodeJSON(body io.ReadCloser, v interface{}) error {
	defer func() {
		io.Copy(io.Discard, body)
		body.Close()
	}()

	err := json.NewDecoder(body).Decode(v)
	if err == io.EOF {
		return nil
	}
	return err
}
