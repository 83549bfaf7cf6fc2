// Package request holds helpers for reading JSON request bodies.
package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxBodyBytes caps every JSON body. Form payloads are a few kilobytes.
const MaxBodyBytes = 1 << 20

// ErrEmptyBody means the client sent no body at all.
var ErrEmptyBody = errors.New("request body is empty")

// DecodeJSON decodes r.Body into v. An empty body yields ErrEmptyBody;
// trailing data after the first JSON value is rejected.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))

	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return err
	}

	if dec.More() {
		return fmt.Errorf("request body must contain a single JSON object")
	}

	return nil
}

// DecodeValues decodes a flat JSON object of field name → string value,
// the shape every form endpoint accepts.
func DecodeValues(w http.ResponseWriter, r *http.Request) (map[string]string, error) {
	values := make(map[string]string)
	if err := DecodeJSON(w, r, &values); err != nil {
		return nil, err
	}
	return values, nil
}
