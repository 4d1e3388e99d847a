// Package bind decodes and validates an HTTP request body into a struct.
// Decoding failures and validation failures are reported separately so
// handlers can map them to 400 and 422 responses respectively.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/shashiranjanraj/plantnet/config"
	"github.com/shashiranjanraj/plantnet/pkg/validate"
)

const defaultBodyLimit = 4 << 20

// maxBodyBytes reads the request body size limit from MAX_BODY_BYTES.
func maxBodyBytes() int64 {
	raw := config.Get("MAX_BODY_BYTES", "")
	if raw == "" {
		return defaultBodyLimit
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return defaultBodyLimit
	}
	return n
}

// JSON decodes r.Body into dest and validates the result. The body is
// capped at MAX_BODY_BYTES so a hostile client cannot exhaust memory.
//
// Validation failures come back as (errs, nil); a body that cannot be
// decoded at all comes back as (nil, err).
func JSON(r *http.Request, dest interface{}) (map[string]string, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes())

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
		}
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	if errs := validate.Struct(dest); validate.HasErrors(errs) {
		return errs, nil
	}
	return nil, nil
}
