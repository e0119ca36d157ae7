package api

import (
	"encoding/json" // Strict JSON decoding
	"errors"        // For decoder error checks
	"io"            // EOF detection

	"github.com/gin-gonic/gin" // Gin web framework
)

// fail writes the uniform error payload; kind is one of the domain.Kind
// error-kind constants
func fail(c *gin.Context, status int, kind, message string) {
	c.JSON(status, gin.H{"error": kind, "message": message})
}

// bindStrict decodes the JSON request body into dst, rejecting unknown
// fields instead of silently persisting them.
func bindStrict(c *gin.Context, dst any) error {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty request body")
		}
		return err
	}
	return nil
}
