package api

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/labstack/echo/v5"
)

func writeError(c *echo.Context, err error, param string) error {
	status, errType, code := classify(err)
	return c.JSON(status, map[string]any{
		"error": ResponseError{
			Message: err.Error(),
			Type:    errType,
			Code:    code,
			Param:   param,
		},
	})
}

func decodeJSON[T any](r io.Reader) (T, error) {
	var out T
	dec := json.NewDecoder(r)
	if err := dec.Decode(&out); err != nil {
		return out, wrapInvalidRequest(fmt.Errorf("decode request body: %w", err))
	}
	return out, nil
}

func newFormatID() string {
	return "fmt_" + uuid.NewString()
}
