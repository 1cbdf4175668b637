// Package api serves the chat formatters over HTTP.
package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v5"
	"github.com/samcharles93/chatfmt/internal/chatformat"
	"github.com/samcharles93/chatfmt/internal/logger"
	"github.com/samcharles93/chatfmt/internal/version"
)

type Server struct {
	log   logger.Logger
	newID func() string
}

func NewServer(log logger.Logger) *Server {
	if log == nil {
		log = logger.Discard()
	}
	return &Server{
		log:   log.WithGroup("api"),
		newID: newFormatID,
	}
}

func (s *Server) Register(e *echo.Echo) {
	e.POST("/v1/format", s.handleFormat)
	e.GET("/v1/formats", s.handleListFormats)
	e.GET("/healthz", s.handleHealth)
}

func (s *Server) handleFormat(c *echo.Context) error {
	req, err := decodeJSON[FormatRequest](c.Request().Body)
	if err != nil {
		return writeError(c, err, "")
	}
	for i, m := range req.Messages {
		if !m.Role.Valid() {
			return writeError(c, chatformat.ErrUnknownRole, fmt.Sprintf("messages[%d].role", i))
		}
	}

	opts := chatformat.RenderOptions{
		Format:   req.Format,
		Template: req.Template,
		Messages: req.Messages,
	}
	f, err := opts.Resolve()
	if err != nil {
		return writeError(c, err, "format")
	}
	out, err := f.Format(req.Messages)
	if err != nil {
		s.log.Debug("format rejected", "format", f.Name(), "error", err)
		return writeError(c, err, "messages")
	}

	resp := FormatResponse{
		ID:       s.newID(),
		Object:   "chat.format",
		Format:   f.Name(),
		Messages: make([]FormattedMessage, 0, len(out)),
		Prompt:   chatformat.Join(out),
	}
	for _, m := range out {
		resp.Messages = append(resp.Messages, FormattedMessage{Role: m.Role.String(), Content: m.Content})
	}
	s.log.Debug("formatted dialogue", "id", resp.ID, "format", resp.Format, "messages", len(req.Messages))
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleListFormats(c *echo.Context) error {
	names := chatformat.Names()
	data := make([]FormatInfo, 0, len(names))
	for _, name := range names {
		data = append(data, FormatInfo{ID: name, Object: "format"})
	}
	return c.JSON(http.StatusOK, FormatListResponse{Object: "list", Data: data})
}

func (s *Server) handleHealth(c *echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok", Version: version.String()})
}
