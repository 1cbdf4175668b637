package api

import "github.com/samcharles93/chatfmt/internal/chatformat"

type FormatRequest struct {
	// Format is optional when Template carries recognizable markers.
	Format   string               `json:"format,omitempty"`
	Template string               `json:"template,omitempty"`
	Messages []chatformat.Message `json:"messages"`
}

type FormatResponse struct {
	ID       string             `json:"id"`
	Object   string             `json:"object"`
	Format   string             `json:"format"`
	Messages []FormattedMessage `json:"messages"`
	Prompt   string             `json:"prompt"`
}

type FormattedMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type FormatListResponse struct {
	Object string       `json:"object"`
	Data   []FormatInfo `json:"data"`
}

type FormatInfo struct {
	ID     string `json:"id"`
	Object string `json:"object"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type ResponseError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code,omitempty"`
	Param   string `json:"param,omitempty"`
}
