package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v5"
)

func newTestEcho() *echo.Echo {
	server := NewServer(nil)
	server.newID = func() string { return "fmt_test" }
	e := echo.New()
	server.Register(e)
	return e
}

func doJSON(t *testing.T, e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

type errorBody struct {
	Error ResponseError `json:"error"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ResponseError {
	t.Helper()
	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v (%s)", err, rec.Body.String())
	}
	return body.Error
}

func TestFormatChatML(t *testing.T) {
	t.Parallel()

	e := newTestEcho()
	rec := doJSON(t, e, http.MethodPost, "/v1/format", `{
		"format": "chatml",
		"messages": [
			{"role": "system", "content": "Be brief."},
			{"role": "user", "content": "Hi"}
		]
	}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d body=%s", rec.Code, rec.Body.String())
	}

	var resp FormatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != "fmt_test" || resp.Object != "chat.format" || resp.Format != "chatml" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	if len(resp.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(resp.Messages))
	}
	if resp.Messages[0].Content != "<|im_start|>system\nBe brief.<|im_end|>\n" {
		t.Fatalf("unexpected system content: %q", resp.Messages[0].Content)
	}
	want := "<|im_start|>system\nBe brief.<|im_end|>\n<|im_start|>user\nHi<|im_end|>"
	if resp.Prompt != want {
		t.Fatalf("unexpected prompt: %q", resp.Prompt)
	}
}

func TestFormatToolChatMLOrderedPayloads(t *testing.T) {
	t.Parallel()

	e := newTestEcho()
	rec := doJSON(t, e, http.MethodPost, "/v1/format", `{
		"format": "tool_chatml",
		"messages": [
			{"role": "system", "tools": [{
				"name": "lookup",
				"description": "Find things",
				"parameters": {
					"type": "object",
					"properties": {
						"query": {"type": "string", "description": "What to find"},
						"limit": {"type": "integer", "description": "Max results"}
					},
					"required": ["query"]
				}
			}]},
			{"role": "assistant", "tool_calls": [{"id": "c1", "name": "lookup", "arguments": {"query": "go", "limit": 3}}]}
		]
	}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d body=%s", rec.Code, rec.Body.String())
	}
	var resp FormatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.Contains(resp.Messages[0].Content, `"properties": {"query": {"type": "string", "description": "What to find"}, "limit": {`) {
		t.Fatalf("properties lost their order: %q", resp.Messages[0].Content)
	}
	wantCall := `{"id": "c1", "type": "function", "function": {"name": "lookup", "arguments": "{\"query\": \"go\", \"limit\": 3}"}}`
	if !strings.Contains(resp.Messages[1].Content, wantCall) {
		t.Fatalf("unexpected tool call: %q", resp.Messages[1].Content)
	}
}

func TestFormatDetectsFromTemplate(t *testing.T) {
	t.Parallel()

	e := newTestEcho()
	rec := doJSON(t, e, http.MethodPost, "/v1/format", `{
		"template": "{% for m in messages %}[INST] {{ m.content }} [/INST]{% endfor %}",
		"messages": [{"role": "user", "content": "hi"}]
	}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"format":"mistral"`) {
		t.Fatalf("expected mistral format, got %s", rec.Body.String())
	}
}

func TestFormatErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     string
		wantCode string
		wantMsg  string
	}{
		{
			name:     "system prompt with mistral",
			body:     `{"format": "mistral", "messages": [{"role": "system", "content": "x"}, {"role": "user", "content": "y"}]}`,
			wantCode: "unsupported_input",
			wantMsg:  "not supported",
		},
		{
			name:     "unknown format",
			body:     `{"format": "alpaca", "messages": [{"role": "user", "content": "y"}]}`,
			wantCode: "unknown_format",
			wantMsg:  "alpaca",
		},
		{
			name:    "malformed json",
			body:    `{"format": `,
			wantMsg: "decode request body",
		},
		{
			name:     "unknown role",
			body:     `{"format": "chatml", "messages": [{"role": "narrator", "content": "y"}]}`,
			wantCode: "unknown_role",
			wantMsg:  "narrator",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := newTestEcho()
			rec := doJSON(t, e, http.MethodPost, "/v1/format", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
			}
			got := decodeError(t, rec)
			if got.Type != "invalid_request_error" {
				t.Fatalf("unexpected error type: %q", got.Type)
			}
			if tt.wantCode != "" && got.Code != tt.wantCode {
				t.Fatalf("unexpected error code: got %q want %q", got.Code, tt.wantCode)
			}
			if !strings.Contains(got.Message, tt.wantMsg) {
				t.Fatalf("error message %q does not contain %q", got.Message, tt.wantMsg)
			}
		})
	}
}

func TestFormatEmptyDialogue(t *testing.T) {
	t.Parallel()

	e := newTestEcho()
	rec := doJSON(t, e, http.MethodPost, "/v1/format", `{"format": "llama2", "messages": []}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d body=%s", rec.Code, rec.Body.String())
	}
	var resp FormatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Format != "llama2" || len(resp.Messages) != 0 || resp.Prompt != "" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if !strings.Contains(rec.Body.String(), `"messages":[]`) {
		t.Fatalf("expected an empty messages list, got %s", rec.Body.String())
	}
}

func TestListFormats(t *testing.T) {
	t.Parallel()

	e := newTestEcho()
	rec := doJSON(t, e, http.MethodGet, "/v1/formats", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d body=%s", rec.Code, rec.Body.String())
	}
	var resp FormatListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Object != "list" || len(resp.Data) != 4 {
		t.Fatalf("unexpected list: %+v", resp)
	}
	if resp.Data[0].ID != "chatml" || resp.Data[0].Object != "format" {
		t.Fatalf("unexpected first entry: %+v", resp.Data[0])
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	e := newTestEcho()
	rec := doJSON(t, e, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
