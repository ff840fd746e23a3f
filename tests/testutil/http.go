package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/require"
)

// Envelope mirrors the API response wrapper with a raw payload
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id"`
	} `json:"error"`
	Meta *struct {
		Total      int64 `json:"total"`
		Page       int   `json:"page"`
		PageSize   int   `json:"page_size"`
		TotalPages int   `json:"total_pages"`
	} `json:"meta"`
}

// Client sends requests to an in-process handler
type Client struct {
	t       *testing.T
	handler http.Handler
	prefix  string
}

func NewClient(t *testing.T, handler http.Handler, prefix string) *Client {
	return &Client{t: t, handler: handler, prefix: prefix}
}

// Request describes one call. Body is JSON encoded unless it is an io.Reader.
type Request struct {
	Method      string
	Path        string
	Token       string
	Body        any
	ContentType string
	Headers     map[string]string
}

// Do performs req and decodes the envelope when the response is JSON
func (c *Client) Do(req Request) (*httptest.ResponseRecorder, Envelope) {
	c.t.Helper()

	var body io.Reader
	contentType := req.ContentType
	switch b := req.Body.(type) {
	case nil:
	case io.Reader:
		body = b
	default:
		raw, err := json.Marshal(b)
		require.NoError(c.t, err)
		body = bytes.NewReader(raw)
		if contentType == "" {
			contentType = "application/json"
		}
	}

	r := httptest.NewRequest(req.Method, c.prefix+req.Path, body)
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}
	if req.Token != "" {
		r.Header.Set("Authorization", "Bearer "+req.Token)
	}
	for k, v := range req.Headers {
		r.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, r)

	var env Envelope
	if bytes.HasPrefix(bytes.TrimSpace(w.Body.Bytes()), []byte("{")) {
		require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

// Decode unmarshals an envelope payload
func Decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

// File is one multipart file part
type File struct {
	Field       string
	Name        string
	ContentType string
	Data        []byte
}

// Multipart encodes fields and files; it returns the body and its content type
func Multipart(t *testing.T, fields map[string]string, files ...File) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+f.Field+`"; filename="`+f.Name+`"`)
		h.Set("Content-Type", f.ContentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(f.Data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}
