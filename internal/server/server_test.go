package server

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	docconv "github.com/porticus-lab/go-docconv"
	"github.com/porticus-lab/go-docconv/internal/config"
)

type upload struct {
	field, name, contentType string
	data                     []byte
}

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.ServerConfig{Host: "localhost", Port: 8090, MaxUploadMB: 1, CORSOrigins: []string{"*"}}
	return NewServer(docconv.NewDispatcher(), cfg, zap.NewNop()).Handler()
}

func multipartRequest(t *testing.T, url string, files ...upload) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+f.field+`"; filename="`+f.name+`"`)
		if f.contentType != "" {
			h.Set("Content-Type", f.contentType)
		}
		w, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = w.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, url, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestHealth(t *testing.T) {
	rec := serve(newTestServer(t), httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	_, err := uuid.Parse(rec.Header().Get(RequestIDHeader))
	assert.NoError(t, err)
}

func TestRequestIDPropagated(t *testing.T) {
	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, id)

	rec := serve(newTestServer(t), req)
	assert.Equal(t, id, rec.Header().Get(RequestIDHeader))
}

func TestFormats(t *testing.T) {
	rec := serve(newTestServer(t), httptest.NewRequest(http.MethodGet, "/api/v1/formats", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var formats []docconv.FormatInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &formats))
	require.Len(t, formats, 7)
	assert.Equal(t, "pdf", formats[0].Name)
	assert.True(t, formats[6].Stub)
}

func TestConvert_TextToHTML(t *testing.T) {
	req := multipartRequest(t, "/api/v1/convert?to=html", upload{
		field: "file", name: "note.txt", contentType: "text/plain", data: []byte("Hello World"),
	})
	rec := serve(newTestServer(t), req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "text/html", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename=note.html`, rec.Header().Get("Content-Disposition"))
	assert.Contains(t, rec.Body.String(), "<title>note</title>")
	assert.Contains(t, rec.Body.String(), "Hello World")
}

func TestConvert_SniffsMediaType(t *testing.T) {
	req := multipartRequest(t, "/api/v1/convert?to=jpg", upload{
		field: "file", name: "pic", contentType: "application/octet-stream", data: pngBytes(t),
	})
	rec := serve(newTestServer(t), req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte{0xFF, 0xD8}))
}

func TestConvert_Errors(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		file   upload
		status int
	}{
		{"unknown target", "/api/v1/convert?to=gif", upload{field: "file", name: "a.txt", contentType: "text/plain", data: []byte("x")}, http.StatusBadRequest},
		{"missing file", "/api/v1/convert?to=pdf", upload{field: "other", name: "a.txt", contentType: "text/plain", data: []byte("x")}, http.StatusBadRequest},
		{"unsupported", "/api/v1/convert?to=pdf", upload{field: "file", name: "data.json", contentType: "application/json", data: []byte(`{"a":1}`)}, http.StatusUnprocessableEntity},
		{"not an image", "/api/v1/convert?to=png", upload{field: "file", name: "a.txt", contentType: "text/plain", data: []byte("x")}, http.StatusUnprocessableEntity},
		{"decode", "/api/v1/convert?to=png", upload{field: "file", name: "bad.png", contentType: "image/png", data: []byte("nope")}, http.StatusBadRequest},
		{"too large", "/api/v1/convert?to=txt", upload{field: "file", name: "big.txt", contentType: "text/plain", data: bytes.Repeat([]byte("a"), 2<<20)}, http.StatusRequestEntityTooLarge},
	}
	h := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(h, multipartRequest(t, tt.url, tt.file))
			assert.Equal(t, tt.status, rec.Code)
			assert.NotEmpty(t, errorMessage(t, rec))
		})
	}
}

func TestTaskListAndMerge(t *testing.T) {
	h := newTestServer(t)

	var pdfs [][]byte
	for _, task := range []string{"Buy milk", "Call Bob"} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/tasklist", strings.NewReader(`{"task":"`+task+`"}`))
		rec := serve(h, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename=task.pdf`, rec.Header().Get("Content-Disposition"))
		pdfs = append(pdfs, rec.Body.Bytes())
	}

	req := multipartRequest(t, "/api/v1/merge",
		upload{field: "files", name: "a.pdf", contentType: "application/pdf", data: pdfs[0]},
		upload{field: "files", name: "b.pdf", data: pdfs[1]},
	)
	rec := serve(h, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, `attachment; filename=merged.pdf`, rec.Header().Get("Content-Disposition"))

	n, err := docconv.PageCount(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestTaskList_Invalid(t *testing.T) {
	h := newTestServer(t)
	for _, body := range []string{`{"task":""}`, `not json`} {
		rec := serve(h, httptest.NewRequest(http.MethodPost, "/api/v1/tasklist", strings.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestMerge_NoFiles(t *testing.T) {
	rec := serve(newTestServer(t), multipartRequest(t, "/api/v1/merge"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorMessage(t, rec), "no input")
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/convert", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rec := serve(newTestServer(t), req)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(&docconv.UnsupportedSourceError{Target: docconv.FormatPDF}))
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(&docconv.NotAnImageError{Target: docconv.FormatPNG}))
	assert.Equal(t, http.StatusBadRequest, statusFor(&docconv.DecodeError{Err: assert.AnError}))
	assert.Equal(t, http.StatusInternalServerError, statusFor(&docconv.EncodeError{Err: assert.AnError}))
	assert.Equal(t, http.StatusInternalServerError, statusFor(context.Canceled))
}
