package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"

	docconv "github.com/porticus-lab/go-docconv"
	"github.com/porticus-lab/go-docconv/internal/sniff"
)

type taskListRequest struct {
	Task string `json:"task"`
}

func (r taskListRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Task, validation.Required, validation.Length(1, 10000)),
	)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleFormats(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, docconv.Catalog())
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	target, err := docconv.ParseFormat(r.URL.Query().Get("to"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.parseForm(w, r); err != nil {
		s.respondError(w, statusForUpload(err), err.Error())
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "missing form file \"file\"")
		return
	}
	doc, err := readPart(file, header, r.FormValue("type"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.logger.Debug("convert request",
		zap.String("request_id", RequestIDFrom(r.Context())),
		zap.String("file", doc.FileName),
		zap.String("media_type", doc.MediaType),
		zap.Stringer("to", target),
	)
	res, err := s.dispatcher.Convert(r.Context(), doc, target)
	if err != nil {
		s.respondConvertError(w, r, err)
		return
	}
	s.respondResult(w, res)
}

func (s *Server) handleMerge(w http.ResponseWriter, r *http.Request) {
	if err := s.parseForm(w, r); err != nil {
		s.respondError(w, statusForUpload(err), err.Error())
		return
	}
	headers := r.MultipartForm.File["files"]
	docs := make([]docconv.Document, 0, len(headers))
	for _, h := range headers {
		f, err := h.Open()
		if err != nil {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		doc, err := readPart(f, h, "")
		if err != nil {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		docs = append(docs, doc)
	}

	res, err := s.dispatcher.Merge(r.Context(), docs)
	if err != nil {
		s.respondConvertError(w, r, err)
		return
	}
	s.respondResult(w, res)
}

func (s *Server) handleTaskList(w http.ResponseWriter, r *http.Request) {
	var req taskListRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, s.config.MaxUploadBytes())).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	res, err := s.dispatcher.GenerateTaskList(r.Context(), req.Task)
	if err != nil {
		s.respondConvertError(w, r, err)
		return
	}
	s.respondResult(w, res)
}

func (s *Server) parseForm(w http.ResponseWriter, r *http.Request) error {
	limit := s.config.MaxUploadBytes()
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(limit); err != nil {
		return fmt.Errorf("invalid multipart form: %w", err)
	}
	return nil
}

// readPart reads an uploaded file. The media type is taken from override,
// then the part header, then content sniffing.
func readPart(f multipart.File, h *multipart.FileHeader, override string) (docconv.Document, error) {
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return docconv.Document{}, fmt.Errorf("failed to read %s: %w", h.Filename, err)
	}
	mediaType := override
	if mediaType == "" {
		mediaType = h.Header.Get("Content-Type")
	}
	if mediaType == "" || mediaType == "application/octet-stream" {
		mediaType = sniff.MediaType(h.Filename, data)
	}
	return docconv.Document{Data: data, MediaType: mediaType, FileName: h.Filename}, nil
}

func statusForUpload(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

// statusFor maps a library error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, docconv.ErrUnsupportedSource), errors.Is(err, docconv.ErrNotAnImage):
		return http.StatusUnprocessableEntity
	case errors.Is(err, docconv.ErrDecode), errors.Is(err, docconv.ErrNoInput), errors.Is(err, docconv.ErrUnknownFormat):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) respondConvertError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("conversion failed", zap.String("request_id", RequestIDFrom(r.Context())), zap.Error(err))
	}
	s.respondError(w, status, err.Error())
}

func (s *Server) respondResult(w http.ResponseWriter, res *docconv.Result) {
	w.Header().Set("Content-Type", res.MediaType())
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": res.FileName()}))
	w.Header().Set("Content-Length", strconv.Itoa(res.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := res.WriteTo(w); err != nil {
		s.logger.Debug("writing response failed", zap.Error(err))
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Debug("encoding response failed", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
