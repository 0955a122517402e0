package handler

import (
	"errors"
	"net/http"
	"strconv"

	"catalog-import/internal/model"
	"catalog-import/internal/service"

	"github.com/rs/zerolog"
)

// maxMultipartMemory is the part of an upload kept in memory before
// spilling to temporary files.
const maxMultipartMemory = 8 << 20

// uploadOverhead covers multipart framing around the workbook itself.
const uploadOverhead = 1 << 20

// ImportHandler handles catalogue workbook uploads.
type ImportHandler struct {
	service        service.ImportService
	persistDefault bool
	maxBytes       int64
	logger         zerolog.Logger
}

// NewImportHandler creates a new import handler. persistDefault applies when
// the request has no persist query parameter; maxBytes <= 0 leaves the body
// size to the service.
func NewImportHandler(service service.ImportService, persistDefault bool, maxBytes int64, logger zerolog.Logger) *ImportHandler {
	return &ImportHandler{
		service:        service,
		persistDefault: persistDefault,
		maxBytes:       maxBytes,
		logger:         logger.With().Str("handler", "import").Logger(),
	}
}

// Create handles POST /api/imports with a multipart "file" field.
func (h *ImportHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, r, http.StatusMethodNotAllowed, model.ErrCodeInvalidParameter, "method not allowed", h.logger)
		return
	}

	persist := h.persistDefault
	if raw := r.URL.Query().Get("persist"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidParameter, "invalid persist parameter", h.logger)
			return
		}
		persist = value
	}

	if h.maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+uploadOverhead)
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeServiceError(w, r, model.ErrSourceTooLarge, h.logger)
			return
		}
		writeServiceError(w, r, model.ErrMissingFile, h.logger)
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeServiceError(w, r, model.ErrMissingFile, h.logger)
		return
	}
	defer file.Close()

	h.logger.Info().
		Str("filename", header.Filename).
		Int64("size", header.Size).
		Bool("persist", persist).
		Msg("workbook upload received")

	result, err := h.service.ImportReader(r.Context(), header.Filename, file, persist)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}
