package handlers

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/edutrack/apiserver/internal/services"
	"github.com/edutrack/apiserver/types"
)

const (
	maxImportMemory = 32 << 20
	maxImportBytes  = 64 << 20
	formFieldFile   = "file"
)

// ImportHandler provides the bulk user import endpoint.
type ImportHandler struct {
	importService *services.ImportService
	log           *logrus.Logger
}

// NewImportHandler constructs a handler with the provided dependencies.
func NewImportHandler(importService *services.ImportService, log *logrus.Logger) *ImportHandler {
	return &ImportHandler{importService: importService, log: log}
}

// ImportRouter registers the import route, restricted to superadmin and
// center_admin.
func ImportRouter(
	r chi.Router,
	importService *services.ImportService,
	authMiddleware func(http.Handler) http.Handler,
	log *logrus.Logger,
) {
	handler := NewImportHandler(importService, log)

	r.Use(authMiddleware)
	r.With(RequireRoles(log, types.RoleSuperadmin, types.RoleCenterAdmin)).
		Post("/users", handler.ImportUsers)
}

// ImportUsers accepts a multipart CSV upload and upserts each row.
func (h *ImportHandler) ImportUsers(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)
	if err := r.ParseMultipartForm(maxImportMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile(formFieldFile)
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read file")
		return
	}

	result, err := h.importService.ImportUsers(r.Context(), header.Filename, data)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}
