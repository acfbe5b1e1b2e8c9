package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/edutrack/apiserver/internal/services"
	"github.com/edutrack/apiserver/internal/store"
	"github.com/edutrack/apiserver/types"
)

// InstituteHandler provides HTTP handlers for institute management.
type InstituteHandler struct {
	instituteService *services.InstituteService
	log              *logrus.Logger
}

// NewInstituteHandler constructs a handler with the provided dependencies.
func NewInstituteHandler(instituteService *services.InstituteService, log *logrus.Logger) *InstituteHandler {
	return &InstituteHandler{instituteService: instituteService, log: log}
}

// InstituteRouter registers institute routes. Reads are open to any
// authenticated user; writes are superadmin only.
func InstituteRouter(
	r chi.Router,
	instituteService *services.InstituteService,
	authMiddleware func(http.Handler) http.Handler,
	log *logrus.Logger,
) {
	handler := NewInstituteHandler(instituteService, log)
	superadminOnly := RequireRoles(log, types.RoleSuperadmin)

	r.Use(authMiddleware)
	r.With(superadminOnly).Post("/", handler.CreateInstitute)
	r.Get("/", handler.ListInstitutes)
	r.Route("/{instituteID}", func(r chi.Router) {
		r.Get("/", handler.GetInstitute)
		r.With(superadminOnly).Put("/", handler.UpdateInstitute)
		r.With(superadminOnly).Delete("/", handler.DeleteInstitute)
	})
}

type InstituteUpsertRequest struct {
	Name         string `json:"name"`
	Address      string `json:"address"`
	ContactEmail string `json:"contact_email"`
}

func (h *InstituteHandler) CreateInstitute(w http.ResponseWriter, r *http.Request) {
	var req InstituteUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	institute, err := h.instituteService.Create(r.Context(), types.Institute{
		Name:         req.Name,
		Address:      strings.TrimSpace(req.Address),
		ContactEmail: strings.TrimSpace(req.ContactEmail),
	})
	if err != nil {
		h.log.WithError(err).Error("create institute")
		writeError(w, http.StatusInternalServerError, "failed to create institute")
		return
	}

	writeJSON(w, http.StatusCreated, institute)
}

func (h *InstituteHandler) ListInstitutes(w http.ResponseWriter, r *http.Request) {
	institutes, err := h.instituteService.List(r.Context())
	if err != nil {
		h.log.WithError(err).Error("list institutes")
		writeError(w, http.StatusInternalServerError, "failed to list institutes")
		return
	}
	writeJSON(w, http.StatusOK, institutes)
}

func (h *InstituteHandler) GetInstitute(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "instituteID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	institute, err := h.instituteService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "institute not found")
			return
		}
		h.log.WithError(err).Error("fetch institute")
		writeError(w, http.StatusInternalServerError, "failed to fetch institute")
		return
	}

	writeJSON(w, http.StatusOK, institute)
}

func (h *InstituteHandler) UpdateInstitute(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "instituteID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req InstituteUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	institute, err := h.instituteService.Update(r.Context(), types.Institute{
		ID:           id,
		Name:         req.Name,
		Address:      strings.TrimSpace(req.Address),
		ContactEmail: strings.TrimSpace(req.ContactEmail),
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "institute not found")
			return
		}
		h.log.WithError(err).Error("update institute")
		writeError(w, http.StatusInternalServerError, "failed to update institute")
		return
	}

	writeJSON(w, http.StatusOK, institute)
}

func (h *InstituteHandler) DeleteInstitute(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "instituteID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.instituteService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "institute not found")
			return
		}
		h.log.WithError(err).Error("delete institute")
		writeError(w, http.StatusInternalServerError, "failed to delete institute")
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "institute deleted successfully"})
}
