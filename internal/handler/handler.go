package handler

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"file-vault/internal/application/usecases"
	"file-vault/internal/infrastructure/config"
	"file-vault/internal/logger"

	"github.com/gorilla/mux"
)

// Response is the unified JSON envelope
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// BlobOpener is implemented by blob backends that can stream content
// back out (the local backend). Remote backends serve by location only.
type BlobOpener interface {
	Open(location string) (io.ReadCloser, error)
}

// Handler bundles the use cases behind the HTTP surface.
type Handler struct {
	files   *usecases.FileUseCase
	folders *usecases.FolderUseCase
	shares  *usecases.ShareUseCase
	opener  BlobOpener
	cfg     *config.Config
}

func New(files *usecases.FileUseCase, folders *usecases.FolderUseCase, shares *usecases.ShareUseCase, opener BlobOpener, cfg *config.Config) *Handler {
	return &Handler{files: files, folders: folders, shares: shares, opener: opener, cfg: cfg}
}

// RegisterRoutes registers all API routes
func (h *Handler) RegisterRoutes(router *mux.Router) {
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/health", h.handleHealthCheck).Methods("GET")

	api.HandleFunc("/files", h.handleListFiles).Methods("GET")
	api.HandleFunc("/files", h.handleCreateFile).Methods("POST")
	api.HandleFunc("/files/{id}", h.handleGetFile).Methods("GET")
	api.HandleFunc("/files/{id}", h.handleUpdateFile).Methods("PUT")
	api.HandleFunc("/files/{id}", h.handleDeleteFile).Methods("DELETE")
	api.HandleFunc("/files/{id}/versions", h.handleGetFileVersions).Methods("GET")
	api.HandleFunc("/files/{id}/revert", h.handleRevertFile).Methods("POST")
	api.HandleFunc("/files/{id}/download", h.handleDownloadFile).Methods("GET")

	api.HandleFunc("/folders", h.handleListFolders).Methods("GET")
	api.HandleFunc("/folders", h.handleCreateFolder).Methods("POST")
	api.HandleFunc("/folders/{id}", h.handleGetFolder).Methods("GET")
	api.HandleFunc("/folders/{id}", h.handleUpdateFolder).Methods("PUT")
	api.HandleFunc("/folders/{id}", h.handleDeleteFolder).Methods("DELETE")

	api.HandleFunc("/shares", h.handleCreateShare).Methods("POST")
	api.HandleFunc("/shares", h.handleListShares).Methods("GET")
	// Public redemption endpoint: the token is the credential.
	api.HandleFunc("/shares/{token}", h.handleAccessSharedItem).Methods("GET")

	api.HandleFunc("/admin/logs", h.handleGetAuditLogs).Methods("GET")
}

func (h *Handler) handleGetAuditLogs(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 1000 {
			limit = n
		}
	}
	offset := 0
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	l := logger.GetLogger()
	if l == nil {
		writeErrorResponse(w, http.StatusServiceUnavailable, "Logging is not initialized")
		return
	}
	logs, err := l.GetAuditLogs(limit, offset)
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to load audit logs")
		return
	}

	writeJSONResponse(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"logs":  logs,
			"count": len(logs),
		},
	})
}

func (h *Handler) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"status":    "healthy",
			"version":   h.cfg.Application.Version,
			"timestamp": time.Now().Unix(),
		},
	})
}

// baseURL derives the share-link base from config, falling back to the
// inbound request's scheme and host.
func (h *Handler) baseURL(r *http.Request) string {
	if h.cfg.Server.BaseURL != "" {
		return h.cfg.Server.BaseURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

func writeJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, message string) {
	writeJSONResponse(w, status, Response{Success: false, Error: message})
}
