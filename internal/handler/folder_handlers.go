package handler

import (
	"encoding/json"
	"net/http"

	"file-vault/internal/application/usecases"
	"file-vault/internal/auth"

	"github.com/gorilla/mux"
)

type folderRequest struct {
	Name           string  `json:"name"`
	ParentFolderID *string `json:"parentFolderId"`
}

func (h *Handler) handleListFolders(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		writeErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	folders, err := h.folders.List(r.Context(), principal.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"folders": folders,
			"count":   len(folders),
		},
	})
}

func (h *Handler) handleCreateFolder(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		writeErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req folderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	folder, err := h.folders.Create(r.Context(), principal.UserID, usecases.FolderInput{
		Name:           req.Name,
		ParentFolderID: req.ParentFolderID,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, Response{
		Success: true,
		Message: "Folder created successfully",
		Data:    folder,
	})
}

func (h *Handler) handleGetFolder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	folder, err := h.folders.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, Response{Success: true, Data: folder})
}

func (h *Handler) handleUpdateFolder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req folderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	folder, err := h.folders.Update(r.Context(), id, usecases.FolderInput{
		Name:           req.Name,
		ParentFolderID: req.ParentFolderID,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, Response{
		Success: true,
		Message: "Folder updated successfully",
		Data:    folder,
	})
}

func (h *Handler) handleDeleteFolder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.folders.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, Response{
		Success: true,
		Message: "Folder deleted successfully",
	})
}
