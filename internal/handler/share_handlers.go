package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"file-vault/internal/application/usecases"
	"file-vault/internal/auth"
	"file-vault/internal/domain/entities"

	"github.com/gorilla/mux"
)

type shareRequest struct {
	FileID         *string    `json:"fileId"`
	FolderID       *string    `json:"folderId"`
	SharedToUserID string     `json:"sharedToUserId"`
	SharedToEmail  string     `json:"sharedToEmail"`
	AccessLevel    int        `json:"accessLevel"`
	ExpirationDate *time.Time `json:"expirationDate"`
}

func (h *Handler) handleCreateShare(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		writeErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req shareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.shares.ShareFile(r.Context(), principal.UserID, usecases.ShareRequest{
		FileID:         req.FileID,
		FolderID:       req.FolderID,
		SharedToUserID: req.SharedToUserID,
		SharedToEmail:  req.SharedToEmail,
		AccessLevel:    entities.AccessLevel(req.AccessLevel),
		ExpirationDate: req.ExpirationDate,
	}, h.baseURL(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, Response{
		Success: true,
		Message: "Share link created successfully",
		Data: map[string]interface{}{
			"share": result.Share,
			"url":   result.URL,
		},
	})
}

func (h *Handler) handleListShares(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		writeErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	shares, err := h.shares.ListByOwner(r.Context(), principal.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"shares": shares,
			"count":  len(shares),
		},
	})
}

func (h *Handler) handleAccessSharedItem(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	access, err := h.shares.GetSharedItemByToken(r.Context(), token)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, Response{Success: true, Data: access})
}
