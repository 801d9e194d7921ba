package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"file-vault/internal/application/usecases"
	"file-vault/internal/auth"
	"file-vault/internal/domain/repositories"

	"github.com/gorilla/mux"
)

// maxUploadSize bounds a multipart upload kept in memory before
// spilling to a temp file.
const maxUploadSize = 100 << 20 // 100MB

func (h *Handler) handleListFiles(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		writeErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	opts := repositories.ListFilesOptions{OwnerID: &principal.UserID}
	if folderID := r.URL.Query().Get("folderId"); folderID != "" {
		opts.FolderID = &folderID
	}

	files, err := h.files.List(r.Context(), opts)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"files": files,
			"count": len(files),
		},
	})
}

func (h *Handler) handleGetFile(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	file, err := h.files.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, Response{Success: true, Data: file})
}

func (h *Handler) handleCreateFile(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		writeErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	content, header, err := r.FormFile("file")
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "File was not uploaded")
		return
	}
	defer content.Close()

	name := r.FormValue("name")
	if name == "" {
		name = header.Filename
	}

	in := usecases.CreateFileInput{
		Name:     name,
		FileType: contentTypeFor(header.Filename, header.Header.Get("Content-Type")),
		Content:  content,
		Size:     header.Size,
	}
	if folderID := r.FormValue("folderId"); folderID != "" {
		in.FolderID = &folderID
	}

	file, err := h.files.Create(r.Context(), principal.UserID, in)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, Response{
		Success: true,
		Message: "File uploaded successfully",
		Data:    file,
	})
}

func (h *Handler) handleUpdateFile(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	in := usecases.UpdateFileInput{Name: r.FormValue("name")}
	if folderID := r.FormValue("folderId"); folderID != "" {
		in.FolderID = &folderID
	}

	// Content is optional on update: a metadata-only change does not
	// produce a new version.
	content, header, err := r.FormFile("file")
	switch err {
	case nil:
		defer content.Close()
		in.Content = content
		in.FileType = contentTypeFor(header.Filename, header.Header.Get("Content-Type"))
		in.Size = header.Size
	case http.ErrMissingFile:
	default:
		writeErrorResponse(w, http.StatusBadRequest, "Invalid file upload")
		return
	}

	file, err := h.files.Update(r.Context(), id, in)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, Response{
		Success: true,
		Message: "File updated successfully",
		Data:    file,
	})
}

func (h *Handler) handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.files.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, Response{
		Success: true,
		Message: "File deleted successfully",
	})
}

func (h *Handler) handleGetFileVersions(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	versions, err := h.files.GetVersions(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"versions": versions,
			"count":    len(versions),
		},
	})
}

func (h *Handler) handleRevertFile(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req struct {
		VersionNumber int `json:"versionNumber"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	file, err := h.files.RevertToVersion(r.Context(), id, req.VersionNumber)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, Response{
		Success: true,
		Message: fmt.Sprintf("File reverted to version %d", req.VersionNumber),
		Data:    file,
	})
}

func (h *Handler) handleDownloadFile(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	file, err := h.files.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if h.opener == nil {
		// Remote backends are served by location, not streamed.
		writeJSONResponse(w, http.StatusOK, Response{
			Success: true,
			Data:    map[string]string{"location": file.BlobPath},
		})
		return
	}

	blob, err := h.opener.Open(file.BlobPath)
	if err != nil {
		writeErrorResponse(w, http.StatusNotFound, "File content not found")
		return
	}
	defer blob.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Name))
	if _, err := io.Copy(w, blob); err != nil {
		return
	}
}

// contentTypeFor prefers the declared content type, falling back to the
// file extension.
func contentTypeFor(filename, declared string) string {
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	if ext == "" {
		return "application/octet-stream"
	}
	return ext
}
