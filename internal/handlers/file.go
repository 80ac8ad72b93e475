package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/studycards-backend/internal/logger"
	"github.com/yungbote/studycards-backend/internal/store/jsonstore"
)

type FileHandler struct {
	log   *logger.Logger
	files jsonstore.FileStore
}

func NewFileHandler(log *logger.Logger, files jsonstore.FileStore) *FileHandler {
	return &FileHandler{
		log:   log.With("handler", "FileHandler"),
		files: files,
	}
}

func (h *FileHandler) ListCourseFiles(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_course_id", err)
		return
	}
	files, err := h.files.ListByCourse(c.Request.Context(), courseID)
	if err != nil {
		h.log.Error("ListCourseFiles failed", "error", err, "course_id", courseID)
		RespondError(c, http.StatusInternalServerError, "load_files_failed", err)
		return
	}
	RespondOK(c, gin.H{"files": files})
}

func (h *FileHandler) DeleteFile(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_file_id", err)
		return
	}
	if err := h.files.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, jsonstore.ErrNotFound) {
			RespondError(c, http.StatusNotFound, "file_not_found", err)
			return
		}
		h.log.Error("DeleteFile failed", "error", err, "file_id", id)
		RespondError(c, http.StatusInternalServerError, "delete_file_failed", err)
		return
	}
	RespondOK(c, gin.H{"deleted": id})
}
