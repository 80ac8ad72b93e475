package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/studycards-backend/internal/logger"
	"github.com/yungbote/studycards-backend/internal/store/jsonstore"
)

type CourseHandler struct {
	log     *logger.Logger
	courses jsonstore.CourseStore
}

func NewCourseHandler(log *logger.Logger, courses jsonstore.CourseStore) *CourseHandler {
	return &CourseHandler{
		log:     log.With("handler", "CourseHandler"),
		courses: courses,
	}
}

type coursePayload struct {
	Name string `json:"name"`
}

func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, err := h.courses.List(c.Request.Context())
	if err != nil {
		h.log.Error("ListCourses failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "load_courses_failed", err)
		return
	}
	RespondOK(c, gin.H{"courses": courses})
}

func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var payload coursePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	if strings.TrimSpace(payload.Name) == "" {
		RespondError(c, http.StatusBadRequest, "missing_name", errors.New("name is required"))
		return
	}
	course, err := h.courses.Create(c.Request.Context(), strings.TrimSpace(payload.Name))
	if err != nil {
		h.log.Error("CreateCourse failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "create_course_failed", err)
		return
	}
	RespondOK(c, gin.H{"course": course})
}

func (h *CourseHandler) GetCourse(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_course_id", err)
		return
	}
	course, err := h.courses.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, jsonstore.ErrNotFound) {
			RespondError(c, http.StatusNotFound, "course_not_found", err)
			return
		}
		h.log.Error("GetCourse failed", "error", err, "course_id", id)
		RespondError(c, http.StatusInternalServerError, "load_course_failed", err)
		return
	}
	RespondOK(c, gin.H{"course": course})
}

func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_course_id", err)
		return
	}
	var payload coursePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	course, err := h.courses.Update(c.Request.Context(), id, strings.TrimSpace(payload.Name))
	if err != nil {
		if errors.Is(err, jsonstore.ErrNotFound) {
			RespondError(c, http.StatusNotFound, "course_not_found", err)
			return
		}
		h.log.Error("UpdateCourse failed", "error", err, "course_id", id)
		RespondError(c, http.StatusInternalServerError, "update_course_failed", err)
		return
	}
	RespondOK(c, gin.H{"course": course})
}

func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_course_id", err)
		return
	}
	if err := h.courses.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, jsonstore.ErrNotFound) {
			RespondError(c, http.StatusNotFound, "course_not_found", err)
			return
		}
		h.log.Error("DeleteCourse failed", "error", err, "course_id", id)
		RespondError(c, http.StatusInternalServerError, "delete_course_failed", err)
		return
	}
	RespondOK(c, gin.H{"deleted": id})
}
