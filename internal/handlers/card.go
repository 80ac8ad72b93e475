package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/studycards-backend/internal/logger"
	"github.com/yungbote/studycards-backend/internal/services"
	"github.com/yungbote/studycards-backend/internal/store/jsonstore"
)

type CardHandler struct {
	log   *logger.Logger
	cards services.CardService
}

func NewCardHandler(log *logger.Logger, cards services.CardService) *CardHandler {
	return &CardHandler{
		log:   log.With("handler", "CardHandler"),
		cards: cards,
	}
}

type generateCardsPayload struct {
	CourseID uuid.UUID   `json:"course_id"`
	FileIDs  []uuid.UUID `json:"file_ids"`
	Count    int         `json:"count"`
}

func (h *CardHandler) GenerateCards(c *gin.Context) {
	var payload generateCardsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	if payload.CourseID == uuid.Nil {
		RespondError(c, http.StatusBadRequest, "missing_course_id", errors.New("course_id is required"))
		return
	}
	if payload.Count < 1 {
		payload.Count = 1
	}
	cards, err := h.cards.GenerateCards(c.Request.Context(), payload.CourseID, payload.FileIDs, payload.Count)
	if err != nil {
		h.log.Error("GenerateCards failed", "error", err, "course_id", payload.CourseID)
		RespondError(c, http.StatusInternalServerError, "generate_cards_failed", err)
		return
	}
	RespondOK(c, gin.H{"cards": cards})
}

func (h *CardHandler) ListCourseCards(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_course_id", err)
		return
	}
	cards, err := h.cards.ListCards(c.Request.Context(), courseID)
	if err != nil {
		h.log.Error("ListCourseCards failed", "error", err, "course_id", courseID)
		RespondError(c, http.StatusInternalServerError, "load_cards_failed", err)
		return
	}
	RespondOK(c, gin.H{"cards": cards})
}

type updateCardPayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (h *CardHandler) UpdateCard(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_card_id", err)
		return
	}
	var payload updateCardPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	card, err := h.cards.UpdateCard(c.Request.Context(), id, payload.Title, payload.Content)
	if err != nil {
		if errors.Is(err, jsonstore.ErrNotFound) {
			RespondError(c, http.StatusNotFound, "card_not_found", err)
			return
		}
		h.log.Error("UpdateCard failed", "error", err, "card_id", id)
		RespondError(c, http.StatusInternalServerError, "update_card_failed", err)
		return
	}
	RespondOK(c, gin.H{"card": card})
}

func (h *CardHandler) DeleteCard(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_card_id", err)
		return
	}
	if err := h.cards.DeleteCard(c.Request.Context(), id); err != nil {
		if errors.Is(err, jsonstore.ErrNotFound) {
			RespondError(c, http.StatusNotFound, "card_not_found", err)
			return
		}
		h.log.Error("DeleteCard failed", "error", err, "card_id", id)
		RespondError(c, http.StatusInternalServerError, "delete_card_failed", err)
		return
	}
	RespondOK(c, gin.H{"deleted": id})
}
