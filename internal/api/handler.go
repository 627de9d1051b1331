package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/ideaforge/internal/app"
	"github.com/abhisek/ideaforge/internal/conversation"
	"github.com/abhisek/ideaforge/internal/locale"
	"github.com/abhisek/ideaforge/internal/quality"
	"github.com/abhisek/ideaforge/internal/store"
)

const defaultIdeaListLimit = 50

// Sessions is what the handlers need from the application.
type Sessions interface {
	NewSession(idea string, loc locale.Locale, hooks conversation.Hooks) *conversation.Session
	Session(id string) (*conversation.Session, error)
	Ideas() store.IdeaRepo
}

var _ Sessions = (*app.App)(nil)

type Handler struct {
	sessions Sessions
}

func NewHandler(sessions Sessions) *Handler {
	return &Handler{sessions: sessions}
}

func (h *Handler) Quality(c *gin.Context) {
	var req QualityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, quality.Score(req.Text, locale.Match(req.Locale)))
}

func (h *Handler) CreateSession(c *gin.Context) {
	ctx := c.Request.Context()

	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s := h.sessions.NewSession(req.Idea, locale.Match(req.Locale), conversation.Hooks{})
	if err := s.Start(ctx); err != nil {
		slog.WarnContext(ctx, "session start interrupted", "session_id", s.ID(), "error", err)
	}
	c.JSON(http.StatusCreated, ToSessionResponse(s))
}

func (h *Handler) GetSession(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ToSessionResponse(s))
}

func (h *Handler) SubmitAnswer(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}

	var req AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.Submit(c.Request.Context(), req.Answer); err != nil {
		var verr *conversation.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": verr.Error()})
			return
		}
		slog.ErrorContext(c.Request.Context(), "submit answer failed", "session_id", s.ID(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit answer"})
		return
	}
	c.JSON(http.StatusOK, ToSessionResponse(s))
}

func (h *Handler) CompleteSession(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}

	idea := s.ForceComplete(c.Request.Context())
	if idea == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "session was cancelled"})
		return
	}
	c.JSON(http.StatusOK, idea)
}

// CancelSession is idempotent: unknown and already finished sessions also
// get 204.
func (h *Handler) CancelSession(c *gin.Context) {
	if s, err := h.sessions.Session(c.Param("id")); err == nil {
		s.Cancel()
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListIdeas(c *gin.Context) {
	ctx := c.Request.Context()

	limit := defaultIdeaListLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}

	resp := []IdeaSummaryResponse{}
	repo := h.sessions.Ideas()
	if repo == nil {
		c.JSON(http.StatusOK, resp)
		return
	}
	ideas, err := repo.ListIdeas(ctx, limit)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list ideas", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list ideas"})
		return
	}
	for _, s := range ideas {
		resp = append(resp, ToIdeaSummaryResponse(s))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetIdea(c *gin.Context) {
	ctx := c.Request.Context()

	repo := h.sessions.Ideas()
	if repo == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "idea not found"})
		return
	}
	rec, err := repo.GetIdea(ctx, c.Param("id"))
	if err != nil {
		slog.ErrorContext(ctx, "failed to get idea", "idea_id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get idea"})
		return
	}
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "idea not found"})
		return
	}
	c.JSON(http.StatusOK, ToIdeaResponse(rec))
}

func (h *Handler) lookup(c *gin.Context) (*conversation.Session, bool) {
	s, err := h.sessions.Session(c.Param("id"))
	if errors.Is(err, app.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return nil, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}
	return s, true
}
