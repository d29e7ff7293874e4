// Package api exposes planning sessions over HTTP for presentation clients.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"nutriplan"
	"nutriplan/planner"
	"nutriplan/profile"
	"nutriplan/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Notifier receives a digest after each generation.
type Notifier interface {
	PostDigest(ctx context.Context, channel string, d session.Digest) error
}

type Handler struct {
	svc      *session.Service
	notifier Notifier
	channel  string
}

// NewHandler creates a handler. notifier may be nil.
func NewHandler(svc *session.Service, notifier Notifier, channel string) *Handler {
	return &Handler{svc: svc, notifier: notifier, channel: channel}
}

// NewRouter builds the engine with recovery, request logging and CORS for origins.
func NewRouter(h *Handler, origins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())
	if len(origins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins: origins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
			AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
			MaxAge:       24 * time.Hour,
		}))
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	h.RegisterRoutes(router.Group("/api"))
	return router
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	sessions := r.Group("/sessions")
	{
		sessions.POST("", h.Start)
		sessions.GET("/:id", h.Get)
		sessions.PUT("/:id/profile", h.Submit)
		sessions.POST("/:id/regenerate", h.Regenerate)
		sessions.POST("/:id/grocery/toggle", h.ToggleGrocery)
		sessions.POST("/:id/prep/toggle", h.ToggleTask)
		sessions.POST("/:id/chat", h.Chat)
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Info("API: Request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

func (h *Handler) Start(c *gin.Context) {
	var p nutriplan.UserProfile
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	snap, err := h.svc.Start(c.Request.Context(), p)
	if err != nil {
		writeError(c, err)
		return
	}
	h.notify(c.Request.Context(), snap)
	c.JSON(http.StatusCreated, newSessionResponse(snap))
}

func (h *Handler) Get(c *gin.Context) {
	snap, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newSessionResponse(snap))
}

func (h *Handler) Submit(c *gin.Context) {
	var p nutriplan.UserProfile
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	snap, err := h.svc.Submit(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		writeError(c, err)
		return
	}
	h.notify(c.Request.Context(), snap)
	c.JSON(http.StatusOK, newSessionResponse(snap))
}

func (h *Handler) Regenerate(c *gin.Context) {
	snap, err := h.svc.Regenerate(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	h.notify(c.Request.Context(), snap)
	c.JSON(http.StatusOK, newSessionResponse(snap))
}

type toggleRequest struct {
	Key string `json:"key" binding:"required"`
}

func (h *Handler) ToggleGrocery(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	snap, err := h.svc.ToggleGrocery(c.Request.Context(), c.Param("id"), req.Key)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": req.Key, "checked": snap.Checked[req.Key]})
}

func (h *Handler) ToggleTask(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	snap, err := h.svc.ToggleTask(c.Request.Context(), c.Param("id"), req.Key)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": req.Key, "completed": snap.Completed[req.Key]})
}

type chatRequest struct {
	Messages []nutriplan.Message `json:"messages" binding:"required"`
}

func (h *Handler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if n := len(req.Messages); n == 0 || req.Messages[n-1].Role != "user" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "last message must come from the user"})
		return
	}

	reply, err := h.svc.Chat(c.Request.Context(), c.Param("id"), req.Messages)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

func (h *Handler) notify(ctx context.Context, snap session.Snapshot) {
	if h.notifier == nil {
		return
	}
	if err := h.notifier.PostDigest(ctx, h.channel, session.NewDigest(snap)); err != nil {
		slog.Error("API: Failed to post digest", "session", snap.ID, "error", err)
	}
}

func writeError(c *gin.Context, err error) {
	var verr *profile.ValidationError
	var terr *planner.TransportError

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile", "details": validationDetails(err)})
	case errors.Is(err, session.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, session.ErrUnknownItem):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &terr):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		slog.Error("API: Request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func validationDetails(err error) []string {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []string
		for _, e := range joined.Unwrap() {
			out = append(out, e.Error())
		}
		return out
	}
	return []string{err.Error()}
}
