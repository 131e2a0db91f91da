// Package api serves recommendations, adaptive content and progress over
// HTTP.
package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/adaptlearn/internal/content"
	"github.com/abhisek/adaptlearn/internal/level"
	"github.com/abhisek/adaptlearn/internal/logging"
	"github.com/abhisek/adaptlearn/internal/progress"
	"github.com/abhisek/adaptlearn/internal/recommend"
	"github.com/abhisek/adaptlearn/internal/store"
)

// Handler holds the services behind the HTTP routes.
type Handler struct {
	log       *logging.Logger
	recommend *recommend.Service
	content   *content.Generator
	progress  *progress.Service
}

// NewHandler creates a Handler.
func NewHandler(log *logging.Logger, rec *recommend.Service, gen *content.Generator, prog *progress.Service) *Handler {
	return &Handler{
		log:       logging.OrNop(log).With("component", "api"),
		recommend: rec,
		content:   gen,
		progress:  prog,
	}
}

func HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// GET /subjects
func (h *Handler) ListSubjects(c *gin.Context) {
	RespondOK(c, gin.H{"subjects": h.recommend.Subjects()})
}

// GET /recommend?subject=&learning_speed=&learner_id=
func (h *Handler) Recommend(c *gin.Context) {
	req := recommend.Request{
		Subject:   c.Query("subject"),
		Speed:     c.Query("learning_speed"),
		LearnerID: c.Query("learner_id"),
	}
	if strings.TrimSpace(req.Subject) == "" {
		RespondError(c, http.StatusBadRequest, CodeBadRequest, errors.New("subject is required"))
		return
	}
	res, err := h.recommend.Recommend(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, res)
}

type batchRequest struct {
	Subjects  []string `json:"subjects" binding:"required,min=1"`
	LearnerID string   `json:"learner_id"`
}

// POST /recommend/batch
func (h *Handler) BatchRecommend(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, CodeBadRequest, err)
		return
	}
	res, err := h.recommend.BatchRecommend(c.Request.Context(), req.Subjects, req.LearnerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"recommendations": res})
}

// GET /content?subject=&learning_speed=
func (h *Handler) Content(c *gin.Context) {
	subj := c.Query("subject")
	if strings.TrimSpace(subj) == "" {
		RespondError(c, http.StatusBadRequest, CodeBadRequest, errors.New("subject is required"))
		return
	}
	speed := level.SpeedOrDefault(c.Query("learning_speed"))
	out, err := h.content.Select(c.Request.Context(), subj, speed)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, out)
}

type addSubjectRequest struct {
	Name         string `json:"name" binding:"required"`
	Basic        string `json:"basic" binding:"required"`
	Intermediate string `json:"intermediate" binding:"required"`
	Advanced     string `json:"advanced" binding:"required"`
}

// POST /content/subjects
func (h *Handler) AddContentSubject(c *gin.Context) {
	var req addSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, CodeBadRequest, err)
		return
	}
	name, err := h.content.AddSubject(req.Name, req.Basic, req.Intermediate, req.Advanced)
	if err != nil {
		RespondError(c, http.StatusBadRequest, CodeBadRequest, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"subject": name, "subjects": h.content.Subjects()})
}

type progressResponse struct {
	*store.ProgressRecord
	LearningSpeed string `json:"learning_speed"`
}

// GET /progress/:learner
func (h *Handler) ListProgress(c *gin.Context) {
	recs, err := h.progress.List(c.Request.Context(), c.Param("learner"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	out := make([]progressResponse, 0, len(recs))
	for i := range recs {
		out = append(out, progressResponse{
			ProgressRecord: &recs[i],
			LearningSpeed:  progress.InferSpeed(&recs[i]).String(),
		})
	}
	RespondOK(c, gin.H{"learner_id": c.Param("learner"), "progress": out})
}

// GET /progress/:learner/:subject
func (h *Handler) GetProgress(c *gin.Context) {
	rec := h.progress.Get(c.Request.Context(), c.Param("learner"), c.Param("subject"))
	RespondOK(c, progressResponse{
		ProgressRecord: rec,
		LearningSpeed:  progress.InferSpeed(rec).String(),
	})
}

type updateRequest struct {
	Score      *float64 `json:"score" binding:"required"`
	MaterialID string   `json:"material_id"`
}

// POST /progress/:learner/:subject
func (h *Handler) UpdateProgress(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, CodeBadRequest, err)
		return
	}
	rec, err := h.progress.Record(c.Request.Context(), store.ProgressUpdate{
		LearnerID:  c.Param("learner"),
		Subject:    c.Param("subject"),
		Score:      *req.Score,
		MaterialID: req.MaterialID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.log.Info("progress recorded",
		"request_id", c.GetString(requestIDKey),
		"learner", rec.LearnerID, "subject", rec.Subject)
	RespondOK(c, progressResponse{
		ProgressRecord: rec,
		LearningSpeed:  progress.InferSpeed(rec).String(),
	})
}
