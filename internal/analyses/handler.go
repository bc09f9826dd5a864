package analyses

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sibap-dev/storm/internal/shared/server/middleware"
	"github.com/sibap-dev/storm/internal/shared/server/respond"
	"github.com/sibap-dev/storm/internal/shared/telemetry"
)

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches ATS routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/ats")
	g.POST("/analyze", h.analyzeUpload)
	g.POST("/analyze/text", h.analyzeText)
	g.POST("/analyze/stored", h.analyzeStored)
	g.POST("/resumes", h.storeResume)
	g.GET("/taxonomy", h.taxonomy)
}

type textRequest struct {
	ResumeText     string         `json:"resumeText"`
	JobDescription string         `json:"jobDescription"`
	UserProfile    map[string]any `json:"userProfile"`
}

type storedRequest struct {
	StorageKey     string         `json:"storageKey"`
	JobDescription string         `json:"jobDescription"`
	UserProfile    map[string]any `json:"userProfile"`
}

func (h *Handler) analyzeUpload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.Svc.maxBytes()+(1<<20))

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusRequestEntityTooLarge, ErrorCodeTooLarge, "file exceeds upload limit", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "file is required", nil)
		return
	}
	if fh.Size > h.Svc.maxBytes() {
		respond.Error(c, http.StatusRequestEntityTooLarge, ErrorCodeTooLarge, "file exceeds upload limit", []map[string]any{
			{"field": "file", "limitBytes": h.Svc.maxBytes()},
		})
		return
	}

	profile, err := parseProfile(c.PostForm("user_profile"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "user_profile must be a JSON object", nil)
		return
	}

	f, err := fh.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "unable to read file", nil)
		return
	}
	defer f.Close()

	analysis, err := h.Svc.AnalyzeUpload(c.Request.Context(), Request{
		UserID:         middleware.UserIDFromContext(c),
		JobDescription: c.PostForm("job_description"),
		Profile:        profile,
	}, fh.Filename, f)
	if err != nil {
		h.fail(c, err, "failed to analyze resume")
		return
	}
	h.ok(c, analysis)
}

func (h *Handler) analyzeText(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "invalid request body", nil)
		return
	}
	analysis, err := h.Svc.AnalyzeText(c.Request.Context(), Request{
		UserID:         middleware.UserIDFromContext(c),
		JobDescription: req.JobDescription,
		Profile:        req.UserProfile,
	}, req.ResumeText)
	if err != nil {
		h.fail(c, err, "failed to analyze resume")
		return
	}
	h.ok(c, analysis)
}

func (h *Handler) analyzeStored(c *gin.Context) {
	var req storedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "invalid request body", nil)
		return
	}
	analysis, err := h.Svc.AnalyzeStored(c.Request.Context(), Request{
		UserID:         middleware.UserIDFromContext(c),
		JobDescription: req.JobDescription,
		Profile:        req.UserProfile,
	}, req.StorageKey)
	if err != nil {
		h.fail(c, err, "failed to analyze stored resume")
		return
	}
	h.ok(c, analysis)
}

func (h *Handler) storeResume(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.Svc.maxBytes()+(1<<20))

	fh, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "file is required", nil)
		return
	}
	if fh.Size > h.Svc.maxBytes() {
		respond.Error(c, http.StatusRequestEntityTooLarge, ErrorCodeTooLarge, "file exceeds upload limit", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "unable to read file", nil)
		return
	}
	defer f.Close()

	stored, err := h.Svc.StoreResume(c.Request.Context(), middleware.UserIDFromContext(c), fh.Filename, f)
	if err != nil {
		h.fail(c, err, "failed to store resume")
		return
	}
	respond.JSON(c, http.StatusCreated, stored)
}

func (h *Handler) taxonomy(c *gin.Context) {
	respond.JSON(c, http.StatusOK, h.Svc.Analyzer.Taxonomy().Data())
}

func (h *Handler) ok(c *gin.Context, a Analysis) {
	c.Set("analysisId", a.ID)
	c.Set("totalScore", a.TotalScore)
	respond.JSON(c, http.StatusOK, gin.H{
		"analysisId": a.ID,
		"analyzedAt": a.CreatedAt,
		"report":     a.Report,
	})
}

func (h *Handler) fail(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, err.Error(), nil)
	case errors.Is(err, ErrUnsupportedType):
		respond.Error(c, http.StatusUnsupportedMediaType, ErrorCodeUnsupported, "upload a .pdf, .docx or .doc file", nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, ErrorCodeNotFound, "not found", nil)
	case errors.Is(err, ErrStoreNotConfigured):
		respond.Error(c, http.StatusServiceUnavailable, ErrorCodeNotConfigured, "resume storage is not configured", nil)
	default:
		telemetry.Error("analysis.request_failed", map[string]any{
			"request_id": middleware.RequestIDFromContext(c),
			"err":        err,
		})
		respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, fallback, nil)
	}
}

func parseProfile(raw string) (map[string]any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var profile map[string]any
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return nil, err
	}
	return profile, nil
}
