package analyses

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sibap-dev/storm/internal/ats"
	"github.com/sibap-dev/storm/internal/extract"
	"github.com/sibap-dev/storm/internal/shared/metrics"
	"github.com/sibap-dev/storm/internal/shared/storage/object"
	"github.com/sibap-dev/storm/internal/shared/telemetry"
	"github.com/sibap-dev/storm/internal/shared/util"
)

const defaultMaxBytes = 10 << 20

// Request carries the scoring inputs shared by every analysis source.
type Request struct {
	UserID         string
	JobDescription string
	Profile        map[string]any
}

// Service runs analyses.
type Service struct {
	Analyzer *ats.Analyzer
	// Store is optional; stored-resume operations fail with ErrStoreNotConfigured without it.
	Store    object.ObjectStore
	TmpDir   string
	MaxBytes int64

	Extract func(path string) extract.Result
	Now     func() time.Time
	NewID   func() string
}

// NewService wires a Service with production defaults.
func NewService(analyzer *ats.Analyzer, store object.ObjectStore, tmpDir string, maxBytes int64) *Service {
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}
	return &Service{
		Analyzer: analyzer,
		Store:    store,
		TmpDir:   tmpDir,
		MaxBytes: maxBytes,
		Extract:  extract.File,
		Now:      time.Now,
		NewID:    uuid.NewString,
	}
}

// AnalyzeText scores resume text pasted by the caller.
func (s *Service) AnalyzeText(ctx context.Context, req Request, resumeText string) (Analysis, error) {
	metrics.IncAnalysisStarted(SourceText)
	if strings.TrimSpace(resumeText) == "" {
		metrics.IncAnalysisFailed("invalid_input")
		return Analysis{}, fmt.Errorf("%w: resumeText is required", ErrInvalidInput)
	}
	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}
	start := time.Now()
	report := s.Analyzer.AnalyzeText(resumeText, req.JobDescription, req.Profile)
	return s.record(req, Analysis{Source: SourceText}, report, start), nil
}

// AnalyzeUpload spools an uploaded document to a temp file, scores it, and removes the file.
func (s *Service) AnalyzeUpload(ctx context.Context, req Request, fileName string, r io.Reader) (Analysis, error) {
	metrics.IncAnalysisStarted(SourceUpload)
	if !extract.Supported(fileName) {
		metrics.IncAnalysisFailed("unsupported_type")
		return Analysis{}, fmt.Errorf("%w: %q", ErrUnsupportedType, filepath.Ext(fileName))
	}
	start := time.Now()

	tmpPath, cleanup, err := s.spool(ctx, strings.ToLower(filepath.Ext(fileName)), r)
	if err != nil {
		metrics.IncAnalysisFailed("spool")
		return Analysis{}, err
	}
	defer cleanup()

	res := s.Extract(tmpPath)
	report := s.scoreExtraction(res, req)
	return s.record(req, Analysis{Source: SourceUpload, FileName: filepath.Base(fileName)}, report, start), nil
}

// AnalyzeStored scores a resume previously saved with StoreResume. Keys outside
// the caller's namespace are reported as not found.
func (s *Service) AnalyzeStored(ctx context.Context, req Request, storageKey string) (Analysis, error) {
	metrics.IncAnalysisStarted(SourceStored)
	if s.Store == nil {
		metrics.IncAnalysisFailed("store_not_configured")
		return Analysis{}, ErrStoreNotConfigured
	}
	storageKey = strings.TrimSpace(storageKey)
	if storageKey == "" {
		metrics.IncAnalysisFailed("invalid_input")
		return Analysis{}, fmt.Errorf("%w: storageKey is required", ErrInvalidInput)
	}
	storageKey = path.Clean(storageKey)
	if !strings.HasPrefix(storageKey, util.OwnerKey(req.UserID)+"/") {
		metrics.IncAnalysisFailed("not_found")
		return Analysis{}, fmt.Errorf("%w: %s", ErrNotFound, storageKey)
	}
	start := time.Now()

	rc, err := s.Store.Open(ctx, storageKey)
	if err != nil {
		switch {
		case errors.Is(err, object.ErrNotFound):
			metrics.IncAnalysisFailed("not_found")
			return Analysis{}, fmt.Errorf("%w: %s", ErrNotFound, storageKey)
		case errors.Is(err, object.ErrInvalidKey):
			metrics.IncAnalysisFailed("invalid_input")
			return Analysis{}, fmt.Errorf("%w: invalid storageKey", ErrInvalidInput)
		}
		return Analysis{}, fmt.Errorf("open stored resume: %w", err)
	}
	defer rc.Close()

	data, err := readLimited(rc, s.MaxBytes)
	if err != nil {
		return Analysis{}, fmt.Errorf("read stored resume: %w", err)
	}

	res := extract.FromBytes(data, storageKey)
	report := s.scoreExtraction(res, req)
	return s.record(req, Analysis{Source: SourceStored, StorageKey: storageKey}, report, start), nil
}

// StoreResume saves an uploaded document to the object store for later analysis.
func (s *Service) StoreResume(ctx context.Context, userID, fileName string, r io.Reader) (object.Stored, error) {
	if s.Store == nil {
		return object.Stored{}, ErrStoreNotConfigured
	}
	if !extract.Supported(fileName) {
		return object.Stored{}, fmt.Errorf("%w: %q", ErrUnsupportedType, filepath.Ext(fileName))
	}
	stored, err := s.Store.Save(ctx, userID, fileName, r)
	if err != nil {
		return object.Stored{}, err
	}
	telemetry.Info("resume.stored", map[string]any{
		"user_id":     userID,
		"storage_key": stored.Key,
		"size_bytes":  stored.SizeBytes,
		"mime_type":   stored.MimeType,
	})
	return stored, nil
}

func (s *Service) scoreExtraction(res extract.Result, req Request) ats.Report {
	if res.Err != nil {
		metrics.IncExtractionFailure(res.Format)
		telemetry.Warn("analysis.extraction_failed", map[string]any{
			"format": res.Format,
			"err":    res.Err,
		})
	}
	return s.Analyzer.AnalyzeExtraction(res, req.JobDescription, req.Profile)
}

// record stamps a finished analysis and emits its metrics and completion log.
func (s *Service) record(req Request, a Analysis, report ats.Report, start time.Time) Analysis {
	a.ID = s.NewID()
	a.UserID = req.UserID
	a.Report = report
	a.TotalScore = report.TotalScore
	a.Grade = report.Grade
	a.CreatedAt = s.Now().UTC()

	metrics.ObserveAnalysisDurationMs(metrics.Since(start))
	metrics.IncAnalysisCompleted(report.TotalScore)

	telemetry.Info("analysis.completed", map[string]any{
		"analysis_id": a.ID,
		"user_id":     a.UserID,
		"source":      a.Source,
		"total_score": a.TotalScore,
		"grade":       a.Grade,
		"duration_ms": metrics.Since(start),
	})
	return a
}

func (s *Service) spool(ctx context.Context, ext string, r io.Reader) (string, func(), error) {
	if err := ctx.Err(); err != nil {
		return "", func() {}, err
	}
	dir := s.TmpDir
	if dir == "" {
		dir = os.TempDir()
	}
	tmpPath := filepath.Join(dir, "ats-"+uuid.NewString()+ext)
	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o600)
	if err != nil {
		return "", func() {}, fmt.Errorf("create temp file: %w", err)
	}
	cleanup := func() {
		if err := os.Remove(tmpPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			telemetry.Warn("analysis.tmp_remove_failed", map[string]any{"path": tmpPath, "err": err})
		}
	}

	_, copyErr := io.Copy(f, io.LimitReader(r, s.maxBytes()))
	closeErr := f.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		cleanup()
		return "", func() {}, fmt.Errorf("write temp file: %w", err)
	}
	return tmpPath, cleanup, nil
}

func (s *Service) maxBytes() int64 {
	if s.MaxBytes <= 0 {
		return defaultMaxBytes
	}
	return s.MaxBytes
}

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = defaultMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: stored resume exceeds %d bytes", ErrInvalidInput, limit)
	}
	return data, nil
}
