package analyses

import (
	"time"

	"github.com/sibap-dev/storm/internal/ats"
)

// Input sources for an analysis.
const (
	SourceUpload = "upload"
	SourceText   = "text"
	SourceStored = "stored"
)

// Analysis is one scored resume with its full report. Analyses are returned to
// the caller and logged, never stored.
type Analysis struct {
	ID         string     `json:"analysisId"`
	UserID     string     `json:"-"`
	Source     string     `json:"source"`
	FileName   string     `json:"fileName,omitempty"`
	StorageKey string     `json:"storageKey,omitempty"`
	TotalScore float64    `json:"totalScore"`
	Grade      string     `json:"grade"`
	Report     ats.Report `json:"report"`
	CreatedAt  time.Time  `json:"analyzedAt"`
}
