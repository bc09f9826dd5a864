package health

import (
	"context"
	"sort"
	"sync"
	"time"
)

// CheckFunc reports whether a dependency is reachable.
type CheckFunc func(ctx context.Context) error

// Report is the health payload.
type Report struct {
	OK     bool              `json:"ok"`
	Checks map[string]string `json:"checks,omitempty"`
	Info   map[string]string `json:"info,omitempty"`
}

// Service runs named dependency checks.
type Service struct {
	mu      sync.RWMutex
	checks  map[string]CheckFunc
	info    map[string]string
	timeout time.Duration
}

// NewService constructs a new health service.
func NewService() *Service {
	return &Service{
		checks:  map[string]CheckFunc{},
		info:    map[string]string{},
		timeout: 2 * time.Second,
	}
}

// AddCheck registers a dependency check under name.
func (s *Service) AddCheck(name string, fn CheckFunc) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checks[name] = fn
}

// SetInfo records a static fact reported alongside the checks.
func (s *Service) SetInfo(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.info[key] = value
}

// Status runs every check with a shared timeout.
func (s *Service) Status(ctx context.Context) Report {
	s.mu.RLock()
	names := make([]string, 0, len(s.checks))
	for name := range s.checks {
		names = append(names, name)
	}
	checks := make(map[string]CheckFunc, len(s.checks))
	for k, v := range s.checks {
		checks[k] = v
	}
	info := make(map[string]string, len(s.info))
	for k, v := range s.info {
		info[k] = v
	}
	s.mu.RUnlock()
	sort.Strings(names)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	report := Report{OK: true, Info: info}
	if len(names) > 0 {
		report.Checks = make(map[string]string, len(names))
	}
	for _, name := range names {
		if err := checks[name](ctx); err != nil {
			report.OK = false
			report.Checks[name] = err.Error()
			continue
		}
		report.Checks[name] = "ok"
	}
	if len(report.Info) == 0 {
		report.Info = nil
	}
	return report
}
