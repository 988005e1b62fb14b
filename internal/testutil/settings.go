// AngelaMos | 2026
// settings.go

package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/carterperez-dev/cms-blog/internal/settings"
)

// SiteSettings is an in-memory settings.Repository that counts reads.
type SiteSettings struct {
	mu    sync.Mutex
	row   settings.Settings
	Reads int
}

func NewSiteSettings() *SiteSettings {
	return &SiteSettings{row: settings.Defaults()}
}

func (s *SiteSettings) Get(_ context.Context) (*settings.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Reads++
	cp := s.row
	return &cp, nil
}

func (s *SiteSettings) Save(_ context.Context, v *settings.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v.UpdatedAt = time.Now()
	s.row = *v
	return nil
}

// Service wraps the repository in an uncached settings store.
func (s *SiteSettings) Service() settings.Service {
	return settings.NewStore(s, nil, 0)
}

var _ settings.Repository = (*SiteSettings)(nil)
