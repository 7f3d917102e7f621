package registrar

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"coursereg/model"
	"coursereg/service"
)

const (
	msgCatalogHTTP    = "Could not load courses from server."
	msgCatalogNetwork = "Network error loading courses."
)

// Catalog mirrors every section offered by the registration service.
type Catalog struct {
	remote Remote
	logger *zap.Logger

	mu       sync.RWMutex
	sections []model.Section
	byID     map[int]model.Section
}

func NewCatalog(remote Remote, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{
		remote: remote,
		logger: logger,
		byID:   map[int]model.Section{},
	}
}

// Load replaces the whole catalog. On failure the cache is left empty and the
// returned *UserError carries the message to show.
func (c *Catalog) Load(ctx context.Context) error {
	sections, err := c.remote.ListCourses(ctx)
	if err != nil {
		c.replace(nil)
		msg := msgCatalogHTTP
		if service.IsTransport(err) {
			msg = msgCatalogNetwork
		}
		c.logger.Warn("catalog_load_failed", zap.Error(err))
		return &UserError{Message: msg, Err: err}
	}
	c.replace(sections)
	c.logger.Debug("catalog_loaded", zap.Int("sections", len(sections)))
	return nil
}

func (c *Catalog) replace(sections []model.Section) {
	byID := make(map[int]model.Section, len(sections))
	for _, sec := range sections {
		byID[sec.ID] = sec
	}
	c.mu.Lock()
	c.sections = sections
	c.byID = byID
	c.mu.Unlock()
}

// Sections returns a copy of the cached sections in server order.
func (c *Catalog) Sections() []model.Section {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]model.Section(nil), c.sections...)
}

func (c *Catalog) ByID(id int) (model.Section, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	sec, ok := c.byID[id]
	return sec, ok
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.sections)
}

// Options derives the filter choices from the loaded catalog.
func (c *Catalog) Options() FilterOptions {
	return BuildFilterOptions(c.Sections())
}
