package project

import (
	"context"

	"git.home.luguber.info/inful/staticrender/internal/logfields"
)

// Stale returns recorded page identifiers whose source file no longer exists.
func (p *Project) Stale() ([]string, error) {
	present := make(map[string]bool)
	for page, err := range p.Pages() {
		if err != nil {
			return nil, err
		}
		present[page.Identifier()] = true
	}

	var stale []string
	for _, id := range p.TrackedPages() {
		if !present[id] {
			stale = append(stale, id)
		}
	}
	return stale, nil
}

// Prune removes stale identifiers from the hash database and returns them.
// Rendered output files are left in place.
func (p *Project) Prune(ctx context.Context) ([]string, error) {
	stale, err := p.Stale()
	if err != nil || len(stale) == 0 {
		return stale, err
	}
	for _, id := range stale {
		p.store.Delete(id)
	}
	if err := p.store.Flush(ctx); err != nil {
		return nil, storeError(err)
	}
	p.logger.Info("Pruned hash database", logfields.Count(len(stale)))
	return stale, nil
}
