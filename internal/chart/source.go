package chart

import (
	"fmt"
	"sync"
)

// Source renders the currently selected dataset to a fixed artifact path. The
// presentation layer uses it to regenerate a missing artifact.
type Source struct {
	renderer *Renderer
	path     string

	mu      sync.Mutex
	dataset string
}

func NewSource(r *Renderer, path, dataset string) *Source {
	return &Source{renderer: r, path: path, dataset: dataset}
}

func (s *Source) Path() string {
	return s.path
}

func (s *Source) Dataset() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dataset
}

// Generate renders the current dataset to the artifact path.
func (s *Source) Generate() error {
	return s.GenerateDataset(s.Dataset())
}

// GenerateDataset renders name and makes it the current dataset on success.
func (s *Source) GenerateDataset(name string) error {
	ds, err := LoadBuiltin(name)
	if err != nil {
		return err
	}
	if err := s.renderer.RenderFile(ds, s.path); err != nil {
		return fmt.Errorf("generate %q: %w", name, err)
	}

	s.mu.Lock()
	s.dataset = name
	s.mu.Unlock()
	return nil
}
