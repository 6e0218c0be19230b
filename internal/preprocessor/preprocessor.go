// Package preprocessor derives post fields that authors may leave out of
// the frontmatter, after loading and before rendering.
package preprocessor

import (
	"fmt"

	"github.com/dcsystems/dcsite/internal/models"
)

// Preprocessor mutates the loaded site before rendering
type Preprocessor interface {
	Name() string
	Process(site *models.Site) error
}

// Pipeline runs multiple preprocessors in sequence
type Pipeline struct {
	preprocessors []Preprocessor
}

// NewPipeline creates a new preprocessor pipeline
func NewPipeline(preprocessors ...Preprocessor) *Pipeline {
	p := &Pipeline{
		preprocessors: make([]Preprocessor, 0, len(preprocessors)),
	}
	for _, pp := range preprocessors {
		p.Add(pp)
	}
	return p
}

// Add adds a preprocessor to the pipeline
func (p *Pipeline) Add(preprocessor Preprocessor) {
	p.preprocessors = append(p.preprocessors, preprocessor)
}

// Names lists the preprocessors in run order
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.preprocessors))
	for i, pp := range p.preprocessors {
		names[i] = pp.Name()
	}
	return names
}

// Process runs all preprocessors on the site
func (p *Pipeline) Process(site *models.Site) error {
	for _, preprocessor := range p.preprocessors {
		if err := preprocessor.Process(site); err != nil {
			return fmt.Errorf("preprocessor %s: %w", preprocessor.Name(), err)
		}
	}
	return nil
}
