// Package statblock converts a free-text creature stat block into a Record
// of fixed, named fields.
//
// Extraction is best-effort and never fails: any field whose source text is
// missing or unrecognized stays empty. An Extractor holds no mutable state,
// so one value may serve any number of goroutines.
package statblock

import (
	"io"

	barnerr "github.com/jwebster45206/creature-barn/internal/errors"
)

// sectionStage runs one extractor against one section body. Stages read
// only their own body and write disjoint fields.
type sectionStage struct {
	section Section
	apply   func(body string, r Record)
}

type Extractor struct {
	capturer *Capturer
	stages   []sectionStage
}

type Option func(*Extractor)

// WithStopLabels replaces FieldStartLabels for multi-line captures.
func WithStopLabels(labels []string) Option {
	return func(e *Extractor) {
		e.capturer = NewCapturer(labels)
	}
}

func New(opts ...Option) *Extractor {
	e := &Extractor{capturer: DefaultCapturer}
	for _, opt := range opts {
		opt(e)
	}
	e.stages = []sectionStage{
		{section: SectionDefense, apply: extractDefense},
		{section: SectionOffense, apply: func(body string, r Record) {
			extractOffense(body, r, e.capturer)
		}},
		{section: SectionStatistics, apply: extractStatistics},
		{section: SectionEcology, apply: extractEcology},
	}
	return e
}

var defaultExtractor = New()

// Extract runs the default Extractor over text.
func Extract(text string) Record {
	return defaultExtractor.Extract(text)
}

// Extract returns a Record holding every field; fields the text does not
// provide are empty.
func (e *Extractor) Extract(text string) Record {
	doc := newDocument(Normalize(text))
	r := NewRecord()

	extractHeader(doc, r)
	extractTraits(doc, r)

	for _, stage := range e.stages {
		if body, ok := doc.section(stage.section); ok {
			stage.apply(body, r)
		}
	}

	if _, ok := doc.section(SectionEcology); !ok {
		if body, ok := doc.section(SectionSpecialAbilities); ok {
			extractSpecialAbilities(body, r)
		}
	}

	return r
}

// ExtractReader reads a whole stat block from rd and extracts it. A nil
// reader is an invalid_input error.
func ExtractReader(rd io.Reader) (Record, error) {
	return defaultExtractor.ExtractReader(rd)
}

func (e *Extractor) ExtractReader(rd io.Reader) (Record, error) {
	if rd == nil {
		return nil, barnerr.InvalidInput("stat block reader is nil")
	}
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, barnerr.Wrap(err, "read stat block")
	}
	return e.Extract(string(data)), nil
}
