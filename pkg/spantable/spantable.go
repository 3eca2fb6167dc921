// Package spantable provides a table of labeled character spans over a
// document, backed by a rangemap of offset ranges. Later annotations
// win over earlier ones within their footprint.
package spantable

import (
	"fmt"
	"sync"

	"github.com/henderiw/rangetable/pkg/interval"
	"github.com/henderiw/rangetable/pkg/rangemap"
	"github.com/henderiw/rangetable/pkg/rangeset"
	"github.com/henderiw/rangetable/pkg/span"
	"k8s.io/apimachinery/pkg/labels"
)

// Annotation is a labeled span of the document.
type Annotation struct {
	Span   span.Span
	Labels labels.Set
}

func (a Annotation) String() string {
	return fmt.Sprintf("span: %s, labels: %s", a.Span.String(), a.Labels.String())
}

type SpanTable interface {
	Annotate(s span.Span, d labels.Set) error
	Get(offset int) (labels.Set, error)
	GetEntry(offset int) (Annotation, error)
	Enclosing(s span.Span) (Annotation, error)
	Release(s span.Span)

	Count() int
	Has(offset int) bool

	GetAll() []Annotation
	GetBySpan(s span.Span) []Annotation
	GetByLabel(selector labels.Selector) []Annotation
	Covered() *rangeset.RangeSet[int]
}

// New returns a span table for a document of the given length in
// characters.
func New(docLength int) (SpanTable, error) {
	if docLength <= 0 {
		return nil, fmt.Errorf("document length %d must be positive", docLength)
	}
	return &spanTable{
		m:         new(sync.RWMutex),
		entries:   rangemap.New[int, labels.Set](),
		docLength: docLength,
	}, nil
}

type spanTable struct {
	m         *sync.RWMutex
	entries   *rangemap.RangeMap[int, labels.Set]
	docLength int
}

func (r *spanTable) Annotate(s span.Span, d labels.Set) error {
	r.m.Lock()
	defer r.m.Unlock()

	if err := r.validate(s); err != nil {
		return err
	}
	r.entries.Put(s.AsRange(), d)
	return nil
}

func (r *spanTable) Get(offset int) (labels.Set, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	d, ok := r.entries.Get(offset)
	if !ok {
		return nil, fmt.Errorf("no annotation found for offset: %d", offset)
	}
	return d, nil
}

func (r *spanTable) GetEntry(offset int) (Annotation, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	e, ok := r.entries.GetEntry(offset)
	if !ok {
		return Annotation{}, fmt.Errorf("no annotation found for offset: %d", offset)
	}
	return toAnnotation(e), nil
}

func (r *spanTable) Enclosing(s span.Span) (Annotation, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	e, ok := r.entries.EnclosingEntry(s.AsRange())
	if !ok {
		return Annotation{}, fmt.Errorf("no single annotation encloses span: %s", s.String())
	}
	return toAnnotation(e), nil
}

func (r *spanTable) Release(s span.Span) {
	r.m.Lock()
	defer r.m.Unlock()

	r.entries.Remove(s.AsRange())
}

func (r *spanTable) Count() int {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.entries.Len()
}

func (r *spanTable) Has(offset int) bool {
	r.m.RLock()
	defer r.m.RUnlock()

	_, ok := r.entries.Get(offset)
	return ok
}

func (r *spanTable) GetAll() []Annotation {
	r.m.RLock()
	defer r.m.RUnlock()

	annotations := make([]Annotation, 0, r.entries.Len())
	for _, e := range r.entries.Entries() {
		annotations = append(annotations, toAnnotation(e))
	}
	return annotations
}

func (r *spanTable) GetBySpan(s span.Span) []Annotation {
	r.m.RLock()
	defer r.m.RUnlock()

	var annotations []Annotation
	for e := range r.entries.GetEnclosedBy(s.AsRange()) {
		annotations = append(annotations, toAnnotation(e))
	}
	return annotations
}

func (r *spanTable) GetByLabel(selector labels.Selector) []Annotation {
	r.m.RLock()
	defer r.m.RUnlock()

	var annotations []Annotation
	for _, e := range r.entries.Entries() {
		if selector.Matches(e.Value()) {
			annotations = append(annotations, toAnnotation(e))
		}
	}
	return annotations
}

func (r *spanTable) Covered() *rangeset.RangeSet[int] {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.entries.Keys()
}

func (r *spanTable) validate(s span.Span) error {
	if s.Start < 0 || s.End > r.docLength {
		return fmt.Errorf("span %s does not fit in the document [0:%d)", s.String(), r.docLength)
	}
	return nil
}

// toAnnotation converts a stored offset range back to a half-open span.
// Releases can leave clipped entries with open bounds, so the bound
// kinds decide the inclusive start and exclusive end.
func toAnnotation(e rangemap.Entry[int, labels.Set]) Annotation {
	rng := e.Range()
	start := rng.LowerEndpoint()
	if rng.Lower().Kind() == interval.KindOpen {
		start++
	}
	end := rng.UpperEndpoint()
	if rng.Upper().Kind() == interval.KindClosed {
		end++
	}
	return Annotation{
		Span:   span.Span{Start: start, End: end},
		Labels: e.Value(),
	}
}
