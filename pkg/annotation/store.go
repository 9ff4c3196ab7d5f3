package annotation

import (
	"fmt"
	"iter"
	"sort"
)

// Producer computes the spans of a pending layer.
// It is called at most once on success; a failing Producer leaves the layer pending.
type Producer func() ([]SpanAnnotation, error)

// layer is either eager (produce == nil) or pending (produce != nil).
type layer struct {
	order   int
	spans   []SpanAnnotation
	produce Producer
}

func (l *layer) pending() bool {
	return l.produce != nil
}

// Store is an ordered collection of named annotation layers.
//
// A Store is not safe for concurrent use. It belongs to the goroutine that
// built it, and pending layers run their producers on that goroutine.
type Store struct {
	layers map[string]*layer
	// eager lists eager layer names in the order they first became eager.
	eager   []string
	counter int

	forward    string
	hasForward bool
}

// NewStore creates an empty store. The zero value is also ready to use.
func NewStore() *Store {
	return &Store{
		layers: make(map[string]*layer),
	}
}

// AddLayer installs spans as an eager layer under name with a new registration index.
// A pending layer registered under the same name is dropped without running its producer.
func (s *Store) AddLayer(name string, spans []SpanAnnotation) {
	s.init()
	l, ok := s.layers[name]
	if !ok || l.pending() {
		l = &layer{}
		s.layers[name] = l
		s.eager = append(s.eager, name)
	}
	l.spans = spans
	l.order = s.next()
	s.setForward(name)
}

// AddLazyLayer registers a pending layer. produce is not called until the layer is read.
func (s *Store) AddLazyLayer(name string, produce Producer) {
	s.init()
	if l, ok := s.layers[name]; ok && !l.pending() {
		s.removeEager(name)
	}
	s.layers[name] = &layer{
		order:   s.next(),
		produce: produce,
	}
	s.setForward(name)
}

// FinalLayer returns the spans of the most recently registered layer,
// materializing it first if it is pending. It returns nil if no layer was registered.
func (s *Store) FinalLayer() ([]SpanAnnotation, error) {
	if !s.hasForward {
		return nil, nil
	}
	if err := s.materialize(s.forward); err != nil {
		return nil, err
	}
	l, ok := s.layers[s.forward]
	if !ok {
		return nil, nil
	}
	return l.spans, nil
}

// AnnotationLayer returns the deduplicated spans tagged with name.
//
// Only the layer called name is materialized; other pending layers are left
// alone and their spans are not considered. Spans from every eager layer are
// deduplicated by signature (the last duplicate wins, at the position of the
// first) and the ones whose own RuleName equals name are returned.
func (s *Store) AnnotationLayer(name string) ([]SpanAnnotation, error) {
	if err := s.materialize(name); err != nil {
		return nil, err
	}

	var keys []string
	unique := make(map[string]SpanAnnotation)
	for _, layerName := range s.eager {
		for _, span := range s.layers[layerName].spans {
			if span.RuleName == "" {
				continue
			}
			key := span.String()
			if _, seen := unique[key]; !seen {
				keys = append(keys, key)
			}
			unique[key] = span
		}
	}

	var out []SpanAnnotation
	for _, key := range keys {
		if span := unique[key]; span.RuleName == name {
			out = append(out, span)
		}
	}
	return out, nil
}

// Flatten materializes every pending layer in registration order and returns
// a sequence over the spans of all layers.
func (s *Store) Flatten() (iter.Seq[SpanAnnotation], error) {
	var pending []string
	for name, l := range s.layers {
		if l.pending() {
			pending = append(pending, name)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return s.layers[pending[i]].order < s.layers[pending[j]].order
	})
	for _, name := range pending {
		if err := s.materialize(name); err != nil {
			return nil, err
		}
	}

	groups := make([][]SpanAnnotation, 0, len(s.eager))
	for _, name := range s.eager {
		groups = append(groups, s.layers[name].spans)
	}
	return func(yield func(SpanAnnotation) bool) {
		for _, spans := range groups {
			for _, span := range spans {
				if !yield(span) {
					return
				}
			}
		}
	}, nil
}

// AvailableLayers returns every registered layer name, eager or pending,
// in registration order. It never materializes anything.
func (s *Store) AvailableLayers() []string {
	names := make([]string, 0, len(s.layers))
	for name := range s.layers {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return s.layers[names[i]].order < s.layers[names[j]].order
	})
	return names
}

// AddFlattenAnnotations replaces the whole store with spans regrouped by their
// own RuleName. Groups are ordered by name; spans with no rule name go to the
// "" group. Pending layers are discarded without running.
func (s *Store) AddFlattenAnnotations(spans []SpanAnnotation) {
	sorted := make([]SpanAnnotation, len(spans))
	copy(sorted, spans)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RuleName < sorted[j].RuleName
	})

	s.layers = make(map[string]*layer)
	s.eager = nil
	s.hasForward = false
	s.forward = ""

	for start := 0; start < len(sorted); {
		name := sorted[start].RuleName
		end := start
		for end < len(sorted) && sorted[end].RuleName == name {
			end++
		}
		s.AddLayer(name, sorted[start:end:end])
		start = end
	}
}

// Has reports whether a layer called name is registered.
func (s *Store) Has(name string) bool {
	_, ok := s.layers[name]
	return ok
}

// Pending reports whether the layer called name is registered and not yet materialized.
func (s *Store) Pending(name string) bool {
	l, ok := s.layers[name]
	return ok && l.pending()
}

// materialize runs the producer of a pending layer and keeps its registration index.
func (s *Store) materialize(name string) error {
	l, ok := s.layers[name]
	if !ok || !l.pending() {
		return nil
	}
	spans, err := l.produce()
	if err != nil {
		return fmt.Errorf("failed to materialize layer %q: %w", name, err)
	}
	l.spans = spans
	l.produce = nil
	s.eager = append(s.eager, name)
	return nil
}

func (s *Store) removeEager(name string) {
	for i, n := range s.eager {
		if n == name {
			s.eager = append(s.eager[:i], s.eager[i+1:]...)
			return
		}
	}
}

func (s *Store) init() {
	if s.layers == nil {
		s.layers = make(map[string]*layer)
	}
}

func (s *Store) next() int {
	order := s.counter
	s.counter++
	return order
}

func (s *Store) setForward(name string) {
	s.forward = name
	s.hasForward = true
}
