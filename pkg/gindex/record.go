package gindex

import (
	"strings"
	"sync"

	"github.com/dball/gindex/internal/iterator"
	"github.com/dball/gindex/internal/types"
)

// Bag is the reference Record implementation: a sealed attribute map with
// an explicit Set/Delete pair that reports every post-registration write
// to the engine's bound observer. Names beginning with "_" are kept out
// of the index entirely, the module's convention for non-indexable
// bookkeeping attributes.
type Bag struct {
	mu       sync.Mutex
	attrs    map[string]Atom
	observer types.Observer
}

// NewBag returns a Bag seeded with the given attributes. Keys beginning
// with "_" are dropped; they're never visible to the index.
func NewBag(attrs map[string]Atom) *Bag {
	b := &Bag{attrs: make(map[string]Atom, len(attrs))}
	for name, v := range attrs {
		if strings.HasPrefix(name, "_") {
			continue
		}
		b.attrs[name] = v
	}
	return b
}

// Attributes returns the bag's attributes at registration time, omitting
// "_"-prefixed names.
func (b *Bag) Attributes() *iterator.Iterator[types.AttrValue] {
	b.mu.Lock()
	avs := make([]types.AttrValue, 0, len(b.attrs))
	for name, v := range b.attrs {
		if strings.HasPrefix(name, "_") {
			continue
		}
		avs = append(avs, types.AttrValue{Name: name, Value: v})
	}
	b.mu.Unlock()
	return iterator.BuildIterator[types.AttrValue](iterator.Slice[types.AttrValue](avs))
}

// BindObserver installs the engine's mutation observer. Called once, by
// Index.Add.
func (b *Bag) BindObserver(observer types.Observer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.observer = observer
}

// Get returns the bag's current value for name and whether it's set.
func (b *Bag) Get(name string) (Atom, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.attrs[name]
	return v, ok
}

// Set writes name to v, reporting the write to the bound observer unless
// name is a non-indexable "_"-prefixed bookkeeping attribute.
func (b *Bag) Set(name string, v Atom) {
	if strings.HasPrefix(name, "_") {
		b.mu.Lock()
		b.attrs[name] = v
		b.mu.Unlock()
		return
	}
	b.mu.Lock()
	b.attrs[name] = v
	observer := b.observer
	b.mu.Unlock()
	if observer != nil {
		observer.OnSet(name, v)
	}
}

// Delete removes name, reporting the deletion to the bound observer
// unless name is "_"-prefixed.
func (b *Bag) Delete(name string) {
	if strings.HasPrefix(name, "_") {
		b.mu.Lock()
		delete(b.attrs, name)
		b.mu.Unlock()
		return
	}
	b.mu.Lock()
	delete(b.attrs, name)
	observer := b.observer
	b.mu.Unlock()
	if observer != nil {
		observer.OnDelete(name)
	}
}
