package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dball/gindex/internal/iterator"
	"github.com/dball/gindex/internal/query"
	"github.com/dball/gindex/internal/types"
)

// mustReducedQuery evaluates e against idx, failing the test immediately if
// e is rejected by Validate, and returns the resulting View. Every caller
// passes a known well-formed expression; TestReducedQueryRejectsMalformedExpr
// and TestReduceRejectsEmptyAttrEq cover the rejection path directly.
func mustReducedQuery(t *testing.T, idx *Index, e query.Expr) *View {
	t.Helper()
	v, err := idx.ReducedQuery(e)
	assert.NoError(t, err)
	return v
}

// testRecord is a minimal types.Record used by this package's tests; it
// exposes a Set/Delete pair that calls straight into the bound observer,
// standing in for a real host-language attribute-write trap.
type testRecord struct {
	attrs    map[string]types.Atom
	observer types.Observer
}

func newTestRecord(attrs map[string]types.Atom) *testRecord {
	return &testRecord{attrs: attrs}
}

func (r *testRecord) Attributes() *iterator.Iterator[types.AttrValue] {
	avs := make([]types.AttrValue, 0, len(r.attrs))
	for name, v := range r.attrs {
		avs = append(avs, types.AttrValue{Name: name, Value: v})
	}
	return iterator.BuildIterator[types.AttrValue](iterator.Slice[types.AttrValue](avs))
}

func (r *testRecord) BindObserver(observer types.Observer) {
	r.observer = observer
}

func (r *testRecord) Set(name string, v types.Atom) {
	r.attrs[name] = v
	if r.observer != nil {
		r.observer.OnSet(name, v)
	}
}

func (r *testRecord) Delete(name string) {
	delete(r.attrs, name)
	if r.observer != nil {
		r.observer.OnDelete(name)
	}
}
