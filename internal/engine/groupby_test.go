package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dball/gindex/internal/query"
	"github.com/dball/gindex/internal/types"
)

func TestGroupByDirectAttribute(t *testing.T) {
	idx := New(Config{})
	h1 := idx.Add(newTestRecord(map[string]types.Atom{"dept": types.String("eng")}))
	h2 := idx.Add(newTestRecord(map[string]types.Atom{"dept": types.String("eng")}))
	h3 := idx.Add(newTestRecord(map[string]types.Atom{"dept": types.String("sales")}))

	groups, err := idx.GroupBy("dept")
	assert.NoError(t, err)
	assert.Equal(t, []types.Handle{h1, h2}, groups[types.String("eng")])
	assert.Equal(t, []types.Handle{h3}, groups[types.String("sales")])
}

func TestGroupByNestedPath(t *testing.T) {
	idx := New(Config{})
	eng := idx.Add(newTestRecord(map[string]types.Atom{"name": types.String("eng")}))
	sales := idx.Add(newTestRecord(map[string]types.Atom{"name": types.String("sales")}))
	h1 := idx.Add(newTestRecord(map[string]types.Atom{"dept": types.Ref(eng)}))
	h2 := idx.Add(newTestRecord(map[string]types.Atom{"dept": types.Ref(eng)}))
	h3 := idx.Add(newTestRecord(map[string]types.Atom{"dept": types.Ref(sales)}))

	groups, err := idx.GroupBy("dept.name")
	assert.NoError(t, err)
	assert.Equal(t, []types.Handle{h1, h2}, groups[types.String("eng")])
	assert.Equal(t, []types.Handle{h3}, groups[types.String("sales")])
}

func TestGroupByOmitsDanglingAndMissing(t *testing.T) {
	idx := New(Config{})
	idx.Add(newTestRecord(map[string]types.Atom{"dept": types.Ref(types.Handle(999))}))
	idx.Add(newTestRecord(map[string]types.Atom{}))

	groups, err := idx.GroupBy("dept.name")
	assert.NoError(t, err)
	assert.Empty(t, groups)
}

func TestGroupByRejectsMalformedPath(t *testing.T) {
	idx := New(Config{})
	_, err := idx.GroupBy("a..b")
	assert.Error(t, err)
}

func TestViewGroupByRestrictsToAllowSet(t *testing.T) {
	idx := New(Config{})
	h1 := idx.Add(newTestRecord(map[string]types.Atom{"dept": types.String("eng"), "active": types.Bool(true)}))
	idx.Add(newTestRecord(map[string]types.Atom{"dept": types.String("eng"), "active": types.Bool(false)}))

	v := mustReducedQuery(t, idx, query.Q.Eq("active", types.Bool(true)))
	groups, err := v.GroupBy("dept")
	assert.NoError(t, err)
	assert.Equal(t, []types.Handle{h1}, groups[types.String("eng")])
}
