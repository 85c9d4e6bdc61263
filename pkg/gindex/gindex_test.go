package gindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEndToEndEqualityThenMutation(t *testing.T) {
	idx := NewIndex(Config{})
	p1 := NewBag(map[string]Atom{"name": String("A"), "age": Int(30), "wage": Int(70000)})
	p2 := NewBag(map[string]Atom{"name": String("B"), "age": Int(25), "wage": Int(50000)})
	idx.Add(p1)
	idx.Add(p2)

	v, err := idx.ReducedQuery(Q.Eq("age", Int(30)))
	assert.NoError(t, err)
	assert.Equal(t, []Record{p1}, v.Collect())

	p2.Set("age", Int(30))
	v, err = idx.ReducedQuery(Q.Eq("age", Int(30)))
	assert.NoError(t, err)
	assert.Equal(t, []Record{p1, p2}, v.Collect())
}

func TestEndToEndRange(t *testing.T) {
	idx := NewIndex(Config{})
	p1 := NewBag(map[string]Atom{"wage": Int(70000)})
	p2 := NewBag(map[string]Atom{"wage": Int(50000)})
	idx.Add(p1)
	idx.Add(p2)

	above, err := idx.ReducedQuery(Q.Gt("wage", Int(60000)))
	assert.NoError(t, err)
	assert.Equal(t, []Record{p1}, above.Collect())

	below, err := idx.ReducedQuery(Q.Lt("wage", Int(55000)))
	assert.NoError(t, err)
	assert.Equal(t, []Record{p2}, below.Collect())
}

func TestEndToEndNestedPathAndComposite(t *testing.T) {
	idx := NewIndex(Config{})
	store := NewBag(map[string]Atom{"name": String("Big"), "address": String("123")})
	storeHandle := idx.Add(store)
	p1 := NewBag(map[string]Atom{"employer": Ref(storeHandle), "name": String("A"), "wage": Int(70000)})
	p2 := NewBag(map[string]Atom{"employer": Ref(storeHandle), "name": String("B"), "wage": Int(50000)})
	idx.Add(p1)
	idx.Add(p2)

	v, err := idx.ReducedQuery(Q.Eq("employer.name", String("Big")))
	assert.NoError(t, err)
	assert.Equal(t, []Record{p1, p2}, v.Collect())

	v, err = idx.ReducedQuery(Q.And(Q.Eq("employer.name", String("Big")), Q.Ge("wage", Int(60000))))
	assert.NoError(t, err)
	assert.Equal(t, []Record{p1}, v.Collect())
}

func TestEndToEndViewCompositionAndRebaseUnion(t *testing.T) {
	idx := NewIndex(Config{})
	p1 := NewBag(map[string]Atom{"name": String("A"), "age": Int(30), "wage": Int(70000)})
	p2 := NewBag(map[string]Atom{"name": String("B"), "age": Int(25), "wage": Int(50000)})
	idx.Add(p1)
	idx.Add(p2)

	v, err := idx.ReducedQuery(Q.Gt("wage", Int(40000)))
	assert.NoError(t, err)
	assert.Equal(t, []Record{p1, p2}, v.Collect())

	refined, err := v.ReducedQuery(Q.Eq("age", Int(25)))
	assert.NoError(t, err)
	assert.Equal(t, []Record{p2}, refined.Collect())

	aliceView, err := idx.ReducedQuery(Q.Eq("name", String("A")))
	assert.NoError(t, err)
	indexAlice := aliceView.Rebase()
	assert.Len(t, indexAlice.Collect(), 1)
	gotAlice, err := indexAlice.GetByAttribute(map[string]Atom{"name": String("A")})
	assert.NoError(t, err)
	assert.Len(t, gotAlice, 1)

	bobView, err := idx.ReducedQuery(Q.Eq("name", String("B")))
	assert.NoError(t, err)
	indexBob := bobView.Rebase()
	merged := indexAlice.UnionWith(indexBob)
	assert.Len(t, merged.Collect(), 2)
}

// TestMutationAfterRebaseDoesNotAffectRebasedCopy guards against Rebase
// re-binding the original record's observer: a later write on p1 must
// still reach idx, and must never be visible through the rebased index,
// which holds an independent snapshot copy.
func TestMutationAfterRebaseDoesNotAffectRebasedCopy(t *testing.T) {
	idx := NewIndex(Config{})
	p1 := NewBag(map[string]Atom{"name": String("A"), "age": Int(30)})
	idx.Add(p1)

	aliceView, err := idx.ReducedQuery(Q.Eq("name", String("A")))
	assert.NoError(t, err)
	rebased := aliceView.Rebase()

	p1.Set("age", Int(99))

	got, err := idx.GetByAttribute(map[string]Atom{"age": Int(99)})
	assert.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = rebased.GetByAttribute(map[string]Atom{"age": Int(30)})
	assert.NoError(t, err)
	assert.Len(t, got, 1)
	got, err = rebased.GetByAttribute(map[string]Atom{"age": Int(99)})
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestValidateCatchesMalformedQueryBeforeEvaluation(t *testing.T) {
	assert.Error(t, Validate(Q.Eq("", Int(1))))
	assert.Error(t, Validate(Q.And()))
}

func TestReducedQueryRejectsMalformedExprInsteadOfPanicking(t *testing.T) {
	idx := NewIndex(Config{})
	idx.Add(NewBag(map[string]Atom{"name": String("A")}))

	_, err := idx.ReducedQuery(Q.And())
	assert.Error(t, err)
}

func TestUnknownAttributeProducesEmptySetNotError(t *testing.T) {
	idx := NewIndex(Config{})
	idx.Add(NewBag(map[string]Atom{"name": String("A")}))
	v, err := idx.ReducedQuery(Q.Eq("never_seen", Int(1)))
	assert.NoError(t, err)
	assert.Empty(t, v.Collect())
}

func TestReAddIsNoOp(t *testing.T) {
	idx := NewIndex(Config{})
	p1 := NewBag(map[string]Atom{"name": String("A")})
	h1 := idx.Add(p1)
	h2 := idx.Add(p1)
	assert.Equal(t, h1, h2)
	assert.Len(t, idx.Collect(), 1)
}
