package gindex

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type person struct {
	Name   string `gindex:"name"`
	Age    int    `gindex:"age"`
	Secret string `gindex:"-"`
	Hired  time.Time
	skip   string
}

func TestFromStructMapsTaggedFields(t *testing.T) {
	hired := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	b, err := FromStruct(person{Name: "Ava", Age: 30, Secret: "x", Hired: hired})
	assert.NoError(t, err)

	name, ok := b.Get("name")
	assert.True(t, ok)
	assert.True(t, String("Ava").Equal(name))

	age, ok := b.Get("age")
	assert.True(t, ok)
	assert.True(t, Int(30).Equal(age))

	_, ok = b.Get("Secret")
	assert.False(t, ok)

	hiredAtom, ok := b.Get("Hired")
	assert.True(t, ok)
	assert.True(t, Int(hired.UnixNano()).Equal(hiredAtom))
}

func TestFromStructTakesPointers(t *testing.T) {
	b, err := FromStruct(&person{Name: "Bo", Age: 25})
	assert.NoError(t, err)
	name, _ := b.Get("name")
	assert.True(t, String("Bo").Equal(name))
}

func TestFromStructRejectsNonStruct(t *testing.T) {
	_, err := FromStruct(42)
	assert.Error(t, err)
}

func TestFromStructRejectsNilPointer(t *testing.T) {
	var p *person
	_, err := FromStruct(p)
	assert.Error(t, err)
}
