package flatten

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecord_KeyOrder(t *testing.T) {
	r := NewRecord()
	r.Set("b", "1")
	r.Set("a", "2")
	r.Set("b", "3")

	assert.Equal(t, []string{"b", "a"}, r.Keys())
	assert.Equal(t, []string{"a", "b"}, r.SortedKeys())
	v, ok := r.Get("b")
	assert.True(t, ok)
	assert.Equal(t, "3", v)
}

func TestRecord_CloneIsIndependent(t *testing.T) {
	r := NewRecord()
	r.Set("a", "1")

	c := r.Clone()
	r.Set("b", "2")
	r.Set("a", "changed")

	assert.Equal(t, 1, c.Len())
	v, _ := c.Get("a")
	assert.Equal(t, "1", v)
}

func TestRecordOf(t *testing.T) {
	r := RecordOf("x.amount", "1", "x.date", "d")
	assert.Equal(t, []string{"x.amount", "x.date"}, r.Keys())

	assert.Panics(t, func() { RecordOf("odd") })
}

func TestRecord_ZeroValueSet(t *testing.T) {
	var r Record
	r.Set("k", "v")
	assert.Equal(t, 1, r.Len())
}
