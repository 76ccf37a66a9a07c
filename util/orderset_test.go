package util

import (
	"github.com/stretchr/testify/assert"
	"slices"
	"testing"
)

func TestOrderSetInsertKeepsFirstPosition(t *testing.T) {
	s := NewOrderSet("b", "a", "b", "c")

	assert.Equal(t, []string{"b", "a", "c"}, s.Slice())
	assert.Equal(t, 3, s.Len())
	assert.False(t, s.Insert("a"))
	assert.True(t, s.Insert("d"))
	assert.Equal(t, "d", s.At(3))
}

func TestOrderSetRemoveIndices(t *testing.T) {
	testCases := []struct {
		name     string
		elems    []int
		remove   []int
		expected []int
	}{
		{name: "nothing", elems: []int{1, 2, 3}, remove: nil, expected: []int{1, 2, 3}},
		{name: "first", elems: []int{1, 2, 3}, remove: []int{0}, expected: []int{2, 3}},
		{name: "middle and last", elems: []int{1, 2, 3, 4}, remove: []int{1, 3}, expected: []int{1, 3}},
		{name: "all", elems: []int{1, 2}, remove: []int{0, 1}, expected: []int{}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			s := NewOrderSet(testCase.elems...)
			s.RemoveIndices(testCase.remove)
			assert.Equal(t, testCase.expected, s.Slice())
			for _, removed := range testCase.remove {
				assert.False(t, s.Contains(testCase.elems[removed]))
			}
			// removed elements can be inserted again, at the end
			if len(testCase.remove) > 0 {
				readded := testCase.elems[testCase.remove[0]]
				assert.True(t, s.Insert(readded))
				assert.Equal(t, readded, s.At(s.Len()-1))
			}
		})
	}
}

func TestOrderSetCopyIsIndependent(t *testing.T) {
	s := NewOrderSet(1, 2)
	c := s.Copy()
	c.Insert(3)
	c.RemoveIndices([]int{0})

	assert.Equal(t, []int{1, 2}, s.Slice())
	assert.Equal(t, []int{2, 3}, slices.Collect(c.Items()))
	assert.True(t, s.Contains(1))
	assert.False(t, c.Contains(1))
}

func TestJoinString(t *testing.T) {
	assert.Equal(t, "1, 2, 3", NewOrderSet(1, 2, 3).String())
	assert.Equal(t, "", JoinAny([]int{}, "|"))
}

func TestCopyAllIsDeep(t *testing.T) {
	original := []*OrderSet[int]{NewOrderSet(1, 2), NewOrderSet(3)}
	copied := CopyAll(original)

	original[0].Insert(5)
	original[1].RemoveIndices([]int{0})

	assert.Equal(t, []int{1, 2}, copied[0].Slice())
	assert.Equal(t, []int{3}, copied[1].Slice())
	assert.True(t, copied[1].Contains(3))
}
