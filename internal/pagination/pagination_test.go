package pagination

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seq(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return items
}

func TestNew_RejectsNonPositive(t *testing.T) {
	_, err := New(0, 10)
	require.ErrorIs(t, err, ErrInvalidPage)

	_, err = New(-3, 10)
	require.ErrorIs(t, err, ErrInvalidPage)

	_, err = New(1, 0)
	require.ErrorIs(t, err, ErrInvalidPerPage)
}

func TestParams_Offset(t *testing.T) {
	p, err := New(3, 10)
	require.NoError(t, err)
	assert.Equal(t, 20, p.Offset())
	assert.Equal(t, 10, p.Limit())
}

func TestParams_OffsetSaturates(t *testing.T) {
	p, err := New(math.MaxInt/3+2, 3)
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, p.Offset())

	p, err = New(math.MaxInt, 1)
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt-1, p.Offset())

	p, err = New(math.MaxInt, 10)
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, p.Offset())

	page := NewPage(Window(seq(7), p), p, 7)
	assert.Empty(t, page.Items)
	assert.True(t, page.HasPrev)
	assert.False(t, page.HasNext)
}

func TestPage_Boundaries(t *testing.T) {
	items := seq(25)

	tests := []struct {
		name    string
		page    int
		wantLen int
		hasPrev bool
		hasNext bool
	}{
		{name: "first", page: 1, wantLen: 10, hasPrev: false, hasNext: true},
		{name: "middle", page: 2, wantLen: 10, hasPrev: true, hasNext: true},
		{name: "last partial", page: 3, wantLen: 5, hasPrev: true, hasNext: false},
		{name: "past the end", page: 4, wantLen: 0, hasPrev: true, hasNext: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.page, 10)
			require.NoError(t, err)

			page := NewPage(Window(items, p), p, int64(len(items)))
			assert.Len(t, page.Items, tt.wantLen)
			assert.Equal(t, tt.hasPrev, page.HasPrev)
			assert.Equal(t, tt.hasNext, page.HasNext)
			assert.Equal(t, 3, page.Pages)
		})
	}
}

func TestPage_NavigationNumbers(t *testing.T) {
	p, _ := New(2, 10)
	page := NewPage(Window(seq(25), p), p, 25)

	require.NotNil(t, page.PrevNum)
	require.NotNil(t, page.NextNum)
	assert.Equal(t, 1, *page.PrevNum)
	assert.Equal(t, 3, *page.NextNum)
	assert.Equal(t, []int{10, 11, 12, 13, 14, 15, 16, 17, 18, 19}, page.Items)
}

func TestPage_Empty(t *testing.T) {
	p, _ := New(1, 10)
	page := NewPage[int](nil, p, 0)

	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.Pages)
	assert.False(t, page.HasPrev)
	assert.False(t, page.HasNext)
	assert.Nil(t, page.PrevNum)
	assert.Nil(t, page.NextNum)
}

func TestMap(t *testing.T) {
	p, _ := New(2, 2)
	page := NewPage(Window(seq(5), p), p, 5)

	mapped := Map(page, func(i int) string { return string(rune('a' + i)) })
	assert.Equal(t, []string{"c", "d"}, mapped.Items)
	assert.Equal(t, page.HasNext, mapped.HasNext)
	assert.Equal(t, page.Pages, mapped.Pages)
}
