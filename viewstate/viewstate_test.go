package viewstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID       string
	Name     string
	Category string
}

func newTestCollection() *Collection[record] {
	return NewCollection(func(r record) string { return r.ID })
}

func TestReplaceClearsErrorAndPreservesOrder(t *testing.T) {
	// Arrange
	c := newTestCollection()
	c.Fail("boom")

	// Act
	c.Replace([]record{{ID: "b"}, {ID: "a"}, {ID: "c"}})

	// Assert
	assert.Empty(t, c.Err())
	items := c.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "b", items[0].ID)
	assert.Equal(t, "a", items[1].ID)
	assert.Equal(t, "c", items[2].ID)
}

func TestFailEmptiesCollection(t *testing.T) {
	// Arrange
	c := newTestCollection()
	c.Replace([]record{{ID: "a"}, {ID: "b"}})

	// Act
	c.Fail("Failed to fetch orders")

	// Assert: never stale data and an error at the same time
	assert.Equal(t, "Failed to fetch orders", c.Err())
	assert.Zero(t, c.Len())
}

func TestAppendKeepsRecordOnce(t *testing.T) {
	// Arrange
	c := newTestCollection()
	c.Replace([]record{{ID: "a"}})

	// Act
	c.Append(record{ID: "new", Name: "Chicken Karahi"})

	// Assert
	items := c.Items()
	count := 0
	for _, item := range items {
		if item.ID == "new" {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Equal(t, "new", items[len(items)-1].ID)
}

func TestUpdateReplacesInPlace(t *testing.T) {
	// Arrange
	c := newTestCollection()
	c.Replace([]record{{ID: "a", Name: "old"}, {ID: "b"}})

	// Act
	ok := c.Update(record{ID: "a", Name: "new"})

	// Assert
	assert.True(t, ok)
	items := c.Items()
	assert.Equal(t, "new", items[0].Name)
	assert.Equal(t, "a", items[0].ID)
}

func TestUpdateUnknownKeyLeavesCollectionUntouched(t *testing.T) {
	// Arrange
	c := newTestCollection()
	c.Replace([]record{{ID: "a", Name: "old"}})

	// Act
	ok := c.Update(record{ID: "zzz", Name: "new"})

	// Assert
	assert.False(t, ok)
	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "old", items[0].Name)
}

func TestRemoveOnlyDropsConfirmedKey(t *testing.T) {
	// Arrange
	c := newTestCollection()
	c.Replace([]record{{ID: "a"}, {ID: "b"}})

	// Act
	assert.True(t, c.Remove("a"))
	assert.False(t, c.Remove("a"))

	// Assert
	_, found := c.Get("a")
	assert.False(t, found)
	_, found = c.Get("b")
	assert.True(t, found)
}

func TestFilterIsCaseInsensitiveSubstring(t *testing.T) {
	// Arrange
	c := newTestCollection()
	c.Replace([]record{
		{ID: "1", Name: "Chicken Biryani", Category: "Main Course"},
		{ID: "2", Name: "Gulab Jamun", Category: "Dessert"},
		{ID: "3", Name: "Mango Lassi", Category: "Beverage"},
	})
	fields := func(r record) []string { return []string{r.Name, r.Category} }

	tests := []struct {
		name string
		term string
		want int
	}{
		{name: "empty term returns all", term: "", want: 3},
		{name: "name match", term: "biryani", want: 1},
		{name: "category match", term: "DESSERT", want: 1},
		{name: "no match", term: "sushi", want: 0},
	}

	for _, tt := range tests {
		// Act
		got := c.Filter(tt.term, fields)

		// Assert
		assert.Len(t, got, tt.want, tt.name)
	}
}

func TestFilterDoesNotMutateCollection(t *testing.T) {
	c := newTestCollection()
	c.Replace([]record{{ID: "1", Name: "Chicken Biryani"}})

	_ = c.Filter("nothing", func(r record) []string { return []string{r.Name} })

	assert.Equal(t, 1, c.Len())
}
