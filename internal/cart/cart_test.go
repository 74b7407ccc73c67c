package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/mabego/edustream/internal/assert"
)

var (
	react  = Item{ID: 1, Title: "Introduction to React Development", Price: 4999, OriginalPrice: 7999}
	python = Item{ID: 4, Title: "Data Science with Python", Price: 7999}
)

func TestCart(t *testing.T) {
	var c Cart

	assert.Equal(t, c.Add(react), true)
	assert.Equal(t, c.Add(python), true)
	assert.Equal(t, c.Add(react), false)
	assert.Equal(t, c.ItemCount, 2)
	assert.Equal(t, c.Total, int64(12998))
	assert.Equal(t, c.Tax(), int64(1300))
	assert.Equal(t, c.TotalWithTax(), int64(14298))

	c.Remove(react.ID)
	assert.Equal(t, c.ItemCount, 1)
	assert.Equal(t, c.Total, int64(7999))
	assert.Equal(t, c.Contains(react.ID), false)

	c.Remove(99)
	assert.Equal(t, c.ItemCount, 1)

	c.Clear()
	assert.Equal(t, c.Empty(), true)
	assert.Equal(t, c.Total, int64(0))
}

func TestCartVisibility(t *testing.T) {
	var c Cart

	c.Toggle()
	assert.Equal(t, c.IsOpen, true)
	c.Toggle()
	assert.Equal(t, c.IsOpen, false)
	c.Open()
	c.Open()
	assert.Equal(t, c.IsOpen, true)
	c.Close()
	assert.Equal(t, c.IsOpen, false)
}

func TestFormatCents(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{cents: 0, want: "$0.00"},
		{cents: 5, want: "$0.05"},
		{cents: 4999, want: "$49.99"},
		{cents: 14298, want: "$142.98"},
		{cents: -150, want: "-$1.50"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, FormatCents(tt.cents), tt.want)
		})
	}
}

func TestLoadSave(t *testing.T) {
	ctx := context.Background()
	store := &MemoryStore{}

	c, err := Load(ctx, store)
	assert.NilError(t, err)
	assert.Equal(t, c.Empty(), true)

	c.Add(react)
	c.Add(python)
	c.Open()
	assert.NilError(t, Save(ctx, store, c))

	loaded, err := Load(ctx, store)
	assert.NilError(t, err)
	assert.Equal(t, loaded.ItemCount, 2)
	assert.Equal(t, loaded.Total, c.Total)
	assert.Equal(t, loaded.IsOpen, false)
	assert.Equal(t, loaded.Items[0].Title, react.Title)
}

func TestLoadDeduplicates(t *testing.T) {
	ctx := context.Background()
	store := &MemoryStore{}
	_ = store.Save(ctx, Key, []byte(`{"items":[{"id":1,"price":4999},{"id":1,"price":4999}]}`))

	c, err := Load(ctx, store)
	assert.NilError(t, err)
	assert.Equal(t, c.ItemCount, 1)
	assert.Equal(t, c.Total, int64(4999))
}

func TestLoadCorrupt(t *testing.T) {
	ctx := context.Background()
	store := &MemoryStore{}
	_ = store.Save(ctx, Key, []byte(`{"items":`))

	c, err := Load(ctx, store)
	assert.Equal(t, errors.Is(err, ErrCorrupt), true)
	assert.Equal(t, c.Empty(), true)
}
