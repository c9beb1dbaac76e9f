package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMetadata(t *testing.T) {
	t.Parallel()

	md := NewMetadata(45, Params{Page: 3, PageSize: 20})
	assert.Equal(t, 45, md.Total)
	assert.Equal(t, 3, md.CurrentPage)
	assert.Equal(t, 3, md.TotalPages)

	md = NewMetadata(40, Params{Page: 1, PageSize: 20})
	assert.Equal(t, 2, md.TotalPages)

	md = NewMetadata(0, Params{Page: 1, PageSize: 20})
	assert.Equal(t, 0, md.TotalPages)
}

func TestOffset(t *testing.T) {
	t.Parallel()

	p := Params{Page: 1, PageSize: 10}
	assert.Equal(t, 0, p.Offset())

	p.Page = 4
	assert.Equal(t, 30, p.Offset())
}
