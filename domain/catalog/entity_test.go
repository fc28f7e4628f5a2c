package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGalleryValue(t *testing.T) {
	v, err := Gallery{"a.png", "b.png"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["a.png","b.png"]`, v)

	v, err = Gallery(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestGalleryScan(t *testing.T) {
	tests := []struct {
		name string
		src  any
		want Gallery
	}{
		{name: "string", src: `["x.jpg"]`, want: Gallery{"x.jpg"}},
		{name: "bytes", src: []byte(`["x.jpg","y.jpg"]`), want: Gallery{"x.jpg", "y.jpg"}},
		{name: "nil", src: nil, want: Gallery{}},
		{name: "empty", src: "", want: Gallery{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var g Gallery
			require.NoError(t, g.Scan(tt.src))
			assert.Equal(t, tt.want, g)
		})
	}
}

func TestGalleryScanRejectsUnknownType(t *testing.T) {
	var g Gallery
	assert.Error(t, g.Scan(42))
}
