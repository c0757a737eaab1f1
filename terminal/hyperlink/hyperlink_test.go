package hyperlink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hnimtadd/termcore/terminal/set"
)

func TestInterning(t *testing.T) {
	links := set.NewRefCountedSet(set.Options{})

	a, err := links.Add(Hyperlink{URI: "https://example.com"})
	require.NoError(t, err)
	b, err := links.Add(Hyperlink{URI: "https://example.com"})
	require.NoError(t, err)
	c, err := links.Add(Hyperlink{URI: "https://example.com", ID: "x"})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, NoID, a)
}

func TestReleaseFreesID(t *testing.T) {
	links := set.NewRefCountedSet(set.Options{Cap: 4})

	id, err := links.Add(Hyperlink{URI: "https://a"})
	require.NoError(t, err)
	links.Release(id)
	assert.Equal(t, 0, links.Count())

	// The freed slot is reusable.
	id2, err := links.Add(Hyperlink{URI: "https://b"})
	require.NoError(t, err)
	assert.Equal(t, id, id2)
}

func TestCapacityExceeded(t *testing.T) {
	links := set.NewRefCountedSet(set.Options{Cap: 2})

	_, err := links.Add(Hyperlink{URI: "https://1"})
	require.NoError(t, err)
	_, err = links.Add(Hyperlink{URI: "https://2"})
	require.NoError(t, err)
	_, err = links.Add(Hyperlink{URI: "https://3"})
	assert.ErrorIs(t, err, set.ErrFull)
}
