package width

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOf(t *testing.T) {
	require.Equal(t, 1, Of('A'))
	require.Equal(t, 1, Of('é'))
	require.Equal(t, 2, Of('世'))
	require.Equal(t, 2, Of('😀'))
	// Combining marks attach to the previous cell.
	require.Equal(t, 0, Of(0x0301))
}

func TestIsCombining(t *testing.T) {
	require.True(t, IsCombining(0x0301))  // combining acute
	require.True(t, IsCombining(0x200D))  // zero width joiner
	require.False(t, IsCombining('A'))
	require.False(t, IsCombining('世'))
}

func TestString(t *testing.T) {
	require.Equal(t, 5, String("hello"))
	require.Equal(t, 4, String("世界"))
	// e + combining acute is one column.
	require.Equal(t, 1, String("é"))
}

func TestClusters(t *testing.T) {
	require.Equal(t, []string{"a", "b"}, Clusters("ab"))
	require.Equal(t, []string{"é", "x"}, Clusters("éx"))
	require.Nil(t, Clusters(""))
}
