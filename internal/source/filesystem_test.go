package source

import (
	"errors"
	"io"
	"io/fs"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryFileSystem(t *testing.T) {
	m := NewMemoryFileSystem()
	m.AddFile("./dir/a.csv", "x\n1\n")

	info, err := m.Stat("dir/a.csv")
	require.NoError(t, err)
	assert.Equal(t, "a.csv", info.Name())
	assert.Equal(t, int64(4), info.Size())
	assert.False(t, info.IsDir())

	f, err := m.Open("dir/a.csv")
	require.NoError(t, err)
	defer f.Close()
	content, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "x\n1\n", string(content))

	_, err = m.Open("dir/b.csv")
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	_, err = m.Stat("dir/b.csv")
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestMemoryFileSystem_ConcurrentAccess(t *testing.T) {
	m := NewMemoryFileSystem()
	m.AddFile("a.csv", "x\n")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			m.AddFile("a.csv", "y\n")
		}()
		go func() {
			defer wg.Done()
			if f, err := m.Open("a.csv"); err == nil {
				f.Close()
			}
		}()
	}
	wg.Wait()
}
