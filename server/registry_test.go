package server

import (
	"mio-go"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func openTestFile(t *testing.T, dir string, name string) *mio.File {
	t.Helper()
	f, err := mio.Open(filepath.Join(dir, name), mio.ModeWriteTruncate)
	assert.Nil(t, err)
	return f
}

func TestRegistry_PutGetDelete(t *testing.T) {
	dir, _ := os.MkdirTemp("", "mio-go-registry")
	defer os.RemoveAll(dir)

	r := NewRegistry()
	id1 := r.Put(openTestFile(t, dir, "a.txt"))
	id2 := r.Put(openTestFile(t, dir, "b.txt"))
	assert.Equal(t, int64(1), id1)
	assert.Equal(t, int64(2), id2)
	assert.Equal(t, 2, r.Size())

	h := r.Get(id1)
	assert.NotNil(t, h)
	assert.Equal(t, filepath.Join(dir, "a.txt"), h.file.Name())
	assert.Nil(t, r.Get(33))

	h = r.Delete(id1)
	assert.NotNil(t, h)
	assert.Nil(t, h.file.Close())
	assert.Nil(t, r.Delete(id1))
	assert.Nil(t, r.Get(id1))

	// id 不会复用
	id3 := r.Put(openTestFile(t, dir, "c.txt"))
	assert.Equal(t, int64(3), id3)
	assert.Equal(t, []int64{2, 3}, r.Ids())

	assert.Nil(t, r.CloseAll())
	assert.Equal(t, 0, r.Size())
	assert.Empty(t, r.Ids())
}

func TestRegistry_CloseAll_Flush(t *testing.T) {
	dir, _ := os.MkdirTemp("", "mio-go-registry-close")
	defer os.RemoveAll(dir)

	r := NewRegistry()
	f := openTestFile(t, dir, "a.txt")
	_, err := f.PutString("pending")
	assert.Nil(t, err)
	r.Put(f)

	assert.Nil(t, r.CloseAll())
	b, err := os.ReadFile(filepath.Join(dir, "a.txt"))
	assert.Nil(t, err)
	assert.Equal(t, "pending", string(b))
}
