package importer

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tally-home/tally/internal/model"
	"github.com/tally-home/tally/internal/rules"
)

type stubParser struct{ format string }

func (s stubParser) Format() string { return s.format }
func (s stubParser) Parse(io.Reader) (model.Batch, error) { return model.Batch{}, nil }

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register(stubParser{format: "Zeta"})
	r.Register(stubParser{format: "alpha"})

	assert.NotNil(t, r.Get("zeta"))
	assert.NotNil(t, r.Get("ALPHA"))
	assert.Nil(t, r.Get("chase"))
	assert.Equal(t, []string{"alpha", "zeta"}, r.Formats())

	assert.Panics(t, func() { r.Register(stubParser{format: "ZETA"}) })
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry(rules.Default())
	assert.Equal(t, []string{"rbc"}, r.Formats())

	p, ok := r.Get("rbc").(*RBCParser)
	require.True(t, ok)
	assert.NotNil(t, p.Rules)
}

func TestScan(t *testing.T) {
	root := t.TempDir()

	files, err := Scan(root)
	require.NoError(t, err)
	assert.Empty(t, files, "missing import dir is not an error")

	dir := filepath.Join(root, "import")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "processed"), 0o755))
	for _, name := range []string{"b.csv", "a.CSV", ".hidden.csv", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	files, err = Scan(root)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "a.CSV", files[0].Name)
	assert.Equal(t, "b.csv", files[1].Name)
	assert.Equal(t, filepath.Join(dir, "b.csv"), files[1].Path)
	assert.Equal(t, int64(1), files[1].Size)
}

func TestMarkProcessed(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "import")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	write := func(body string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "jan.csv"), []byte(body), 0o644))
	}

	write("first")
	dst, err := MarkProcessed(root, "jan.csv", time.Now())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "import", "processed", "jan.csv"), dst)
	assert.NoFileExists(t, filepath.Join(dir, "jan.csv"))

	write("second")
	now := time.Date(2024, 2, 1, 8, 15, 0, 0, time.UTC)
	dst, err = MarkProcessed(root, "jan.csv", now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "import", "processed", "jan-20240201T081500.csv"), dst)

	data, err := os.ReadFile(filepath.Join(root, "import", "processed", "jan.csv"))
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))

	_, err = MarkProcessed(root, "missing.csv", now)
	assert.Error(t, err)
}
