package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadmeExcerptShortFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "README.md")
	require.NoError(t, os.WriteFile(path, []byte("# Title\n\nbody\n"), 0o644))

	excerpt, err := readmeExcerpt(path, 100)
	require.NoError(t, err)
	assert.Equal(t, "# Title\n\nbody", excerpt)
}

func TestReadmeExcerptMissingFile(t *testing.T) {
	_, err := readmeExcerpt(filepath.Join(t.TempDir(), "README.md"), 100)
	assert.True(t, os.IsNotExist(err))
}

func TestFirstHeading(t *testing.T) {
	assert.Equal(t, "RFNoC FFT", firstHeading("# RFNoC FFT\n\nSome intro.\n"))
	assert.Equal(t, "Second Level", firstHeading("intro text\n\n## Second Level\n"))
	assert.Equal(t, "", firstHeading("no headings here\n"))
	assert.Equal(t, "", firstHeading(""))
}
