package pdf

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRunner is a test double for CommandRunner.
type mockRunner struct {
	output []byte
	err    error
}

func (m *mockRunner) Run(_ context.Context, _ string, _ ...string) ([]byte, error) {
	return m.output, m.err
}

func TestSupportedExtensions(t *testing.T) {
	e := New()
	assert.Equal(t, []string{".pdf"}, e.SupportedExtensions())
}

func TestExtract_SplitsOnFormFeed(t *testing.T) {
	e := NewWithRunner(&mockRunner{output: []byte("page one text\fpage two text\fpage three\f")})

	pages, err := e.Extract(context.Background(), "/docs/manual.pdf")
	require.NoError(t, err)
	require.Len(t, pages, 3)

	assert.Equal(t, "manual.pdf", pages[0].Filename)
	assert.Equal(t, 1, pages[0].Number)
	assert.Equal(t, "page one text", pages[0].Text)
	assert.Equal(t, 3, pages[2].Number)
}

func TestExtract_SkipsWhitespacePages(t *testing.T) {
	e := NewWithRunner(&mockRunner{output: []byte("intro\f   \n\t\fconclusion\f")})

	pages, err := e.Extract(context.Background(), "manual.pdf")
	require.NoError(t, err)
	require.Len(t, pages, 2)

	// Numbering stays anchored to the document, not the filtered list.
	assert.Equal(t, 1, pages[0].Number)
	assert.Equal(t, 3, pages[1].Number)
}

func TestExtract_RunnerError(t *testing.T) {
	e := NewWithRunner(&mockRunner{err: errors.New("exec: pdftotext not found")})

	pages, err := e.Extract(context.Background(), "manual.pdf")
	assert.Error(t, err)
	assert.Nil(t, pages)
}

func TestExtract_EmptyDocument(t *testing.T) {
	e := NewWithRunner(&mockRunner{output: []byte("")})

	pages, err := e.Extract(context.Background(), "manual.pdf")
	require.NoError(t, err)
	assert.Empty(t, pages)
}
