package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/supporta-cli/internal/core/domain"
	"github.com/custodia-labs/supporta-cli/internal/core/ports/driving"
)

func TestIngestCmd_Use(t *testing.T) {
	assert.Equal(t, "ingest [path]", ingestCmd.Use)
}

func TestIngestCmd_File(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "manual.txt")
	require.NoError(t, os.WriteFile(docPath, []byte("some documentation"), 0600))

	ingest := &fakeIngest{report: driving.IngestReport{Documents: 1, Pages: 3, Chunks: 12}}
	restore := swapServices(nil, nil, nil, ingest)
	defer restore()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ingest", docPath})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, []string{docPath}, ingest.paths)
	assert.Contains(t, buf.String(), "Ingested 1 document(s): 3 pages, 12 chunks")
}

func TestIngestCmd_Directory(t *testing.T) {
	dir := t.TempDir()

	ingest := &fakeIngest{report: driving.IngestReport{Documents: 4, Pages: 9, Chunks: 40}}
	restore := swapServices(nil, nil, nil, ingest)
	defer restore()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ingest", dir})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, []string{dir}, ingest.paths)
	assert.Contains(t, buf.String(), "Ingested 4 document(s)")
}

func TestIngestCmd_MissingPath(t *testing.T) {
	ingest := &fakeIngest{}
	restore := swapServices(nil, nil, nil, ingest)
	defer restore()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ingest", filepath.Join(t.TempDir(), "nope.pdf")})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Empty(t, ingest.paths)
}

func TestIngestCmd_ServiceErrorFailsCommand(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "firmware.bin")
	require.NoError(t, os.WriteFile(docPath, []byte{0x00}, 0600))

	ingest := &fakeIngest{err: domain.ErrUnsupportedDocument}
	restore := swapServices(nil, nil, nil, ingest)
	defer restore()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ingest", docPath})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnsupportedDocument))
}
