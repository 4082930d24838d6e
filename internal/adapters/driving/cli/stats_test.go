package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/supporta-cli/internal/core/domain"
)

func TestStatsCmd_PrintsIndexState(t *testing.T) {
	ingest := &fakeIngest{stats: domain.IndexStats{Collection: "support_docs", Chunks: 128}}
	restore := swapServices(nil, nil, nil, ingest)
	defer restore()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"stats"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "support_docs")
	assert.Contains(t, buf.String(), "128")
}

func TestClearCmd_ClearsIndex(t *testing.T) {
	ingest := &fakeIngest{}
	restore := swapServices(nil, nil, nil, ingest)
	defer restore()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"clear"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.True(t, ingest.cleared)
	assert.Contains(t, buf.String(), "Index cleared.")
}
