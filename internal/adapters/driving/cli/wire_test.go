package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/supporta-cli/internal/adapters/driven/index/memory"
	"github.com/custodia-labs/supporta-cli/internal/adapters/driven/index/sqlite"
)

func TestBuildVectorIndex_DefaultsToSqlite(t *testing.T) {
	cleanup := setupTestConfig(t)
	defer cleanup()

	require.NoError(t, configStore.Set("data.dir", t.TempDir()))

	index, err := buildVectorIndex()
	require.NoError(t, err)
	defer index.Close()

	assert.IsType(t, &sqlite.Index{}, index)
}

func TestBuildVectorIndex_MemoryBackend(t *testing.T) {
	cleanup := setupTestConfig(t)
	defer cleanup()

	require.NoError(t, configStore.Set("index.backend", "memory"))

	index, err := buildVectorIndex()
	require.NoError(t, err)
	defer index.Close()

	assert.IsType(t, &memory.Index{}, index)
}
