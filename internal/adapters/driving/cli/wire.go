package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/custodia-labs/supporta-cli/internal/adapters/driven/config/file"
	sqlitedb "github.com/custodia-labs/supporta-cli/internal/adapters/driven/database/sqlite"
	openaiembed "github.com/custodia-labs/supporta-cli/internal/adapters/driven/embedding/openai"
	openaiimage "github.com/custodia-labs/supporta-cli/internal/adapters/driven/image/openai"
	memoryindex "github.com/custodia-labs/supporta-cli/internal/adapters/driven/index/memory"
	sqliteindex "github.com/custodia-labs/supporta-cli/internal/adapters/driven/index/sqlite"
	openaillm "github.com/custodia-labs/supporta-cli/internal/adapters/driven/llm/openai"
	openaispeech "github.com/custodia-labs/supporta-cli/internal/adapters/driven/speech/openai"
	"github.com/custodia-labs/supporta-cli/internal/adapters/driven/tokenizer/tiktoken"
	githubtracker "github.com/custodia-labs/supporta-cli/internal/adapters/driven/tracker/github"
	"github.com/custodia-labs/supporta-cli/internal/core/domain"
	"github.com/custodia-labs/supporta-cli/internal/core/ports/driven"
	"github.com/custodia-labs/supporta-cli/internal/core/services"
	"github.com/custodia-labs/supporta-cli/internal/extractors/pdf"
	"github.com/custodia-labs/supporta-cli/internal/extractors/plaintext"
	"github.com/custodia-labs/supporta-cli/internal/postprocessors/chunker"
)

// Config keys. Credentials resolve environment first, then config, so
// CI and containers can inject secrets without touching config.toml.
const (
	keyOpenAIAPIKey   = "openai.api_key"
	keyChatModel      = "openai.chat_model"
	keyEmbeddingModel = "openai.embedding_model"
	keySpeechModel    = "openai.speech_model"
	keyImageModel     = "openai.image_model"
	keyGitHubToken    = "github.token"
	keyGitHubRepo     = "github.repo"
	keyDatabasePath   = "database.path"
	keyDataDir        = "data.dir"
	keyIndexBackend   = "index.backend"
	keyChunkSize      = "ingest.chunk_size"
	keyChunkOverlap   = "ingest.chunk_overlap"
	keyTopK           = "support.top_k"
)

var (
	configStore *file.ConfigStore
	promptStore *file.PromptStore
)

// errNoAPIKey is returned when no OpenAI credential can be resolved.
var errNoAPIKey = errors.New("no OpenAI API key configured: set OPENAI_API_KEY or run `supporta config set openai.api_key <key>`")

// openConfig initialises the config and prompt stores. Idempotent.
func openConfig() error {
	if configStore != nil {
		return nil
	}

	cfg, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}

	prompts, err := file.NewPromptStore("")
	if err != nil {
		return fmt.Errorf("open prompt store: %w", err)
	}

	configStore = cfg
	promptStore = prompts
	return nil
}

// resolveCredential returns the environment variable value if set,
// otherwise the config value.
func resolveCredential(envVar, configKey string) string {
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	return configStore.GetString(configKey)
}

func openAIKey() (string, error) {
	key := resolveCredential("OPENAI_API_KEY", keyOpenAIAPIKey)
	if key == "" {
		return "", errNoAPIKey
	}
	return key, nil
}

func buildChatService() (driven.ChatService, error) {
	key, err := openAIKey()
	if err != nil {
		return nil, err
	}

	return openaillm.NewChatService(openaillm.ChatConfig{
		APIKey: key,
		Model:  configStore.GetString(keyChatModel),
	})
}

func buildEmbeddingService() (driven.EmbeddingService, error) {
	key, err := openAIKey()
	if err != nil {
		return nil, err
	}

	return openaiembed.NewEmbeddingService(openaiembed.Config{
		APIKey: key,
		Model:  configStore.GetString(keyEmbeddingModel),
	})
}

// buildVectorIndex selects the index backend. "memory" gives an
// ephemeral session index; anything else is the persistent sqlite
// store.
func buildVectorIndex() (driven.VectorIndex, error) {
	if configStore.GetString(keyIndexBackend) == "memory" {
		return memoryindex.NewIndex(sqliteindex.DefaultCollection), nil
	}
	return sqliteindex.NewIndex(configStore.GetString(keyDataDir), "")
}

func buildTracker(ctx context.Context) (driven.IssueTracker, error) {
	return githubtracker.New(ctx, githubtracker.Config{
		Token: resolveCredential("GITHUB_TOKEN", keyGitHubToken),
		Repo:  resolveCredential("GITHUB_REPO", keyGitHubRepo),
	})
}

// ensureSupportService wires the retrieval-augmented chat service.
// No-op when a service is already present (tests inject fakes).
func ensureSupportService(ctx context.Context) error {
	if supportService != nil {
		return nil
	}
	if err := openConfig(); err != nil {
		return err
	}

	chat, err := buildChatService()
	if err != nil {
		return err
	}
	embedder, err := buildEmbeddingService()
	if err != nil {
		return err
	}
	index, err := buildVectorIndex()
	if err != nil {
		return err
	}
	tracker, err := buildTracker(ctx)
	if err != nil {
		return err
	}

	var opts []services.SupportOption
	if topK := configStore.GetInt(keyTopK); topK > 0 {
		opts = append(opts, services.WithTopK(topK))
	}

	svc := services.NewSupportService(chat, embedder, index, tracker, opts...)
	svc.SetPromptStore(promptStore)
	supportService = svc
	return nil
}

// ensureDataChatService wires the database chat agent against the
// SQLite file at path.
func ensureDataChatService(ctx context.Context, path string) error {
	if dataChatService != nil {
		return nil
	}
	if err := openConfig(); err != nil {
		return err
	}

	if path == "" {
		path = configStore.GetString(keyDatabasePath)
	}
	if path == "" {
		return errors.New("no database configured: pass --db or set database.path")
	}

	chat, err := buildChatService()
	if err != nil {
		return err
	}
	db, err := sqlitedb.Open(path)
	if err != nil {
		return err
	}
	tracker, err := buildTracker(ctx)
	if err != nil {
		return err
	}

	svc := services.NewDataChatService(chat, db, tracker)
	svc.SetPromptStore(promptStore)
	dataChatService = svc
	return nil
}

// ensureVoiceService wires the voice-to-image pipeline.
func ensureVoiceService() error {
	if voiceService != nil {
		return nil
	}
	if err := openConfig(); err != nil {
		return err
	}

	key, err := openAIKey()
	if err != nil {
		return err
	}

	stt, err := openaispeech.NewTranscriptionService(openaispeech.Config{
		APIKey: key,
		Model:  configStore.GetString(keySpeechModel),
	})
	if err != nil {
		return err
	}
	chat, err := buildChatService()
	if err != nil {
		return err
	}
	image, err := openaiimage.NewImageService(openaiimage.Config{
		APIKey: key,
		Model:  configStore.GetString(keyImageModel),
	})
	if err != nil {
		return err
	}

	svc := services.NewVoiceService(stt, chat, image)
	svc.SetPromptStore(promptStore)
	voiceService = svc
	return nil
}

// ensureIngestService wires the document ingestion pipeline.
func ensureIngestService() error {
	if ingestService != nil {
		return nil
	}
	if err := openConfig(); err != nil {
		return err
	}

	embedder, err := buildEmbeddingService()
	if err != nil {
		return err
	}
	index, err := buildVectorIndex()
	if err != nil {
		return err
	}

	tokenizer, err := tiktoken.New("")
	if err != nil {
		return fmt.Errorf("load tokenizer: %w", err)
	}

	var chunkOpts []chunker.Option
	if size := configStore.GetInt(keyChunkSize); size > 0 {
		chunkOpts = append(chunkOpts, chunker.WithChunkSize(size))
	}
	if overlap := configStore.GetInt(keyChunkOverlap); overlap > 0 {
		chunkOpts = append(chunkOpts, chunker.WithOverlap(overlap))
	}
	processor, err := chunker.New(tokenizer, chunkOpts...)
	if err != nil {
		return fmt.Errorf("configure chunker: %w", err)
	}

	extractors := []driven.PageExtractor{pdf.New(), plaintext.New()}
	ingestService = services.NewIngestService(extractors, processor, embedder, index)
	return nil
}

// indexStats reads index statistics. Unlike full ingestion wiring this
// needs no model credentials, so stats stays usable before any key is
// configured.
func indexStats(ctx context.Context) (domain.IndexStats, error) {
	if ingestService != nil {
		return ingestService.Stats(ctx)
	}
	if err := openConfig(); err != nil {
		return domain.IndexStats{}, err
	}

	index, err := buildVectorIndex()
	if err != nil {
		return domain.IndexStats{}, err
	}
	return index.Stats(ctx)
}

// clearIndex empties the vector index. Like indexStats it avoids
// model-credential wiring.
func clearIndex(ctx context.Context) error {
	if ingestService != nil {
		return ingestService.Clear(ctx)
	}
	if err := openConfig(); err != nil {
		return err
	}

	index, err := buildVectorIndex()
	if err != nil {
		return err
	}
	return index.Clear(ctx)
}
