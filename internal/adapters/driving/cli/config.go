package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit configuration",
	Long: `Reads and writes keys in the Supporta config file (~/.supporta/config.toml).

Common keys:
  openai.api_key          OpenAI API key (env OPENAI_API_KEY overrides)
  openai.chat_model       Chat model (default: gpt-4o-mini)
  openai.embedding_model  Embedding model (default: text-embedding-3-small)
  github.token            GitHub token for ticket creation (env GITHUB_TOKEN overrides)
  github.repo             Ticket repository, owner/name (env GITHUB_REPO overrides)
  database.path           SQLite database for the data assistant
  index.backend           Vector index backend: sqlite (default) or memory (ephemeral)
  ingest.chunk_size       Chunk size in tokens (default: 500)
  ingest.chunk_overlap    Chunk overlap in tokens (default: 50)
  support.top_k           Chunks retrieved per question (default: 3)`,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := openConfig(); err != nil {
			return err
		}

		key := args[0]
		val, ok := configStore.Get(key)
		if !ok {
			cmd.Printf("%s: (not set)\n", key)
			return nil
		}

		if str, isString := val.(string); isString && isSecretKey(key) {
			cmd.Printf("%s: %s\n", key, maskSecret(str))
			return nil
		}
		cmd.Printf("%s: %v\n", key, val)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := openConfig(); err != nil {
			return err
		}

		key := args[0]
		if err := configStore.Set(key, parseValue(args[1])); err != nil {
			return err
		}

		cmd.Printf("%s updated\n", key)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := openConfig(); err != nil {
			return err
		}

		cmd.Println(configStore.Path())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

// parseValue converts a CLI argument into the most specific TOML type.
func parseValue(raw string) any {
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}

// isSecretKey reports whether a config key holds a credential.
func isSecretKey(key string) bool {
	return strings.HasSuffix(key, "api_key") || strings.HasSuffix(key, "token")
}

func maskSecret(secret string) string {
	if len(secret) <= 8 {
		return "****"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}
