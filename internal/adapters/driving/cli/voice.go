package cli

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var voiceOutput string

var voiceCmd = &cobra.Command{
	Use:   "voice [audio-file]",
	Short: "Turn a voice note into a generated image",
	Long: `Runs the voice-to-image pipeline: transcribes the audio file,
rewrites the transcript into a detailed image prompt, and renders the
image. The decoded image is written next to the audio file unless
--output is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runVoice,
}

func init() {
	voiceCmd.Flags().StringVarP(&voiceOutput, "output", "o", "", "output image path (default: audio file name with .png)")
	rootCmd.AddCommand(voiceCmd)
}

func runVoice(cmd *cobra.Command, args []string) error {
	if err := ensureVoiceService(); err != nil {
		return err
	}

	path := args[0]
	audio, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read audio file: %w", err)
	}

	result, err := voiceService.Run(cmd.Context(), audio, filepath.Base(path))
	if err != nil {
		return err
	}

	cmd.Printf("Transcript: %s\n", result.Transcript)
	cmd.Printf("Image prompt: %s\n", result.ImagePrompt)

	image, err := base64.StdEncoding.DecodeString(result.ImageB64)
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}

	out := voiceOutput
	if out == "" {
		out = strings.TrimSuffix(path, filepath.Ext(path)) + ".png"
	}
	if err := os.WriteFile(out, image, 0644); err != nil {
		return fmt.Errorf("write image: %w", err)
	}

	cmd.Printf("Image written to %s\n", out)
	return nil
}
