package cli

import (
	"bytes"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/supporta-cli/internal/core/ports/driving"
)

func TestVoiceCmd_Use(t *testing.T) {
	assert.Equal(t, "voice [audio-file]", voiceCmd.Use)
}

func TestVoiceCmd_HasOutputFlag(t *testing.T) {
	flag := voiceCmd.Flags().Lookup("output")
	require.NotNil(t, flag, "output flag should exist")
	assert.Equal(t, "o", flag.Shorthand)
}

func TestVoiceCmd_WritesDecodedImage(t *testing.T) {
	dir := t.TempDir()
	audioPath := filepath.Join(dir, "note.mp3")
	require.NoError(t, os.WriteFile(audioPath, []byte("fake audio bytes"), 0600))

	imageBytes := []byte("fake png bytes")
	voice := &fakeVoice{
		result: driving.VoiceResult{
			Transcript:  "a cat on a skateboard",
			ImagePrompt: "A photorealistic cat riding a skateboard at sunset",
			ImageB64:    base64.StdEncoding.EncodeToString(imageBytes),
		},
	}
	restore := swapServices(nil, nil, voice, nil)
	defer restore()

	outPath := filepath.Join(dir, "out.png")
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"voice", audioPath, "--output", outPath})
	defer func() {
		voiceOutput = ""
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, []byte("fake audio bytes"), voice.audio)
	assert.Contains(t, buf.String(), "Transcript: a cat on a skateboard")
	assert.Contains(t, buf.String(), "Image prompt: A photorealistic cat")
	assert.Contains(t, buf.String(), outPath)

	written, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, imageBytes, written)
}

func TestVoiceCmd_DefaultsOutputNextToAudio(t *testing.T) {
	dir := t.TempDir()
	audioPath := filepath.Join(dir, "note.wav")
	require.NoError(t, os.WriteFile(audioPath, []byte("audio"), 0600))

	voice := &fakeVoice{
		result: driving.VoiceResult{
			Transcript:  "transcript",
			ImagePrompt: "prompt",
			ImageB64:    base64.StdEncoding.EncodeToString([]byte("image")),
		},
	}
	restore := swapServices(nil, nil, voice, nil)
	defer restore()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"voice", audioPath})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "note.png"))
	assert.NoError(t, err)
}

func TestVoiceCmd_MissingAudioFile(t *testing.T) {
	voice := &fakeVoice{}
	restore := swapServices(nil, nil, voice, nil)
	defer restore()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"voice", filepath.Join(t.TempDir(), "missing.mp3")})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "read audio file")
}

func TestVoiceCmd_PipelineErrorFailsCommand(t *testing.T) {
	dir := t.TempDir()
	audioPath := filepath.Join(dir, "note.mp3")
	require.NoError(t, os.WriteFile(audioPath, []byte("audio"), 0600))

	voice := &fakeVoice{err: errors.New("transcribe: no speech detected")}
	restore := swapServices(nil, nil, voice, nil)
	defer restore()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"voice", audioPath})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no speech detected")
}
