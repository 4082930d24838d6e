package cli

import (
	"context"

	"github.com/custodia-labs/supporta-cli/internal/core/domain"
	"github.com/custodia-labs/supporta-cli/internal/core/ports/driving"
)

// fakeSupport is a canned SupportService for command tests.
type fakeSupport struct {
	reply  domain.Reply
	stats  domain.IndexStats
	resets int
	asked  []string
}

func (f *fakeSupport) Query(_ context.Context, userMessage string) domain.Reply {
	f.asked = append(f.asked, userMessage)
	return f.reply
}

func (f *fakeSupport) Stats(context.Context) (domain.IndexStats, error) { return f.stats, nil }

func (f *fakeSupport) Reset() { f.resets++ }

// fakeDataChat is a canned DataChatService for command tests.
type fakeDataChat struct {
	answer  string
	err     error
	samples []driving.SampleQuery
	resets  int
	asked   []string
}

func (f *fakeDataChat) Chat(_ context.Context, userMessage string) (string, error) {
	f.asked = append(f.asked, userMessage)
	return f.answer, f.err
}

func (f *fakeDataChat) SampleQueries() []driving.SampleQuery { return f.samples }

func (f *fakeDataChat) Reset() { f.resets++ }

// fakeVoice is a canned VoiceService for command tests.
type fakeVoice struct {
	result driving.VoiceResult
	err    error
	audio  []byte
}

func (f *fakeVoice) Run(_ context.Context, audio []byte, _ string) (driving.VoiceResult, error) {
	f.audio = audio
	return f.result, f.err
}

// fakeIngest is a canned IngestService for command tests.
type fakeIngest struct {
	report  driving.IngestReport
	stats   domain.IndexStats
	err     error
	cleared bool
	paths   []string
}

func (f *fakeIngest) IngestFile(_ context.Context, path string) (driving.IngestReport, error) {
	f.paths = append(f.paths, path)
	return f.report, f.err
}

func (f *fakeIngest) IngestDirectory(_ context.Context, dir string) (driving.IngestReport, error) {
	f.paths = append(f.paths, dir)
	return f.report, f.err
}

func (f *fakeIngest) Stats(context.Context) (domain.IndexStats, error) { return f.stats, f.err }

func (f *fakeIngest) Clear(context.Context) error {
	f.cleared = true
	return f.err
}

// swapServices installs fakes for every driving port and returns a
// restore function.
func swapServices(support driving.SupportService, data driving.DataChatService,
	voice driving.VoiceService, ingest driving.IngestService) func() {
	origSupport := supportService
	origData := dataChatService
	origVoice := voiceService
	origIngest := ingestService

	supportService = support
	dataChatService = data
	voiceService = voice
	ingestService = ingest

	return func() {
		supportService = origSupport
		dataChatService = origData
		voiceService = origVoice
		ingestService = origIngest
	}
}
