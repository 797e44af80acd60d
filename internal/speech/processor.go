package speech

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"time"
	"unicode/utf8"

	"voice-server/internal/observability"
)

// truncateLimit bounds the retry utterance when the upstream synthesis
// times out on a long reply.
const truncateLimit = 240

// Synthesizer is the upstream text-to-speech client.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voiceID string) ([]byte, error)
	SynthesizeStream(ctx context.Context, text, voiceID string) (io.ReadCloser, error)
}

// PreparedAudio is a synthesized utterance ready for playback, addressed
// by a signed expiring pull URL.
type PreparedAudio struct {
	AudioID string
	URL     string
	Cached  bool
}

// Processor turns agent replies into playable audio. Repeated phrases
// (greetings, confirmations) are served from a bounded TTL cache so the
// common path never waits on the synthesis API.
type Processor struct {
	synthesizer Synthesizer
	cache       *audioCache
	signer      *URLSigner
	logger      *observability.Logger
}

func NewProcessor(synthesizer Synthesizer, signer *URLSigner, cacheTTL time.Duration, cacheMaxItems int, logger *observability.Logger) *Processor {
	return &Processor{
		synthesizer: synthesizer,
		cache:       newAudioCache(cacheTTL, cacheMaxItems),
		signer:      signer,
		logger:      logger,
	}
}

// Prepare synthesizes text for the given voice and returns a signed pull
// URL for it. Cache hits skip the upstream call entirely. On an upstream
// timeout the synthesis is retried once with the text truncated, trading
// completeness of a long reply for getting any audio back to the caller.
func (p *Processor) Prepare(ctx context.Context, text, voiceID string) (PreparedAudio, error) {
	key := CacheKey(text, voiceID)

	if _, ok := p.cache.Get(key); ok {
		url, err := p.signer.SignURL(key)
		if err != nil {
			return PreparedAudio{}, err
		}
		return PreparedAudio{AudioID: key, URL: url, Cached: true}, nil
	}

	audio, err := p.synthesizer.Synthesize(ctx, text, voiceID)
	if err != nil && isTimeout(err) && len(text) > truncateLimit {
		truncated := truncateAtWord(text, truncateLimit)
		fields := observability.WithFields(ctx,
			observability.Field{Key: "original_len", Value: len(text)},
			observability.Field{Key: "truncated_len", Value: len(truncated)})
		p.logger.Warn(fields, "synthesis timed out, retrying with truncated text")
		audio, err = p.synthesizer.Synthesize(ctx, truncated, voiceID)
	}
	if err != nil {
		return PreparedAudio{}, fmt.Errorf("speech synthesis failed: %w", err)
	}

	p.cache.Set(key, audio)
	url, err := p.signer.SignURL(key)
	if err != nil {
		return PreparedAudio{}, err
	}
	return PreparedAudio{AudioID: key, URL: url}, nil
}

// Audio returns the cached audio for an id minted by Prepare.
func (p *Processor) Audio(audioID string) ([]byte, bool) {
	return p.cache.Get(audioID)
}

// VerifyToken validates a pull URL token for an audio id.
func (p *Processor) VerifyToken(audioID, token string) error {
	return p.signer.Verify(audioID, token)
}

// Stream opens a low-latency synthesis stream, bypassing the cache. Used
// for media-stream playback where audio is forwarded as it arrives.
func (p *Processor) Stream(ctx context.Context, text, voiceID string) (io.ReadCloser, error) {
	return p.synthesizer.SynthesizeStream(ctx, text, voiceID)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func truncateAtWord(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	cut := text[:limit]
	// Never cut through a multi-byte rune.
	for len(cut) > 0 && !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut
}
