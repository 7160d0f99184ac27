package timeline

import (
	"errors"
	"log/slog"
	"strings"

	"newsreel/internal/logging"
	"newsreel/internal/textutil"
	"newsreel/internal/transcript"
)

// Default tuning for the synchronizer. The fallback advance is deliberately a
// tunable, not a semantic constant: when it fires, the transcript and script
// disagree badly enough that the upstream pairing deserves a look.
const (
	DefaultAnchorTokens         = 3
	DefaultFallbackAdvanceWords = 10
	DefaultMinSegmentSeconds    = 0.1
)

// Options tunes synchronizer behavior. Zero values select the defaults.
type Options struct {
	// AnchorTokens is how many trailing tokens of a segment's script text
	// form the end anchor (and how many leading tokens of the next segment
	// form the fallback anchor).
	AnchorTokens int
	// FallbackAdvanceWords is the bounded cursor advance used when both
	// anchor searches fail on a non-final segment.
	FallbackAdvanceWords int
	// MinSegmentSeconds is the clamp applied when a computed duration comes
	// out non-positive.
	MinSegmentSeconds float64
}

func (o Options) withDefaults() Options {
	if o.AnchorTokens <= 0 {
		o.AnchorTokens = DefaultAnchorTokens
	}
	if o.FallbackAdvanceWords <= 0 {
		o.FallbackAdvanceWords = DefaultFallbackAdvanceWords
	}
	if o.MinSegmentSeconds <= 0 {
		o.MinSegmentSeconds = DefaultMinSegmentSeconds
	}
	return o
}

// Synchronizer assigns start/end times to narration segments using the word
// timeline. Collaborators are injected at construction; the synchronizer
// itself is stateless across Sync calls.
type Synchronizer struct {
	opts   Options
	logger *slog.Logger
}

// NewSynchronizer builds a synchronizer. A nil logger disables logging.
func NewSynchronizer(logger *slog.Logger, opts Options) *Synchronizer {
	return &Synchronizer{
		opts:   opts.withDefaults(),
		logger: logging.NewComponentLogger(logger, "synchronizer"),
	}
}

// Sync re-times segments onto words. Guarantees for the returned list:
//
//   - the internal cursor only moves forward, so the word index ranges
//     covered by consecutive segments never overlap or regress;
//   - each segment's start is the start of the word at the cursor, so there
//     is zero gap between consecutive segments' covered word ranges;
//   - the final segment is clipped to the last word's end when its anchor
//     cannot be found.
//
// Anchor misses resolve through a three-tier fallback: the next segment's
// leading tokens, then a bounded cursor advance, then (for the final segment)
// the end of the timeline.
func (s *Synchronizer) Sync(segments []NarrationSegment, words []transcript.Word) ([]SyncedSegment, error) {
	if len(words) == 0 {
		return nil, transcript.ErrEmptyTimeline
	}
	if len(segments) == 0 {
		return nil, errors.New("sync: no narration segments")
	}

	synced := make([]SyncedSegment, 0, len(segments))
	cursor := 0

	for i, segment := range segments {
		if cursor >= len(words) {
			cursor = len(words) - 1
		}
		start := words[cursor].Start

		endIndex, nextCursor := s.locateEnd(segments, words, i, cursor)
		if endIndex >= len(words) {
			endIndex = len(words) - 1
		}

		end := words[endIndex].End
		duration := end - start
		if duration <= 0 {
			duration = s.opts.MinSegmentSeconds
			end = start + duration
			s.logger.Warn("clamped degenerate segment duration",
				slog.Int("segment_id", segment.ID),
				slog.Float64("start", start),
				logging.Alert("degenerate_duration"))
		}

		synced = append(synced, SyncedSegment{
			NarrationSegment: segment,
			Start:            start,
			End:              end,
			Duration:         duration,
		})

		s.logger.Debug("segment timed",
			slog.Int("segment_id", segment.ID),
			slog.Float64("start", start),
			slog.Float64("end", end),
			slog.Int("cursor", nextCursor))

		cursor = nextCursor
	}

	return synced, nil
}

// locateEnd finds the index of the last word covered by segment i and the
// cursor position for segment i+1.
func (s *Synchronizer) locateEnd(segments []NarrationSegment, words []transcript.Word, i, cursor int) (endIndex, nextCursor int) {
	segment := segments[i]
	last := len(segments) - 1

	if j, found := FindSequence(words, s.tailAnchor(segment.ScriptPart), cursor); found {
		return j, j + 1
	}

	s.logger.Warn("end anchor not found, trying next segment start",
		slog.Int("segment_id", segment.ID),
		logging.Alert("anchor_miss"))

	if i == last {
		return len(words) - 1, len(words)
	}

	lead, leadTokens := s.leadAnchor(segments[i+1].ScriptPart)
	if leadTokens > 0 {
		if k, found := FindSequence(words, lead, cursor); found {
			// The current segment ends just before the next segment's
			// detected start; the cursor lands on the detected anchor word.
			endIndex = k - leadTokens
			if endIndex < cursor {
				endIndex = cursor
			}
			return endIndex, k
		}
	}

	s.logger.Warn("fallback anchor not found, advancing cursor by fixed window",
		slog.Int("segment_id", segment.ID),
		slog.Int("advance_words", s.opts.FallbackAdvanceWords),
		logging.Alert("anchor_fallback_exhausted"))

	endIndex = cursor + s.opts.FallbackAdvanceWords
	if endIndex > len(words)-1 {
		endIndex = len(words) - 1
	}
	return endIndex, endIndex + 1
}

// tailAnchor returns the last AnchorTokens normalized tokens of text as a
// single phrase.
func (s *Synchronizer) tailAnchor(text string) string {
	tokens := textutil.Tokens(text)
	n := s.opts.AnchorTokens
	if len(tokens) < n {
		n = len(tokens)
	}
	return strings.Join(tokens[len(tokens)-n:], " ")
}

// leadAnchor returns the first AnchorTokens normalized tokens of text and how
// many tokens that is.
func (s *Synchronizer) leadAnchor(text string) (string, int) {
	tokens := textutil.Tokens(text)
	n := s.opts.AnchorTokens
	if len(tokens) < n {
		n = len(tokens)
	}
	return strings.Join(tokens[:n], " "), n
}
