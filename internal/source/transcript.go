package source

import (
	"context"
	"fmt"
	"strings"
	"time"

	youtube "github.com/kkdai/youtube/v2"

	"briefdesk/internal/model"
)

// TranscriptReader fetches the caption transcript of a YouTube video
type TranscriptReader struct {
	client *youtube.Client
}

// NewTranscriptReader creates a new transcript reader
func NewTranscriptReader() *TranscriptReader {
	return &TranscriptReader{client: &youtube.Client{}}
}

// Kind returns the source kind this reader handles
func (r *TranscriptReader) Kind() model.SourceKind {
	return model.SourceTranscript
}

// Read fetches the video's transcript and concatenates its segments in
// chronological order. English is preferred; otherwise the first
// available caption track is used.
func (r *TranscriptReader) Read(ctx context.Context, req model.SourceRequest) (*model.SourceDocument, error) {
	videoID, err := youtube.ExtractVideoID(req.VideoID)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a video URL or ID: %v", ErrParse, req.VideoID, err)
	}

	video, err := r.client.GetVideoContext(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("%w: video %s: %v", ErrUnavailable, videoID, err)
	}

	transcript, err := r.client.GetTranscriptCtx(ctx, video, "en")
	if err != nil {
		// Fall back to the first available caption language
		lang := firstCaptionLanguage(video)
		if lang == "" || lang == "en" {
			return nil, fmt.Errorf("%w: transcript for %s: %v", ErrUnavailable, videoID, err)
		}
		transcript, err = r.client.GetTranscriptCtx(ctx, video, lang)
		if err != nil {
			return nil, fmt.Errorf("%w: transcript for %s: %v", ErrUnavailable, videoID, err)
		}
	}

	text := joinSegments(transcript)
	return &model.SourceDocument{
		Kind:        model.SourceTranscript,
		Identifier:  videoID,
		Text:        text,
		Chars:       len(text),
		RetrievedAt: time.Now().UTC(),
	}, nil
}

// firstCaptionLanguage returns the language code of the first caption
// track the video advertises
func firstCaptionLanguage(video *youtube.Video) string {
	if len(video.CaptionTracks) == 0 {
		return ""
	}
	return video.CaptionTracks[0].LanguageCode
}

// joinSegments concatenates caption segments in order, dropping entries
// that are empty after trimming
func joinSegments(transcript youtube.VideoTranscript) string {
	var parts []string
	for _, seg := range transcript {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, " ")
}
