package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/voicelist/errors"
	"github.com/kbukum/voicelist/extraction"
	"github.com/kbukum/voicelist/grocery"
	"github.com/kbukum/voicelist/logger"
	"github.com/kbukum/voicelist/observability"
	"github.com/kbukum/voicelist/server"
	"github.com/kbukum/voicelist/storage"
	"github.com/kbukum/voicelist/transcription"
	"github.com/kbukum/voicelist/util"
)

const (
	// FileField is the multipart field carrying the recording.
	FileField = "file"

	audioSuffix      = ".mp3"
	audioContentType = "audio/mpeg"
)

// Spool stores an upload for the duration of one request.
type Spool interface {
	Acquire(ctx context.Context, suffix string, r io.Reader) (*storage.Scratch, error)
}

// TranscribeResponse is the body of a successful POST /transcribe/.
type TranscribeResponse struct {
	Transcript      string         `json:"transcript"`
	Items           []grocery.Item `json:"items"`
	Extractor       string         `json:"extractor"`
	Warning         string         `json:"warning,omitempty"`
	ExtractionError string         `json:"extraction_error,omitempty"`
}

// Handler serves the transcription endpoint.
type Handler struct {
	transcriber transcription.Provider
	extractors  *extraction.Registry
	spool       Spool
	metrics     *observability.Metrics
	log         *logger.Logger
}

// NewHandler wires the endpoint. metrics may be nil.
func NewHandler(t transcription.Provider, extractors *extraction.Registry, spool Spool, metrics *observability.Metrics, log *logger.Logger) *Handler {
	return &Handler{
		transcriber: t,
		extractors:  extractors,
		spool:       spool,
		metrics:     metrics,
		log:         log.WithComponent("api"),
	}
}

// Register mounts the routes on r.
func (h *Handler) Register(r gin.IRouter) {
	r.POST("/transcribe/", h.Transcribe)
}

// Transcribe handles POST /transcribe/?extractor=heuristic|llm&language=xx.
func (h *Handler) Transcribe(c *gin.Context) {
	ctx := c.Request.Context()
	log := h.log.WithContext(ctx)

	fh, err := c.FormFile(FileField)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			server.RespondWithError(c, apperrors.PayloadTooLarge(util.FormatSize(maxErr.Limit)))
			return
		}
		server.RespondWithError(c, apperrors.MissingField(FileField))
		return
	}
	if !strings.HasSuffix(fh.Filename, audioSuffix) {
		server.RespondWithError(c, apperrors.UnsupportedFile(fh.Filename, "Only .mp3 files are supported"))
		return
	}

	extractor, err := h.extractors.Select(ctx, c.Query("extractor"))
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	upload, err := fh.Open()
	if err != nil {
		server.RespondWithError(c, apperrors.Internal(err))
		return
	}
	scratch, err := h.spool.Acquire(ctx, audioSuffix, upload)
	_ = upload.Close()
	if err != nil {
		log.Error("Failed to spool upload", logger.MergeWithError(logger.Fields(logger.FieldFileName, fh.Filename), err))
		server.RespondWithError(c, apperrors.Internal(err))
		return
	}
	defer func() { _ = scratch.Release(context.WithoutCancel(ctx)) }()

	resp, err := h.run(ctx, extractor, transcription.Request{
		AudioPath:   scratch.Path,
		FileName:    fh.Filename,
		ContentType: audioContentType,
		Language:    c.Query("language"),
	})
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, resp)
}

// Process transcribes an audio file already on disk and extracts items with
// the named extractor (empty selects the default).
func (h *Handler) Process(ctx context.Context, mode string, req transcription.Request) (*TranscribeResponse, error) {
	extractor, err := h.extractors.Select(ctx, mode)
	if err != nil {
		return nil, err
	}
	return h.run(ctx, extractor, req)
}

// run transcribes and extracts. A transcription failure is returned as an
// error; an extraction failure is reported in the response.
func (h *Handler) run(ctx context.Context, extractor extraction.Extractor, req transcription.Request) (*TranscribeResponse, error) {
	ctx, span := observability.StartSpan(ctx, "voicelist.process")
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrExtractor, extractor.Name())
	if id := logger.RequestIDFromContext(ctx); id != "" {
		observability.SetSpanAttribute(ctx, observability.AttrRequestID, id)
	}
	log := h.log.WithContext(ctx)

	transcript, err := h.transcriber.Transcribe(ctx, req)
	if err != nil {
		observability.SetSpanError(ctx, err)
		log.Error("Transcription failed", logger.MergeWithError(logger.Fields(
			logger.FieldFileName, req.FileName,
			logger.FieldProvider, h.transcriber.Name(),
		), err))
		return nil, apperrors.TranscriptionFailed(err)
	}

	resp := &TranscribeResponse{
		Transcript: transcript.Text,
		Items:      []grocery.Item{},
		Extractor:  extractor.Name(),
	}

	start := time.Now()
	result, err := extractor.Extract(ctx, transcript.Text)
	if err != nil {
		log.Warn("Extraction failed, returning transcript only", logger.MergeWithError(logger.Fields(
			logger.FieldExtractor, extractor.Name(),
		), err))
		resp.ExtractionError = err.Error()
	} else {
		if result.Items != nil {
			resp.Items = result.Items
		}
		resp.Warning = result.Warning
	}

	observability.SetSpanAttribute(ctx, observability.AttrItemCount, len(resp.Items))
	if h.metrics != nil {
		h.metrics.RecordItems(ctx, extractor.Name(), len(resp.Items))
	}
	log.Info("Transcript processed", logger.Fields(
		logger.FieldExtractor, extractor.Name(),
		logger.FieldItemCount, len(resp.Items),
		logger.FieldDuration, time.Since(start).Milliseconds(),
	))
	return resp, nil
}
