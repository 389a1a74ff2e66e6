// Package coach runs the review pipeline: extract text from an uploaded
// script, clean and truncate it, then analyze it into a coaching report.
package coach

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dgallion1/scriptcoach/internal/config"
	"github.com/dgallion1/scriptcoach/internal/feedback"
	"github.com/dgallion1/scriptcoach/internal/observe"
	"github.com/dgallion1/scriptcoach/internal/parser"
	"github.com/dgallion1/scriptcoach/internal/report"
	"github.com/dgallion1/scriptcoach/internal/rubric"
	"github.com/dgallion1/scriptcoach/internal/signals"
	"github.com/dgallion1/scriptcoach/internal/textclean"
)

// TruncationMarker is appended to scripts cut at the character limit.
const TruncationMarker = "\n\n[Truncated for demo length]"

// Result is a successful review.
type Result struct {
	DocID      string        `json:"doc_id"`
	Filename   string        `json:"filename"`
	SpeechType string        `json:"speech_type"`
	Truncated  bool          `json:"truncated"`
	Characters int           `json:"characters"`
	Report     report.Report `json:"report"`
	Feedback   string        `json:"feedback"`
}

// Coach reviews scripts. It holds only read-only state and is safe for
// concurrent use.
type Coach struct {
	catalog *feedback.Catalog
	metrics *observe.Metrics
	stats   *observe.ReviewStats
	log     *slog.Logger

	maxChars         int
	batchConcurrency int
	parserOpts       parser.Options
}

// New builds a Coach. metrics and stats may be nil.
func New(cfg config.Config, catalog *feedback.Catalog, metrics *observe.Metrics, stats *observe.ReviewStats, log *slog.Logger) *Coach {
	if catalog == nil {
		catalog = feedback.DefaultCatalog()
	}
	if log == nil {
		log = slog.Default()
	}
	if cfg.MaxTextChars <= 0 {
		cfg.MaxTextChars = 12000
	}
	return &Coach{
		catalog:          catalog,
		metrics:          metrics,
		stats:            stats,
		log:              log,
		maxChars:         cfg.MaxTextChars,
		batchConcurrency: max(1, cfg.BatchConcurrency),
		parserOpts: parser.Options{
			PDFMaxPages:          cfg.PDFMaxPages,
			PDFFallbackPdftotext: cfg.PDFFallbackPdftotext,
		},
	}
}

// Stats returns the rolling review statistics, or nil if none are kept.
func (c *Coach) Stats() *observe.ReviewStats {
	return c.stats
}

// Review extracts, cleans and analyzes one uploaded script. Failures are
// returned as *Error.
func (c *Coach) Review(ctx context.Context, req Request) (res *Result, err error) {
	start := time.Now()
	ctx, span := observe.StartSpan(ctx, "coach.review", trace.WithAttributes(
		attribute.String("speech_type", strings.TrimSpace(req.SpeechType)),
		attribute.String("filename", req.Filename),
	))
	defer span.End()

	log := c.log.With("filename", req.Filename, "trace_id", observe.TraceID(ctx))

	defer func() {
		outcome, words := observe.OutcomeOK, 0
		if res != nil {
			words = res.Report.Stats.WordCount
		}
		var cerr *Error
		if errors.As(err, &cerr) {
			outcome = cerr.Kind.String()
			span.SetStatus(codes.Error, cerr.Message)
		}
		c.record(ctx, strings.TrimSpace(req.SpeechType), outcome, time.Since(start), words)
	}()

	if verr := req.validate(); verr != nil {
		return nil, verr
	}

	text, truncated := c.prepare(ctx, req, log)
	if text == "" {
		return nil, &Error{Kind: KindExtractionEmpty, Message: MsgExtractionEmpty}
	}
	if truncated && c.metrics != nil {
		c.metrics.RecordTruncation(ctx)
	}

	rep, aerr := c.safeAnalyze(text, req.Options())
	if aerr != nil {
		log.Error("analysis failed", "error", aerr)
		return nil, aerr
	}

	res = &Result{
		DocID:      docID(req.Data),
		Filename:   req.Filename,
		SpeechType: strings.TrimSpace(req.SpeechType),
		Truncated:  truncated,
		Characters: utf8.RuneCountInString(text),
		Report:     rep,
		Feedback:   rep.String(),
	}
	log.Info("review complete",
		"doc_id", res.DocID,
		"words", rep.Stats.WordCount,
		"truncated", truncated,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}

// ScriptText returns the cleaned, length-limited text of an upload, as
// analysis would see it.
func (c *Coach) ScriptText(ctx context.Context, filename string, data []byte) (string, error) {
	text, _ := c.prepare(ctx, Request{Filename: filename, Data: data}, c.log.With("filename", filename))
	if text == "" {
		return "", &Error{Kind: KindExtractionEmpty, Message: MsgExtractionEmpty}
	}
	return text, nil
}

// prepare extracts and cleans the upload and applies the character limit.
// Extraction failures are logged and treated as empty text.
func (c *Coach) prepare(ctx context.Context, req Request, log *slog.Logger) (string, bool) {
	_, span := observe.StartSpan(ctx, "coach.extract")
	defer span.End()

	raw, err := parser.Extract(req.Filename, req.Data, c.parserOpts)
	if err != nil {
		if errors.Is(err, parser.ErrUnsupportedFormat) {
			log.Info("unsupported upload", "error", err)
		} else {
			log.Warn("text extraction failed", "error", err)
		}
		raw = ""
	}

	return Truncate(textclean.Clean(raw), c.maxChars)
}

// Truncate cuts text to limit characters and appends TruncationMarker when
// it is longer. The marker does not count toward the limit.
func Truncate(text string, limit int) (string, bool) {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text, false
	}
	n := 0
	for i := range text {
		if n == limit {
			return text[:i] + TruncationMarker, true
		}
		n++
	}
	return text, false
}

// Analyze turns cleaned text into a report. It never fails for any string.
// The text is cleaned once more, this time collapsing all whitespace.
func (c *Coach) Analyze(text string, opts Options) report.Report {
	display := textclean.CleanForDisplay(text)
	sig := signals.Extract(display)
	q1, q2 := sig.Snippets(display)

	fb := c.catalog.Compose(opts.SpeechType, feedback.Input{
		Audience: opts.Audience,
		Q1:       q1,
		Q2:       q2,
		Signals:  sig,
	}).Adjusted(opts.Style, opts.Goal, opts.Complexity)

	var scores rubric.Scores
	if opts.Rubric {
		scores = rubric.Evaluate(opts.SpeechType, display)
	}

	return report.Report{
		Stats:    report.ComputeStats(sig),
		Rubric:   scores,
		Feedback: fb,
	}
}

func (c *Coach) safeAnalyze(text string, opts Options) (rep report.Report, err *Error) {
	defer func() {
		if r := recover(); r != nil {
			err = unexpected(r)
		}
	}()
	return c.Analyze(text, opts), nil
}

func (c *Coach) record(ctx context.Context, speechType, outcome string, d time.Duration, words int) {
	if c.metrics != nil {
		c.metrics.RecordReview(ctx, speechType, outcome, d, words)
	}
	if c.stats != nil {
		c.stats.Record(d, outcome, words)
	}
}

// docID is a short content hash identifying an upload in logs and results.
func docID(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:8])
}
