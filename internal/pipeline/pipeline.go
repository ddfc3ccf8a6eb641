// Package pipeline turns raw messages into metadata records and normalized text.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/emurenMRz/mailprep/internal/corpus"
	"github.com/emurenMRz/mailprep/internal/mailbody"
	"github.com/emurenMRz/mailprep/internal/mailheader"
	"github.com/emurenMRz/mailprep/internal/textnorm"
)

// ErrModelRequired is returned by New when a stage needs the language model and none is set.
var ErrModelRequired = errors.New("language model required")

// recordNamespace seeds the name-based IDs of messages without a Message-ID.
var recordNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailprep/record"))

// Options configures a Pipeline.
type Options struct {
	Stages   []Stage
	StemMode textnorm.StemMode
	Workers  int             // concurrent messages; 0 means GOMAXPROCS
	Model    *textnorm.Model // required by the entities and nouns stages
}

// Record is the processed form of one message.
type Record struct {
	Index     int                 `json:"index"`
	ID        string              `json:"id"`
	Source    string              `json:"source"`
	Folder    string              `json:"folder,omitempty"`
	Metadata  mailheader.Metadata `json:"metadata"`
	Timestamp time.Time           `json:"timestamp"`
	Body      string              `json:"body"`
	Text      string              `json:"text"`
}

// Pipeline applies header parsing, body extraction and the configured stages to messages.
// It holds no per-message state and may be reused.
type Pipeline struct {
	stages   []Stage
	stemMode textnorm.StemMode
	workers  int
	model    *textnorm.Model
}

// New validates opts and returns a Pipeline.
func New(opts Options) (*Pipeline, error) {
	p := &Pipeline{
		stages:   opts.Stages,
		stemMode: opts.StemMode,
		workers:  opts.Workers,
		model:    opts.Model,
	}
	if len(p.stages) == 0 {
		p.stages = DefaultStages
	}
	if p.stemMode == "" {
		p.stemMode = textnorm.StemTokens
	}
	if p.workers <= 0 {
		p.workers = runtime.GOMAXPROCS(0)
	}
	for _, s := range p.stages {
		if s.needsModel() && p.model == nil {
			return nil, fmt.Errorf("stage %s: %w", s, ErrModelRequired)
		}
	}
	return p, nil
}

// Stages returns the configured stage order.
func (p *Pipeline) Stages() []Stage {
	return append([]Stage(nil), p.stages...)
}

// Process handles msgs concurrently and returns one record per message in input
// order. The first failing message cancels the rest and its error is returned.
func (p *Pipeline) Process(ctx context.Context, msgs []corpus.Message) ([]Record, error) {
	records := make([]Record, len(msgs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i := range msgs {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rec, err := p.ProcessMessage(msgs[i])
			if err != nil {
				return fmt.Errorf("message %d (%s): %w", i, msgs[i].Source, err)
			}
			rec.Index = i
			records[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Info("messages processed", "messages", len(records), "stages", p.stages, "workers", p.workers)
	return records, nil
}

// ProcessMessage parses and normalizes a single message.
func (p *Pipeline) ProcessMessage(msg corpus.Message) (Record, error) {
	meta, boundary, err := mailheader.Parse(msg.Lines)
	if err != nil {
		return Record{}, err
	}
	body := mailbody.Extract(msg.Lines, boundary)

	text, err := p.Normalize(body)
	if err != nil {
		return Record{}, err
	}

	return Record{
		ID:        recordID(meta, msg.Source, body),
		Source:    msg.Source,
		Folder:    msg.Folder,
		Metadata:  meta,
		Timestamp: mailheader.ParseDate(meta["Date"]),
		Body:      body,
		Text:      text,
	}, nil
}

// Normalize applies the configured stages to one body, in order.
func (p *Pipeline) Normalize(text string) (string, error) {
	var err error
	for _, s := range p.stages {
		switch s {
		case StageEntities:
			text, err = p.model.SubstituteEntitiesText(text)
		case StageNouns:
			text, err = p.model.ExtractNounsText(text)
		case StageStrip:
			text = textnorm.Chain(textnorm.StripFilters...)(text)
		case StageStem:
			text = textnorm.StemText(text, p.stemMode)
		}
		if err != nil {
			return "", fmt.Errorf("stage %s: %w", s, err)
		}
	}
	return text, nil
}

// recordID is the Message-ID when present, otherwise a UUID derived from the
// source and body so that reruns produce the same ID.
func recordID(meta mailheader.Metadata, source, body string) string {
	if id, ok := meta.Get("Message-ID"); ok && id != "" {
		return id
	}
	return uuid.NewSHA1(recordNamespace, []byte(source+"\n"+body)).String()
}

// Texts returns the normalized text of every record, in record order.
func Texts(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Text
	}
	return out
}
