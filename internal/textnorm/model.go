package textnorm

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/jdkato/prose/v2"
)

// Model bundles the part-of-speech tagger, entity extracter and lemmatizer.
// It is read-only after LoadModel and may be shared between goroutines.
type Model struct {
	tagger     *prose.Model
	lemmatizer *golem.Lemmatizer
}

// LoadModel loads the English language models. It is slow; call it once per process.
func LoadModel() (*Model, error) {
	start := time.Now()

	// prose builds its default model for the first document; keep it for reuse.
	doc, err := prose.NewDocument("", prose.WithSegmentation(false))
	if err != nil {
		return nil, fmt.Errorf("failed to load tagging model: %w", err)
	}
	lemmatizer, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("failed to load lemmatizer: %w", err)
	}

	slog.Debug("language model loaded", "elapsed", time.Since(start))
	return &Model{tagger: doc.Model, lemmatizer: lemmatizer}, nil
}

func (m *Model) tokens(text string, extract bool) ([]prose.Token, error) {
	doc, err := prose.NewDocument(text,
		prose.UsingModel(m.tagger),
		prose.WithSegmentation(false),
		prose.WithExtraction(extract),
	)
	if err != nil {
		return nil, err
	}
	return doc.Tokens(), nil
}

// SubstituteEntities replaces every named entity span with its label.
func (m *Model) SubstituteEntities(msgs []string) ([]string, error) {
	out := make([]string, len(msgs))
	for i, msg := range msgs {
		s, err := m.SubstituteEntitiesText(msg)
		if err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}
		out[i] = s
	}
	return out, nil
}

// SubstituteEntitiesText replaces the entities of a single message.
func (m *Model) SubstituteEntitiesText(text string) (string, error) {
	toks, err := m.tokens(text, true)
	if err != nil {
		return "", err
	}
	return substituteLabels(toks), nil
}

// ExtractNouns keeps only the lemmas of common nouns.
func (m *Model) ExtractNouns(msgs []string) ([]string, error) {
	out := make([]string, len(msgs))
	for i, msg := range msgs {
		s, err := m.ExtractNounsText(msg)
		if err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}
		out[i] = s
	}
	return out, nil
}

// ExtractNounsText keeps the noun lemmas of a single message.
func (m *Model) ExtractNounsText(text string) (string, error) {
	toks, err := m.tokens(text, false)
	if err != nil {
		return "", err
	}
	return keepNouns(toks, m.lemmatizer.Lemma), nil
}

// substituteLabels joins token texts with spaces, collapsing each IOB entity span
// ("B-PERSON", "I-PERSON", ...) into its bare label.
func substituteLabels(toks []prose.Token) string {
	out := make([]string, 0, len(toks))
	inside := ""
	for _, tok := range toks {
		prefix, label, tagged := strings.Cut(tok.Label, "-")
		if !tagged || label == "" {
			inside = ""
			out = append(out, tok.Text)
			continue
		}
		if prefix == "I" && inside == label {
			continue
		}
		inside = label
		out = append(out, label)
	}
	return strings.Join(out, " ")
}

// common noun tags in the Penn Treebank set
var nounTags = map[string]bool{"NN": true, "NNS": true}

func keepNouns(toks []prose.Token, lemma func(string) string) string {
	var out []string
	for _, tok := range toks {
		if !nounTags[tok.Tag] {
			continue
		}
		word := strings.ToLower(tok.Text)
		if l := lemma(word); l != "" {
			word = l
		}
		out = append(out, word)
	}
	return strings.Join(out, " ")
}
