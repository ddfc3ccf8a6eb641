package pipeline

import (
	"fmt"
	"strings"
)

// Stage names one text normalization step applied to each body.
type Stage string

const (
	StageEntities Stage = "entities" // replace named entities with their labels
	StageNouns    Stage = "nouns"    // keep only common-noun lemmas
	StageStrip    Stage = "strip"    // redact links and addresses, drop punctuation and numbers
	StageStem     Stage = "stem"     // Porter stemming
)

// DefaultStages is used when Options.Stages is empty.
var DefaultStages = []Stage{StageStrip, StageStem}

// ParseStages validates stage names. Names are case-insensitive.
func ParseStages(names []string) ([]Stage, error) {
	stages := make([]Stage, 0, len(names))
	for _, n := range names {
		s := Stage(strings.ToLower(strings.TrimSpace(n)))
		switch s {
		case StageEntities, StageNouns, StageStrip, StageStem:
			stages = append(stages, s)
		case "":
		default:
			return nil, fmt.Errorf("unknown pipeline stage %q", n)
		}
	}
	return stages, nil
}

func (s Stage) needsModel() bool {
	return s == StageEntities || s == StageNouns
}
