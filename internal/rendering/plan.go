package rendering

import (
	"log/slog"

	"github.com/jonathan/tidytex/internal/types"
)

// SectionPlan is the rendering decision for one record, computed before any
// markup is produced.
type SectionPlan struct {
	Record     *types.Record
	Kind       types.Kind
	Identifier types.Identifier
	// ShowTitle is meaningful for Education and Entry records only.
	ShowTitle bool
	// Orphan marks a continuation record that does not follow its group.
	Orphan bool
}

// titled reports whether the kind uses the shared title rule.
func titled(k types.Kind) bool {
	return k == types.KindEducation || k == types.KindEntry
}

// Plan classifies every record and groups continuation records.
//
// A record whose identifier ends in an index greater than one continues the
// group of the record directly before it and gets no title. When that record
// belongs to another group the continuation is an orphan: it still gets no
// title and a warning is logged, or the plan fails when strict is set.
func Plan(doc *types.Document, strict bool, logger *slog.Logger) ([]SectionPlan, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	plans := make([]SectionPlan, 0, doc.Len())
	var prev *SectionPlan
	for _, rec := range doc.Records {
		p := SectionPlan{
			Record:     rec,
			Kind:       types.Classify(rec),
			Identifier: types.ParseIdentifier(rec.ID),
		}

		if titled(p.Kind) {
			p.ShowTitle = !p.Identifier.IsContinuation()
			if p.Identifier.IsContinuation() {
				p.Orphan = prev == nil || prev.Identifier.Base != p.Identifier.Base
			}
		}

		if p.Orphan {
			previous := ""
			if prev != nil {
				previous = prev.Record.ID
			}
			if strict {
				return nil, &OrphanContinuationError{
					Section:  rec.ID,
					Base:     p.Identifier.Base,
					Previous: previous,
				}
			}
			logger.Warn("continuation section does not follow its group; no title will be emitted",
				"section", rec.ID, "group", p.Identifier.Base, "previous", previous)
		} else if p.Identifier.IsContinuation() && titled(p.Kind) && prev.Identifier.HasDigits &&
			p.Identifier.Index != prev.Identifier.Index+1 {
			logger.Debug("continuation index is not consecutive",
				"section", rec.ID, "previous", prev.Record.ID)
		}

		plans = append(plans, p)
		prev = &plans[len(plans)-1]
	}
	return plans, nil
}
