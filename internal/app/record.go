package app

import (
	"github.com/abhisek/ideaforge/internal/aggregate"
	"github.com/abhisek/ideaforge/internal/conversation"
	"github.com/abhisek/ideaforge/internal/pipeline"
	"github.com/abhisek/ideaforge/internal/store"
)

// Record maps a completed idea and the transcript that produced it to its
// stored form. Modules that were never reached are left out.
func Record(idea *aggregate.CompletedIdea, snap conversation.Snapshot) *store.IdeaRecord {
	rec := &store.IdeaRecord{
		ID:                  idea.ID,
		OriginalIdea:        idea.OriginalIdea,
		OverallCompleteness: idea.OverallCompleteness,
		Grade:               idea.Grade,
		Narrative:           idea.Narrative,
		Locale:              idea.Locale.String(),
		CreatedAt:           idea.CreatedAt,
	}

	for i, m := range pipeline.Modules() {
		answer, answered := idea.ModulesByID[m]
		p, analyzed := snap.Progress[m]
		if !answered && !analyzed {
			continue
		}
		rec.Modules = append(rec.Modules, store.ModuleRecord{
			ModuleID:     string(m),
			Position:     i,
			Answer:       answer,
			Completeness: p.Completeness,
			Insights:     p.Insights,
		})
	}

	for i, msg := range snap.Transcript {
		rec.Messages = append(rec.Messages, store.MessageRecord{
			ID:        msg.ID,
			Position:  i,
			Role:      string(msg.Role),
			ModuleID:  string(msg.Module),
			Content:   msg.Content,
			CreatedAt: msg.CreatedAt,
		})
	}
	return rec
}
