package api

import (
	"time"

	"github.com/abhisek/ideaforge/internal/aggregate"
	"github.com/abhisek/ideaforge/internal/conversation"
	"github.com/abhisek/ideaforge/internal/pipeline"
	"github.com/abhisek/ideaforge/internal/store"
)

type QualityRequest struct {
	Text   string `json:"text" binding:"required"`
	Locale string `json:"locale"`
}

type CreateSessionRequest struct {
	Idea   string `json:"idea" binding:"required,min=1,max=4000"`
	Locale string `json:"locale"`
}

type AnswerRequest struct {
	Answer string `json:"answer"`
}

type SessionResponse struct {
	ID          string                                  `json:"id"`
	Status      conversation.Status                     `json:"status"`
	ModuleIndex int                                     `json:"module_index"`
	Module      pipeline.ModuleID                       `json:"module,omitempty"`
	Progress    map[pipeline.ModuleID]pipeline.Progress `json:"progress"`
	Transcript  []conversation.Message                  `json:"transcript"`
	Result      *aggregate.CompletedIdea                `json:"result,omitempty"`
}

func ToSessionResponse(s *conversation.Session) *SessionResponse {
	snap := s.Snapshot()
	return &SessionResponse{
		ID:          snap.ID,
		Status:      snap.Status,
		ModuleIndex: snap.ModuleIndex,
		Module:      snap.Module,
		Progress:    snap.Progress,
		Transcript:  snap.Transcript,
		Result:      s.Result(),
	}
}

type IdeaSummaryResponse struct {
	ID                  string    `json:"id"`
	OriginalIdea        string    `json:"original_idea"`
	OverallCompleteness int       `json:"overall_completeness"`
	Grade               string    `json:"grade"`
	CreatedAt           time.Time `json:"created_at"`
}

type IdeaModuleResponse struct {
	ModuleID     string `json:"module_id"`
	Answer       string `json:"answer"`
	Completeness int    `json:"completeness"`
	Insights     string `json:"insights,omitempty"`
}

type IdeaMessageResponse struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	ModuleID  string    `json:"module_id,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type IdeaResponse struct {
	IdeaSummaryResponse
	Narrative  string                `json:"narrative"`
	Locale     string                `json:"locale"`
	Modules    []IdeaModuleResponse  `json:"modules"`
	Transcript []IdeaMessageResponse `json:"transcript"`
}

func ToIdeaSummaryResponse(s store.IdeaSummary) IdeaSummaryResponse {
	return IdeaSummaryResponse{
		ID:                  s.ID,
		OriginalIdea:        s.OriginalIdea,
		OverallCompleteness: s.OverallCompleteness,
		Grade:               s.Grade,
		CreatedAt:           s.CreatedAt,
	}
}

func ToIdeaResponse(rec *store.IdeaRecord) *IdeaResponse {
	resp := &IdeaResponse{
		IdeaSummaryResponse: IdeaSummaryResponse{
			ID:                  rec.ID,
			OriginalIdea:        rec.OriginalIdea,
			OverallCompleteness: rec.OverallCompleteness,
			Grade:               rec.Grade,
			CreatedAt:           rec.CreatedAt,
		},
		Narrative:  rec.Narrative,
		Locale:     rec.Locale,
		Modules:    make([]IdeaModuleResponse, 0, len(rec.Modules)),
		Transcript: make([]IdeaMessageResponse, 0, len(rec.Messages)),
	}
	for _, m := range rec.Modules {
		resp.Modules = append(resp.Modules, IdeaModuleResponse{
			ModuleID:     m.ModuleID,
			Answer:       m.Answer,
			Completeness: m.Completeness,
			Insights:     m.Insights,
		})
	}
	for _, m := range rec.Messages {
		resp.Transcript = append(resp.Transcript, IdeaMessageResponse{
			ID:        m.ID,
			Role:      m.Role,
			ModuleID:  m.ModuleID,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}
	return resp
}
