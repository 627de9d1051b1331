package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

type ideaRepo struct {
	db *sql.DB
}

func (r *ideaRepo) SaveIdea(ctx context.Context, rec *IdeaRecord) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	b := entsql.Dialect(dialect.SQLite)

	query, args := b.Insert(ideasTable.Name).
		Columns("id", "original_idea", "overall_completeness", "grade", "narrative", "locale", "created_at").
		Values(rec.ID, rec.OriginalIdea, rec.OverallCompleteness, rec.Grade, rec.Narrative, rec.Locale, rec.CreatedAt.UTC()).
		Query()
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save idea: %w", err)
	}

	if len(rec.Modules) > 0 {
		ins := b.Insert(ideaModulesTable.Name).
			Columns("idea_id", "module_id", "position", "answer", "completeness", "insights")
		for _, m := range rec.Modules {
			ins.Values(rec.ID, m.ModuleID, m.Position, m.Answer, m.Completeness, m.Insights)
		}
		query, args = ins.Query()
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("save idea modules: %w", err)
		}
	}

	if len(rec.Messages) > 0 {
		ins := b.Insert(ideaMessagesTable.Name).
			Columns("id", "idea_id", "position", "role", "module_id", "content", "created_at")
		for _, m := range rec.Messages {
			var moduleID sql.NullString
			if m.ModuleID != "" {
				moduleID = sql.NullString{String: m.ModuleID, Valid: true}
			}
			ins.Values(m.ID, rec.ID, m.Position, m.Role, moduleID, m.Content, m.CreatedAt.UTC())
		}
		query, args = ins.Query()
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("save idea messages: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *ideaRepo) ListIdeas(ctx context.Context, limit int) ([]IdeaSummary, error) {
	b := entsql.Dialect(dialect.SQLite)
	sel := b.Select("id", "original_idea", "overall_completeness", "grade", "created_at").
		From(b.Table(ideasTable.Name)).
		OrderBy(entsql.Desc("created_at"), entsql.Desc("id"))
	if limit > 0 {
		sel.Limit(limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ideas: %w", err)
	}
	defer rows.Close()

	var out []IdeaSummary
	for rows.Next() {
		var s IdeaSummary
		if err := rows.Scan(&s.ID, &s.OriginalIdea, &s.OverallCompleteness, &s.Grade, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan idea: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *ideaRepo) GetIdea(ctx context.Context, id string) (*IdeaRecord, error) {
	b := entsql.Dialect(dialect.SQLite)

	query, args := b.Select("id", "original_idea", "overall_completeness", "grade", "narrative", "locale", "created_at").
		From(b.Table(ideasTable.Name)).
		Where(entsql.EQ("id", id)).
		Query()

	var rec IdeaRecord
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&rec.ID, &rec.OriginalIdea, &rec.OverallCompleteness,
		&rec.Grade, &rec.Narrative, &rec.Locale, &rec.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get idea: %w", err)
	}

	if rec.Modules, err = r.modules(ctx, id); err != nil {
		return nil, err
	}
	if rec.Messages, err = r.messages(ctx, id); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *ideaRepo) DeleteIdea(ctx context.Context, id string) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(ideasTable.Name).
		Where(entsql.EQ("id", id)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete idea: %w", err)
	}
	return nil
}

func (r *ideaRepo) modules(ctx context.Context, ideaID string) ([]ModuleRecord, error) {
	b := entsql.Dialect(dialect.SQLite)
	query, args := b.Select("module_id", "position", "answer", "completeness", "insights").
		From(b.Table(ideaModulesTable.Name)).
		Where(entsql.EQ("idea_id", ideaID)).
		OrderBy("position").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query idea modules: %w", err)
	}
	defer rows.Close()

	var out []ModuleRecord
	for rows.Next() {
		var m ModuleRecord
		if err := rows.Scan(&m.ModuleID, &m.Position, &m.Answer, &m.Completeness, &m.Insights); err != nil {
			return nil, fmt.Errorf("scan idea module: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *ideaRepo) messages(ctx context.Context, ideaID string) ([]MessageRecord, error) {
	b := entsql.Dialect(dialect.SQLite)
	query, args := b.Select("id", "position", "role", "module_id", "content", "created_at").
		From(b.Table(ideaMessagesTable.Name)).
		Where(entsql.EQ("idea_id", ideaID)).
		OrderBy("position").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query idea messages: %w", err)
	}
	defer rows.Close()

	var out []MessageRecord
	for rows.Next() {
		var (
			m        MessageRecord
			moduleID sql.NullString
		)
		if err := rows.Scan(&m.ID, &m.Position, &m.Role, &moduleID, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan idea message: %w", err)
		}
		m.ModuleID = moduleID.String
		out = append(out, m)
	}
	return out, rows.Err()
}
