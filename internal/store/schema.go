package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table definitions in the shape ent's migrate package expects. They are
// applied with schema.NewMigrate on Open.
var (
	ideasColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Unique: true},
		{Name: "original_idea", Type: field.TypeString, Size: 2147483647},
		{Name: "overall_completeness", Type: field.TypeInt, Default: 0},
		{Name: "grade", Type: field.TypeString, Default: ""},
		{Name: "narrative", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "locale", Type: field.TypeString, Default: "en"},
		{Name: "created_at", Type: field.TypeTime},
	}
	ideasTable = &schema.Table{
		Name:       "ideas",
		Columns:    ideasColumns,
		PrimaryKey: []*schema.Column{ideasColumns[0]},
		Indexes: []*schema.Index{
			{Name: "idea_created_at", Columns: []*schema.Column{ideasColumns[6]}},
		},
	}

	ideaModulesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "module_id", Type: field.TypeString},
		{Name: "position", Type: field.TypeInt},
		{Name: "answer", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "completeness", Type: field.TypeInt, Default: 0},
		{Name: "insights", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "idea_id", Type: field.TypeString},
	}
	ideaModulesTable = &schema.Table{
		Name:       "idea_modules",
		Columns:    ideaModulesColumns,
		PrimaryKey: []*schema.Column{ideaModulesColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "idea_modules_ideas_modules",
				Columns:    []*schema.Column{ideaModulesColumns[6]},
				RefColumns: []*schema.Column{ideasColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{Name: "ideamodule_idea_id_module_id", Unique: true, Columns: []*schema.Column{ideaModulesColumns[6], ideaModulesColumns[1]}},
		},
	}

	ideaMessagesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Unique: true},
		{Name: "position", Type: field.TypeInt},
		{Name: "role", Type: field.TypeString},
		{Name: "module_id", Type: field.TypeString, Nullable: true},
		{Name: "content", Type: field.TypeString, Size: 2147483647},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "idea_id", Type: field.TypeString},
	}
	ideaMessagesTable = &schema.Table{
		Name:       "idea_messages",
		Columns:    ideaMessagesColumns,
		PrimaryKey: []*schema.Column{ideaMessagesColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "idea_messages_ideas_messages",
				Columns:    []*schema.Column{ideaMessagesColumns[6]},
				RefColumns: []*schema.Column{ideasColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{Name: "ideamessage_idea_id_position", Unique: true, Columns: []*schema.Column{ideaMessagesColumns[6], ideaMessagesColumns[1]}},
		},
	}

	llmEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	llmEventsTable = &schema.Table{
		Name:       "llm_request_events",
		Columns:    llmEventsColumns,
		PrimaryKey: []*schema.Column{llmEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{llmEventsColumns[5]}},
			{Name: "llmrequestevent_timestamp", Columns: []*schema.Column{llmEventsColumns[2]}},
		},
	}

	globalSequenceColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "next_val", Type: field.TypeInt64, Default: 1},
	}
	globalSequenceTable = &schema.Table{
		Name:       "global_sequence",
		Columns:    globalSequenceColumns,
		PrimaryKey: []*schema.Column{globalSequenceColumns[0]},
	}

	tables = []*schema.Table{
		ideasTable,
		ideaModulesTable,
		ideaMessagesTable,
		llmEventsTable,
		globalSequenceTable,
	}
)

func init() {
	ideaModulesTable.ForeignKeys[0].RefTable = ideasTable
	ideaMessagesTable.ForeignKeys[0].RefTable = ideasTable
}
