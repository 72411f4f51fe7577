package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	tableLearners         = "learners"
	tableSkills           = "learner_skills"
	tableCompletedLessons = "completed_lessons"
	tableUnlocks          = "achievement_unlocks"
	tableCompletionEvents = "completion_events"
	tableLLMEvents        = "llm_request_events"
)

var (
	learnersColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "display_name", Type: field.TypeString, Default: ""},
		{Name: "xp", Type: field.TypeInt, Default: 0},
		{Name: "streak", Type: field.TypeInt, Default: 0},
		{Name: "highest_streak", Type: field.TypeInt, Default: 0},
		{Name: "problems_solved", Type: field.TypeInt, Default: 0},
		{Name: "time_spent", Type: field.TypeInt, Default: 0},
		{Name: "last_active", Type: field.TypeTime, Nullable: true},
		{Name: "last_active_day", Type: field.TypeString, Default: ""},
		{Name: "created_at", Type: field.TypeTime},
	}
	learnersTable = &schema.Table{
		Name:       tableLearners,
		Columns:    learnersColumns,
		PrimaryKey: []*schema.Column{learnersColumns[0]},
	}

	skillsColumns = []*schema.Column{
		{Name: "learner_id", Type: field.TypeString},
		{Name: "topic", Type: field.TypeString},
		{Name: "count", Type: field.TypeInt, Default: 0},
	}
	skillsTable = &schema.Table{
		Name:       tableSkills,
		Columns:    skillsColumns,
		PrimaryKey: []*schema.Column{skillsColumns[0], skillsColumns[1]},
	}

	completedColumns = []*schema.Column{
		{Name: "learner_id", Type: field.TypeString},
		{Name: "lesson_id", Type: field.TypeString},
		{Name: "lesson_title", Type: field.TypeString, Default: ""},
		{Name: "topic", Type: field.TypeString, Default: ""},
		{Name: "final_score", Type: field.TypeInt},
		{Name: "best_score", Type: field.TypeInt},
		{Name: "xp_earned", Type: field.TypeInt},
		{Name: "time_taken", Type: field.TypeInt},
		{Name: "attempts", Type: field.TypeInt},
		{Name: "plays", Type: field.TypeInt, Default: 0},
		{Name: "achievements", Type: field.TypeString, Default: "[]"},
		{Name: "completed_at", Type: field.TypeTime},
	}
	completedTable = &schema.Table{
		Name:       tableCompletedLessons,
		Columns:    completedColumns,
		PrimaryKey: []*schema.Column{completedColumns[0], completedColumns[1]},
	}

	unlocksColumns = []*schema.Column{
		{Name: "learner_id", Type: field.TypeString},
		{Name: "achievement_id", Type: field.TypeString},
		{Name: "lesson_id", Type: field.TypeString, Default: ""},
		{Name: "xp_earned", Type: field.TypeInt, Default: 0},
		{Name: "unlocked_at", Type: field.TypeTime},
	}
	unlocksTable = &schema.Table{
		Name:       tableUnlocks,
		Columns:    unlocksColumns,
		PrimaryKey: []*schema.Column{unlocksColumns[0], unlocksColumns[1]},
	}

	// Event tables share the sequence/timestamp prefix.
	completionEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "learner_id", Type: field.TypeString},
		{Name: "session_id", Type: field.TypeString},
		{Name: "lesson_id", Type: field.TypeString},
		{Name: "final_score", Type: field.TypeInt},
		{Name: "xp_earned", Type: field.TypeInt},
		{Name: "bonus_xp", Type: field.TypeInt},
		{Name: "time_taken", Type: field.TypeInt},
		{Name: "attempts", Type: field.TypeString, Default: "[]"},
		{Name: "achievements", Type: field.TypeString, Default: "[]"},
	}
	completionEventsTable = &schema.Table{
		Name:       tableCompletionEvents,
		Columns:    completionEventsColumns,
		PrimaryKey: []*schema.Column{completionEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "completionevent_learner_id", Columns: []*schema.Column{completionEventsColumns[3]}},
			{Name: "completionevent_timestamp", Columns: []*schema.Column{completionEventsColumns[2]}},
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
		Name:       tableLLMEvents,
		Columns:    llmEventsColumns,
		PrimaryKey: []*schema.Column{llmEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{llmEventsColumns[5]}},
			{Name: "llmrequestevent_model", Columns: []*schema.Column{llmEventsColumns[4]}},
		},
	}

	// Tables is every table the store migrates on Open.
	Tables = []*schema.Table{
		learnersTable,
		skillsTable,
		completedTable,
		unlocksTable,
		completionEventsTable,
		llmEventsTable,
	}
)
