package store

import (
	"context"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// roundEventsColumns holds one completed round per row.
	roundEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		// Unix milliseconds.
		{Name: "timestamp", Type: field.TypeInt64},
		{Name: "session_id", Type: field.TypeString},
		{Name: "run_id", Type: field.TypeString},
		{Name: "text", Type: field.TypeString},
		{Name: "user_emotion", Type: field.TypeString},
		{Name: "predicted_emotion", Type: field.TypeString},
		{Name: "model_used", Type: field.TypeString},
		{Name: "confidence", Type: field.TypeFloat64},
		{Name: "ai_correct", Type: field.TypeInt},
	}
	roundEventsSchema = &schema.Table{
		Name:       "round_events",
		Columns:    roundEventsColumns,
		PrimaryKey: []*schema.Column{roundEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "roundevent_session_id",
				Unique:  false,
				Columns: []*schema.Column{roundEventsColumns[3]},
			},
		},
	}

	// artifactsColumns holds the sqlite artifact backend, one row per member.
	artifactsColumns = []*schema.Column{
		{Name: "name", Type: field.TypeString},
		{Name: "run_id", Type: field.TypeString},
		{Name: "format_version", Type: field.TypeString},
		// Unix nanoseconds.
		{Name: "created_at", Type: field.TypeInt64},
		{Name: "accuracy", Type: field.TypeFloat64},
		{Name: "payload", Type: field.TypeBytes},
	}
	artifactsSchema = &schema.Table{
		Name:       "artifacts",
		Columns:    artifactsColumns,
		PrimaryKey: []*schema.Column{artifactsColumns[0]},
	}

	tables = []*schema.Table{
		roundEventsSchema,
		artifactsSchema,
	}
)

// migrate creates missing tables and columns.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return err
	}
	return m.Create(ctx, tables...)
}
