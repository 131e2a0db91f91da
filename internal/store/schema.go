package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const progressTableName = "learner_progress"

var (
	// progressColumns holds the columns of the learner_progress table.
	progressColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "learner_id", Type: field.TypeString},
		{Name: "subject", Type: field.TypeString},
		{Name: "subject_key", Type: field.TypeString, Default: "", Comment: "case-folded subject used for lookups"},
		{Name: "completion_rate", Type: field.TypeFloat64, Default: 0},
		{Name: "average_score", Type: field.TypeFloat64, Default: 0},
		{Name: "completed_materials", Type: field.TypeString, Default: "[]", Comment: "JSON array of material ids"},
		{Name: "updated_at", Type: field.TypeString, Comment: "RFC 3339 timestamp of the last update"},
	}

	// progressTable holds one progress record per (learner, subject).
	progressTable = &schema.Table{
		Name:       progressTableName,
		Columns:    progressColumns,
		PrimaryKey: []*schema.Column{progressColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "learnerprogress_learner_id_subject_key",
				Unique:  true,
				Columns: []*schema.Column{progressColumns[1], progressColumns[3]},
			},
			{
				Name:    "learnerprogress_learner_id",
				Unique:  false,
				Columns: []*schema.Column{progressColumns[1]},
			},
		},
	}

	tables = []*schema.Table{progressTable}
)
