package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
)

// UserProgress holds running totals per user.
type UserProgress struct {
	ent.Schema
}

func (UserProgress) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "user_progress"},
	}
}

func (UserProgress) Fields() []ent.Field {
	return []ent.Field{
		field.String("user_id").
			Unique(),
		field.Int("total_exams").
			Default(0),
		field.Int("passed_exams").
			Default(0),
		field.Int("xp").
			Default(0).
			Comment("Experience points, twice the score of every exam taken"),
		field.Int64("updated_at").
			Comment("Unix milliseconds of the last update"),
	}
}
