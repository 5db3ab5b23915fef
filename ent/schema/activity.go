package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Activity is an entry in the global, capped activity log.
type Activity struct {
	ent.Schema
}

func (Activity) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "activity_log"},
	}
}

func (Activity) Mixin() []ent.Mixin {
	return []ent.Mixin{UserMixin{}}
}

func (Activity) Fields() []ent.Field {
	return []ent.Field{
		field.String("action").
			Comment("exam_started, exam_completed or exam_exited"),
		field.String("exam_id").
			Default(""),
		field.JSON("data", map[string]any{}).
			Optional().
			Comment("Action-specific payload"),
	}
}

func (Activity) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("action"),
	}
}
