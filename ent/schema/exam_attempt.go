package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// ExamAttempt is one completed exam in a user's capped history.
type ExamAttempt struct {
	ent.Schema
}

func (ExamAttempt) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "exam_history"},
	}
}

func (ExamAttempt) Mixin() []ent.Mixin {
	return []ent.Mixin{UserMixin{}}
}

func (ExamAttempt) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			Comment("Exam session UUID"),
		field.String("exam_id"),
		field.String("name").
			Comment("Exam display name at the time of the attempt"),
		field.Int("score"),
		field.String("grade").
			Comment("Letter grade"),
		field.Int("time_spent_minutes").
			Default(0),
		field.Int("questions_correct").
			Default(0),
		field.Int("total_questions").
			Default(0),
		field.Bool("auto_submitted").
			Default(false),
		field.Bool("passed").
			Default(false),
		field.String("status").
			Default("completed"),
	}
}

func (ExamAttempt) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("exam_id"),
		index.Fields("session_id").Unique(),
	}
}
