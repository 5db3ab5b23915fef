package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
)

// Certificate is issued for a passed exam.
type Certificate struct {
	ent.Schema
}

func (Certificate) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "certificates"},
	}
}

func (Certificate) Mixin() []ent.Mixin {
	return []ent.Mixin{UserMixin{}}
}

func (Certificate) Fields() []ent.Field {
	return []ent.Field{
		field.String("credential_id").
			Unique().
			Comment("Public credential, e.g. JAVA-2025-3F9A1C"),
		field.String("exam_id"),
		field.String("title"),
		field.Int("score"),
		field.String("grade"),
		field.String("tier").
			Comment("bronze, silver, gold or platinum"),
		field.String("status").
			Default("verified"),
	}
}
