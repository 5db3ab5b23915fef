package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// User is a known display name. There is no authentication.
type User struct {
	ent.Schema
}

func (User) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "users"},
	}
}

func (User) Fields() []ent.Field {
	return []ent.Field{
		field.String("user_id").
			Unique(),
		field.String("name"),
		field.Int64("created_at").
			Immutable(),
		field.Int64("last_seen_at"),
	}
}

func (User) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("last_seen_at"),
	}
}
