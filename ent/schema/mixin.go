package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	"entgo.io/ent/schema/mixin"
)

// UserMixin scopes a record to a user and timestamps it.
type UserMixin struct {
	mixin.Schema
}

func (UserMixin) Fields() []ent.Field {
	return []ent.Field{
		field.String("user_id").
			Comment("Opaque user id derived from the display name"),
		field.Int64("created_at").
			Immutable().
			Comment("Unix milliseconds when the record was written"),
	}
}

func (UserMixin) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("user_id", "created_at"),
	}
}
