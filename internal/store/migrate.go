package store

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"entgo.io/ent"
	sqlannotation "entgo.io/ent/dialect/entsql"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	entschema "github.com/abhisek/examportal/ent/schema"
)

// Table names, taken from the schema annotations.
const (
	tableHistory      = "exam_history"
	tableActivity     = "activity_log"
	tableProgress     = "user_progress"
	tableCertificates = "certificates"
	tableUsers        = "users"
	tableLLMRequests  = "llm_requests"
)

// entities lists every persisted schema.
func entities() []ent.Interface {
	return []ent.Interface{
		entschema.ExamAttempt{},
		entschema.Activity{},
		entschema.UserProgress{},
		entschema.Certificate{},
		entschema.User{},
		entschema.LLMRequestEvent{},
	}
}

// migrate creates or updates all tables.
func migrate(ctx context.Context, drv *entsql.Driver) error {
	tables, err := buildTables(entities())
	if err != nil {
		return err
	}
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := m.Create(ctx, tables...); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

// buildTables turns ent schema definitions into migration tables. Every
// table gets an auto-increment integer "id" primary key.
func buildTables(defs []ent.Interface) ([]*schema.Table, error) {
	tables := make([]*schema.Table, 0, len(defs))
	for _, def := range defs {
		t, err := buildTable(def)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

func buildTable(def ent.Interface) (*schema.Table, error) {
	name := tableName(def)
	id := &schema.Column{Name: "id", Type: field.TypeInt, Increment: true}
	t := &schema.Table{
		Name:       name,
		Columns:    []*schema.Column{id},
		PrimaryKey: []*schema.Column{id},
	}

	var fields []ent.Field
	var indexes []ent.Index
	for _, mx := range def.Mixin() {
		fields = append(fields, mx.Fields()...)
		indexes = append(indexes, mx.Indexes()...)
	}
	fields = append(fields, def.Fields()...)
	indexes = append(indexes, def.Indexes()...)

	columns := make(map[string]*schema.Column, len(fields))
	for _, f := range fields {
		d := f.Descriptor()
		if d.Err != nil {
			return nil, fmt.Errorf("%s.%s: %w", name, d.Name, d.Err)
		}
		c := &schema.Column{
			Name:     d.Name,
			Type:     d.Info.Type,
			Unique:   d.Unique,
			Nullable: d.Optional || d.Nillable,
			Size:     int64(d.Size),
		}
		if d.Default != nil && reflect.TypeOf(d.Default).Kind() != reflect.Func {
			c.Default = d.Default
		}
		columns[d.Name] = c
		t.Columns = append(t.Columns, c)
	}

	for _, idx := range indexes {
		d := idx.Descriptor()
		cols := make([]*schema.Column, 0, len(d.Fields))
		for _, fname := range d.Fields {
			c, ok := columns[fname]
			if !ok {
				return nil, fmt.Errorf("%s: index on unknown column %q", name, fname)
			}
			cols = append(cols, c)
		}
		t.Indexes = append(t.Indexes, &schema.Index{
			Name:    name + "_" + strings.Join(d.Fields, "_"),
			Unique:  d.Unique,
			Columns: cols,
		})
	}
	return t, nil
}

// tableName reads the entsql table annotation, falling back to the
// snake-cased type name.
func tableName(def ent.Interface) string {
	for _, a := range def.Annotations() {
		switch ann := a.(type) {
		case sqlannotation.Annotation:
			if ann.Table != "" {
				return ann.Table
			}
		case *sqlannotation.Annotation:
			if ann != nil && ann.Table != "" {
				return ann.Table
			}
		}
	}
	return snake(reflect.TypeOf(def).Name())
}

func snake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
