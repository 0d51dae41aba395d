package models

import (
	"sync"
	"testing"

	"gorm.io/gorm/schema"
)

func TestTableNames(t *testing.T) {
	cache := &sync.Map{}
	cases := map[string]any{
		"users":                 &User{},
		"pending_registrations": &PendingRegistration{},
		"products":              &Product{},
		"inventory_logs":        &InventoryLog{},
		"user_preferences":      &UserPreference{},
		"user_addresses":        &UserAddress{},
	}
	for want, model := range cases {
		s, err := schema.Parse(model, cache, schema.NamingStrategy{})
		if err != nil {
			t.Fatalf("parse %s: %v", want, err)
		}
		if s.Table != want {
			t.Fatalf("unexpected table name: got %s, want %s", s.Table, want)
		}
	}
}

func TestColumnNames(t *testing.T) {
	s, err := schema.Parse(&UserAddress{}, &sync.Map{}, schema.NamingStrategy{})
	if err != nil {
		t.Fatal(err)
	}
	for _, col := range []string{"line1", "line2", "postal_code", "is_primary"} {
		if _, ok := s.FieldsByDBName[col]; !ok {
			t.Fatalf("missing column %s", col)
		}
	}
}
