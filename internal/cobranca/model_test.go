package cobranca

import (
	"sync"
	"testing"

	"gorm.io/gorm/schema"
)

func TestFKDeParcelasComCascade(t *testing.T) {
	s, err := schema.Parse(&Cobranca{}, &sync.Map{}, schema.NamingStrategy{})
	if err != nil {
		t.Fatalf("schema.Parse: %v", err)
	}
	rel, ok := s.Relationships.Relations[relacaoParcelas]
	if !ok {
		t.Fatalf("relação %q não encontrada", relacaoParcelas)
	}
	c := rel.ParseConstraint()
	if c == nil {
		t.Fatal("relação sem constraint; CreateConstraint não teria o que criar")
	}
	if c.Schema.Table != "installments" || c.ReferenceSchema.Table != "debts" {
		t.Errorf("constraint em %s -> %s, quero installments -> debts", c.Schema.Table, c.ReferenceSchema.Table)
	}
	if len(c.ForeignKeys) != 1 || c.ForeignKeys[0].DBName != "debt_id" {
		t.Errorf("foreign keys = %+v", c.ForeignKeys)
	}
	if c.OnDelete != "CASCADE" {
		t.Errorf("OnDelete = %q, quero CASCADE", c.OnDelete)
	}
}
