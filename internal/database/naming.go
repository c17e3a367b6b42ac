package database

import (
	"fmt"

	"gorm.io/gorm/schema"
)

// NamingStrategy keeps GORM's defaults but names foreign keys
// fk_<table>_<column>_<referenced_table>.
type NamingStrategy struct {
	schema.NamingStrategy
}

func (ns NamingStrategy) RelationshipFKName(rel schema.Relationship) string {
	for _, ref := range rel.References {
		if ref.ForeignKey == nil || ref.PrimaryKey == nil {
			continue
		}
		if ref.ForeignKey.Schema == nil || ref.PrimaryKey.Schema == nil {
			continue
		}
		return fmt.Sprintf("fk_%s_%s_%s",
			ref.ForeignKey.Schema.Table, ref.ForeignKey.DBName, ref.PrimaryKey.Schema.Table)
	}
	return ns.NamingStrategy.RelationshipFKName(rel)
}
