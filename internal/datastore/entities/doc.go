// Package entities defines the GORM models of the envenomation knowledge
// base. Table and column names match the existing knowledge-base.db so a
// database built by other tooling opens unchanged.
package entities

// All returns every model in creation order, for AutoMigrate.
func All() []any {
	return []any{
		&Species{},
		&Reference{},
		&CommonName{},
		&SymptomRecord{},
		&TreatmentProtocol{},
	}
}
