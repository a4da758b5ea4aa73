package entities

// TreatmentProtocol is the care guidance a reference gives for a species.
// There is at most one row per (species, reference) pair.
type TreatmentProtocol struct {
	SpeciesID         int64   `gorm:"column:species_id;primaryKey;autoIncrement:false" yaml:"species_id"`
	ReferenceID       int64   `gorm:"column:reference_id;primaryKey;autoIncrement:false" yaml:"reference_id"`
	FirstAid          *string `gorm:"column:first_aid;type:text" yaml:"first_aid"`
	HospitalTreatment *string `gorm:"column:hospital_treatment;type:text" yaml:"hospital_treatment"`
	Prognosis         *string `gorm:"column:prognosis;type:text" yaml:"prognosis"`
}

// TableName returns the table name for GORM.
func (TreatmentProtocol) TableName() string {
	return "Treatment_Protocols"
}
