package entities

// SymptomRecord is one observed symptom of one species as reported by one
// reference. The table has no primary key; a (species, reference) pair
// usually has several rows.
type SymptomRecord struct {
	SpeciesID   int64   `gorm:"column:species_id;not null;index:idx_symptom_pair" yaml:"species_id"`
	ReferenceID int64   `gorm:"column:reference_id;not null;index:idx_symptom_pair" yaml:"reference_id"`
	Symptom     string  `gorm:"column:symptom;type:text;not null" yaml:"symptom"`
	OnsetTime   *string `gorm:"column:onset_time;type:text" yaml:"onset_time"`
	Duration    *string `gorm:"column:duration;type:text" yaml:"duration"`
}

// TableName returns the table name for GORM.
func (SymptomRecord) TableName() string {
	return "Envenomation_Symptoms"
}
