package entities

// CommonName is a vernacular name used by a reference for a species.
type CommonName struct {
	SpeciesID   int64   `gorm:"column:species_id;not null;index:idx_common_name_pair" yaml:"species_id"`
	ReferenceID int64   `gorm:"column:reference_id;not null;index:idx_common_name_pair" yaml:"reference_id"`
	Name        *string `gorm:"column:common_name;type:varchar(255)" yaml:"common_name"`
}

// TableName returns the table name for GORM.
func (CommonName) TableName() string {
	return "Common_Names"
}
