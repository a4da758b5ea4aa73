package entities

// Species carries per-species media. Picture is a path relative to the
// web root, e.g. "images/chironex.jpg".
type Species struct {
	SpeciesID int64   `gorm:"column:species_id;primaryKey;autoIncrement:false" yaml:"species_id"`
	Picture   *string `gorm:"column:picture;type:varchar(500)" yaml:"picture"`
}

// TableName returns the table name for GORM.
func (Species) TableName() string {
	return "Species"
}
