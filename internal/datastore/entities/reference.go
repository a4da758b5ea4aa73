package entities

// Reference is a literature source identified by its DOI.
type Reference struct {
	ReferenceID int64   `gorm:"column:reference_id;primaryKey;autoIncrement:false" yaml:"reference_id"`
	DOI         *string `gorm:"column:doi;type:varchar(255)" yaml:"doi"`
}

// TableName returns the table name for GORM.
func (Reference) TableName() string {
	return "References_Table"
}
