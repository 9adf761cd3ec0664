package entities

type Store struct {
	ID       uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string  `gorm:"uniqueIndex;not null" json:"name"`
	Location *string `json:"location,omitempty"`
	Notes    *string `json:"notes,omitempty"`

	Timestamp
}
