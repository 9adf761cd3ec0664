package entities

// Setting is a key/value row. Currently only used to persist the cached
// shopping list between sessions.
type Setting struct {
	Key   string `gorm:"primaryKey" json:"key"`
	Value string `gorm:"type:text" json:"value"`
}
