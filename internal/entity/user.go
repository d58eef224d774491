package entity

type User struct {
	Base

	Name string `gorm:"index:,unique"`

	// Languages the user can subtitle in, ordered by preference.
	Languages Array[string] `gorm:"type:text"`
}
