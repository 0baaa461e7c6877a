package models

// User represents the user model in the database
type User struct {
	Base
	Username     string        `gorm:"uniqueIndex;not null" json:"username"`
	Email        string        `gorm:"uniqueIndex;not null" json:"email"`
	Password     string        `gorm:"not null" json:"-"`
	FullName     string        `json:"full_name"`
	IsAdmin      bool          `gorm:"not null;default:false" json:"is_admin"`
	IsActive     bool          `gorm:"not null;default:true" json:"is_active"`
	Transactions []Transaction `gorm:"foreignKey:UserID" json:"-"`
}
