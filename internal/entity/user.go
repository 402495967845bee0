package entity

type User struct {
	Base

	Name string `gorm:"unique"`
	Role string `gorm:"default:USER"`
}

const (
	AdminRole = "ADMIN"
	UserRole  = "USER"
)
