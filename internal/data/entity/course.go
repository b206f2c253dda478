package entity

type Course struct {
	Base
	Name     string `db:"name"`
	IsActive bool   `db:"is_active"`
}
