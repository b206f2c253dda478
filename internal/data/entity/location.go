package entity

type Location struct {
	Base
	Name     string `db:"name"`
	IsActive bool   `db:"is_active"`
}
