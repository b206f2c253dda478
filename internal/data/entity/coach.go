package entity

type Coach struct {
	Base
	Name     string `db:"name"`
	IsActive bool   `db:"is_active"`
}
