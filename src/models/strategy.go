package models

import "time"

type Strategy struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	StartDate   time.Time `db:"start_date"`
	InitialNav  float64   `db:"initial_nav"`
	CreatedAt   time.Time `db:"created_at"`
}
