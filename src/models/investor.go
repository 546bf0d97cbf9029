package models

import "time"

type Investor struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Contact   string    `db:"contact"`
	CreatedAt time.Time `db:"created_at"`
}
