package repository

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/doug-martin/goqu/v9"
)

// ChangeChannel is the postgres NOTIFY channel every table mutation is
// announced on; the payload is the table name.
const ChangeChannel = "table_changes"

type Repository struct {
	DB            *sql.DB
	GoquDBWrapper *goqu.Database
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		DB:            db,
		GoquDBWrapper: goqu.New("postgres", db),
	}
}

// NotifyChange announces that something in the table changed. Subscribers get
// no payload diff, only the table name; they re-fetch. A failed notify is
// logged and swallowed so it never fails the mutation it follows.
func (r *Repository) NotifyChange(table string) {
	if _, err := r.DB.Exec("SELECT pg_notify($1, $2)", ChangeChannel, table); err != nil {
		log.Printf("failed to notify change on %s: %v", table, err)
	}
}

func WithTransaction(db *goqu.Database, fn func(tx *goqu.TxDatabase) error) (err error) {
	rawTx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	tx := goqu.NewTx("postgres", rawTx)
	defer func() {
		if p := recover(); p != nil {
			rawTx.Rollback()
			panic(p)
		} else if err != nil {
			rawTx.Rollback()
		} else {
			err = rawTx.Commit()
		}
	}()

	err = fn(tx)
	return
}
