package repo

import "github.com/jmoiron/sqlx"

// Tx is satisfied by both *sqlx.DB and *sqlx.Tx, so repositories run the same
// statements inside or outside a transaction.
type Tx interface {
	sqlx.ExtContext
}
