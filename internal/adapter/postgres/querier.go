package postgres

import (
	"github.com/nkalandadze/zmna-backend/internal/adapter/postgres/verb"
)

// Querier is the query surface shared by *pgxpool.Pool and the pgxmock
// pool used in repository tests. The interface lives in the verb
// package so the repo there does not import this package back.
type Querier = verb.Querier
