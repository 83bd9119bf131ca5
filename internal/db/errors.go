package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

var (
	// ErrDuplicateDay: índice único diário (check-in/post) disparou.
	// Estado benigno ("já feito hoje"), nunca um erro para o usuário.
	ErrDuplicateDay = errors.New("registro já existe para hoje")

	// ErrRegularEnrollmentExists: aluno tentou segunda matrícula regular
	// sem passar pelo fluxo de aprovação.
	ErrRegularEnrollmentExists = errors.New("aluno já possui matrícula regular")
)

const pgUniqueViolation = "23505"

// isUniqueViolation cobre os dois drivers em uso: pgx em produção e
// lib/pq nos testes de integração (testcontainers).
func isUniqueViolation(err error) bool {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code == pgUniqueViolation
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUniqueViolation
	}
	return false
}
