// Package queries contains the read side of refill. Handlers run raw SQL
// through GORM against the relational schema and return flat response
// structs; they never load aggregates.
package queries

import (
	"errors"
	"strings"

	"refill/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ErrReadModelUnavailable is returned by every handler built without a
// database, i.e. when the service runs on the in-memory store.
var ErrReadModelUnavailable = errors.New("read model is not available without a relational database")

// likeEscaper neutralizes LIKE wildcards in user search terms.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching term anywhere.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// digitsOf keeps the ASCII digits of s, so "926 060" matches stored phones.
func digitsOf(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

func toKernelUUID(id uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func toKernelUUIDPtr(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil //nolint:nilnil // absent reference
	}
	k, err := toKernelUUID(*id)
	if err != nil {
		return nil, err
	}
	return &k, nil
}
