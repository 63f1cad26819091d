// Package storage persists contract records and assigns their unique
// numbers. Two implementations share the Store interface: the Postgres store
// used in production and an in-memory store for tests and local runs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Umidjon1990/Shartnoma/internal/contract"
)

// ErrNotFound is returned when a referenced contract does not exist.
var ErrNotFound = errors.New("contract not found")

// Contract is a persisted contract record.
type Contract struct {
	ID             int64     `json:"id"`
	ContractNumber string    `json:"contractNumber"`
	StudentName    string    `json:"studentName"`
	Phone          string    `json:"phone"`
	Age            string    `json:"age"`
	Course         string    `json:"course"`
	Format         string    `json:"format"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Fields maps a stored record to the substitutable document fields.
func (c Contract) Fields() contract.Fields {
	return contract.Fields{
		Name:   c.StudentName,
		Age:    c.Age,
		Course: c.Course,
		Format: c.Format,
		Date:   c.CreatedAt.Format(contract.DateLayout),
		Number: c.ContractNumber,
	}
}

// NewContract is the insert shape; number, status and timestamp are assigned
// by the store.
type NewContract struct {
	StudentName string `json:"studentName"`
	Phone       string `json:"phone"`
	Age         string `json:"age"`
	Course      string `json:"course"`
	Format      string `json:"format"`
}

func (nc *NewContract) applyDefaults() {
	if nc.Format == "" {
		nc.Format = "Online"
	}
}

// Store is the persistence boundary for contract records.
type Store interface {
	All(ctx context.Context) ([]Contract, error)
	ByID(ctx context.Context, id int64) (Contract, error)
	Create(ctx context.Context, nc NewContract) (Contract, error)
	Delete(ctx context.Context, id int64) error
}

// contractNumber derives the unique number assigned at creation:
// CN-<year>-<sequence, zero-padded to three digits>.
func contractNumber(year int, sequence int64) string {
	return fmt.Sprintf("CN-%d-%03d", year, sequence)
}
