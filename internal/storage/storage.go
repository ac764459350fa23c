package storage

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/syndicate-server/internal/config"
)

// Storage is the root database handle. Reads go through Read; writes go
// through a transactional Writer obtained from Write.
type Storage struct {
	DB   *sql.DB
	bdb  bob.DB
	Read *Reader
}

func NewStorage(env *config.Config) (*Storage, error) {
	db, err := sql.Open("postgres", env.ConnectionString())
	if err != nil {
		return nil, err
	}

	bdb := bob.NewDB(db)
	return &Storage{
		DB:   db,
		bdb:  bdb,
		Read: NewReader(bdb),
	}, nil
}

// Write begins a transaction and returns a Writer bound to it. The caller
// owns Commit/Rollback.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.bdb.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	writer := NewWriter(tx)
	return &writer, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}
