package ranking

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const rankingTable = "makao_ranking"

// PostgresStore keeps the ranking in the makao_ranking table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &PostgresStore{pool: pool}, nil
}

// Migrate creates the ranking table if it is missing.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS makao_ranking (
		player TEXT PRIMARY KEY,
		score  INTEGER NOT NULL
	)`)
	return err
}

func (s *PostgresStore) Load(ctx context.Context) (map[string]int, error) {
	rows, err := s.pool.Query(ctx, `SELECT player, score FROM makao_ranking`)
	if err != nil {
		return nil, err
	}

	entries, err := pgx.CollectRows(rows, pgx.RowToStructByPos[Entry])
	if err != nil {
		return nil, err
	}

	scores := make(map[string]int, len(entries))
	for _, e := range entries {
		scores[e.Player] = e.Score
	}
	return scores, nil
}

// Save replaces every row inside one transaction.
func (s *PostgresStore) Save(ctx context.Context, scores map[string]int) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM makao_ranking`); err != nil {
			return err
		}

		rows := make([][]interface{}, 0, len(scores))
		for player, score := range scores {
			rows = append(rows, []interface{}{player, int32(score)})
		}

		_, err := tx.CopyFrom(ctx,
			pgx.Identifier{rankingTable},
			[]string{"player", "score"},
			pgx.CopyFromRows(rows),
		)
		return err
	})
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}
