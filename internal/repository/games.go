package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

const gameColumns = `url, id_num, name, popular_tags, game_details, genre,
	game_description, mature_content, price, popularity_score,
	genre_bools, neighbours, similarity_scores`

const insertGameSQL = `INSERT INTO games (` + gameColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

// SaveGames replaces the stored dataset with the given compact records.
// Records are kept in insertion order so the load path can replay the
// persisted adjacency the same way it was written.
func (r *Repository) SaveGames(ctx context.Context, records [][]string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin save games: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `TRUNCATE games RESTART IDENTITY`); err != nil {
		return fmt.Errorf("truncate games: %w", err)
	}

	batch := &pgx.Batch{}
	for _, record := range records {
		args := make([]any, len(record))
		for i, field := range record {
			args[i] = field
		}
		batch.Queue(insertGameSQL, args...)
	}

	results := tx.SendBatch(ctx, batch)
	for range records {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("insert game record: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("close game batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit save games: %w", err)
	}
	return nil
}

// ListGames returns every stored compact record in insertion order.
func (r *Repository) ListGames(ctx context.Context) ([][]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+gameColumns+` FROM games ORDER BY seq`,
	)
	if err != nil {
		return nil, fmt.Errorf("query games: %w", err)
	}
	defer rows.Close()

	var records [][]string
	for rows.Next() {
		record := make([]string, 13)
		dests := make([]any, len(record))
		for i := range record {
			dests[i] = &record[i]
		}
		if err := rows.Scan(dests...); err != nil {
			return nil, fmt.Errorf("scan game record: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over game records: %w", err)
	}
	return records, nil
}

// CountGames returns the number of stored games.
func (r *Repository) CountGames(ctx context.Context) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM games`,
	).Scan(&total)

	if err != nil {
		return 0, fmt.Errorf("count games: %w", err)
	}
	return total, nil
}
