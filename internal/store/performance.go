package store

import (
	"context"
	"fmt"

	"talent-tracker/internal/database"
	"talent-tracker/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const performanceColumns = `id, user_id, sport, speed, stamina, strength, video_url, video_file, created_at`

func scanPerformance(row pgx.Row) (*model.Performance, error) {
	p := &model.Performance{}
	if err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Sport,
		&p.Speed,
		&p.Stamina,
		&p.Strength,
		&p.VideoURL,
		&p.VideoFile,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	return p, nil
}

func collectPerformances(rows pgx.Rows) ([]model.Performance, error) {
	defer rows.Close()
	out := []model.Performance{}
	for rows.Next() {
		p, err := scanPerformance(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func CreatePerformance(ctx context.Context, db database.Querier, p *model.Performance) (*model.Performance, error) {
	p.ID = newID()
	row := db.QueryRow(ctx,
		`INSERT INTO performances (id, user_id, sport, speed, stamina, strength, video_url, video_file)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at`,
		p.ID,
		p.UserID,
		p.Sport,
		p.Speed,
		p.Stamina,
		p.Strength,
		p.VideoURL,
		p.VideoFile,
	)
	if err := row.Scan(&p.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreatePerformance: %w", translate(err))
	}
	return p, nil
}

// ListPerformancesByUser 依建立時間由新到舊
func ListPerformancesByUser(ctx context.Context, db database.Querier, userID uuid.UUID) ([]model.Performance, error) {
	rows, err := db.Query(ctx,
		`SELECT `+performanceColumns+`
		 FROM performances WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListPerformancesByUser: %w", err)
	}
	out, err := collectPerformances(rows)
	if err != nil {
		return nil, fmt.Errorf("ListPerformancesByUser: %w", err)
	}
	return out, nil
}

func ListPerformances(ctx context.Context, db database.Querier) ([]model.Performance, error) {
	rows, err := db.Query(ctx,
		`SELECT `+performanceColumns+`
		 FROM performances ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListPerformances: %w", err)
	}
	out, err := collectPerformances(rows)
	if err != nil {
		return nil, fmt.Errorf("ListPerformances: %w", err)
	}
	return out, nil
}

// DeletePerformance 刪除並回傳被刪除的紀錄，讓呼叫端能清掉影片檔
func DeletePerformance(ctx context.Context, db database.Querier, id uuid.UUID) (*model.Performance, error) {
	row := db.QueryRow(ctx,
		`DELETE FROM performances WHERE id = $1
		 RETURNING `+performanceColumns,
		id,
	)
	p, err := scanPerformance(row)
	if err != nil {
		return nil, fmt.Errorf("DeletePerformance: %w", translate(err))
	}
	return p, nil
}

// DeletePerformancesByUser 回傳被刪除紀錄中非空的影片檔路徑
func DeletePerformancesByUser(ctx context.Context, db database.Querier, userID uuid.UUID) ([]string, error) {
	rows, err := db.Query(ctx,
		`DELETE FROM performances WHERE user_id = $1
		 RETURNING video_file`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("DeletePerformancesByUser: %w", err)
	}
	defer rows.Close()

	files := []string{}
	for rows.Next() {
		var f string
		if err := rows.Scan(&f); err != nil {
			return nil, fmt.Errorf("DeletePerformancesByUser: %w", err)
		}
		if f != "" {
			files = append(files, f)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("DeletePerformancesByUser: %w", err)
	}
	return files, nil
}
