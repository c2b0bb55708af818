package store

import (
	"context"
	"errors"
	"fmt"

	"talent-tracker/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// safeRollback 忽略 commit 之後的 ErrTxClosed
func safeRollback(ctx context.Context, tx database.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}

// DeleteUserCascade 在同一個交易中刪除使用者的所有表現紀錄與使用者本身，
// 回傳被刪除紀錄的影片檔路徑。使用者不存在時回傳 ErrNotFound 且不留下任何變更
func DeleteUserCascade(ctx context.Context, db database.DB, userID uuid.UUID) (files []string, err error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("DeleteUserCascade: %w", err)
	}
	defer func() {
		if rbErr := safeRollback(ctx, tx); rbErr != nil && err == nil {
			err = fmt.Errorf("DeleteUserCascade: rollback: %w", rbErr)
		}
	}()

	files, err = DeletePerformancesByUser(ctx, tx, userID)
	if err != nil {
		return nil, fmt.Errorf("DeleteUserCascade: %w", err)
	}
	if err = DeleteUser(ctx, tx, userID); err != nil {
		return nil, fmt.Errorf("DeleteUserCascade: %w", err)
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("DeleteUserCascade: %w", err)
	}
	return files, nil
}
