package store

import (
	"context"
	"fmt"

	"talent-tracker/internal/database"
	"talent-tracker/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, name, email, password_hash, role, created_at`

var newID = uuid.New

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	var role string
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&role,
		&u.CreatedAt,
	); err != nil {
		return nil, err
	}
	u.Role = model.Role(role)
	return u, nil
}

func collectUsers(rows pgx.Rows) ([]*model.User, error) {
	defer rows.Close()
	users := []*model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser 新增使用者；email 重複時回傳 ErrDuplicate
func CreateUser(ctx context.Context, db database.Querier, u *model.User) (*model.User, error) {
	if u.Role == "" {
		u.Role = model.RolePlayer
	}
	u.ID = newID()
	row := db.QueryRow(ctx,
		`INSERT INTO users (id, name, email, password_hash, role)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		u.ID,
		u.Name,
		u.Email,
		u.PasswordHash,
		string(u.Role),
	)
	if err := row.Scan(&u.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreateUser: %w", translate(err))
	}
	return u, nil
}

func GetUserByID(ctx context.Context, db database.Querier, userID uuid.UUID) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+`
		 FROM users WHERE id = $1`,
		userID,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("GetUserByID: %w", translate(err))
	}
	return u, nil
}

// GetUserByEmail 以儲存時的大小寫比對 email
func GetUserByEmail(ctx context.Context, db database.Querier, email string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+`
		 FROM users WHERE email = $1`,
		email,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("GetUserByEmail: %w", translate(err))
	}
	return u, nil
}

func ListUsers(ctx context.Context, db database.Querier) ([]*model.User, error) {
	rows, err := db.Query(ctx,
		`SELECT `+userColumns+`
		 FROM users ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	users, err := collectUsers(rows)
	if err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	return users, nil
}

func ListUsersByRole(ctx context.Context, db database.Querier, role model.Role) ([]*model.User, error) {
	rows, err := db.Query(ctx,
		`SELECT `+userColumns+`
		 FROM users WHERE role = $1 ORDER BY name`,
		string(role),
	)
	if err != nil {
		return nil, fmt.Errorf("ListUsersByRole: %w", err)
	}
	users, err := collectUsers(rows)
	if err != nil {
		return nil, fmt.Errorf("ListUsersByRole: %w", err)
	}
	return users, nil
}

// UpdateUserRole 更新角色並回傳更新後的使用者；不存在時回傳 ErrNotFound
func UpdateUserRole(ctx context.Context, db database.Querier, userID uuid.UUID, role model.Role) (*model.User, error) {
	row := db.QueryRow(ctx,
		`UPDATE users SET role = $1
		 WHERE id = $2
		 RETURNING `+userColumns,
		string(role),
		userID,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("UpdateUserRole: %w", translate(err))
	}
	return u, nil
}

// UpdateUserName 更新顯示名稱並回傳更新後的使用者
func UpdateUserName(ctx context.Context, db database.Querier, userID uuid.UUID, name string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`UPDATE users SET name = $1
		 WHERE id = $2
		 RETURNING `+userColumns,
		name,
		userID,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("UpdateUserName: %w", translate(err))
	}
	return u, nil
}

func UpdateUserPassword(ctx context.Context, db database.Querier, userID uuid.UUID, passwordHash string) error {
	tag, err := db.Exec(ctx,
		`UPDATE users
		 SET password_hash = $1
		 WHERE id = $2`,
		passwordHash,
		userID,
	)
	if err != nil {
		return fmt.Errorf("UpdateUserPassword: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateUserPassword: %w", ErrNotFound)
	}
	return nil
}

func DeleteUser(ctx context.Context, db database.Querier, userID uuid.UUID) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM users WHERE id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("DeleteUser: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteUser: %w", ErrNotFound)
	}
	return nil
}
