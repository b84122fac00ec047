package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/ratehub/store-rating-api/internal/core/domain"
	"github.com/ratehub/store-rating-api/internal/core/ports"
)

const uniqueViolation = "23505"

// Sort enumerations map to fixed column references here; caller input never
// reaches the SQL text as an identifier.
var userSortColumns = map[ports.SortField]string{
	ports.SortByName:    "u.name",
	ports.SortByEmail:   "u.email",
	ports.SortByAddress: "u.address",
	ports.SortByRole:    "u.role",
}

var storeSortColumns = map[ports.SortField]string{
	ports.SortByName:    "u.name",
	ports.SortByEmail:   "u.email",
	ports.SortByAddress: "u.address",
	ports.SortByRating:  "rating",
}

// UserRepository persists accounts (and therefore stores) in the users table.
type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (int64, error) {
	ctx, cancel := r.db.queryCtx(ctx)
	defer cancel()

	var id int64
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash, address, role)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		user.Name, user.Email, user.PasswordHash, user.Address, user.Role,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return 0, domain.ErrEmailTaken
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return id, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, "id = $1", id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "email = $1", email)
}

func (r *UserRepository) findOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	ctx, cancel := r.db.queryCtx(ctx)
	defer cancel()

	var u domain.User
	err := r.db.Pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, address, role, created_at
		 FROM users WHERE `+where, arg,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Address, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	ctx, cancel := r.db.queryCtx(ctx)
	defer cancel()

	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) ListUsers(ctx context.Context, filter ports.UserListFilter) ([]ports.UserWithRating, error) {
	ctx, cancel := r.db.queryCtx(ctx)
	defer cancel()

	var sb strings.Builder
	sb.WriteString(
		`SELECT u.id, u.name, u.email, u.address, u.role,
		        (SELECT AVG(rating)::float8 FROM ratings WHERE store_id = u.id) AS rating
		 FROM users u
		 WHERE 1=1`)
	var args []any
	args = appendSubstringFilter(&sb, args, "u.name", filter.Name)
	args = appendSubstringFilter(&sb, args, "u.email", filter.Email)
	args = appendSubstringFilter(&sb, args, "u.address", filter.Address)
	if filter.Role != "" {
		args = append(args, filter.Role)
		fmt.Fprintf(&sb, " AND u.role = $%d", len(args))
	}
	appendOrderBy(&sb, userSortColumns, filter.Sort)

	rows, err := r.db.Pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]ports.UserWithRating, 0)
	for rows.Next() {
		var u ports.UserWithRating
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Address, &u.Role, &u.Rating); err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) ListStores(ctx context.Context, filter ports.StoreListFilter) ([]ports.StoreWithRating, error) {
	ctx, cancel := r.db.queryCtx(ctx)
	defer cancel()

	var sb strings.Builder
	sb.WriteString(
		`SELECT u.id, u.name, u.email, u.address,
		        (SELECT AVG(rating)::float8 FROM ratings WHERE store_id = u.id) AS rating
		 FROM users u
		 WHERE u.role = 'store'`)
	var args []any
	args = appendSubstringFilter(&sb, args, "u.name", filter.Name)
	args = appendSubstringFilter(&sb, args, "u.email", filter.Email)
	args = appendSubstringFilter(&sb, args, "u.address", filter.Address)
	appendOrderBy(&sb, storeSortColumns, filter.Sort)

	rows, err := r.db.Pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()

	stores := make([]ports.StoreWithRating, 0)
	for rows.Next() {
		var s ports.StoreWithRating
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Address, &s.Rating); err != nil {
			return nil, fmt.Errorf("scan store row: %w", err)
		}
		stores = append(stores, s)
	}
	return stores, rows.Err()
}

func (r *UserRepository) CountUsers(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM users`)
}

func (r *UserRepository) CountStores(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM users WHERE role = 'store'`)
}

func (r *UserRepository) count(ctx context.Context, query string) (int64, error) {
	ctx, cancel := r.db.queryCtx(ctx)
	defer cancel()

	var n int64
	if err := r.db.Pool.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

// appendSubstringFilter adds a case-insensitive substring condition for value
// when it is non-empty. The column name comes from a fixed call site, never
// from caller input.
func appendSubstringFilter(sb *strings.Builder, args []any, column, value string) []any {
	if value == "" {
		return args
	}
	args = append(args, value)
	fmt.Fprintf(sb, " AND %s ILIKE '%%' || $%d || '%%'", column, len(args))
	return args
}

// appendOrderBy resolves the whitelisted sort field against the column map,
// falling back to name ascending for anything unmapped.
func appendOrderBy(sb *strings.Builder, columns map[ports.SortField]string, sort ports.Sort) {
	column, ok := columns[sort.Field]
	if !ok {
		column = "u.name"
	}
	direction := "ASC"
	if sort.Direction == ports.SortDesc {
		direction = "DESC"
	}
	fmt.Fprintf(sb, " ORDER BY %s %s", column, direction)
}
