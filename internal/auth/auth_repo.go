package auth

import (
	"context"
	"database/sql"

	"github.com/towet/payroll-processing-sys/internal/shared/dbtx"

	"gorm.io/gorm"
)

//go:generate mockgen -destination=mock/auth_repo_mock.go -package=mock . Repository
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateUser(ctx context.Context, u *User) error
	CreateProfile(ctx context.Context, p *Profile) error
	FindUserByEmail(ctx context.Context, email string) (*User, error)
	FindProfile(ctx context.Context, id string) (*Profile, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return dbtx.Conn(ctx, r.db, r.tx)
}

func (r *repository) CreateUser(ctx context.Context, u *User) error {
	return r.conn(ctx).Create(u).Error
}

func (r *repository) CreateProfile(ctx context.Context, p *Profile) error {
	return r.conn(ctx).Create(p).Error
}

func (r *repository) FindUserByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.conn(ctx).Where("LOWER(email) = LOWER(?)", email).First(&u).Error
	return &u, err
}

func (r *repository) FindProfile(ctx context.Context, id string) (*Profile, error) {
	var p Profile
	err := r.conn(ctx).First(&p, "id = ?", id).Error
	return &p, err
}
