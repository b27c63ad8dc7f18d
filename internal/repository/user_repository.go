package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	apperrors "useraccounts/internal/errors"
	"useraccounts/internal/model"
)

// UserRepository defines persistence operations. Usernames and emails share
// one identifier space: a username may not equal any email and vice versa.
// Violations surface as apperrors.ErrConflict. Lookups that miss return
// apperrors.ErrNotFound.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByIdentifier(ctx context.Context, identifier string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, id string, patch model.UserPatch) (*model.User, error)
	SetStatus(ctx context.Context, id string, status bool) (*model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Migrate creates or updates the users table and its unique indexes.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.User{})
}

// Reset drops the users table.
func Reset(db *gorm.DB) error {
	return db.Migrator().DropTable(&model.User{})
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := identifierTaken(tx, "", &user.Username, &user.Email); err != nil {
			return err
		}
		return tx.Create(user).Error
	})
	if err != nil {
		return translate(err)
	}
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// FindByIdentifier matches identifier against username or email.
func (r *userRepository) FindByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", identifier, identifier).
		First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, translate(err)
	}
	return users, nil
}

// Update applies the non-nil fields of patch. Password must already be a digest.
func (r *userRepository) Update(ctx context.Context, id string, patch model.UserPatch) (*model.User, error) {
	fields := map[string]interface{}{}
	if patch.Username != nil {
		fields["username"] = *patch.Username
	}
	if patch.Email != nil {
		fields["email"] = *patch.Email
	}
	if patch.Password != nil {
		fields["password"] = *patch.Password
	}
	if patch.Status != nil {
		fields["status"] = *patch.Status
	}
	return r.updateFields(ctx, id, fields, patch.Username, patch.Email)
}

func (r *userRepository) SetStatus(ctx context.Context, id string, status bool) (*model.User, error) {
	return r.updateFields(ctx, id, map[string]interface{}{"status": status}, nil, nil)
}

func (r *userRepository) updateFields(ctx context.Context, id string, fields map[string]interface{}, username, email *string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&user).Error; err != nil {
			return err
		}
		if len(fields) == 0 {
			return nil
		}
		if err := identifierTaken(tx, id, username, email); err != nil {
			return err
		}
		if err := tx.Model(&user).Updates(fields).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).First(&user).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// identifierTaken reports ErrConflict when username is already some other
// user's email or email is already some other user's username. Same-column
// duplicates are left to the unique indexes.
func identifierTaken(tx *gorm.DB, selfID string, username, email *string) error {
	if username == nil && email == nil {
		return nil
	}

	q := tx.Model(&model.User{})
	switch {
	case username != nil && email != nil:
		q = q.Where("email = ? OR username = ?", *username, *email)
	case username != nil:
		q = q.Where("email = ?", *username)
	default:
		q = q.Where("username = ?", *email)
	}
	if selfID != "" {
		q = q.Where("id <> ?", selfID)
	}

	var n int64
	if err := q.Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return apperrors.ErrConflict
	}
	return nil
}

func translate(err error) error {
	switch {
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrNotFound):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), isUniqueViolation(err):
		return apperrors.ErrConflict
	default:
		return fmt.Errorf("user store: %w", err)
	}
}

// isUniqueViolation catches duplicate key errors a dialect did not translate.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "Duplicate entry")
}
