package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
	"github.com/AminataF33/gestionbudgetback/internal/integration/persistence/model"
)

// accountRepository implements the adapter.AccountRepository interface.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository instance.
func NewAccountRepository(db *gorm.DB) adapter.AccountRepository {
	return &accountRepository{
		db: db,
	}
}

// Create creates a new account in the database.
func (r *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	accountModel := model.AccountFromEntity(account)
	result := conn(ctx, r.db).Create(accountModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves an account by its ID.
func (r *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	var accountModel model.AccountModel
	result := conn(ctx, r.db).Where("id = ?", id).First(&accountModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrAccountNotFound
		}
		return nil, result.Error
	}
	return accountModel.ToEntity(), nil
}

// FindByUserID retrieves the accounts of a user, oldest first.
func (r *accountRepository) FindByUserID(ctx context.Context, userID uuid.UUID, includeInactive bool) ([]*entity.Account, error) {
	query := conn(ctx, r.db).Where("user_id = ?", userID)
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}

	var accountModels []model.AccountModel
	result := query.Order("created_at ASC").Find(&accountModels)
	if result.Error != nil {
		return nil, result.Error
	}

	accounts := make([]*entity.Account, len(accountModels))
	for i, am := range accountModels {
		accounts[i] = am.ToEntity()
	}
	return accounts, nil
}

// Update persists the descriptive fields and the active flag. The balance column is left untouched.
func (r *accountRepository) Update(ctx context.Context, account *entity.Account) error {
	result := conn(ctx, r.db).Model(&model.AccountModel{}).
		Where("id = ?", account.ID).
		Updates(map[string]interface{}{
			"name":        account.Name,
			"institution": account.Institution,
			"currency":    account.Currency,
			"is_active":   account.IsActive,
			"updated_at":  account.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrAccountNotFound
	}
	return nil
}

// ApplyBalanceDelta adds delta to the stored balance in a single guarded UPDATE.
// The guard keeps non-credit balances at or above zero under concurrent writers.
func (r *accountRepository) ApplyBalanceDelta(ctx context.Context, accountID uuid.UUID, delta decimal.Decimal) error {
	db := conn(ctx, r.db)

	result := db.Model(&model.AccountModel{}).
		Where("id = ?", accountID).
		Where("kind = ? OR balance + ? >= 0", string(entity.AccountKindCredit), delta).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance + ?", delta),
			"version":    gorm.Expr("version + 1"),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to apply balance delta: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// Nothing updated: the account is missing or the guard rejected the change
	var count int64
	if err := db.Model(&model.AccountModel{}).Where("id = ?", accountID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check account existence: %w", err)
	}
	if count == 0 {
		return domainerror.ErrAccountNotFound
	}
	return domainerror.ErrAccountInsufficientFunds
}
