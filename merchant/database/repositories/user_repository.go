package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ellavondegurechaff/skinmerchant/merchant/database/models"
	"github.com/uptrace/bun"
)

type UserRepository interface {
	GetBySteamID(ctx context.Context, steamID string) (*models.User, error)
}

type userRepository struct {
	*BaseRepository
}

func NewUserRepository(db *bun.DB) UserRepository {
	return &userRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *userRepository) GetBySteamID(ctx context.Context, steamID string) (*models.User, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	user := new(models.User)
	err := r.db.NewSelect().
		Model(user).
		Where("steam_id = ?", steamID).
		Scan(ctx)
	if err != nil {
		err = r.HandleErrorWithID("get", "user", steamID, err)
		if IsNotFound(err) {
			slog.Warn("User not found in database",
				slog.String("type", "db"),
				slog.String("steam_id", steamID))
		}
		return nil, err
	}
	return user, nil
}

// creditBalance adds amount to a user's balance inside an open transaction.
func creditBalance(ctx context.Context, tx bun.IDB, steamID string, amount int64, now time.Time) error {
	res, err := tx.NewUpdate().
		Model((*models.User)(nil)).
		Set("balance = balance + ?", amount).
		Set("updated_at = ?", now).
		Where("steam_id = ?", steamID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to credit balance: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return &NotFoundError{Entity: "user", ID: steamID}
	}
	return nil
}
