package settings

import (
	"context"

	"rickbags/internal/domain"
)

type Repository interface {
	All(ctx context.Context) ([]domain.SiteSetting, error)
	Set(ctx context.Context, key, value string) error
}
