//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	auditusecase "github.com/stockfy/platform/internal/audit/usecase"
	"github.com/stockfy/platform/pkg/config"
)

// InitializeApp builds the HTTP handler graph for the API server
func InitializeApp(db *gorm.DB, cache *redis.Client, cfg *config.Config, recorder auditusecase.Recorder) (*App, error) {
	wire.Build(
		HandlerSet,
		wire.Struct(new(App), "*"),
	)
	return nil, nil
}
