package main

import (
	"context"
	"os"
	"time"

	"ecofinds/internal/config"
	"ecofinds/internal/handler"
	"ecofinds/internal/infra/db"
	infraRepo "ecofinds/internal/infra/repository"
	"ecofinds/internal/middleware"
	"ecofinds/internal/server"
	"ecofinds/internal/token"
	"ecofinds/internal/usecase"
	"ecofinds/internal/validator"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

func main() {
	//.envはあれば読む（本番は環境変数直指定）
	_ = godotenv.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("config load failed")
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("db connect failed")
	}
	if err := db.Migrate(gormDB); err != nil {
		logger.Fatal().Err(err).Msg("db migrate failed")
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	cartItemRepo := infraRepo.NewCartItemGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//基準データ
	if err := db.SeedCategories(context.Background(), categoryRepo, &logger); err != nil {
		logger.Fatal().Err(err).Msg("category seed failed")
	}

	//JWT issuer
	issuer := token.NewJWTIssuer(cfg.JWTSecret, accessTokenTTL, refreshTokenTTL)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(userRepo, validator.NewAuthValidator(userRepo), issuer)
	productUC := usecase.NewProductUsecase(productRepo, categoryRepo)
	cartUC := usecase.NewCartUsecase(cartItemRepo, productRepo)
	orderUC := usecase.NewOrderUsecase(txManager)

	//Handler生成
	authH := handler.NewAuthHandler(authUC)
	productH := handler.NewProductHandler(productUC)
	cartH := handler.NewCartHandler(cartUC, orderUC)

	//Server起動
	e := server.New(cfg, &logger, middleware.AuthJWT(issuer), authH, productH, cartH)

	logger.Info().Str("port", cfg.Port).Msg("server starting")
	if err := server.Start(e, cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
