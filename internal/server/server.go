package server

import (
	"ecofinds/internal/config"
	"ecofinds/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// HandlerはRegisterRoutesを持つもの
type Handler interface {
	RegisterRoutes(e *echo.Echo, authMW echo.MiddlewareFunc)
}

// Newはechoを組み立てて返す
func New(cfg config.Config, logger *zerolog.Logger, authMW echo.MiddlewareFunc, handlers ...Handler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestLogger(logger))
	e.Use(echomw.Recover())

	//フロントが別オリジンのときだけCORSを開ける
	if cfg.FEURL != "" {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins:     []string{cfg.FEURL},
			AllowCredentials: true,
		}))
	}

	RegisterRoutes(e, authMW, handlers...)

	return e
}

// Startはサーバー起動
func Start(e *echo.Echo, port string) error {
	return e.Start(":" + port)
}
