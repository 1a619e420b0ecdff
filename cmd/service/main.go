// File: cmd/service/main.go
// @title        ProShop API
// @version      1.0
// @description  ProShop 電商後端 API 文件（使用者、商品、訂單）
// @host         localhost:5000
// @BasePath     /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
package main

import (
	"os"

	"proshop/internal/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.NewLogger("service", os.Getenv("NODE_ENV") != "production").
			Error().Err(err).Msg("command failed")
		exitFunc(1)
	}
}
