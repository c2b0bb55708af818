// File: cmd/service/main.go
// @title        Talent Tracker API
// @version      1.0
// @description  球員表現紀錄與教練評估的後端 API 文件
// @host         localhost:5000
// @BasePath     /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "talent-tracker/docs" // 引入 swag 產出的 docs
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Print(err)
		exitFunc(1)
	}
}
