package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"tak_portal_server/internal/config"
	dao "tak_portal_server/internal/dao/mysql"
	myredis "tak_portal_server/internal/dao/redis"
	"tak_portal_server/internal/handler"
	"tak_portal_server/internal/https_server"
	"tak_portal_server/internal/infrastructure/logger"
	"tak_portal_server/internal/infrastructure/mq"
	"tak_portal_server/internal/service"
	"tak_portal_server/pkg/util/jwt"
)

func main() {
	// 1. 加载配置
	conf := config.GetConfig()

	// 2. 初始化日志
	if err := logger.Init(&conf.LogConfig, "dev"); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	zap.L().Info("日志初始化成功")

	// 3. 初始化数据库
	repos := dao.Init()
	zap.L().Info("数据库初始化成功")

	// 4. 初始化 Redis
	myredis.Init()
	zap.L().Info("Redis 初始化成功")

	// 5. 初始化 JWT
	jwt.Init(conf.JWTConfig.Secret, conf.JWTConfig.AccessTokenExpiry, conf.JWTConfig.RefreshTokenExpiry)
	zap.L().Info("JWT 初始化成功")

	// 6. 初始化 Service 层 (依赖注入)
	service.InitServices(repos, myredis.GetCacheService())
	zap.L().Info("Service 层初始化成功")

	// 7. 初始化 validator 中文翻译
	if err := handler.InitTrans("zh"); err != nil {
		zap.L().Fatal("validator 翻译初始化失败", zap.Error(err))
	}

	// 8. 启动信道同步侧信道（可选）
	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	defer stopConsumer()
	if conf.KafkaConfig.MessageMode == "kafka" {
		mq.KafkaService.KafkaInit()
		// 注入 ChannelImporter 接口实现 (依赖倒置: mq → service)
		mq.SetChannelImporter(service.Svc.Channel)
		go mq.StartImportConsumer(consumerCtx)
		zap.L().Info("信道同步侧信道初始化成功")
	}

	// 9. 初始化 HTTP 服务器
	handlers := handler.NewHandlers(service.Svc)
	engine := https_server.Init(handlers, service.Svc)
	zap.L().Info("HTTP 服务器初始化成功")

	// 10. 启动服务
	host := conf.MainConfig.Host
	port := conf.MainConfig.Port
	go func() {
		if err := engine.Run(fmt.Sprintf("%s:%d", host, port)); err != nil {
			zap.L().Fatal("server running fault", zap.Error(err))
		}
	}()

	// 设置信号监听，等待退出
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("关闭服务器...")
	stopConsumer()
	if conf.KafkaConfig.MessageMode == "kafka" {
		mq.KafkaService.KafkaClose()
	}
	zap.L().Info("服务器已关闭")
}
