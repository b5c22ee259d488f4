package mq

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"go.uber.org/zap"

	"tak_portal_server/internal/dto/request"
)

// StartImportConsumer 启动镜像导入消费者
// 循环消费外部无线电服务器发来的信道镜像事件，逐条 upsert 到本地；
// 单条消息解析或导入失败只记日志跳过，不中断消费
// ctx 取消或读端关闭时退出
func StartImportConsumer(ctx context.Context) {
	reader := KafkaService.ImportReader
	if reader == nil {
		zap.L().Warn("镜像导入消费者未启动：Kafka 读端未初始化")
		return
	}

	zap.L().Info("镜像导入消费者已启动")
	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				zap.L().Info("镜像导入消费者退出")
				return
			}
			zap.L().Error("读取镜像导入消息失败", zap.Error(err))
			continue
		}

		var req request.SyncChannelRequest
		if err := json.Unmarshal(msg.Value, &req); err != nil {
			zap.L().Error("解析镜像导入消息失败", zap.Error(err),
				zap.ByteString("payload", msg.Value))
			continue
		}

		importer := GetChannelImporter()
		if importer == nil {
			zap.L().Warn("镜像导入消息被丢弃：导入服务未注入",
				zap.String("name", req.Name))
			continue
		}
		if _, err := importer.SyncUpsert(req); err != nil {
			zap.L().Error("镜像导入信道失败",
				zap.String("name", req.Name), zap.Error(err))
			continue
		}
		zap.L().Info("已导入镜像信道", zap.String("name", req.Name))
	}
}
