package mq

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	myconfig "tak_portal_server/internal/config"
)

// 信道变更事件类型
const (
	EventChannelCreated = "channel_created"
	EventChannelUpdated = "channel_updated"
	EventChannelDeleted = "channel_deleted"
)

// ChannelEvent 发往外部无线电服务器的信道变更事件
type ChannelEvent struct {
	Event        string `json:"event"`
	ChannelId    string `json:"channel_id"`
	Name         string `json:"name"`
	Url          string `json:"url"`
	Description  string `json:"description"`
	DeviceConfig string `json:"device_config"`
}

// PublishChannelEvent 发布信道变更事件
// messageMode 为 "none" 或写端未初始化时静默跳过；
// 发布失败只记日志不影响触发它的业务操作
func PublishChannelEvent(event ChannelEvent) {
	if myconfig.GetConfig().KafkaConfig.MessageMode != "kafka" {
		return
	}
	if KafkaService.SyncWriter == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		zap.L().Error("序列化信道变更事件失败", zap.Error(err))
		return
	}
	msg := kafka.Message{
		Key:   []byte(event.ChannelId),
		Value: data,
	}
	if err := KafkaService.SyncWriter.WriteMessages(context.Background(), msg); err != nil {
		zap.L().Error("发布信道变更事件失败",
			zap.String("event", event.Event),
			zap.String("channel", event.ChannelId),
			zap.Error(err))
		return
	}
	zap.L().Info("已发布信道变更事件",
		zap.String("event", event.Event),
		zap.String("channel", event.ChannelId))
}
