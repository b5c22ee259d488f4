package mq

import (
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	myconfig "tak_portal_server/internal/config"
)

// kafkaService Kafka 连接管理
// SyncWriter 把本地信道变更事件发往外部无线电服务器；
// ImportReader 消费外部无线电服务器的镜像导入事件
type kafkaService struct {
	SyncWriter   *kafka.Writer
	ImportReader *kafka.Reader
}

var KafkaService = new(kafkaService)

// KafkaInit 初始化 Kafka 读写端
func (k *kafkaService) KafkaInit() {
	kafkaConfig := myconfig.GetConfig().KafkaConfig
	k.SyncWriter = &kafka.Writer{
		Addr:                   kafka.TCP(kafkaConfig.HostPort),
		Topic:                  kafkaConfig.SyncTopic,
		Balancer:               &kafka.Hash{},
		WriteTimeout:           kafkaConfig.Timeout * time.Second,
		RequiredAcks:           kafka.RequireNone,
		AllowAutoTopicCreation: false,
	}
	k.ImportReader = kafka.NewReader(kafka.ReaderConfig{
		Brokers:        []string{kafkaConfig.HostPort},
		Topic:          kafkaConfig.ImportTopic,
		CommitInterval: kafkaConfig.Timeout * time.Second,
		GroupID:        "tak_portal",
		StartOffset:    kafka.LastOffset,
	})
}

// KafkaClose 关闭 Kafka 读写端
func (k *kafkaService) KafkaClose() {
	if k.SyncWriter != nil {
		if err := k.SyncWriter.Close(); err != nil {
			zap.L().Error("关闭 Kafka 写端失败", zap.Error(err))
		}
	}
	if k.ImportReader != nil {
		if err := k.ImportReader.Close(); err != nil {
			zap.L().Error("关闭 Kafka 读端失败", zap.Error(err))
		}
	}
}
