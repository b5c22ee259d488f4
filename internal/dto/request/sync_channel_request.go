package request

// SyncChannelRequest 外部无线电服务器镜像导入请求
// 按名称 upsert；由同步侧信道（Kafka 消费者）或内部调用方使用
// 使用位置:
//   - internal/infrastructure/mq/sync_consumer.go
//   - internal/service/channel/service.go: SyncUpsert
type SyncChannelRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	Url          string `json:"url"`
	DeviceConfig string `json:"device_config"`
}
