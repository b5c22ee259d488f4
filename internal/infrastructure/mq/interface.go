package mq

import (
	"tak_portal_server/internal/dto/request"
	"tak_portal_server/internal/dto/respond"
)

// ChannelImporter 信道导入接口
// 用于解耦 MQ 层和 Service 层的依赖关系：
// 消费者只需知道"有个东西能按名称 upsert 信道"，不需要知道具体实现
type ChannelImporter interface {
	// SyncUpsert 按名称 upsert 外部镜像来的信道
	SyncUpsert(req request.SyncChannelRequest) (*respond.ChannelInfoRespond, error)
}

// channelImporter 用于存储注入的 ChannelImporter 实现
var channelImporter ChannelImporter

// SetChannelImporter 注入 ChannelImporter 实现
// 应在 main.go 中调用，在 Service 初始化之后、消费者启动之前
func SetChannelImporter(importer ChannelImporter) {
	channelImporter = importer
}

// GetChannelImporter 获取 ChannelImporter 实现
func GetChannelImporter() ChannelImporter {
	return channelImporter
}
