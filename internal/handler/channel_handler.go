// Package handler 提供 HTTP 请求处理器
// 本文件处理信道相关的 API 请求
package handler

import (
	"tak_portal_server/internal/dto/request"
	"tak_portal_server/internal/service"

	"github.com/gin-gonic/gin"
)

// ChannelHandler 信道请求处理器
type ChannelHandler struct {
	channelSvc service.ChannelService
}

// NewChannelHandler 创建信道处理器实例
func NewChannelHandler(channelSvc service.ChannelService) *ChannelHandler {
	return &ChannelHandler{channelSvc: channelSvc}
}

// CreateChannel 创建信道
// POST /channel/createChannel
// 请求体: request.CreateChannelRequest
// 响应: respond.ChannelInfoRespond
func (h *ChannelHandler) CreateChannel(c *gin.Context) {
	var req request.CreateChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.channelSvc.CreateChannel(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// UpdateChannel 更新信道（部分更新）
// POST /channel/updateChannel
// 请求体: request.UpdateChannelRequest
// 响应: respond.ChannelInfoRespond
func (h *ChannelHandler) UpdateChannel(c *gin.Context) {
	var req request.UpdateChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.channelSvc.UpdateChannel(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// DeleteChannel 删除信道
// POST /channel/deleteChannel
// 请求体: request.ChannelIdRequest
// 响应: nil
func (h *ChannelHandler) DeleteChannel(c *gin.Context) {
	var req request.ChannelIdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.channelSvc.DeleteChannel(req.ChannelId); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// GetChannelInfo 获取信道详情
// GET /channel/getChannelInfo?channelId=xxx
// 查询参数: request.ChannelIdRequest
// 响应: respond.ChannelInfoRespond
func (h *ChannelHandler) GetChannelInfo(c *gin.Context) {
	var req request.ChannelIdRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.channelSvc.GetChannelInfo(req.ChannelId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetChannelList 获取全部信道
// GET /channel/getChannelList
// 响应: []respond.ChannelInfoRespond
func (h *ChannelHandler) GetChannelList(c *gin.Context) {
	data, err := h.channelSvc.GetChannelList()
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetUngroupedChannels 获取未加入任何组的信道（管理员）
// GET /channel/getUngroupedChannels
// 响应: []respond.ChannelInfoRespond
func (h *ChannelHandler) GetUngroupedChannels(c *gin.Context) {
	data, err := h.channelSvc.GetUngroupedChannels()
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetChannelGroups 获取信道所属的组及插槽（管理员）
// GET /channel/getChannelGroups?channelId=xxx
// 查询参数: request.ChannelIdRequest
// 响应: []respond.ChannelMembershipRespond
func (h *ChannelHandler) GetChannelGroups(c *gin.Context) {
	var req request.ChannelIdRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.channelSvc.GetChannelGroups(req.ChannelId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// SyncChannel 外部镜像同步导入（管理员）
// POST /channel/syncChannel
// 请求体: request.SyncChannelRequest
// 响应: respond.ChannelInfoRespond
func (h *ChannelHandler) SyncChannel(c *gin.Context) {
	var req request.SyncChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.channelSvc.SyncUpsert(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
