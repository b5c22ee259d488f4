// Package handler 提供 HTTP 请求处理器
// 本文件处理信道组相关的 API 请求
package handler

import (
	"tak_portal_server/internal/dto/request"
	"tak_portal_server/internal/service"
	"tak_portal_server/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// GroupHandler 信道组请求处理器
type GroupHandler struct {
	groupSvc service.GroupService
	authSvc  service.AuthService
}

// NewGroupHandler 创建信道组处理器实例
func NewGroupHandler(groupSvc service.GroupService, authSvc service.AuthService) *GroupHandler {
	return &GroupHandler{groupSvc: groupSvc, authSvc: authSvc}
}

// CreateGroup 创建信道组（管理员）
// POST /group/createGroup
// 请求体: request.CreateGroupRequest
// 响应: respond.GroupDetailRespond
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	var req request.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.groupSvc.CreateGroup(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// UpdateGroup 更新信道组（管理员，部分更新）
// POST /group/updateGroup
// 请求体: request.UpdateGroupRequest
// 响应: respond.GroupDetailRespond
func (h *GroupHandler) UpdateGroup(c *gin.Context) {
	var req request.UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.groupSvc.UpdateGroup(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// DeleteGroup 删除信道组（管理员）
// POST /group/deleteGroup
// 请求体: request.GroupIdRequest
// 响应: nil
func (h *GroupHandler) DeleteGroup(c *gin.Context) {
	var req request.GroupIdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.groupSvc.DeleteGroup(req.GroupId); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// GetGroupInfo 获取信道组详情
// GET /group/getGroupInfo?groupId=xxx
// 非管理员需要可见性（公开、直接授权或角色授权）
// 查询参数: request.GroupIdRequest
// 响应: respond.GroupDetailRespond
func (h *GroupHandler) GetGroupInfo(c *gin.Context) {
	var req request.GroupIdRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}

	userId := c.GetString("user_id")
	user, err := h.authSvc.GetUserInfo(userId)
	if err != nil {
		HandleError(c, err)
		return
	}
	if user.IsAdmin != 1 {
		allowed, err := h.groupSvc.CheckGroupAccess(req.GroupId, userId)
		if err != nil {
			HandleError(c, err)
			return
		}
		if !allowed {
			HandleError(c, errorx.New(errorx.CodeForbidden, "无权查看该信道组"))
			return
		}
	}

	data, err := h.groupSvc.GetGroupInfo(req.GroupId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetGroupList 获取当前用户可见的信道组列表
// GET /group/getGroupList
// 响应: []respond.GroupSummaryRespond
func (h *GroupHandler) GetGroupList(c *gin.Context) {
	userId := c.GetString("user_id")
	data, err := h.groupSvc.GetGroupList(userId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetAllGroups 获取全量信道组列表（管理员，不过滤）
// GET /group/getAllGroups
// 响应: []respond.GroupSummaryRespond
func (h *GroupHandler) GetAllGroups(c *gin.Context) {
	data, err := h.groupSvc.GetAllGroups()
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// AddChannel 把信道加入组内指定插槽（管理员）
// POST /group/addChannel
// 请求体: request.AddChannelRequest
// 响应: respond.SlotChangeRespond
func (h *GroupHandler) AddChannel(c *gin.Context) {
	var req request.AddChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.groupSvc.AddChannel(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// RemoveChannel 把信道移出组（管理员）
// POST /group/removeChannel
// 请求体: request.RemoveChannelRequest
// 响应: respond.SlotChangeRespond
func (h *GroupHandler) RemoveChannel(c *gin.Context) {
	var req request.RemoveChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.groupSvc.RemoveChannel(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// UpdateChannelSlot 调整组内信道的插槽号（管理员）
// POST /group/updateChannelSlot
// 请求体: request.UpdateSlotRequest
// 响应: respond.SlotChangeRespond
func (h *GroupHandler) UpdateChannelSlot(c *gin.Context) {
	var req request.UpdateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.groupSvc.UpdateChannelSlot(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// RegenerateUrl 重新生成单个组的组合 URL（管理员）
// POST /group/regenerateUrl
// 请求体: request.GroupIdRequest
// 响应: gin.H{"combined_url": *string}
func (h *GroupHandler) RegenerateUrl(c *gin.Context) {
	var req request.GroupIdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	combinedUrl, err := h.groupSvc.RegenerateUrl(req.GroupId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, gin.H{"combined_url": combinedUrl})
}

// RegenerateAllUrls 重新生成全部组的组合 URL（管理员，跳过空组）
// POST /group/regenerateAllUrls
// 响应: gin.H{"processed": int}
func (h *GroupHandler) RegenerateAllUrls(c *gin.Context) {
	processed, err := h.groupSvc.RegenerateAllUrls()
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, gin.H{"processed": processed})
}
