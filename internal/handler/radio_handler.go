// Package handler 提供 HTTP 请求处理器
// 本文件处理电台和写频相关的 API 请求
package handler

import (
	"tak_portal_server/internal/dto/request"
	"tak_portal_server/internal/service"

	"github.com/gin-gonic/gin"
)

// RadioHandler 电台请求处理器
type RadioHandler struct {
	radioSvc   service.RadioService
	programSvc service.RadioProgramService
}

// NewRadioHandler 创建电台处理器实例
func NewRadioHandler(radioSvc service.RadioService, programSvc service.RadioProgramService) *RadioHandler {
	return &RadioHandler{radioSvc: radioSvc, programSvc: programSvc}
}

// CreateRadio 登记电台（管理员）
// POST /radio/createRadio
// 请求体: request.CreateRadioRequest
// 响应: respond.RadioRespond
func (h *RadioHandler) CreateRadio(c *gin.Context) {
	var req request.CreateRadioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.radioSvc.CreateRadio(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// UpdateRadio 更新电台（管理员，部分更新）
// POST /radio/updateRadio
// 请求体: request.UpdateRadioRequest
// 响应: respond.RadioRespond
func (h *RadioHandler) UpdateRadio(c *gin.Context) {
	var req request.UpdateRadioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.radioSvc.UpdateRadio(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// DeleteRadio 删除电台（管理员）
// POST /radio/deleteRadio
// 请求体: request.RadioIdRequest
// 响应: nil
func (h *RadioHandler) DeleteRadio(c *gin.Context) {
	var req request.RadioIdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.radioSvc.DeleteRadio(req.RadioId); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// GetRadioInfo 获取电台详情
// GET /radio/getRadioInfo?radioId=xxx
// 查询参数: request.RadioIdRequest
// 响应: respond.RadioRespond
func (h *RadioHandler) GetRadioInfo(c *gin.Context) {
	var req request.RadioIdRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.radioSvc.GetRadioInfo(req.RadioId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetRadioList 获取全部电台
// GET /radio/getRadioList
// 响应: []respond.RadioRespond
func (h *RadioHandler) GetRadioList(c *gin.Context) {
	data, err := h.radioSvc.GetRadioList()
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ProgramConfig 装配写频配置
// POST /radio/programConfig
// 权限校验在 Service 层：管理员/电台管理员直接放行，
// 其余用户需自助写频开关开启且本人是电台的使用人或归属人
// 请求体: request.ProgramConfigRequest
// 响应: respond.ProgramConfigRespond
func (h *RadioHandler) ProgramConfig(c *gin.Context) {
	var req request.ProgramConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	userId := c.GetString("user_id")
	data, err := h.programSvc.BuildProgramConfig(userId, req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
