// Package service 定义业务层接口
// 本文件定义所有 Service 接口，供 Handler 层调用
// 接口设计遵循依赖倒置原则，便于测试和解耦
package service

import (
	"tak_portal_server/internal/dto/request"
	"tak_portal_server/internal/dto/respond"
)

// AuthService 认证与用户业务接口
// 处理登录、令牌刷新、用户管理
type AuthService interface {
	// Login 密码登录，签发访问令牌和刷新令牌
	Login(req request.LoginRequest) (*respond.LoginRespond, error)
	// RefreshToken 用刷新令牌换取新的令牌对
	RefreshToken(req request.RefreshTokenRequest) (*respond.LoginRespond, error)
	// CreateUser 创建用户（管理员操作）
	CreateUser(req request.CreateUserRequest) (*respond.UserInfoRespond, error)
	// GetUserInfo 获取单个用户信息
	GetUserInfo(uuid string) (*respond.UserInfoRespond, error)
}

// ChannelService 信道业务接口
// 处理 Meshtastic 信道的增删改查和同步导入
type ChannelService interface {
	// CreateChannel 创建信道；URL 为空时服务端生成随机 PSK 并编码 URL
	CreateChannel(req request.CreateChannelRequest) (*respond.ChannelInfoRespond, error)
	// UpdateChannel 部分更新信道；URL 变更会联动重新生成所属各组的组合 URL
	UpdateChannel(req request.UpdateChannelRequest) (*respond.ChannelInfoRespond, error)
	// DeleteChannel 删除信道并移除其所有组成员关系，联动重新生成受影响组的组合 URL
	DeleteChannel(channelUuid string) error
	// GetChannelInfo 获取信道详情
	GetChannelInfo(channelUuid string) (*respond.ChannelInfoRespond, error)
	// GetChannelList 获取全部信道
	GetChannelList() ([]respond.ChannelInfoRespond, error)
	// GetUngroupedChannels 获取未加入任何组的信道
	GetUngroupedChannels() ([]respond.ChannelInfoRespond, error)
	// GetChannelGroups 获取信道所属的组及插槽
	GetChannelGroups(channelUuid string) ([]respond.ChannelMembershipRespond, error)
	// SyncUpsert 按名称 upsert 外部镜像来的信道，记录同步时间
	SyncUpsert(req request.SyncChannelRequest) (*respond.ChannelInfoRespond, error)
}

// GroupService 信道组业务接口
// 处理信道组的增删改查、插槽成员管理和组合 URL 生成
type GroupService interface {
	// CreateGroup 创建信道组（管理员操作），名称唯一
	CreateGroup(req request.CreateGroupRequest) (*respond.GroupDetailRespond, error)
	// UpdateGroup 部分更新信道组；Roles/Users 非空时整体替换授权
	UpdateGroup(req request.UpdateGroupRequest) (*respond.GroupDetailRespond, error)
	// DeleteGroup 删除信道组；成员信道只解除关系，不删除信道本身
	DeleteGroup(groupUuid string) error
	// GetGroupInfo 获取信道组详情，成员按插槽升序
	GetGroupInfo(groupUuid string) (*respond.GroupDetailRespond, error)
	// GetGroupList 按调用者可见性过滤的组列表（公开、直接授权、角色授权）
	GetGroupList(userUuid string) ([]respond.GroupSummaryRespond, error)
	// GetAllGroups 不过滤的全量组列表（管理员操作）
	GetAllGroups() ([]respond.GroupSummaryRespond, error)
	// AddChannel 把信道放入组内指定插槽，同事务内重新生成组合 URL
	AddChannel(req request.AddChannelRequest) (*respond.SlotChangeRespond, error)
	// RemoveChannel 把信道移出组，同事务内重新生成组合 URL
	RemoveChannel(req request.RemoveChannelRequest) (*respond.SlotChangeRespond, error)
	// UpdateChannelSlot 调整组内信道的插槽号，同事务内重新生成组合 URL
	UpdateChannelSlot(req request.UpdateSlotRequest) (*respond.SlotChangeRespond, error)
	// RegenerateUrl 重新生成单个组的组合 URL（管理员操作）
	RegenerateUrl(groupUuid string) (*string, error)
	// RegenerateAllUrls 重新生成全部组的组合 URL，跳过无成员的组，返回处理数
	RegenerateAllUrls() (int, error)
	// CheckGroupAccess 判断用户对组是否可见（公开、直接授权、角色授权）
	CheckGroupAccess(groupUuid, userUuid string) (bool, error)
}

// RadioService 电台业务接口
// 处理电台的登记与管理
type RadioService interface {
	// CreateRadio 登记电台
	CreateRadio(req request.CreateRadioRequest) (*respond.RadioRespond, error)
	// UpdateRadio 部分更新电台
	UpdateRadio(req request.UpdateRadioRequest) (*respond.RadioRespond, error)
	// DeleteRadio 删除电台
	DeleteRadio(radioUuid string) error
	// GetRadioInfo 获取电台详情
	GetRadioInfo(radioUuid string) (*respond.RadioRespond, error)
	// GetRadioList 获取全部电台
	GetRadioList() ([]respond.RadioRespond, error)
}

// RadioProgramService 写频配置装配接口
// 组装写入物理设备所需的信道列表、占位符替换后的配置和组合 URL
type RadioProgramService interface {
	// BuildProgramConfig 按权限校验后装配写频配置
	// channelGroupId 和 channelId 必须恰好传一个
	BuildProgramConfig(callerUuid string, req request.ProgramConfigRequest) (*respond.ProgramConfigRespond, error)
}
