// Package channel 实现信道业务逻辑
// 包括增删改查、默认配置单例维护和外部镜像同步导入
package channel

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"tak_portal_server/internal/dao/mysql/repository"
	myredis "tak_portal_server/internal/dao/redis"
	"tak_portal_server/internal/dto/request"
	"tak_portal_server/internal/dto/respond"
	"tak_portal_server/internal/infrastructure/mq"
	"tak_portal_server/internal/meshtastic"
	"tak_portal_server/internal/model"
	"tak_portal_server/internal/service/group"
	"tak_portal_server/pkg/constants"
	"tak_portal_server/pkg/errorx"
	"tak_portal_server/pkg/util/random"
)

// channelService 信道业务逻辑实现
type channelService struct {
	repos    *repository.Repositories
	cache    myredis.AsyncCacheService
	codec    meshtastic.Codec
	combiner *meshtastic.Combiner
}

// NewChannelService 构造函数，注入所有依赖
// codec 用于新建信道时生成分享 URL，可以为 nil（此时 URL 留空）
func NewChannelService(repos *repository.Repositories, cacheService myredis.AsyncCacheService,
	codec meshtastic.Codec, combiner *meshtastic.Combiner) *channelService {
	return &channelService{
		repos:    repos,
		cache:    cacheService,
		codec:    codec,
		combiner: combiner,
	}
}

func (s *channelService) invalidateCache() {
	s.cache.SubmitTask(func() {
		if err := s.cache.DeleteByPattern(context.Background(), "group_*"); err != nil {
			zap.L().Error("清理信道组缓存失败", zap.Error(err))
		}
	})
}

// generateUrl 生成带随机 256 位 PSK 的单信道分享 URL
// 编解码器缺失或生成失败时返回空串，信道仍可创建，URL 可以后补
func (s *channelService) generateUrl(name string) string {
	if s.codec == nil {
		return ""
	}
	psk, err := random.GetRandomBytes(constants.PSK_SIZE)
	if err != nil {
		zap.L().Error("生成信道 PSK 失败", zap.Error(err))
		return ""
	}
	set := &meshtastic.ChannelSet{
		Settings: []*meshtastic.ChannelSettings{
			{Psk: psk, Name: name},
		},
	}
	url, err := meshtastic.EncodeURL(s.codec, set)
	if err != nil {
		zap.L().Error("编码信道分享 URL 失败", zap.Error(err))
		return ""
	}
	return url
}

// checkDefaultConfigSingleton 默认配置标记全系统至多一条
// 必须在持有事务的 repos 上调用，和写入一起提交
func checkDefaultConfigSingleton(txRepos *repository.Repositories, excludeUuid string) error {
	count, err := txRepos.Channel.CountDefaultConfigExcept(excludeUuid)
	if err != nil {
		return err
	}
	if count > 0 {
		return errorx.New(errorx.CodeConflict, "已存在默认配置信道，全系统只允许一条")
	}
	return nil
}

func toChannelRespond(ch *model.ChannelRecord) *respond.ChannelInfoRespond {
	return &respond.ChannelInfoRespond{
		ChannelId:       ch.Uuid,
		Name:            ch.Name,
		Description:     ch.Description,
		Url:             ch.Url,
		DeviceConfig:    ch.DeviceConfig,
		LastSynced:      formatTime(ch.LastSynced),
		IsDefaultConfig: ch.IsDefaultConfig,
		ShowOnHomepage:  ch.ShowOnHomepage,
		IsPublic:        ch.IsPublic,
	}
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02 15:04:05")
	return &s
}

// CreateChannel 创建信道
// URL 为空时服务端生成随机 PSK 并编码标准分享 URL
func (s *channelService) CreateChannel(req request.CreateChannelRequest) (*respond.ChannelInfoRespond, error) {
	if _, err := s.repos.Channel.FindByName(req.Name); err == nil {
		return nil, errorx.Newf(errorx.CodeConflict, "信道名称 %s 已存在", req.Name)
	} else if !errorx.IsNotFound(err) {
		return nil, err
	}

	url := req.Url
	if url == "" {
		url = s.generateUrl(req.Name)
	}

	channel := model.ChannelRecord{
		Uuid:            fmt.Sprintf("C%s", random.GetNowAndLenRandomString(11)),
		Name:            req.Name,
		Description:     req.Description,
		Url:             url,
		DeviceConfig:    req.DeviceConfig,
		IsDefaultConfig: req.IsDefaultConfig,
		ShowOnHomepage:  req.ShowOnHomepage,
		IsPublic:        req.IsPublic,
	}

	err := s.repos.Transaction(func(txRepos *repository.Repositories) error {
		if channel.IsDefaultConfig == 1 {
			if err := checkDefaultConfigSingleton(txRepos, channel.Uuid); err != nil {
				return err
			}
		}
		return txRepos.Channel.Create(&channel)
	})
	if err != nil {
		return nil, err
	}

	mq.PublishChannelEvent(mq.ChannelEvent{
		Event:        mq.EventChannelCreated,
		ChannelId:    channel.Uuid,
		Name:         channel.Name,
		Url:          channel.Url,
		Description:  channel.Description,
		DeviceConfig: channel.DeviceConfig,
	})
	return toChannelRespond(&channel), nil
}

// UpdateChannel 部分更新信道
// URL 变更会在同一事务里重新生成所属各组的组合 URL
func (s *channelService) UpdateChannel(req request.UpdateChannelRequest) (*respond.ChannelInfoRespond, error) {
	channel, err := s.repos.Channel.FindByUuid(req.ChannelId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.Newf(errorx.CodeNotFound, "信道 %s 不存在", req.ChannelId)
		}
		return nil, err
	}

	urlChanged := false
	if req.Name != nil && *req.Name != channel.Name {
		if existing, err := s.repos.Channel.FindByName(*req.Name); err == nil && existing.Uuid != channel.Uuid {
			return nil, errorx.Newf(errorx.CodeConflict, "信道名称 %s 已存在", *req.Name)
		} else if err != nil && !errorx.IsNotFound(err) {
			return nil, err
		}
		channel.Name = *req.Name
	}
	if req.Description != nil {
		channel.Description = *req.Description
	}
	if req.Url != nil && *req.Url != channel.Url {
		channel.Url = *req.Url
		urlChanged = true
	}
	if req.DeviceConfig != nil {
		channel.DeviceConfig = *req.DeviceConfig
	}
	if req.IsDefaultConfig != nil {
		channel.IsDefaultConfig = *req.IsDefaultConfig
	}
	if req.ShowOnHomepage != nil {
		channel.ShowOnHomepage = *req.ShowOnHomepage
	}
	if req.IsPublic != nil {
		channel.IsPublic = *req.IsPublic
	}

	err = s.repos.Transaction(func(txRepos *repository.Repositories) error {
		if channel.IsDefaultConfig == 1 {
			if err := checkDefaultConfigSingleton(txRepos, channel.Uuid); err != nil {
				return err
			}
		}
		if err := txRepos.Channel.Update(channel); err != nil {
			return err
		}
		if !urlChanged {
			return nil
		}
		memberships, err := txRepos.Membership.FindByChannelUuid(channel.Uuid)
		if err != nil {
			return err
		}
		for _, m := range memberships {
			if _, err := group.RegenerateCombinedUrl(txRepos, s.combiner, m.GroupUuid); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if urlChanged {
		s.invalidateCache()
	}
	mq.PublishChannelEvent(mq.ChannelEvent{
		Event:        mq.EventChannelUpdated,
		ChannelId:    channel.Uuid,
		Name:         channel.Name,
		Url:          channel.Url,
		Description:  channel.Description,
		DeviceConfig: channel.DeviceConfig,
	})
	return toChannelRespond(channel), nil
}

// DeleteChannel 删除信道
// 同一事务里移除其全部槽位关联并重新生成受影响组的组合 URL
func (s *channelService) DeleteChannel(channelUuid string) error {
	if _, err := s.repos.Channel.FindByUuid(channelUuid); err != nil {
		if errorx.IsNotFound(err) {
			return errorx.Newf(errorx.CodeNotFound, "信道 %s 不存在", channelUuid)
		}
		return err
	}

	err := s.repos.Transaction(func(txRepos *repository.Repositories) error {
		memberships, err := txRepos.Membership.FindByChannelUuid(channelUuid)
		if err != nil {
			return err
		}
		if err := txRepos.Membership.DeleteByChannelUuid(channelUuid); err != nil {
			return err
		}
		if err := txRepos.Channel.Delete(channelUuid); err != nil {
			return err
		}
		for _, m := range memberships {
			if _, err := group.RegenerateCombinedUrl(txRepos, s.combiner, m.GroupUuid); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidateCache()
	mq.PublishChannelEvent(mq.ChannelEvent{
		Event:     mq.EventChannelDeleted,
		ChannelId: channelUuid,
	})
	return nil
}

// GetChannelInfo 获取信道详情
func (s *channelService) GetChannelInfo(channelUuid string) (*respond.ChannelInfoRespond, error) {
	channel, err := s.repos.Channel.FindByUuid(channelUuid)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.Newf(errorx.CodeNotFound, "信道 %s 不存在", channelUuid)
		}
		return nil, err
	}
	return toChannelRespond(channel), nil
}

// GetChannelList 获取全部信道
func (s *channelService) GetChannelList() ([]respond.ChannelInfoRespond, error) {
	channels, err := s.repos.Channel.FindAll()
	if err != nil {
		return nil, err
	}
	list := make([]respond.ChannelInfoRespond, 0, len(channels))
	for i := range channels {
		list = append(list, *toChannelRespond(&channels[i]))
	}
	return list, nil
}

// GetUngroupedChannels 获取未加入任何组的信道
func (s *channelService) GetUngroupedChannels() ([]respond.ChannelInfoRespond, error) {
	channels, err := s.repos.Channel.FindUngrouped()
	if err != nil {
		return nil, err
	}
	list := make([]respond.ChannelInfoRespond, 0, len(channels))
	for i := range channels {
		list = append(list, *toChannelRespond(&channels[i]))
	}
	return list, nil
}

// GetChannelGroups 获取信道所属的组及槽位
func (s *channelService) GetChannelGroups(channelUuid string) ([]respond.ChannelMembershipRespond, error) {
	if _, err := s.repos.Channel.FindByUuid(channelUuid); err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.Newf(errorx.CodeNotFound, "信道 %s 不存在", channelUuid)
		}
		return nil, err
	}

	memberships, err := s.repos.Membership.FindByChannelUuid(channelUuid)
	if err != nil {
		return nil, err
	}
	list := make([]respond.ChannelMembershipRespond, 0, len(memberships))
	for _, m := range memberships {
		groupName := m.GroupUuid
		if g, err := s.repos.Group.FindByUuid(m.GroupUuid); err == nil {
			groupName = g.Name
		}
		list = append(list, respond.ChannelMembershipRespond{
			GroupId:    m.GroupUuid,
			GroupName:  groupName,
			SlotNumber: m.SlotNumber,
		})
	}
	return list, nil
}

// SyncUpsert 按名称 upsert 外部镜像来的信道
// 记录同步时间；URL 变更联动重新生成所属各组的组合 URL
func (s *channelService) SyncUpsert(req request.SyncChannelRequest) (*respond.ChannelInfoRespond, error) {
	if req.Name == "" {
		return nil, errorx.New(errorx.CodeInvalidParam, "同步信道缺少名称")
	}

	now := time.Now()
	existing, err := s.repos.Channel.FindByName(req.Name)
	if err != nil {
		if !errorx.IsNotFound(err) {
			return nil, err
		}
		// 不存在则新建
		channel := model.ChannelRecord{
			Uuid:         fmt.Sprintf("C%s", random.GetNowAndLenRandomString(11)),
			Name:         req.Name,
			Description:  req.Description,
			Url:          req.Url,
			DeviceConfig: req.DeviceConfig,
			LastSynced:   &now,
		}
		if err := s.repos.Channel.Create(&channel); err != nil {
			return nil, err
		}
		return toChannelRespond(&channel), nil
	}

	urlChanged := req.Url != "" && req.Url != existing.Url
	if req.Description != "" {
		existing.Description = req.Description
	}
	if req.Url != "" {
		existing.Url = req.Url
	}
	if req.DeviceConfig != "" {
		existing.DeviceConfig = req.DeviceConfig
	}
	existing.LastSynced = &now

	err = s.repos.Transaction(func(txRepos *repository.Repositories) error {
		if err := txRepos.Channel.Update(existing); err != nil {
			return err
		}
		if !urlChanged {
			return nil
		}
		memberships, err := txRepos.Membership.FindByChannelUuid(existing.Uuid)
		if err != nil {
			return err
		}
		for _, m := range memberships {
			if _, err := group.RegenerateCombinedUrl(txRepos, s.combiner, m.GroupUuid); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if urlChanged {
		s.invalidateCache()
	}
	return toChannelRespond(existing), nil
}
