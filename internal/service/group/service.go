// Package group 实现信道组业务逻辑
// 包括插槽成员管理、组合 URL 生成和按调用者可见性过滤的查询
package group

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"tak_portal_server/internal/dao/mysql/repository"
	myredis "tak_portal_server/internal/dao/redis"
	"tak_portal_server/internal/dto/request"
	"tak_portal_server/internal/dto/respond"
	"tak_portal_server/internal/meshtastic"
	"tak_portal_server/internal/model"
	"tak_portal_server/pkg/constants"
	"tak_portal_server/pkg/errorx"
	"tak_portal_server/pkg/util/random"
)

// channelGroupService 信道组业务逻辑实现
// 通过构造函数注入 Repository、Cache 和合并引擎依赖
type channelGroupService struct {
	repos    *repository.Repositories
	cache    myredis.AsyncCacheService
	combiner *meshtastic.Combiner
}

// NewGroupService 构造函数，注入所有依赖
func NewGroupService(repos *repository.Repositories, cacheService myredis.AsyncCacheService, combiner *meshtastic.Combiner) *channelGroupService {
	return &channelGroupService{
		repos:    repos,
		cache:    cacheService,
		combiner: combiner,
	}
}

// validateSlot 校验槽位号在 [0, MAX_SLOT_COUNT) 内
func validateSlot(slotNumber int) error {
	if slotNumber < 0 || slotNumber >= constants.MAX_SLOT_COUNT {
		return errorx.Newf(errorx.CodeInvalidParam,
			"槽位号必须在 0 到 %d 之间", constants.MAX_SLOT_COUNT-1)
	}
	return nil
}

// validateTemplate 校验配置模板是合法 YAML
// ${} 占位符是合法的 YAML 标量，不需要特殊处理
func validateTemplate(template string) error {
	if template == "" {
		return nil
	}
	var doc any
	if err := yaml.Unmarshal([]byte(template), &doc); err != nil {
		return errorx.Wrap(err, errorx.CodeInvalidParam, "配置模板不是合法的 YAML")
	}
	return nil
}

// RegenerateCombinedUrl 重新生成组的组合 URL 并写库
// 必须和触发它的成员变更在同一个事务里调用，保证两者一起提交或一起回滚
// 组内无成员时清空组合 URL；合并引擎自身不抛错，只可能降级为回退 URL
func RegenerateCombinedUrl(txRepos *repository.Repositories, combiner *meshtastic.Combiner, groupUuid string) (*string, error) {
	memberships, err := txRepos.Membership.FindByGroupUuidOrdered(groupUuid)
	if err != nil {
		return nil, err
	}
	if len(memberships) == 0 {
		if err := txRepos.Group.UpdateCombinedUrl(groupUuid, nil); err != nil {
			return nil, err
		}
		return nil, nil
	}

	channelUuids := make([]string, 0, len(memberships))
	for _, m := range memberships {
		channelUuids = append(channelUuids, m.ChannelUuid)
	}
	channels, err := txRepos.Channel.FindByUuids(channelUuids)
	if err != nil {
		return nil, err
	}
	channelMap := make(map[string]model.ChannelRecord, len(channels))
	for _, ch := range channels {
		channelMap[ch.Uuid] = ch
	}

	members := make([]meshtastic.MemberURL, 0, len(memberships))
	for _, m := range memberships {
		ch, ok := channelMap[m.ChannelUuid]
		if !ok {
			zap.L().Warn("槽位关联指向不存在的信道，跳过",
				zap.String("group", groupUuid), zap.String("channel", m.ChannelUuid))
			continue
		}
		members = append(members, meshtastic.MemberURL{
			ChannelName: ch.Name,
			Url:         ch.Url,
			SlotNumber:  m.SlotNumber,
		})
	}

	combinedUrl := combiner.Combine(members)
	if err := txRepos.Group.UpdateCombinedUrl(groupUuid, combinedUrl); err != nil {
		return nil, err
	}
	return combinedUrl, nil
}

// invalidateCache 异步清理组相关缓存
func (s *channelGroupService) invalidateCache() {
	s.cache.SubmitTask(func() {
		if err := s.cache.DeleteByPattern(context.Background(), "group_*"); err != nil {
			zap.L().Error("清理信道组缓存失败", zap.Error(err))
		}
	})
}

// buildDetail 组装信道组详情，成员按槽位升序
func (s *channelGroupService) buildDetail(repos *repository.Repositories, group *model.ChannelGroup) (*respond.GroupDetailRespond, error) {
	roles, err := repos.Group.FindRoles(group.Uuid)
	if err != nil {
		return nil, err
	}
	users, err := repos.Group.FindUsers(group.Uuid)
	if err != nil {
		return nil, err
	}
	channels, err := buildChannelSlots(repos, group.Uuid)
	if err != nil {
		return nil, err
	}
	return &respond.GroupDetailRespond{
		GroupId:        group.Uuid,
		Name:           group.Name,
		Description:    group.Description,
		CombinedUrl:    group.CombinedUrl,
		ConfigTemplate: group.ConfigTemplate,
		IsPublic:       group.IsPublic,
		ShowOnHomepage: group.ShowOnHomepage,
		Roles:          roles,
		Users:          users,
		Channels:       channels,
	}, nil
}

// buildChannelSlots 按槽位升序组装组内成员信道列表
func buildChannelSlots(repos *repository.Repositories, groupUuid string) ([]respond.ChannelSlotRespond, error) {
	memberships, err := repos.Membership.FindByGroupUuidOrdered(groupUuid)
	if err != nil {
		return nil, err
	}
	if len(memberships) == 0 {
		return []respond.ChannelSlotRespond{}, nil
	}
	channelUuids := make([]string, 0, len(memberships))
	for _, m := range memberships {
		channelUuids = append(channelUuids, m.ChannelUuid)
	}
	channels, err := repos.Channel.FindByUuids(channelUuids)
	if err != nil {
		return nil, err
	}
	channelMap := make(map[string]model.ChannelRecord, len(channels))
	for _, ch := range channels {
		channelMap[ch.Uuid] = ch
	}
	slots := make([]respond.ChannelSlotRespond, 0, len(memberships))
	for _, m := range memberships {
		ch, ok := channelMap[m.ChannelUuid]
		if !ok {
			continue
		}
		slots = append(slots, respond.ChannelSlotRespond{
			ChannelId:  ch.Uuid,
			Name:       ch.Name,
			SlotNumber: m.SlotNumber,
			Url:        ch.Url,
			LastSynced: formatTime(ch.LastSynced),
		})
	}
	return slots, nil
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02 15:04:05")
	return &s
}

// CreateGroup 创建信道组
func (s *channelGroupService) CreateGroup(req request.CreateGroupRequest) (*respond.GroupDetailRespond, error) {
	if err := validateTemplate(req.ConfigTemplate); err != nil {
		return nil, err
	}
	if _, err := s.repos.Group.FindByName(req.Name); err == nil {
		return nil, errorx.Newf(errorx.CodeConflict, "信道组名称 %s 已存在", req.Name)
	} else if !errorx.IsNotFound(err) {
		return nil, err
	}

	group := model.ChannelGroup{
		Uuid:           fmt.Sprintf("G%s", random.GetNowAndLenRandomString(11)),
		Name:           req.Name,
		Description:    req.Description,
		ConfigTemplate: req.ConfigTemplate,
		IsPublic:       req.IsPublic,
		ShowOnHomepage: req.ShowOnHomepage,
	}

	err := s.repos.Transaction(func(txRepos *repository.Repositories) error {
		if err := txRepos.Group.Create(&group); err != nil {
			return err
		}
		if len(req.Roles) > 0 {
			if err := txRepos.Group.ReplaceRoles(group.Uuid, req.Roles); err != nil {
				return err
			}
		}
		if len(req.Users) > 0 {
			if err := txRepos.Group.ReplaceUsers(group.Uuid, req.Users); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateCache()
	return s.buildDetail(s.repos, &group)
}

// UpdateGroup 部分更新信道组
// 组合 URL 是派生字段，不接受外部编辑，这里不会动它
func (s *channelGroupService) UpdateGroup(req request.UpdateGroupRequest) (*respond.GroupDetailRespond, error) {
	group, err := s.repos.Group.FindByUuid(req.GroupId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.Newf(errorx.CodeNotFound, "信道组 %s 不存在", req.GroupId)
		}
		return nil, err
	}

	if req.Name != nil && *req.Name != group.Name {
		if existing, err := s.repos.Group.FindByName(*req.Name); err == nil && existing.Uuid != group.Uuid {
			return nil, errorx.Newf(errorx.CodeConflict, "信道组名称 %s 已存在", *req.Name)
		} else if err != nil && !errorx.IsNotFound(err) {
			return nil, err
		}
		group.Name = *req.Name
	}
	if req.Description != nil {
		group.Description = *req.Description
	}
	if req.ConfigTemplate != nil {
		if err := validateTemplate(*req.ConfigTemplate); err != nil {
			return nil, err
		}
		group.ConfigTemplate = *req.ConfigTemplate
	}
	if req.IsPublic != nil {
		group.IsPublic = *req.IsPublic
	}
	if req.ShowOnHomepage != nil {
		group.ShowOnHomepage = *req.ShowOnHomepage
	}

	err = s.repos.Transaction(func(txRepos *repository.Repositories) error {
		if err := txRepos.Group.Update(group); err != nil {
			return err
		}
		if req.Roles != nil {
			if err := txRepos.Group.ReplaceRoles(group.Uuid, *req.Roles); err != nil {
				return err
			}
		}
		if req.Users != nil {
			if err := txRepos.Group.ReplaceUsers(group.Uuid, *req.Users); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateCache()
	return s.buildDetail(s.repos, group)
}

// DeleteGroup 删除信道组
// 成员信道只解除槽位关联，信道记录本身保留
func (s *channelGroupService) DeleteGroup(groupUuid string) error {
	if _, err := s.repos.Group.FindByUuid(groupUuid); err != nil {
		if errorx.IsNotFound(err) {
			return errorx.Newf(errorx.CodeNotFound, "信道组 %s 不存在", groupUuid)
		}
		return err
	}

	err := s.repos.Transaction(func(txRepos *repository.Repositories) error {
		if err := txRepos.Membership.DeleteByGroupUuid(groupUuid); err != nil {
			return err
		}
		if err := txRepos.Group.DeleteGrants(groupUuid); err != nil {
			return err
		}
		return txRepos.Group.Delete(groupUuid)
	})
	if err != nil {
		return err
	}

	s.invalidateCache()
	return nil
}

// GetGroupInfo 获取信道组详情
func (s *channelGroupService) GetGroupInfo(groupUuid string) (*respond.GroupDetailRespond, error) {
	group, err := s.repos.Group.FindByUuid(groupUuid)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.Newf(errorx.CodeNotFound, "信道组 %s 不存在", groupUuid)
		}
		return nil, err
	}
	return s.buildDetail(s.repos, group)
}

// GetGroupList 按调用者可见性过滤的组列表
// 可见性 = 公开 + 直接授权 + 角色授权
func (s *channelGroupService) GetGroupList(userUuid string) ([]respond.GroupSummaryRespond, error) {
	cacheKey := "group_list_" + userUuid

	// 1. 尝试从缓存获取 (Happy Path)
	rspString, err := s.cache.Get(context.Background(), cacheKey)
	if err == nil && rspString != "" {
		var cached []respond.GroupSummaryRespond
		if jsonErr := json.Unmarshal([]byte(rspString), &cached); jsonErr == nil {
			return cached, nil
		} else {
			zap.L().Error("反序列化信道组列表缓存失败", zap.Error(jsonErr))
		}
	} else if err != nil {
		zap.L().Error("读取信道组列表缓存失败", zap.Error(err))
	}

	user, err := s.repos.User.FindByUuid(userUuid)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUnauthorized, "用户不存在")
		}
		return nil, err
	}

	groups, err := s.repos.Group.FindVisibleTo(userUuid, user.Role)
	if err != nil {
		return nil, err
	}
	summaries, err := s.buildSummaries(groups, false)
	if err != nil {
		return nil, err
	}

	// 2. 回写缓存（异步，不阻塞本次请求）
	if data, err := json.Marshal(summaries); err == nil {
		s.cache.SubmitTask(func() {
			if err := s.cache.Set(context.Background(), cacheKey, string(data),
				time.Minute*constants.REDIS_TIMEOUT); err != nil {
				zap.L().Error("写入信道组列表缓存失败", zap.Error(err))
			}
		})
	}

	return summaries, nil
}

// GetAllGroups 不过滤的全量组列表，附带角色授权列表
func (s *channelGroupService) GetAllGroups() ([]respond.GroupSummaryRespond, error) {
	groups, err := s.repos.Group.FindAll()
	if err != nil {
		return nil, err
	}
	return s.buildSummaries(groups, true)
}

// buildSummaries 组装列表项，成员信道按槽位升序
func (s *channelGroupService) buildSummaries(groups []model.ChannelGroup, withRoles bool) ([]respond.GroupSummaryRespond, error) {
	summaries := make([]respond.GroupSummaryRespond, 0, len(groups))
	for _, g := range groups {
		channels, err := buildChannelSlots(s.repos, g.Uuid)
		if err != nil {
			return nil, err
		}
		summary := respond.GroupSummaryRespond{
			GroupId:        g.Uuid,
			Name:           g.Name,
			Description:    g.Description,
			CombinedUrl:    g.CombinedUrl,
			IsPublic:       g.IsPublic,
			ShowOnHomepage: g.ShowOnHomepage,
			ChannelCount:   len(channels),
			Channels:       channels,
		}
		if withRoles {
			roles, err := s.repos.Group.FindRoles(g.Uuid)
			if err != nil {
				return nil, err
			}
			summary.Roles = roles
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// AddChannel 把信道放入组内指定槽位
// 预检查（是否已在组内、槽位是否被占）给出可读的冲突信息；
// 并发竞态下绕过预检查的插入由存储层唯一索引兜底，报通用冲突
func (s *channelGroupService) AddChannel(req request.AddChannelRequest) (*respond.SlotChangeRespond, error) {
	if req.SlotNumber == nil {
		return nil, errorx.ErrInvalidParam
	}
	slotNumber := *req.SlotNumber
	if err := validateSlot(slotNumber); err != nil {
		return nil, err
	}

	if _, err := s.repos.Group.FindByUuid(req.GroupId); err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.Newf(errorx.CodeNotFound, "信道组 %s 不存在", req.GroupId)
		}
		return nil, err
	}
	if _, err := s.repos.Channel.FindByUuid(req.ChannelId); err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.Newf(errorx.CodeNotFound, "信道 %s 不存在", req.ChannelId)
		}
		return nil, err
	}

	var combinedUrl *string
	err := s.repos.Transaction(func(txRepos *repository.Repositories) error {
		if existing, err := txRepos.Membership.FindByGroupAndChannel(req.GroupId, req.ChannelId); err == nil {
			return errorx.Newf(errorx.CodeConflict,
				"信道已在该组内，占用槽位 %d", existing.SlotNumber)
		} else if !errorx.IsNotFound(err) {
			return err
		}

		if occupied, err := txRepos.Membership.FindByGroupAndSlot(req.GroupId, slotNumber); err == nil {
			occupyingName := occupied.ChannelUuid
			if ch, err := txRepos.Channel.FindByUuid(occupied.ChannelUuid); err == nil {
				occupyingName = ch.Name
			}
			return errorx.Newf(errorx.CodeConflict,
				"槽位 %d 已被信道 %s 占用", slotNumber, occupyingName)
		} else if !errorx.IsNotFound(err) {
			return err
		}

		if err := txRepos.Membership.Create(&model.SlotMembership{
			GroupUuid:   req.GroupId,
			ChannelUuid: req.ChannelId,
			SlotNumber:  slotNumber,
		}); err != nil {
			return err
		}

		var err error
		combinedUrl, err = RegenerateCombinedUrl(txRepos, s.combiner, req.GroupId)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.invalidateCache()
	return &respond.SlotChangeRespond{
		GroupId:     req.GroupId,
		ChannelId:   req.ChannelId,
		SlotNumber:  slotNumber,
		CombinedUrl: combinedUrl,
	}, nil
}

// RemoveChannel 把信道移出组
func (s *channelGroupService) RemoveChannel(req request.RemoveChannelRequest) (*respond.SlotChangeRespond, error) {
	if _, err := s.repos.Group.FindByUuid(req.GroupId); err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.Newf(errorx.CodeNotFound, "信道组 %s 不存在", req.GroupId)
		}
		return nil, err
	}

	membership, err := s.repos.Membership.FindByGroupAndChannel(req.GroupId, req.ChannelId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeInvalidParam, "信道不在该组内")
		}
		return nil, err
	}

	var combinedUrl *string
	err = s.repos.Transaction(func(txRepos *repository.Repositories) error {
		if err := txRepos.Membership.Delete(req.GroupId, req.ChannelId); err != nil {
			return err
		}
		var err error
		combinedUrl, err = RegenerateCombinedUrl(txRepos, s.combiner, req.GroupId)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.invalidateCache()
	return &respond.SlotChangeRespond{
		GroupId:     req.GroupId,
		ChannelId:   req.ChannelId,
		SlotNumber:  membership.SlotNumber,
		CombinedUrl: combinedUrl,
	}, nil
}

// UpdateChannelSlot 调整组内信道的槽位号
// 占用校验排除信道自身，原槽位号重传视为无操作（仍会重新生成 URL）
func (s *channelGroupService) UpdateChannelSlot(req request.UpdateSlotRequest) (*respond.SlotChangeRespond, error) {
	if req.SlotNumber == nil {
		return nil, errorx.ErrInvalidParam
	}
	slotNumber := *req.SlotNumber
	if err := validateSlot(slotNumber); err != nil {
		return nil, err
	}

	if _, err := s.repos.Group.FindByUuid(req.GroupId); err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.Newf(errorx.CodeNotFound, "信道组 %s 不存在", req.GroupId)
		}
		return nil, err
	}

	var combinedUrl *string
	err := s.repos.Transaction(func(txRepos *repository.Repositories) error {
		membership, err := txRepos.Membership.FindByGroupAndChannel(req.GroupId, req.ChannelId)
		if err != nil {
			if errorx.IsNotFound(err) {
				return errorx.New(errorx.CodeInvalidParam, "信道不在该组内")
			}
			return err
		}

		if occupied, err := txRepos.Membership.FindByGroupAndSlot(req.GroupId, slotNumber); err == nil {
			if occupied.ChannelUuid != req.ChannelId {
				occupyingName := occupied.ChannelUuid
				if ch, err := txRepos.Channel.FindByUuid(occupied.ChannelUuid); err == nil {
					occupyingName = ch.Name
				}
				return errorx.Newf(errorx.CodeConflict,
					"槽位 %d 已被信道 %s 占用", slotNumber, occupyingName)
			}
		} else if !errorx.IsNotFound(err) {
			return err
		}

		if err := txRepos.Membership.UpdateSlot(membership.ID, slotNumber); err != nil {
			return err
		}
		combinedUrl, err = RegenerateCombinedUrl(txRepos, s.combiner, req.GroupId)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.invalidateCache()
	return &respond.SlotChangeRespond{
		GroupId:     req.GroupId,
		ChannelId:   req.ChannelId,
		SlotNumber:  slotNumber,
		CombinedUrl: combinedUrl,
	}, nil
}

// RegenerateUrl 重新生成单个组的组合 URL
// 成员不变时重复调用结果相同
func (s *channelGroupService) RegenerateUrl(groupUuid string) (*string, error) {
	if _, err := s.repos.Group.FindByUuid(groupUuid); err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.Newf(errorx.CodeNotFound, "信道组 %s 不存在", groupUuid)
		}
		return nil, err
	}

	var combinedUrl *string
	err := s.repos.Transaction(func(txRepos *repository.Repositories) error {
		var err error
		combinedUrl, err = RegenerateCombinedUrl(txRepos, s.combiner, groupUuid)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.invalidateCache()
	return combinedUrl, nil
}

// RegenerateAllUrls 重新生成全部组的组合 URL，跳过无成员的组
// 返回实际处理的组数；单个组失败中断整体并返回错误
func (s *channelGroupService) RegenerateAllUrls() (int, error) {
	groups, err := s.repos.Group.FindAll()
	if err != nil {
		return 0, err
	}

	processed := 0
	for _, g := range groups {
		count, err := s.repos.Membership.CountByGroupUuid(g.Uuid)
		if err != nil {
			return processed, err
		}
		if count == 0 {
			continue
		}
		groupUuid := g.Uuid
		err = s.repos.Transaction(func(txRepos *repository.Repositories) error {
			_, err := RegenerateCombinedUrl(txRepos, s.combiner, groupUuid)
			return err
		})
		if err != nil {
			return processed, err
		}
		processed++
	}

	s.invalidateCache()
	return processed, nil
}

// CheckGroupAccess 判断用户对组是否可见
func (s *channelGroupService) CheckGroupAccess(groupUuid, userUuid string) (bool, error) {
	group, err := s.repos.Group.FindByUuid(groupUuid)
	if err != nil {
		if errorx.IsNotFound(err) {
			return false, errorx.Newf(errorx.CodeNotFound, "信道组 %s 不存在", groupUuid)
		}
		return false, err
	}
	if group.IsPublic == 1 {
		return true, nil
	}

	users, err := s.repos.Group.FindUsers(groupUuid)
	if err != nil {
		return false, err
	}
	for _, u := range users {
		if u == userUuid {
			return true, nil
		}
	}

	user, err := s.repos.User.FindByUuid(userUuid)
	if err != nil {
		if errorx.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	if user.Role == "" {
		return false, nil
	}
	roles, err := s.repos.Group.FindRoles(groupUuid)
	if err != nil {
		return false, err
	}
	for _, r := range roles {
		if r == user.Role {
			return true, nil
		}
	}
	return false, nil
}
