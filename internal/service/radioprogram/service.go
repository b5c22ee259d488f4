package radioprogram

import (
	"time"

	"tak_portal_server/internal/dao/mysql/repository"
	"tak_portal_server/internal/dto/request"
	"tak_portal_server/internal/dto/respond"
	"tak_portal_server/internal/model"
	"tak_portal_server/pkg/constants"
	"tak_portal_server/pkg/errorx"
)

// radioProgramService 写频配置装配实现
// 只读路径：组合 URL 取库里存的派生值，不在这里重新生成
type radioProgramService struct {
	repos *repository.Repositories
}

// NewRadioProgramService 构造函数
func NewRadioProgramService(repos *repository.Repositories) *radioProgramService {
	return &radioProgramService{repos: repos}
}

// selfProgrammingEnabled 读系统设置判断是否开放自助写频
func (s *radioProgramService) selfProgrammingEnabled() (bool, error) {
	value, err := s.repos.Setting.GetValue(constants.SETTING_SELF_PROGRAMMING)
	if err != nil {
		return false, err
	}
	return value == "true" || value == "1", nil
}

// checkAccess 写频权限校验
// 管理员和电台管理员直接放行；其余用户需要自助写频开关开启
// 且本人是电台的使用人或归属人，两个条件缺一不可，错误信息区分开
func (s *radioProgramService) checkAccess(caller *model.UserInfo, radio *model.Radio) error {
	if caller.IsAdmin == 1 || caller.IsRadioAdmin == 1 {
		return nil
	}

	enabled, err := s.selfProgrammingEnabled()
	if err != nil {
		return err
	}
	if !enabled {
		return errorx.New(errorx.CodeForbidden, "自助写频功能未开启")
	}

	if radio.AssignedUserUuid != nil && *radio.AssignedUserUuid == caller.Uuid {
		return nil
	}
	if radio.OwnerUuid != nil && *radio.OwnerUuid == caller.Uuid {
		return nil
	}
	return errorx.New(errorx.CodeForbidden, "你不是该电台的使用人或归属人")
}

// resolveUser 解析电台关联用户：优先使用人，其次归属人，都没有返回 nil
func (s *radioProgramService) resolveUser(radio *model.Radio) (*model.UserInfo, error) {
	var userUuid string
	if radio.AssignedUserUuid != nil {
		userUuid = *radio.AssignedUserUuid
	} else if radio.OwnerUuid != nil {
		userUuid = *radio.OwnerUuid
	} else {
		return nil, nil
	}

	user, err := s.repos.User.FindByUuid(userUuid)
	if err != nil {
		if errorx.IsNotFound(err) {
			// 关联用户已被删除，按无关联处理
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// buildChannelSlots 按槽位升序组装组内成员信道列表
func (s *radioProgramService) buildChannelSlots(groupUuid string) ([]respond.ChannelSlotRespond, error) {
	memberships, err := s.repos.Membership.FindByGroupUuidOrdered(groupUuid)
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
	channels, err := s.repos.Channel.FindByUuids(channelUuids)
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

// BuildProgramConfig 按权限校验后装配写频配置
// 组模式：槽位升序的成员列表 + 占位符替换后的模板 + 库里存的组合 URL
// 单信道模式：单元素列表按槽位 0 展示（展示约定，不是真实槽位），
// 不做模板替换也不给组合 URL
func (s *radioProgramService) BuildProgramConfig(callerUuid string, req request.ProgramConfigRequest) (*respond.ProgramConfigRespond, error) {
	if (req.ChannelGroupId == "") == (req.ChannelId == "") {
		return nil, errorx.New(errorx.CodeInvalidParam,
			"channel_group_id 和 channel_id 必须恰好传一个")
	}

	caller, err := s.repos.User.FindByUuid(callerUuid)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUnauthorized, "用户不存在")
		}
		return nil, err
	}

	radio, err := s.repos.Radio.FindByUuid(req.RadioId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.Newf(errorx.CodeNotFound, "电台 %s 不存在", req.RadioId)
		}
		return nil, err
	}

	// 设备类型限制对管理员同样生效
	if radio.RadioType != constants.RADIO_TYPE_MESHTASTIC {
		return nil, errorx.New(errorx.CodeInvalidParam, "该电台不是 Meshtastic 设备")
	}

	if err := s.checkAccess(caller, radio); err != nil {
		return nil, err
	}

	user, err := s.resolveUser(radio)
	if err != nil {
		return nil, err
	}

	rsp := &respond.ProgramConfigRespond{
		RadioId:                radio.Uuid,
		RadioName:              radio.Name,
		ShortName:              radio.ShortName,
		LongName:               radio.LongName,
		Channels:               []respond.ChannelSlotRespond{},
		UnresolvedPlaceholders: []string{},
	}
	if user != nil {
		rsp.UserId = &user.Uuid
		rsp.Callsign = &user.Callsign
	}

	if req.ChannelGroupId != "" {
		group, err := s.repos.Group.FindByUuid(req.ChannelGroupId)
		if err != nil {
			if errorx.IsNotFound(err) {
				return nil, errorx.Newf(errorx.CodeNotFound, "信道组 %s 不存在", req.ChannelGroupId)
			}
			return nil, err
		}
		channels, err := s.buildChannelSlots(group.Uuid)
		if err != nil {
			return nil, err
		}
		resolved, unresolved := ResolvePlaceholders(group.ConfigTemplate, radio, user)
		rsp.Channels = channels
		rsp.CombinedUrl = group.CombinedUrl
		rsp.ResolvedConfig = resolved
		rsp.UnresolvedPlaceholders = unresolved
		return rsp, nil
	}

	channel, err := s.repos.Channel.FindByUuid(req.ChannelId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.Newf(errorx.CodeNotFound, "信道 %s 不存在", req.ChannelId)
		}
		return nil, err
	}
	rsp.Channels = []respond.ChannelSlotRespond{{
		ChannelId:  channel.Uuid,
		Name:       channel.Name,
		SlotNumber: constants.PRIMARY_SLOT,
		Url:        channel.Url,
		LastSynced: formatTime(channel.LastSynced),
	}}
	return rsp, nil
}
