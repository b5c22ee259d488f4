// Package radio 实现电台登记与管理业务逻辑
package radio

import (
	"fmt"

	"tak_portal_server/internal/dao/mysql/repository"
	"tak_portal_server/internal/dto/request"
	"tak_portal_server/internal/dto/respond"
	"tak_portal_server/internal/model"
	"tak_portal_server/pkg/constants"
	"tak_portal_server/pkg/errorx"
	"tak_portal_server/pkg/util/random"
)

// radioService 电台业务逻辑实现
type radioService struct {
	repos *repository.Repositories
}

// NewRadioService 构造函数
func NewRadioService(repos *repository.Repositories) *radioService {
	return &radioService{repos: repos}
}

func toRadioRespond(r *model.Radio) *respond.RadioRespond {
	return &respond.RadioRespond{
		RadioId:          r.Uuid,
		Name:             r.Name,
		RadioType:        r.RadioType,
		ShortName:        r.ShortName,
		LongName:         r.LongName,
		Mac:              r.Mac,
		AssignedUserUuid: r.AssignedUserUuid,
		OwnerUuid:        r.OwnerUuid,
	}
}

// optionalUuid 空串转 nil，关联字段不落空字符串
func optionalUuid(uuid string) *string {
	if uuid == "" {
		return nil
	}
	return &uuid
}

// CreateRadio 登记电台
func (s *radioService) CreateRadio(req request.CreateRadioRequest) (*respond.RadioRespond, error) {
	radioType := req.RadioType
	if radioType == "" {
		radioType = constants.RADIO_TYPE_MESHTASTIC
	}

	radio := model.Radio{
		Uuid:             fmt.Sprintf("R%s", random.GetNowAndLenRandomString(11)),
		Name:             req.Name,
		RadioType:        radioType,
		ShortName:        req.ShortName,
		LongName:         req.LongName,
		Mac:              req.Mac,
		AssignedUserUuid: optionalUuid(req.AssignedUserUuid),
		OwnerUuid:        optionalUuid(req.OwnerUuid),
	}
	if err := s.repos.Radio.Create(&radio); err != nil {
		return nil, err
	}
	return toRadioRespond(&radio), nil
}

// UpdateRadio 部分更新电台
// AssignedUserUuid/OwnerUuid 传空串表示解除关联
func (s *radioService) UpdateRadio(req request.UpdateRadioRequest) (*respond.RadioRespond, error) {
	radio, err := s.repos.Radio.FindByUuid(req.RadioId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.Newf(errorx.CodeNotFound, "电台 %s 不存在", req.RadioId)
		}
		return nil, err
	}

	if req.Name != nil {
		radio.Name = *req.Name
	}
	if req.ShortName != nil {
		radio.ShortName = *req.ShortName
	}
	if req.LongName != nil {
		radio.LongName = *req.LongName
	}
	if req.Mac != nil {
		radio.Mac = *req.Mac
	}
	if req.AssignedUserUuid != nil {
		radio.AssignedUserUuid = optionalUuid(*req.AssignedUserUuid)
	}
	if req.OwnerUuid != nil {
		radio.OwnerUuid = optionalUuid(*req.OwnerUuid)
	}

	if err := s.repos.Radio.Update(radio); err != nil {
		return nil, err
	}
	return toRadioRespond(radio), nil
}

// DeleteRadio 删除电台
func (s *radioService) DeleteRadio(radioUuid string) error {
	if _, err := s.repos.Radio.FindByUuid(radioUuid); err != nil {
		if errorx.IsNotFound(err) {
			return errorx.Newf(errorx.CodeNotFound, "电台 %s 不存在", radioUuid)
		}
		return err
	}
	return s.repos.Radio.Delete(radioUuid)
}

// GetRadioInfo 获取电台详情
func (s *radioService) GetRadioInfo(radioUuid string) (*respond.RadioRespond, error) {
	radio, err := s.repos.Radio.FindByUuid(radioUuid)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.Newf(errorx.CodeNotFound, "电台 %s 不存在", radioUuid)
		}
		return nil, err
	}
	return toRadioRespond(radio), nil
}

// GetRadioList 获取全部电台
func (s *radioService) GetRadioList() ([]respond.RadioRespond, error) {
	radios, err := s.repos.Radio.FindAll()
	if err != nil {
		return nil, err
	}
	list := make([]respond.RadioRespond, 0, len(radios))
	for i := range radios {
		list = append(list, *toRadioRespond(&radios[i]))
	}
	return list, nil
}
