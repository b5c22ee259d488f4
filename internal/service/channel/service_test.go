package channel

import (
	"context"
	"strings"
	"testing"
	"time"

	"tak_portal_server/internal/dao/mysql/repository"
	"tak_portal_server/internal/dto/request"
	"tak_portal_server/internal/meshtastic"
	"tak_portal_server/internal/model"
	"tak_portal_server/pkg/constants"
	"tak_portal_server/pkg/errorx"
)

// ===== 内存版 Repository（测试用）=====

type memChannelRepo struct {
	channels map[string]*model.ChannelRecord
}

func (r *memChannelRepo) FindByUuid(uuid string) (*model.ChannelRecord, error) {
	if ch, ok := r.channels[uuid]; ok {
		c := *ch
		return &c, nil
	}
	return nil, errorx.New(errorx.CodeNotFound, "信道不存在")
}
func (r *memChannelRepo) FindByName(name string) (*model.ChannelRecord, error) {
	for _, ch := range r.channels {
		if ch.Name == name {
			c := *ch
			return &c, nil
		}
	}
	return nil, errorx.New(errorx.CodeNotFound, "信道不存在")
}
func (r *memChannelRepo) FindByUuids(uuids []string) ([]model.ChannelRecord, error) {
	var out []model.ChannelRecord
	for _, uuid := range uuids {
		if ch, ok := r.channels[uuid]; ok {
			out = append(out, *ch)
		}
	}
	return out, nil
}
func (r *memChannelRepo) FindAll() ([]model.ChannelRecord, error) { return nil, nil }
func (r *memChannelRepo) FindUngrouped() ([]model.ChannelRecord, error) {
	return nil, nil
}
func (r *memChannelRepo) CountDefaultConfigExcept(excludeUuid string) (int64, error) {
	var count int64
	for _, ch := range r.channels {
		if ch.IsDefaultConfig == 1 && ch.Uuid != excludeUuid {
			count++
		}
	}
	return count, nil
}
func (r *memChannelRepo) Create(ch *model.ChannelRecord) error {
	r.channels[ch.Uuid] = ch
	return nil
}
func (r *memChannelRepo) Update(ch *model.ChannelRecord) error {
	r.channels[ch.Uuid] = ch
	return nil
}
func (r *memChannelRepo) Delete(uuid string) error {
	delete(r.channels, uuid)
	return nil
}

type memGroupRepo struct {
	groups map[string]*model.ChannelGroup
}

func (r *memGroupRepo) FindByUuid(uuid string) (*model.ChannelGroup, error) {
	if g, ok := r.groups[uuid]; ok {
		gg := *g
		return &gg, nil
	}
	return nil, errorx.New(errorx.CodeNotFound, "信道组不存在")
}
func (r *memGroupRepo) FindByName(name string) (*model.ChannelGroup, error) {
	return nil, errorx.New(errorx.CodeNotFound, "信道组不存在")
}
func (r *memGroupRepo) FindAll() ([]model.ChannelGroup, error) { return nil, nil }
func (r *memGroupRepo) FindVisibleTo(userUuid, roleName string) ([]model.ChannelGroup, error) {
	return nil, nil
}
func (r *memGroupRepo) Create(g *model.ChannelGroup) error { r.groups[g.Uuid] = g; return nil }
func (r *memGroupRepo) Update(g *model.ChannelGroup) error { r.groups[g.Uuid] = g; return nil }
func (r *memGroupRepo) UpdateCombinedUrl(uuid string, combinedUrl *string) error {
	if g, ok := r.groups[uuid]; ok {
		g.CombinedUrl = combinedUrl
	}
	return nil
}
func (r *memGroupRepo) Delete(uuid string) error                            { delete(r.groups, uuid); return nil }
func (r *memGroupRepo) FindRoles(groupUuid string) ([]string, error)        { return nil, nil }
func (r *memGroupRepo) FindUsers(groupUuid string) ([]string, error)        { return nil, nil }
func (r *memGroupRepo) ReplaceRoles(groupUuid string, roles []string) error { return nil }
func (r *memGroupRepo) ReplaceUsers(groupUuid string, users []string) error { return nil }
func (r *memGroupRepo) DeleteGrants(groupUuid string) error                 { return nil }

type memMembershipRepo struct {
	items []*model.SlotMembership
}

func (r *memMembershipRepo) Create(m *model.SlotMembership) error {
	r.items = append(r.items, m)
	return nil
}
func (r *memMembershipRepo) FindByGroupUuidOrdered(groupUuid string) ([]model.SlotMembership, error) {
	var out []model.SlotMembership
	for slot := 0; slot < constants.MAX_SLOT_COUNT; slot++ {
		for _, it := range r.items {
			if it.GroupUuid == groupUuid && it.SlotNumber == slot {
				out = append(out, *it)
			}
		}
	}
	return out, nil
}
func (r *memMembershipRepo) FindByGroupAndChannel(groupUuid, channelUuid string) (*model.SlotMembership, error) {
	return nil, errorx.New(errorx.CodeNotFound, "槽位关联不存在")
}
func (r *memMembershipRepo) FindByGroupAndSlot(groupUuid string, slotNumber int) (*model.SlotMembership, error) {
	return nil, errorx.New(errorx.CodeNotFound, "槽位关联不存在")
}
func (r *memMembershipRepo) FindByChannelUuid(channelUuid string) ([]model.SlotMembership, error) {
	var out []model.SlotMembership
	for _, it := range r.items {
		if it.ChannelUuid == channelUuid {
			out = append(out, *it)
		}
	}
	return out, nil
}
func (r *memMembershipRepo) CountByGroupUuid(groupUuid string) (int64, error) { return 0, nil }
func (r *memMembershipRepo) UpdateSlot(id uint, slotNumber int) error         { return nil }
func (r *memMembershipRepo) Delete(groupUuid, channelUuid string) error       { return nil }
func (r *memMembershipRepo) DeleteByGroupUuid(groupUuid string) error         { return nil }
func (r *memMembershipRepo) DeleteByChannelUuid(channelUuid string) error {
	out := r.items[:0]
	for _, it := range r.items {
		if it.ChannelUuid == channelUuid {
			continue
		}
		out = append(out, it)
	}
	r.items = out
	return nil
}

type memRadioRepo struct{}

func (memRadioRepo) FindByUuid(uuid string) (*model.Radio, error) {
	return nil, errorx.New(errorx.CodeNotFound, "电台不存在")
}
func (memRadioRepo) FindAll() ([]model.Radio, error) { return nil, nil }
func (memRadioRepo) Create(r *model.Radio) error     { return nil }
func (memRadioRepo) Update(r *model.Radio) error     { return nil }
func (memRadioRepo) Delete(uuid string) error        { return nil }

type memUserRepo struct{}

func (memUserRepo) FindByUuid(uuid string) (*model.UserInfo, error) {
	return nil, errorx.New(errorx.CodeNotFound, "用户不存在")
}
func (memUserRepo) FindByUsername(username string) (*model.UserInfo, error) {
	return nil, errorx.New(errorx.CodeNotFound, "用户不存在")
}
func (memUserRepo) Create(u *model.UserInfo) error { return nil }
func (memUserRepo) Update(u *model.UserInfo) error { return nil }

type memSettingRepo struct{}

func (memSettingRepo) GetValue(key string) (string, error) { return "", nil }
func (memSettingRepo) SetValue(key, value string) error    { return nil }

// testCache 测试用缓存：读永远未命中，异步任务同步执行
type testCache struct{}

func (testCache) Set(ctx context.Context, key, value string, ttl time.Duration) error { return nil }
func (testCache) Get(ctx context.Context, key string) (string, error)                 { return "", nil }
func (testCache) Delete(ctx context.Context, key string) error                        { return nil }
func (testCache) DeleteByPattern(ctx context.Context, pattern string) error           { return nil }
func (testCache) SubmitTask(action func())                                            { action() }

// ===== 测试脚手架 =====

type fixture struct {
	channels    *memChannelRepo
	groups      *memGroupRepo
	memberships *memMembershipRepo
	svc         *channelService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	channels := &memChannelRepo{channels: map[string]*model.ChannelRecord{}}
	groups := &memGroupRepo{groups: map[string]*model.ChannelGroup{}}
	memberships := &memMembershipRepo{}
	repos := repository.NewStubRepositories(channels, groups, memberships,
		memRadioRepo{}, memUserRepo{}, memSettingRepo{})

	codec := meshtastic.NewCodec()
	svc := NewChannelService(repos, testCache{}, codec, meshtastic.NewCombiner(codec))
	return &fixture{channels: channels, groups: groups, memberships: memberships, svc: svc}
}

func shareUrl(t *testing.T, name string) string {
	t.Helper()
	url, err := meshtastic.EncodeURL(meshtastic.NewCodec(), &meshtastic.ChannelSet{
		Settings: []*meshtastic.ChannelSettings{{Name: name, Psk: []byte{1, 2, 3, 4}}},
	})
	if err != nil {
		t.Fatalf("EncodeURL: %v", err)
	}
	return url
}

// ===== 创建 =====

func TestCreateChannelGeneratesUrl(t *testing.T) {
	f := newFixture(t)

	rsp, err := f.svc.CreateChannel(request.CreateChannelRequest{Name: "巡逻频道"})
	if err != nil {
		t.Fatalf("CreateChannel: %v", err)
	}
	if !strings.HasPrefix(rsp.Url, constants.MESHTASTIC_URL_PREFIX) {
		t.Fatalf("url = %q, want standard share url", rsp.Url)
	}
	// 生成的 URL 可解码，带名称和 256 位 PSK
	set, err := meshtastic.DecodeURL(meshtastic.NewCodec(), rsp.Url)
	if err != nil {
		t.Fatalf("DecodeURL: %v", err)
	}
	if len(set.Settings) != 1 {
		t.Fatalf("settings count = %d, want 1", len(set.Settings))
	}
	if set.Settings[0].Name != "巡逻频道" {
		t.Errorf("name = %q", set.Settings[0].Name)
	}
	if len(set.Settings[0].Psk) != constants.PSK_SIZE {
		t.Errorf("psk size = %d, want %d", len(set.Settings[0].Psk), constants.PSK_SIZE)
	}
}

func TestCreateChannelKeepsProvidedUrl(t *testing.T) {
	f := newFixture(t)
	url := shareUrl(t, "alpha")

	rsp, err := f.svc.CreateChannel(request.CreateChannelRequest{Name: "alpha", Url: url})
	if err != nil {
		t.Fatalf("CreateChannel: %v", err)
	}
	if rsp.Url != url {
		t.Errorf("url = %q, want provided url kept", rsp.Url)
	}
}

func TestCreateChannelDuplicateName(t *testing.T) {
	f := newFixture(t)
	if _, err := f.svc.CreateChannel(request.CreateChannelRequest{Name: "alpha"}); err != nil {
		t.Fatalf("CreateChannel: %v", err)
	}
	_, err := f.svc.CreateChannel(request.CreateChannelRequest{Name: "alpha"})
	if !errorx.IsConflict(err) {
		t.Errorf("expected conflict, got %v", err)
	}
}

func TestDeleteChannelFreesName(t *testing.T) {
	f := newFixture(t)
	rsp, err := f.svc.CreateChannel(request.CreateChannelRequest{Name: "alpha"})
	if err != nil {
		t.Fatalf("CreateChannel: %v", err)
	}
	if err := f.svc.DeleteChannel(rsp.ChannelId); err != nil {
		t.Fatalf("DeleteChannel: %v", err)
	}
	// 删除后同名可以重建
	if _, err := f.svc.CreateChannel(request.CreateChannelRequest{Name: "alpha"}); err != nil {
		t.Errorf("recreate after delete: %v", err)
	}
}

// ===== 默认配置单例 =====

func TestDefaultConfigSingleton(t *testing.T) {
	f := newFixture(t)
	first, err := f.svc.CreateChannel(request.CreateChannelRequest{Name: "默认", IsDefaultConfig: 1})
	if err != nil {
		t.Fatalf("CreateChannel: %v", err)
	}

	// 第二条默认配置被拒
	_, err = f.svc.CreateChannel(request.CreateChannelRequest{Name: "又一条默认", IsDefaultConfig: 1})
	if !errorx.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}

	// 通过更新抢默认标记同样被拒
	other, err := f.svc.CreateChannel(request.CreateChannelRequest{Name: "普通"})
	if err != nil {
		t.Fatalf("CreateChannel: %v", err)
	}
	flag := int8(1)
	_, err = f.svc.UpdateChannel(request.UpdateChannelRequest{ChannelId: other.ChannelId, IsDefaultConfig: &flag})
	if !errorx.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}

	// 持有者自己更新不受单例校验影响
	desc := "系统默认配置"
	if _, err := f.svc.UpdateChannel(request.UpdateChannelRequest{
		ChannelId: first.ChannelId, Description: &desc,
	}); err != nil {
		t.Fatalf("UpdateChannel on holder: %v", err)
	}
}

// ===== 更新联动 =====

func TestUpdateChannelUrlRegeneratesGroups(t *testing.T) {
	f := newFixture(t)
	f.groups.groups["G1"] = &model.ChannelGroup{Uuid: "G1", Name: "组一"}
	rsp, err := f.svc.CreateChannel(request.CreateChannelRequest{Name: "alpha", Url: shareUrl(t, "alpha")})
	if err != nil {
		t.Fatalf("CreateChannel: %v", err)
	}
	f.memberships.items = append(f.memberships.items, &model.SlotMembership{
		GroupUuid: "G1", ChannelUuid: rsp.ChannelId, SlotNumber: 0,
	})

	newUrl := shareUrl(t, "bravo")
	if _, err := f.svc.UpdateChannel(request.UpdateChannelRequest{
		ChannelId: rsp.ChannelId, Url: &newUrl,
	}); err != nil {
		t.Fatalf("UpdateChannel: %v", err)
	}

	g, _ := f.groups.FindByUuid("G1")
	if g.CombinedUrl == nil || *g.CombinedUrl != newUrl {
		t.Errorf("combined url = %v, want regenerated from new channel url", g.CombinedUrl)
	}
}

func TestDeleteChannelRegeneratesGroups(t *testing.T) {
	f := newFixture(t)
	old := shareUrl(t, "alpha")
	f.groups.groups["G1"] = &model.ChannelGroup{Uuid: "G1", Name: "组一", CombinedUrl: &old}
	rsp, err := f.svc.CreateChannel(request.CreateChannelRequest{Name: "alpha", Url: old})
	if err != nil {
		t.Fatalf("CreateChannel: %v", err)
	}
	f.memberships.items = append(f.memberships.items, &model.SlotMembership{
		GroupUuid: "G1", ChannelUuid: rsp.ChannelId, SlotNumber: 0,
	})

	if err := f.svc.DeleteChannel(rsp.ChannelId); err != nil {
		t.Fatalf("DeleteChannel: %v", err)
	}
	if _, err := f.channels.FindByUuid(rsp.ChannelId); !errorx.IsNotFound(err) {
		t.Error("channel still exists")
	}
	// 组成员空了，组合 URL 清空
	g, _ := f.groups.FindByUuid("G1")
	if g.CombinedUrl != nil {
		t.Errorf("combined url = %q, want cleared", *g.CombinedUrl)
	}
}

// ===== 外部同步 =====

func TestSyncUpsertCreates(t *testing.T) {
	f := newFixture(t)

	rsp, err := f.svc.SyncUpsert(request.SyncChannelRequest{
		Name: "镜像信道", Url: shareUrl(t, "mirror"),
	})
	if err != nil {
		t.Fatalf("SyncUpsert: %v", err)
	}
	if rsp.LastSynced == nil {
		t.Error("last synced not stamped on import")
	}
	if _, err := f.channels.FindByUuid(rsp.ChannelId); err != nil {
		t.Errorf("channel not stored: %v", err)
	}
}

func TestSyncUpsertUpdatesByName(t *testing.T) {
	f := newFixture(t)
	created, err := f.svc.CreateChannel(request.CreateChannelRequest{
		Name: "alpha", Description: "原描述", Url: shareUrl(t, "alpha"),
	})
	if err != nil {
		t.Fatalf("CreateChannel: %v", err)
	}

	// 空字段不覆盖已有值
	rsp, err := f.svc.SyncUpsert(request.SyncChannelRequest{Name: "alpha"})
	if err != nil {
		t.Fatalf("SyncUpsert: %v", err)
	}
	if rsp.ChannelId != created.ChannelId {
		t.Errorf("upsert created a new channel: %s vs %s", rsp.ChannelId, created.ChannelId)
	}
	if rsp.Description != "原描述" {
		t.Errorf("description = %q, want untouched", rsp.Description)
	}
	if rsp.Url != created.Url {
		t.Errorf("url = %q, want untouched", rsp.Url)
	}
	if rsp.LastSynced == nil {
		t.Error("last synced not refreshed")
	}

	// 非空字段覆盖
	rsp, err = f.svc.SyncUpsert(request.SyncChannelRequest{Name: "alpha", Description: "新描述"})
	if err != nil {
		t.Fatalf("SyncUpsert: %v", err)
	}
	if rsp.Description != "新描述" {
		t.Errorf("description = %q", rsp.Description)
	}
}

func TestSyncUpsertRequiresName(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.SyncUpsert(request.SyncChannelRequest{Url: "https://meshtastic.org/e/#x"})
	if errorx.GetCode(err) != errorx.CodeInvalidParam {
		t.Errorf("expected invalid param, got %v", err)
	}
}
