package group

import (
	"context"
	"strings"
	"testing"
	"time"

	"tak_portal_server/internal/dao/mysql/repository"
	"tak_portal_server/internal/dto/request"
	"tak_portal_server/internal/meshtastic"
	"tak_portal_server/internal/model"
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
func (r *memChannelRepo) FindAll() ([]model.ChannelRecord, error) {
	var out []model.ChannelRecord
	for _, ch := range r.channels {
		out = append(out, *ch)
	}
	return out, nil
}
func (r *memChannelRepo) FindUngrouped() ([]model.ChannelRecord, error) { return nil, nil }
func (r *memChannelRepo) CountDefaultConfigExcept(excludeUuid string) (int64, error) {
	return 0, nil
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
	roles  map[string][]string
	users  map[string][]string
}

func (r *memGroupRepo) FindByUuid(uuid string) (*model.ChannelGroup, error) {
	if g, ok := r.groups[uuid]; ok {
		gg := *g
		return &gg, nil
	}
	return nil, errorx.New(errorx.CodeNotFound, "信道组不存在")
}
func (r *memGroupRepo) FindByName(name string) (*model.ChannelGroup, error) {
	for _, g := range r.groups {
		if g.Name == name {
			gg := *g
			return &gg, nil
		}
	}
	return nil, errorx.New(errorx.CodeNotFound, "信道组不存在")
}
func (r *memGroupRepo) FindAll() ([]model.ChannelGroup, error) {
	var out []model.ChannelGroup
	for _, g := range r.groups {
		out = append(out, *g)
	}
	return out, nil
}
func (r *memGroupRepo) FindVisibleTo(userUuid, roleName string) ([]model.ChannelGroup, error) {
	var out []model.ChannelGroup
	for _, g := range r.groups {
		if g.IsPublic == 1 {
			out = append(out, *g)
			continue
		}
		granted := false
		for _, u := range r.users[g.Uuid] {
			if u == userUuid {
				granted = true
			}
		}
		if roleName != "" {
			for _, role := range r.roles[g.Uuid] {
				if role == roleName {
					granted = true
				}
			}
		}
		if granted {
			out = append(out, *g)
		}
	}
	return out, nil
}
func (r *memGroupRepo) Create(g *model.ChannelGroup) error {
	r.groups[g.Uuid] = g
	return nil
}
func (r *memGroupRepo) Update(g *model.ChannelGroup) error {
	if existing, ok := r.groups[g.Uuid]; ok {
		combined := existing.CombinedUrl
		r.groups[g.Uuid] = g
		// 组合 URL 是派生字段，普通更新不动它
		r.groups[g.Uuid].CombinedUrl = combined
	}
	return nil
}
func (r *memGroupRepo) UpdateCombinedUrl(uuid string, combinedUrl *string) error {
	if g, ok := r.groups[uuid]; ok {
		g.CombinedUrl = combinedUrl
	}
	return nil
}
func (r *memGroupRepo) Delete(uuid string) error {
	delete(r.groups, uuid)
	return nil
}
func (r *memGroupRepo) FindRoles(groupUuid string) ([]string, error) {
	return append([]string(nil), r.roles[groupUuid]...), nil
}
func (r *memGroupRepo) FindUsers(groupUuid string) ([]string, error) {
	return append([]string(nil), r.users[groupUuid]...), nil
}
func (r *memGroupRepo) ReplaceRoles(groupUuid string, roles []string) error {
	r.roles[groupUuid] = roles
	return nil
}
func (r *memGroupRepo) ReplaceUsers(groupUuid string, users []string) error {
	r.users[groupUuid] = users
	return nil
}
func (r *memGroupRepo) DeleteGrants(groupUuid string) error {
	delete(r.roles, groupUuid)
	delete(r.users, groupUuid)
	return nil
}

type memMembershipRepo struct {
	items  []*model.SlotMembership
	nextID uint
}

// Create 模拟存储层唯一索引：(group, slot) 和 (channel, group) 冲突时报错
func (r *memMembershipRepo) Create(m *model.SlotMembership) error {
	for _, it := range r.items {
		if it.GroupUuid == m.GroupUuid && it.SlotNumber == m.SlotNumber {
			return errorx.New(errorx.CodeConflict, "数据已存在，请勿重复提交")
		}
		if it.GroupUuid == m.GroupUuid && it.ChannelUuid == m.ChannelUuid {
			return errorx.New(errorx.CodeConflict, "数据已存在，请勿重复提交")
		}
	}
	r.nextID++
	m.ID = r.nextID
	r.items = append(r.items, m)
	return nil
}
func (r *memMembershipRepo) FindByGroupUuidOrdered(groupUuid string) ([]model.SlotMembership, error) {
	var out []model.SlotMembership
	for slot := 0; slot < 8; slot++ {
		for _, it := range r.items {
			if it.GroupUuid == groupUuid && it.SlotNumber == slot {
				out = append(out, *it)
			}
		}
	}
	return out, nil
}
func (r *memMembershipRepo) FindByGroupAndChannel(groupUuid, channelUuid string) (*model.SlotMembership, error) {
	for _, it := range r.items {
		if it.GroupUuid == groupUuid && it.ChannelUuid == channelUuid {
			m := *it
			return &m, nil
		}
	}
	return nil, errorx.New(errorx.CodeNotFound, "槽位关联不存在")
}
func (r *memMembershipRepo) FindByGroupAndSlot(groupUuid string, slotNumber int) (*model.SlotMembership, error) {
	for _, it := range r.items {
		if it.GroupUuid == groupUuid && it.SlotNumber == slotNumber {
			m := *it
			return &m, nil
		}
	}
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
func (r *memMembershipRepo) CountByGroupUuid(groupUuid string) (int64, error) {
	var count int64
	for _, it := range r.items {
		if it.GroupUuid == groupUuid {
			count++
		}
	}
	return count, nil
}
func (r *memMembershipRepo) UpdateSlot(id uint, slotNumber int) error {
	for _, it := range r.items {
		if it.ID == id {
			it.SlotNumber = slotNumber
			return nil
		}
	}
	return errorx.New(errorx.CodeNotFound, "槽位关联不存在")
}
func (r *memMembershipRepo) Delete(groupUuid, channelUuid string) error {
	out := r.items[:0]
	for _, it := range r.items {
		if it.GroupUuid == groupUuid && it.ChannelUuid == channelUuid {
			continue
		}
		out = append(out, it)
	}
	r.items = out
	return nil
}
func (r *memMembershipRepo) DeleteByGroupUuid(groupUuid string) error {
	out := r.items[:0]
	for _, it := range r.items {
		if it.GroupUuid == groupUuid {
			continue
		}
		out = append(out, it)
	}
	r.items = out
	return nil
}
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

type memUserRepo struct {
	users map[string]*model.UserInfo
}

func (r *memUserRepo) FindByUuid(uuid string) (*model.UserInfo, error) {
	if u, ok := r.users[uuid]; ok {
		uu := *u
		return &uu, nil
	}
	return nil, errorx.New(errorx.CodeNotFound, "用户不存在")
}
func (r *memUserRepo) FindByUsername(username string) (*model.UserInfo, error) {
	for _, u := range r.users {
		if u.Username == username {
			uu := *u
			return &uu, nil
		}
	}
	return nil, errorx.New(errorx.CodeNotFound, "用户不存在")
}
func (r *memUserRepo) Create(u *model.UserInfo) error {
	r.users[u.Uuid] = u
	return nil
}
func (r *memUserRepo) Update(u *model.UserInfo) error {
	r.users[u.Uuid] = u
	return nil
}

type memSettingRepo struct {
	values map[string]string
}

func (r *memSettingRepo) GetValue(key string) (string, error) { return r.values[key], nil }
func (r *memSettingRepo) SetValue(key, value string) error {
	r.values[key] = value
	return nil
}

// testCache 测试用缓存：读永远未命中，异步任务同步执行
type testCache struct{}

func (testCache) Set(ctx context.Context, key, value string, ttl time.Duration) error { return nil }
func (testCache) Get(ctx context.Context, key string) (string, error)                 { return "", nil }
func (testCache) Delete(ctx context.Context, key string) error                        { return nil }
func (testCache) DeleteByPattern(ctx context.Context, pattern string) error           { return nil }
func (testCache) SubmitTask(action func())                                            { action() }

// corruptCache 命中缓存但内容无法解析
type corruptCache struct{ testCache }

func (corruptCache) Get(ctx context.Context, key string) (string, error) { return "not-json", nil }

// ===== 测试脚手架 =====

type fixture struct {
	repos       *repository.Repositories
	channels    *memChannelRepo
	groups      *memGroupRepo
	memberships *memMembershipRepo
	users       *memUserRepo
	svc         *channelGroupService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	channels := &memChannelRepo{channels: map[string]*model.ChannelRecord{}}
	groups := &memGroupRepo{
		groups: map[string]*model.ChannelGroup{},
		roles:  map[string][]string{},
		users:  map[string][]string{},
	}
	memberships := &memMembershipRepo{}
	users := &memUserRepo{users: map[string]*model.UserInfo{}}
	repos := repository.NewStubRepositories(channels, groups, memberships,
		memRadioRepo{}, users, &memSettingRepo{values: map[string]string{}})

	codec := meshtastic.NewCodec()
	svc := NewGroupService(repos, testCache{}, meshtastic.NewCombiner(codec))
	return &fixture{
		repos:       repos,
		channels:    channels,
		groups:      groups,
		memberships: memberships,
		users:       users,
		svc:         svc,
	}
}

func (f *fixture) addGroup(uuid, name string) {
	f.groups.groups[uuid] = &model.ChannelGroup{Uuid: uuid, Name: name}
}

func (f *fixture) addChannel(uuid, name, url string) {
	f.channels.channels[uuid] = &model.ChannelRecord{Uuid: uuid, Name: name, Url: url}
}

func (f *fixture) mustAddChannel(t *testing.T, groupUuid, channelUuid string, slot int) {
	t.Helper()
	if _, err := f.svc.AddChannel(request.AddChannelRequest{
		GroupId: groupUuid, ChannelId: channelUuid, SlotNumber: &slot,
	}); err != nil {
		t.Fatalf("AddChannel(%s, %s, %d): %v", groupUuid, channelUuid, slot, err)
	}
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

// ===== 插槽不变量 =====

func TestAddChannelRejectsSlotOutOfRange(t *testing.T) {
	f := newFixture(t)
	f.addGroup("G1", "组一")
	f.addChannel("C1", "信道一", "")

	for _, slot := range []int{-1, 8, 100} {
		s := slot
		_, err := f.svc.AddChannel(request.AddChannelRequest{
			GroupId: "G1", ChannelId: "C1", SlotNumber: &s,
		})
		if err == nil {
			t.Errorf("slot %d: expected error", slot)
			continue
		}
		if errorx.GetCode(err) != errorx.CodeInvalidParam {
			t.Errorf("slot %d: code = %d, want %d", slot, errorx.GetCode(err), errorx.CodeInvalidParam)
		}
	}
}

func TestAddChannelOccupiedSlotConflict(t *testing.T) {
	f := newFixture(t)
	f.addGroup("G1", "组一")
	f.addChannel("C1", "信道一", "")
	f.addChannel("C2", "信道二", "")
	f.mustAddChannel(t, "G1", "C1", 0)

	slot := 0
	_, err := f.svc.AddChannel(request.AddChannelRequest{
		GroupId: "G1", ChannelId: "C2", SlotNumber: &slot,
	})
	if err == nil {
		t.Fatal("expected conflict")
	}
	if !errorx.IsConflict(err) {
		t.Errorf("code = %d, want conflict", errorx.GetCode(err))
	}
	// 冲突信息里报出占槽信道的名字
	if !strings.Contains(err.Error(), "信道一") {
		t.Errorf("conflict message = %q, want occupying channel name", err.Error())
	}
	// 先前状态不变
	count, _ := f.memberships.CountByGroupUuid("G1")
	if count != 1 {
		t.Errorf("membership count = %d, want 1", count)
	}
}

func TestAddChannelDuplicateMembershipConflict(t *testing.T) {
	f := newFixture(t)
	f.addGroup("G1", "组一")
	f.addChannel("C1", "信道一", "")
	f.mustAddChannel(t, "G1", "C1", 2)

	slot := 5
	_, err := f.svc.AddChannel(request.AddChannelRequest{
		GroupId: "G1", ChannelId: "C1", SlotNumber: &slot,
	})
	if err == nil {
		t.Fatal("expected conflict")
	}
	if !errorx.IsConflict(err) {
		t.Errorf("code = %d, want conflict", errorx.GetCode(err))
	}
	// 冲突信息里报出已占用的槽位
	if !strings.Contains(err.Error(), "2") {
		t.Errorf("conflict message = %q, want existing slot", err.Error())
	}
}

func TestChannelCanJoinTwoGroupsIndependently(t *testing.T) {
	f := newFixture(t)
	f.addGroup("G1", "组一")
	f.addGroup("G2", "组二")
	f.addChannel("C1", "信道一", "")
	f.mustAddChannel(t, "G1", "C1", 0)
	f.mustAddChannel(t, "G2", "C1", 5)

	m1, err := f.memberships.FindByGroupAndChannel("G1", "C1")
	if err != nil || m1.SlotNumber != 0 {
		t.Errorf("G1 membership = %+v, err = %v", m1, err)
	}
	m2, err := f.memberships.FindByGroupAndChannel("G2", "C1")
	if err != nil || m2.SlotNumber != 5 {
		t.Errorf("G2 membership = %+v, err = %v", m2, err)
	}
}

func TestUpdateChannelSlot(t *testing.T) {
	f := newFixture(t)
	f.addGroup("G1", "组一")
	f.addChannel("C1", "信道一", "")
	f.addChannel("C2", "信道二", "")
	f.mustAddChannel(t, "G1", "C1", 0)
	f.mustAddChannel(t, "G1", "C2", 1)

	// 移到空槽成功
	slot := 4
	rsp, err := f.svc.UpdateChannelSlot(request.UpdateSlotRequest{
		GroupId: "G1", ChannelId: "C2", SlotNumber: &slot,
	})
	if err != nil {
		t.Fatalf("UpdateChannelSlot: %v", err)
	}
	if rsp.SlotNumber != 4 {
		t.Errorf("slot = %d, want 4", rsp.SlotNumber)
	}

	// 移到他人占用的槽冲突
	slot = 0
	if _, err := f.svc.UpdateChannelSlot(request.UpdateSlotRequest{
		GroupId: "G1", ChannelId: "C2", SlotNumber: &slot,
	}); !errorx.IsConflict(err) {
		t.Errorf("expected conflict, got %v", err)
	}

	// 原槽位重传（排除自身）不算冲突
	slot = 4
	if _, err := f.svc.UpdateChannelSlot(request.UpdateSlotRequest{
		GroupId: "G1", ChannelId: "C2", SlotNumber: &slot,
	}); err != nil {
		t.Errorf("reslot to own slot: %v", err)
	}

	// 越界拒绝
	slot = 8
	if _, err := f.svc.UpdateChannelSlot(request.UpdateSlotRequest{
		GroupId: "G1", ChannelId: "C2", SlotNumber: &slot,
	}); errorx.GetCode(err) != errorx.CodeInvalidParam {
		t.Errorf("expected invalid param, got %v", err)
	}
}

func TestRemoveChannelNotMember(t *testing.T) {
	f := newFixture(t)
	f.addGroup("G1", "组一")
	f.addChannel("C1", "信道一", "")

	_, err := f.svc.RemoveChannel(request.RemoveChannelRequest{GroupId: "G1", ChannelId: "C1"})
	if errorx.GetCode(err) != errorx.CodeInvalidParam {
		t.Errorf("expected invalid param, got %v", err)
	}
}

// ===== 组合 URL =====

func TestAddChannelRegeneratesCombinedUrl(t *testing.T) {
	f := newFixture(t)
	f.addGroup("G1", "组一")
	url := shareUrl(t, "alpha")
	f.addChannel("C1", "信道一", url)

	slot := 0
	rsp, err := f.svc.AddChannel(request.AddChannelRequest{
		GroupId: "G1", ChannelId: "C1", SlotNumber: &slot,
	})
	if err != nil {
		t.Fatalf("AddChannel: %v", err)
	}
	if rsp.CombinedUrl == nil {
		t.Fatal("combined url is nil")
	}
	// 单成员合并等价于重编码
	if *rsp.CombinedUrl != url {
		t.Errorf("combined = %q, want %q", *rsp.CombinedUrl, url)
	}
	// 写回了组记录
	g, _ := f.groups.FindByUuid("G1")
	if g.CombinedUrl == nil || *g.CombinedUrl != url {
		t.Errorf("stored combined url = %v", g.CombinedUrl)
	}
}

func TestRemoveLastChannelClearsCombinedUrl(t *testing.T) {
	f := newFixture(t)
	f.addGroup("G1", "组一")
	f.addChannel("C1", "信道一", shareUrl(t, "alpha"))
	f.mustAddChannel(t, "G1", "C1", 0)

	rsp, err := f.svc.RemoveChannel(request.RemoveChannelRequest{GroupId: "G1", ChannelId: "C1"})
	if err != nil {
		t.Fatalf("RemoveChannel: %v", err)
	}
	if rsp.CombinedUrl != nil {
		t.Errorf("combined url = %q, want nil", *rsp.CombinedUrl)
	}
	g, _ := f.groups.FindByUuid("G1")
	if g.CombinedUrl != nil {
		t.Errorf("stored combined url = %q, want nil", *g.CombinedUrl)
	}
}

func TestRegenerateUrlIdempotent(t *testing.T) {
	f := newFixture(t)
	f.addGroup("G1", "组一")
	f.addChannel("C1", "信道一", shareUrl(t, "alpha"))
	f.addChannel("C2", "信道二", shareUrl(t, "bravo"))
	f.mustAddChannel(t, "G1", "C1", 0)
	f.mustAddChannel(t, "G1", "C2", 3)

	first, err := f.svc.RegenerateUrl("G1")
	if err != nil {
		t.Fatalf("RegenerateUrl: %v", err)
	}
	second, err := f.svc.RegenerateUrl("G1")
	if err != nil {
		t.Fatalf("RegenerateUrl: %v", err)
	}
	if first == nil || second == nil || *first != *second {
		t.Errorf("regenerate not idempotent: %v vs %v", first, second)
	}
}

func TestRegenerateAllUrlsSkipsEmptyGroups(t *testing.T) {
	f := newFixture(t)
	f.addGroup("G1", "组一")
	f.addGroup("G2", "组二")
	f.addChannel("C1", "信道一", shareUrl(t, "alpha"))
	f.mustAddChannel(t, "G1", "C1", 0)

	processed, err := f.svc.RegenerateAllUrls()
	if err != nil {
		t.Fatalf("RegenerateAllUrls: %v", err)
	}
	if processed != 1 {
		t.Errorf("processed = %d, want 1 (empty group skipped)", processed)
	}
}

// ===== 组生命周期 =====

func TestCreateGroupDuplicateName(t *testing.T) {
	f := newFixture(t)
	f.addGroup("G1", "组一")

	_, err := f.svc.CreateGroup(request.CreateGroupRequest{Name: "组一"})
	if !errorx.IsConflict(err) {
		t.Errorf("expected conflict, got %v", err)
	}
}

func TestCreateGroupRejectsBadTemplate(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.CreateGroup(request.CreateGroupRequest{
		Name:           "组一",
		ConfigTemplate: "key: [unclosed",
	})
	if errorx.GetCode(err) != errorx.CodeInvalidParam {
		t.Errorf("expected invalid param, got %v", err)
	}
}

func TestDeleteGroupDetachesChannels(t *testing.T) {
	f := newFixture(t)
	f.addGroup("G1", "组一")
	f.addChannel("C1", "信道一", "")
	f.mustAddChannel(t, "G1", "C1", 0)

	if err := f.svc.DeleteGroup("G1"); err != nil {
		t.Fatalf("DeleteGroup: %v", err)
	}
	// 组没了，关联没了，信道还在
	if _, err := f.groups.FindByUuid("G1"); !errorx.IsNotFound(err) {
		t.Error("group still exists")
	}
	if memberships, _ := f.memberships.FindByChannelUuid("C1"); len(memberships) != 0 {
		t.Errorf("memberships remain: %d", len(memberships))
	}
	if _, err := f.channels.FindByUuid("C1"); err != nil {
		t.Error("channel was deleted, want detach only")
	}
}

func TestGetGroupListVisibility(t *testing.T) {
	f := newFixture(t)
	f.users.users["U1"] = &model.UserInfo{Uuid: "U1", Username: "u1", Role: "scout"}

	f.groups.groups["G1"] = &model.ChannelGroup{Uuid: "G1", Name: "公开组", IsPublic: 1}
	f.groups.groups["G2"] = &model.ChannelGroup{Uuid: "G2", Name: "直接授权组"}
	f.groups.users["G2"] = []string{"U1"}
	f.groups.groups["G3"] = &model.ChannelGroup{Uuid: "G3", Name: "角色授权组"}
	f.groups.roles["G3"] = []string{"scout"}
	f.groups.groups["G4"] = &model.ChannelGroup{Uuid: "G4", Name: "私有组"}

	list, err := f.svc.GetGroupList("U1")
	if err != nil {
		t.Fatalf("GetGroupList: %v", err)
	}
	seen := map[string]bool{}
	for _, g := range list {
		seen[g.GroupId] = true
	}
	for _, want := range []string{"G1", "G2", "G3"} {
		if !seen[want] {
			t.Errorf("group %s not visible", want)
		}
	}
	if seen["G4"] {
		t.Error("private group leaked")
	}
}

func TestGroupListSummariesCarryOrderedChannels(t *testing.T) {
	f := newFixture(t)
	f.users.users["U1"] = &model.UserInfo{Uuid: "U1"}
	f.groups.groups["G1"] = &model.ChannelGroup{Uuid: "G1", Name: "公开组", IsPublic: 1}
	f.addChannel("C1", "信道一", "")
	f.addChannel("C2", "信道二", "")
	f.mustAddChannel(t, "G1", "C1", 3)
	f.mustAddChannel(t, "G1", "C2", 1)

	list, err := f.svc.GetGroupList("U1")
	if err != nil {
		t.Fatalf("GetGroupList: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("list len = %d, want 1", len(list))
	}
	g := list[0]
	if g.ChannelCount != 2 || len(g.Channels) != 2 {
		t.Fatalf("channels = %d/%d, want 2/2", g.ChannelCount, len(g.Channels))
	}
	// 成员信道按槽位升序
	if g.Channels[0].ChannelId != "C2" || g.Channels[0].SlotNumber != 1 {
		t.Errorf("channels[0] = %+v, want C2@1", g.Channels[0])
	}
	if g.Channels[1].ChannelId != "C1" || g.Channels[1].SlotNumber != 3 {
		t.Errorf("channels[1] = %+v, want C1@3", g.Channels[1])
	}
	// 角色授权只在管理员全量列表里给出
	if len(g.Roles) != 0 {
		t.Errorf("roles = %v, want empty", g.Roles)
	}
}

func TestGetAllGroupsCarriesRoles(t *testing.T) {
	f := newFixture(t)
	f.groups.groups["G1"] = &model.ChannelGroup{Uuid: "G1", Name: "角色组"}
	f.groups.roles["G1"] = []string{"scout", "medic"}

	list, err := f.svc.GetAllGroups()
	if err != nil {
		t.Fatalf("GetAllGroups: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("list len = %d, want 1", len(list))
	}
	roles := list[0].Roles
	if len(roles) != 2 || roles[0] != "scout" || roles[1] != "medic" {
		t.Errorf("roles = %v, want [scout medic]", roles)
	}
}

func TestGetGroupListIgnoresCorruptCache(t *testing.T) {
	f := newFixture(t)
	f.svc.cache = corruptCache{}
	f.users.users["U1"] = &model.UserInfo{Uuid: "U1"}
	f.groups.groups["G1"] = &model.ChannelGroup{Uuid: "G1", Name: "公开组", IsPublic: 1}

	// 缓存内容损坏时回落到数据库
	list, err := f.svc.GetGroupList("U1")
	if err != nil {
		t.Fatalf("GetGroupList: %v", err)
	}
	if len(list) != 1 || list[0].GroupId != "G1" {
		t.Errorf("list = %+v, want G1 from db", list)
	}
}

func TestDeleteGroupFreesName(t *testing.T) {
	f := newFixture(t)
	created, err := f.svc.CreateGroup(request.CreateGroupRequest{Name: "组一"})
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}
	if err := f.svc.DeleteGroup(created.GroupId); err != nil {
		t.Fatalf("DeleteGroup: %v", err)
	}
	// 删除后同名可以重建
	if _, err := f.svc.CreateGroup(request.CreateGroupRequest{Name: "组一"}); err != nil {
		t.Errorf("recreate after delete: %v", err)
	}
}

func TestCheckGroupAccess(t *testing.T) {
	f := newFixture(t)
	f.users.users["U1"] = &model.UserInfo{Uuid: "U1", Role: "scout"}
	f.users.users["U2"] = &model.UserInfo{Uuid: "U2"}
	f.groups.groups["G1"] = &model.ChannelGroup{Uuid: "G1", Name: "角色组"}
	f.groups.roles["G1"] = []string{"scout"}

	if ok, err := f.svc.CheckGroupAccess("G1", "U1"); err != nil || !ok {
		t.Errorf("U1 access = %v, %v, want true", ok, err)
	}
	if ok, err := f.svc.CheckGroupAccess("G1", "U2"); err != nil || ok {
		t.Errorf("U2 access = %v, %v, want false", ok, err)
	}
	if _, err := f.svc.CheckGroupAccess("missing", "U1"); !errorx.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}
