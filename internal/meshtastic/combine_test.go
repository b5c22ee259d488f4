package meshtastic

import (
	"testing"
)

// mustEncodeURL 测试辅助：构造单信道分享 URL
func mustEncodeURL(t *testing.T, set *ChannelSet) string {
	t.Helper()
	url, err := EncodeURL(NewCodec(), set)
	if err != nil {
		t.Fatalf("EncodeURL: %v", err)
	}
	return url
}

func singleChannelSet(name string, lora *LoraConfig) *ChannelSet {
	return &ChannelSet{
		Settings:   []*ChannelSettings{{Name: name, Psk: []byte{1, 2, 3, 4}}},
		LoraConfig: lora,
	}
}

func TestCombineEmptyMembers(t *testing.T) {
	c := NewCombiner(NewCodec())
	if got := c.Combine(nil); got != nil {
		t.Errorf("Combine(nil) = %v, want nil", *got)
	}
	// 全部成员无 URL 也返回 nil
	members := []MemberURL{
		{ChannelName: "a", Url: "", SlotNumber: 0},
		{ChannelName: "b", Url: "", SlotNumber: 1},
	}
	if got := c.Combine(members); got != nil {
		t.Errorf("Combine(no urls) = %v, want nil", *got)
	}
}

func TestCombineSingleEntryRoundTrip(t *testing.T) {
	codec := NewCodec()
	c := NewCombiner(codec)
	url := mustEncodeURL(t, singleChannelSet("alpha", nil))

	got := c.Combine([]MemberURL{{ChannelName: "alpha", Url: url, SlotNumber: 0}})
	if got == nil {
		t.Fatal("Combine returned nil")
	}
	// 单成员合并等价于重编码，结果应与输入 URL 一致
	if *got != url {
		t.Errorf("combined = %q, want %q", *got, url)
	}
}

func TestCombineOrdersBySlot(t *testing.T) {
	codec := NewCodec()
	c := NewCombiner(codec)
	urlA := mustEncodeURL(t, singleChannelSet("alpha", nil))
	urlB := mustEncodeURL(t, singleChannelSet("bravo", nil))

	// 乱序输入，按槽位升序合并
	got := c.Combine([]MemberURL{
		{ChannelName: "bravo", Url: urlB, SlotNumber: 5},
		{ChannelName: "alpha", Url: urlA, SlotNumber: 0},
	})
	if got == nil {
		t.Fatal("Combine returned nil")
	}
	set, err := DecodeURL(codec, *got)
	if err != nil {
		t.Fatalf("DecodeURL: %v", err)
	}
	if len(set.Settings) != 2 {
		t.Fatalf("settings count = %d, want 2", len(set.Settings))
	}
	if set.Settings[0].Name != "alpha" || set.Settings[1].Name != "bravo" {
		t.Errorf("order = %q, %q", set.Settings[0].Name, set.Settings[1].Name)
	}
}

func TestCombineFirstLoraConfigWins(t *testing.T) {
	codec := NewCodec()
	c := NewCombiner(codec)
	urlA := mustEncodeURL(t, singleChannelSet("alpha", &LoraConfig{Region: 1}))
	urlB := mustEncodeURL(t, singleChannelSet("bravo", &LoraConfig{Region: 2}))

	got := c.Combine([]MemberURL{
		{ChannelName: "alpha", Url: urlA, SlotNumber: 0},
		{ChannelName: "bravo", Url: urlB, SlotNumber: 1},
	})
	if got == nil {
		t.Fatal("Combine returned nil")
	}
	set, err := DecodeURL(codec, *got)
	if err != nil {
		t.Fatalf("DecodeURL: %v", err)
	}
	if set.LoraConfig == nil || set.LoraConfig.Region != 1 {
		t.Errorf("lora config = %+v, want region 1 (first member wins)", set.LoraConfig)
	}
}

func TestCombineSkipsMalformedMember(t *testing.T) {
	codec := NewCodec()
	c := NewCombiner(codec)
	urlGood := mustEncodeURL(t, singleChannelSet("good", nil))

	got := c.Combine([]MemberURL{
		{ChannelName: "good", Url: urlGood, SlotNumber: 0},
		{ChannelName: "no-fragment", Url: "https://meshtastic.org/e/", SlotNumber: 1},
		{ChannelName: "bad-base64", Url: "https://meshtastic.org/e/#!!!", SlotNumber: 2},
	})
	if got == nil {
		t.Fatal("Combine returned nil")
	}
	set, err := DecodeURL(codec, *got)
	if err != nil {
		t.Fatalf("DecodeURL: %v", err)
	}
	if len(set.Settings) != 1 || set.Settings[0].Name != "good" {
		t.Errorf("settings = %+v, want only the decodable member", set.Settings)
	}
}

func TestCombineFallbackWhenAllMalformed(t *testing.T) {
	c := NewCombiner(NewCodec())
	got := c.Combine([]MemberURL{
		{ChannelName: "b", Url: "https://example.com/no-fragment-b", SlotNumber: 1},
		{ChannelName: "a", Url: "https://example.com/no-fragment-a", SlotNumber: 0},
	})
	if got == nil {
		t.Fatal("Combine returned nil, want fallback url")
	}
	// 回退优先槽位 0 成员
	if *got != "https://example.com/no-fragment-a" {
		t.Errorf("fallback = %q, want slot-0 url", *got)
	}
}

func TestCombineFallbackWithoutSlotZero(t *testing.T) {
	c := NewCombiner(nil) // 编解码器缺失
	got := c.Combine([]MemberURL{
		{ChannelName: "c", Url: "url-slot2", SlotNumber: 2},
		{ChannelName: "b", Url: "url-slot1", SlotNumber: 1},
	})
	if got == nil {
		t.Fatal("Combine returned nil, want fallback url")
	}
	// 没有槽位 0 时取槽位最小的成员
	if *got != "url-slot1" {
		t.Errorf("fallback = %q, want first usable url", *got)
	}
}

func TestCombineNilCodecUsesSlotZero(t *testing.T) {
	c := NewCombiner(nil)
	got := c.Combine([]MemberURL{
		{ChannelName: "a", Url: "url-slot0", SlotNumber: 0},
		{ChannelName: "b", Url: "url-slot1", SlotNumber: 1},
	})
	if got == nil {
		t.Fatal("Combine returned nil")
	}
	if *got != "url-slot0" {
		t.Errorf("fallback = %q, want slot-0 url", *got)
	}
}

func TestCombineIdempotent(t *testing.T) {
	codec := NewCodec()
	c := NewCombiner(codec)
	members := []MemberURL{
		{ChannelName: "alpha", Url: mustEncodeURL(t, singleChannelSet("alpha", &LoraConfig{Region: 3})), SlotNumber: 0},
		{ChannelName: "bravo", Url: mustEncodeURL(t, singleChannelSet("bravo", nil)), SlotNumber: 4},
	}
	first := c.Combine(members)
	second := c.Combine(members)
	if first == nil || second == nil {
		t.Fatal("Combine returned nil")
	}
	if *first != *second {
		t.Errorf("combine not idempotent: %q vs %q", *first, *second)
	}
}
