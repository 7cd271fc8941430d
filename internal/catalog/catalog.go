package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Link 推广码与社交账号共用同一结构
type Link struct {
	ID          string `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	ImageURL    string `yaml:"imageUrl" json:"imageUrl"`
	Link        string `yaml:"link" json:"link"`
	Code        string `yaml:"code" json:"code"`
}

type Donation struct {
	ID          string `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Icon        string `yaml:"icon" json:"icon"`
	Link        string `yaml:"link" json:"link"`
}

type Rarity string

const (
	RarityCommon    Rarity = "Common"
	RarityRare      Rarity = "Rare"
	RarityEpic      Rarity = "Epic"
	RarityLegendary Rarity = "Legendary"
	RarityChampion  Rarity = "Champion"
)

func (r Rarity) Valid() bool {
	switch r {
	case RarityCommon, RarityRare, RarityEpic, RarityLegendary, RarityChampion:
		return true
	}
	return false
}

// Gift 游戏内礼包兑换码
type Gift struct {
	ID          string    `yaml:"id" json:"id"`
	Title       string    `yaml:"title" json:"title"`
	Description string    `yaml:"description" json:"description"`
	Type        string    `yaml:"type" json:"type"`
	Rarity      Rarity    `yaml:"rarity" json:"rarity"`
	ImageURL    string    `yaml:"imageUrl" json:"imageUrl"`
	ClaimURL    string    `yaml:"claimUrl" json:"claimUrl"`
	Available   bool      `yaml:"available" json:"available"`
	ExpiresAt   time.Time `yaml:"expiresAt" json:"expiresAt"`
}

// Status 礼包在某一时刻的状态
type Status struct {
	Expired   bool `json:"expired"`
	Claimable bool `json:"claimable"`
	Days      int  `json:"days"`
	Hours     int  `json:"hours"`
	Minutes   int  `json:"minutes"`
	// Remaining 形如 "2d 5h" / "3h 12m" / "45m"，过期为空
	Remaining string `json:"remaining,omitempty"`
}

type GiftView struct {
	Gift
	Status Status `json:"status"`
}

type Catalog struct {
	Bonuses   []Link     `yaml:"bonuses" json:"bonuses"`
	Socials   []Link     `yaml:"socials" json:"socials"`
	Donations []Donation `yaml:"donations" json:"donations"`
	Gifts     []Gift     `yaml:"gifts" json:"gifts"`
}

// Load path 为空时使用内置数据
func Load(path string) (*Catalog, error) {
	data := defaultCatalog
	if path != "" {
		bs, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
		data = bs
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	for _, g := range c.Gifts {
		if !g.Rarity.Valid() {
			return nil, fmt.Errorf("gift %q: unknown rarity %q", g.ID, g.Rarity)
		}
	}
	// 保证 JSON 输出为 [] 而不是 null
	if c.Bonuses == nil {
		c.Bonuses = []Link{}
	}
	if c.Socials == nil {
		c.Socials = []Link{}
	}
	if c.Donations == nil {
		c.Donations = []Donation{}
	}
	if c.Gifts == nil {
		c.Gifts = []Gift{}
	}
	return &c, nil
}

// GiftStatus 过期判断为 now 严格晚于 expiresAt
func GiftStatus(g Gift, now time.Time) Status {
	if now.After(g.ExpiresAt) {
		return Status{Expired: true}
	}
	diff := g.ExpiresAt.Sub(now)
	days := int(diff / (24 * time.Hour))
	hours := int(diff % (24 * time.Hour) / time.Hour)
	minutes := int(diff % time.Hour / time.Minute)

	st := Status{
		Claimable: g.Available,
		Days:      days,
		Hours:     hours,
		Minutes:   minutes,
	}
	switch {
	case diff <= 0:
	case days > 0:
		st.Remaining = fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		st.Remaining = fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		st.Remaining = fmt.Sprintf("%dm", minutes)
	}
	return st
}

func (c *Catalog) GiftViews(now time.Time) []GiftView {
	out := make([]GiftView, 0, len(c.Gifts))
	for _, g := range c.Gifts {
		out = append(out, GiftView{Gift: g, Status: GiftStatus(g, now)})
	}
	return out
}
