package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefault(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	require.Len(t, c.Bonuses, 6)
	require.Len(t, c.Socials, 5)
	require.Len(t, c.Donations, 2)
	require.Len(t, c.Gifts, 1)

	require.Equal(t, "Rain.GG", c.Bonuses[1].Title)
	require.Equal(t, "https://www.youtube.com/@tynite", c.Socials[2].Link)
	g := c.Gifts[0]
	require.Equal(t, RarityEpic, g.Rarity)
	require.True(t, g.Available)
	require.True(t, g.ExpiresAt.Equal(time.Date(2025, 8, 27, 9, 0, 0, 0, time.UTC)))
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	body := `
socials:
  - id: "1"
    title: Twitch
    link: https://www.twitch.tv/someone
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	require.Len(t, c.Socials, 1)
	require.NotNil(t, c.Bonuses)
	require.Empty(t, c.Bonuses)
	require.NotNil(t, c.Gifts)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = Parse([]byte("gifts: [ {id: x, rarity: Mythic} ]"))
	require.ErrorContains(t, err, "unknown rarity")

	_, err = Parse([]byte("bonuses: {"))
	require.Error(t, err)
}

func TestGiftStatus(t *testing.T) {
	expires := time.Date(2025, 8, 27, 9, 0, 0, 0, time.UTC)
	gift := Gift{ID: "banner", Available: true, ExpiresAt: expires}

	cases := []struct {
		name string
		now  time.Time
		want Status
	}{
		{
			name: "days left",
			now:  expires.Add(-(2*24*time.Hour + 5*time.Hour + 30*time.Minute)),
			want: Status{Claimable: true, Days: 2, Hours: 5, Minutes: 30, Remaining: "2d 5h"},
		},
		{
			name: "hours left",
			now:  expires.Add(-(3*time.Hour + 12*time.Minute)),
			want: Status{Claimable: true, Hours: 3, Minutes: 12, Remaining: "3h 12m"},
		},
		{
			name: "minutes left",
			now:  expires.Add(-45 * time.Minute),
			want: Status{Claimable: true, Minutes: 45, Remaining: "45m"},
		},
		{
			name: "exactly at expiry",
			now:  expires,
			want: Status{Claimable: true},
		},
		{
			name: "expired",
			now:  expires.Add(time.Second),
			want: Status{Expired: true},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, GiftStatus(gift, c.now))
		})
	}
}

func TestUnavailableGiftNotClaimable(t *testing.T) {
	g := Gift{Available: false, ExpiresAt: time.Now().Add(time.Hour)}
	st := GiftStatus(g, time.Now())
	require.False(t, st.Expired)
	require.False(t, st.Claimable)
}

func TestGiftViews(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	views := c.GiftViews(time.Date(2025, 8, 26, 9, 0, 0, 0, time.UTC))
	require.Len(t, views, 1)
	require.Equal(t, "banner", views[0].ID)
	require.Equal(t, "1d 0h", views[0].Status.Remaining)
	require.True(t, views[0].Status.Claimable)
}
