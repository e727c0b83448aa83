package api

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDefaults(t *testing.T) {
	t.Parallel()

	v, err := url.ParseQuery(ListQuery{}.Encode())
	require.NoError(t, err)
	require.Equal(t, "20", v.Get("limit"))
	require.Equal(t, "0", v.Get("offset"))
	require.Equal(t, "created_at_desc", v.Get("sort"))
	_, hasQ := v["q"]
	require.False(t, hasQ, "empty q must be omitted entirely")
}

func TestEncodeNormalizesOutOfRange(t *testing.T) {
	t.Parallel()

	v, err := url.ParseQuery(ListQuery{Limit: -5, Offset: -3}.Encode())
	require.NoError(t, err)
	require.Equal(t, "20", v.Get("limit"))
	require.Equal(t, "0", v.Get("offset"))
}

func TestEncodeRoundTripsSearch(t *testing.T) {
	t.Parallel()

	for _, q := range []string{"hello", "a b&c=d", "ünïcode", "100%"} {
		v, err := url.ParseQuery(ListQuery{Q: q}.Encode())
		require.NoError(t, err)
		require.Equal(t, q, v.Get("q"))
	}
}

func TestEncodeExplicitValues(t *testing.T) {
	t.Parallel()

	v, err := url.ParseQuery(ListQuery{Limit: 50, Offset: 100, Sort: "created_at_asc", Q: "draft"}.Encode())
	require.NoError(t, err)
	require.Equal(t, "50", v.Get("limit"))
	require.Equal(t, "100", v.Get("offset"))
	require.Equal(t, "created_at_asc", v.Get("sort"))
	require.Equal(t, "draft", v.Get("q"))
}

func TestClampOffsetBounds(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0, ClampOffset(-10, 45))
	require.Equal(t, 0, ClampOffset(0, 45))
	require.Equal(t, 20, ClampOffset(20, 45))
	require.Equal(t, 44, ClampOffset(45, 45))
	require.Equal(t, 44, ClampOffset(1000, 45))
	require.Equal(t, 0, ClampOffset(5, 0))
}

func TestClampOffsetIdempotent(t *testing.T) {
	t.Parallel()

	for _, total := range []int{0, 1, 20, 45} {
		for _, x := range []int{-100, -1, 0, 1, 19, 20, 44, 45, 46, 1 << 20} {
			once := ClampOffset(x, total)
			require.Equal(t, once, ClampOffset(once, total), "total=%d x=%d", total, x)
		}
	}
}

func TestPagerEnablement(t *testing.T) {
	t.Parallel()

	cases := []struct {
		limit, offset, total int
		wantPrev, wantNext   bool
	}{
		{20, 0, 45, false, true},
		{20, 20, 45, true, true},
		{20, 40, 45, true, false},
		{20, 0, 0, false, false},
		{20, 0, 20, false, false},
		{20, 0, 21, false, true},
		{10, 5, 15, true, false},
	}
	for _, c := range cases {
		p := ContentListPage{Limit: c.limit, Offset: c.offset, Total: c.total}
		require.Equal(t, c.wantPrev, p.CanPrev(), "prev limit=%d offset=%d total=%d", c.limit, c.offset, c.total)
		require.Equal(t, c.wantNext, p.CanNext(), "next limit=%d offset=%d total=%d", c.limit, c.offset, c.total)
	}
}

func TestNextOffsetScenario(t *testing.T) {
	t.Parallel()

	// 45 items, first page of 20: the next navigation target is offset 20
	p := ContentListPage{Limit: 20, Offset: 0, Total: 45}
	require.Equal(t, 20, p.NextOffset())
	require.Equal(t, 0, p.PrevOffset())

	p.Offset = 20
	require.Equal(t, 40, p.NextOffset())
	require.Equal(t, 0, p.PrevOffset())

	p.Offset = 40
	require.Equal(t, 20, p.PrevOffset())
}

func TestShowingRange(t *testing.T) {
	t.Parallel()

	first, last := ContentListPage{Limit: 20, Offset: 0, Total: 45}.ShowingRange()
	require.Equal(t, 1, first)
	require.Equal(t, 20, last)

	first, last = ContentListPage{Limit: 20, Offset: 40, Total: 45}.ShowingRange()
	require.Equal(t, 41, first)
	require.Equal(t, 45, last)

	first, last = ContentListPage{Limit: 20, Offset: 0, Total: 0}.ShowingRange()
	require.Equal(t, 0, first)
	require.Equal(t, 0, last)
}
