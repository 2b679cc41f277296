package notification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 10, 8, 30, 0, 0, time.UTC)

func rec(id, title, msg string, typ Type, target string, at time.Time) Record {
	return Record{ID: id, Title: title, Message: msg, Type: typ, TargetUser: target, CreatedAt: at}
}

func TestKeyOf_TruncatesToMinute(t *testing.T) {
	a := rec("1", "Sale", "50% off", TypeInfo, "u1", t0.Add(5*time.Second))
	b := rec("2", "Sale", "50% off", TypeInfo, "u2", t0.Add(59*time.Second))
	c := rec("3", "Sale", "50% off", TypeInfo, "u3", t0.Add(61*time.Second))

	assert.Equal(t, KeyOf(a), KeyOf(b))
	assert.NotEqual(t, KeyOf(a), KeyOf(c))
}

func TestKeyOf_NormalizesZone(t *testing.T) {
	hcm := time.FixedZone("ICT", 7*60*60)
	a := rec("1", "Sale", "x", TypeInfo, "u1", t0)
	b := rec("2", "Sale", "x", TypeInfo, "u2", t0.In(hcm))

	assert.Equal(t, KeyOf(a), KeyOf(b))
}

func TestKeyOf_NoTextNormalization(t *testing.T) {
	a := rec("1", "Sale", "x", TypeInfo, "u1", t0)
	b := rec("2", "sale", "x", TypeInfo, "u2", t0)
	c := rec("3", "Sale ", "x", TypeInfo, "u3", t0)
	d := rec("4", "Sale", "x", TypeWarning, "u4", t0)

	assert.NotEqual(t, KeyOf(a), KeyOf(b))
	assert.NotEqual(t, KeyOf(a), KeyOf(c))
	assert.NotEqual(t, KeyOf(a), KeyOf(d))
}

func TestGroupBroadcasts_Empty(t *testing.T) {
	groups := GroupBroadcasts(nil)
	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}

func TestGroupBroadcasts_FoldsBroadcast(t *testing.T) {
	records := []Record{
		rec("a1", "Sale", "50% off", TypeInfo, "u1", t0),
		rec("b1", "Hello", "hi", TypeInfo, "u9", t0.Add(-time.Hour)),
		rec("a2", "Sale", "50% off", TypeInfo, "u2", t0.Add(20*time.Second)),
		rec("a3", "Sale", "50% off", TypeInfo, "u3", t0.Add(40*time.Second)),
	}

	groups := GroupBroadcasts(records)
	require.Len(t, groups, 2)

	sale := groups[0]
	assert.Equal(t, "a1", sale.Representative.ID, "first encountered record represents the group")
	assert.Equal(t, 3, sale.RecipientCount)
	assert.Equal(t, []string{"a1", "a2", "a3"}, sale.MemberIDs)
	assert.Equal(t, []string{"u1", "u2", "u3"}, sale.TargetUsers)

	assert.Equal(t, "b1", groups[1].Representative.ID)
	assert.Equal(t, 1, groups[1].RecipientCount)
}

func TestGroupBroadcasts_ConservesRecords(t *testing.T) {
	var records []Record
	for i := range 37 {
		title := []string{"A", "B", "C"}[i%3]
		records = append(records, rec(
			string(rune('a'+i%26))+string(rune('0'+i/26)),
			title, "m", TypeInfo, "u", t0.Add(time.Duration(i%5)*time.Minute),
		))
	}

	groups := GroupBroadcasts(records)

	total := 0
	seen := map[string]int{}
	for _, g := range groups {
		assert.Equal(t, len(g.MemberIDs), g.RecipientCount)
		total += g.RecipientCount
		for _, id := range g.MemberIDs {
			seen[id]++
		}
	}
	assert.Equal(t, len(records), total)
	for id, n := range seen {
		assert.Equal(t, 1, n, "id %s appears in more than one group", id)
	}
}

func TestGroupBroadcasts_SortedNewestFirstStable(t *testing.T) {
	records := []Record{
		rec("old", "Old", "m", TypeInfo, "u", t0.Add(-2*time.Hour)),
		rec("tie1", "Tie one", "m", TypeInfo, "u", t0),
		rec("new", "New", "m", TypeInfo, "u", t0.Add(time.Hour)),
		rec("tie2", "Tie two", "m", TypeInfo, "u", t0),
	}

	groups := GroupBroadcasts(records)
	ids := make([]string, len(groups))
	for i, g := range groups {
		ids[i] = g.Representative.ID
	}
	assert.Equal(t, []string{"new", "tie1", "tie2", "old"}, ids)
}

func TestGroup_Contains(t *testing.T) {
	g := GroupBroadcasts([]Record{
		rec("a", "T", "m", TypeInfo, "u1", t0),
		rec("b", "T", "m", TypeInfo, "u2", t0),
	})[0]

	assert.True(t, g.Contains("b"))
	assert.False(t, g.Contains("c"))
}

func TestSingles(t *testing.T) {
	records := []Record{
		rec("o1", "New Order", "m", TypeOrder, "admin", t0),
		rec("o2", "New Order", "m", TypeOrder, "admin", t0),
	}

	singles := Singles(records)
	require.Len(t, singles, 2)
	for i, g := range singles {
		assert.Equal(t, records[i].ID, g.Representative.ID)
		assert.Equal(t, 1, g.RecipientCount)
		assert.Equal(t, []string{records[i].ID}, g.MemberIDs)
	}
}

func TestGroupBroadcasts_Idempotent(t *testing.T) {
	records := []Record{
		rec("1", "Sale", "50% off", TypeInfo, "u1", t0),
		rec("2", "Hello", "welcome", TypeSuccess, "u1", t0.Add(time.Hour)),
		rec("3", "Sale", "50% off", TypeInfo, "u2", t0.Add(20*time.Second)),
		rec("4", "Sale", "50% off", TypeInfo, "u3", t0.Add(2*time.Minute)),
		rec("5", "Hello", "welcome", TypeSuccess, "u2", t0.Add(time.Hour)),
	}

	counts := func(groups []Group) map[GroupKey]int {
		out := make(map[GroupKey]int, len(groups))
		for _, g := range groups {
			out[g.Key] = g.RecipientCount
		}
		return out
	}

	first := GroupBroadcasts(records)
	second := GroupBroadcasts(records)

	assert.Equal(t, counts(first), counts(second))
	assert.Equal(t, first, second)
	assert.Len(t, first, 3)
}
