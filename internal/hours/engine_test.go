package hours

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2025-10-13 is a Monday
func at(day int, clock string) time.Time {
	c := MustParseClock(clock)
	return time.Date(2025, time.October, day, c.Hour(), c.Minute(), 0, 0, time.UTC)
}

func newTestEngine(t *testing.T, doc Document, opts ...Option) *Engine {
	t.Helper()
	table, err := NewTable(doc, "test")
	require.NoError(t, err)
	return NewEngine(table, append([]Option{WithLocation(time.UTC)}, opts...)...)
}

func TestEngineStatus(t *testing.T) {
	lunch := meal("Lunch", "11:00", "14:00", Tuesday)
	engine := newTestEngine(t, Document{DiningHalls: []HallSchedule{
		{ID: Lakeside, Name: "Lakeside Dining Center", Meals: []MealPeriod{lunch}},
	}})

	t.Run("Open During Lunch", func(t *testing.T) {
		st := engine.Status(Lakeside, at(14, "12:00"))
		open, ok := st.(Open)
		require.True(t, ok, "got %#v", st)
		assert.Equal(t, KindOpen, st.Kind())
		assert.Equal(t, "Lunch", open.Meal.Name)
		assert.Equal(t, "14:00", open.ClosingTime.String())
	})

	t.Run("Closed With Nothing Ahead", func(t *testing.T) {
		st := engine.Status(Lakeside, at(14, "15:00"))
		closed, ok := st.(Closed)
		require.True(t, ok, "got %#v", st)
		assert.Nil(t, closed.Next)
	})

	t.Run("Closed Before Lunch", func(t *testing.T) {
		st := engine.Status(Lakeside, at(14, "09:00"))
		closed, ok := st.(Closed)
		require.True(t, ok)
		require.NotNil(t, closed.Next)
		assert.Equal(t, "Lunch", closed.Next.Meal.Name)
		assert.Equal(t, "11:00", closed.Next.Time.String())
	})

	t.Run("Hall Missing From Schedule", func(t *testing.T) {
		assert.Equal(t, Closed{}, engine.Status(Cooper, at(14, "12:00")))
	})

	t.Run("Unknown Hall", func(t *testing.T) {
		assert.Equal(t, Closed{}, engine.Status(HallID("nowhere"), at(14, "12:00")))
	})

	t.Run("Idempotent", func(t *testing.T) {
		assert.Equal(t, engine.Status(Lakeside, at(14, "12:30")), engine.Status(Lakeside, at(14, "12:30")))
	})

	t.Run("Returned Meal Does Not Alias The Table", func(t *testing.T) {
		open, ok := engine.Status(Lakeside, at(14, "12:00")).(Open)
		require.True(t, ok)
		open.Meal.Days[0] = Sunday

		closed, ok := engine.Status(Lakeside, at(14, "09:00")).(Closed)
		require.True(t, ok)
		require.NotNil(t, closed.Next)
		closed.Next.Meal.Days[0] = Sunday

		assert.Equal(t, Days{Tuesday}, engine.tables.Table().Meals(Lakeside)[0].Days)
		assert.Equal(t, KindOpen, engine.Status(Lakeside, at(14, "12:00")).Kind())
	})
}

func TestEngineLimitedStatus(t *testing.T) {
	lunch := meal("Lunch", "11:00", "14:00", Monday)
	lunch.AdditionalServices = []AdditionalService{
		service("Grab & Go", "14:00", "16:00", Monday),
		service("Friday Market", "14:00", "18:00", Friday),
	}
	dinner := meal("Dinner", "15:00", "19:00", Monday)
	engine := newTestEngine(t, Document{DiningHalls: []HallSchedule{
		{ID: Cooper, Name: "Cooper Dining Center", Meals: []MealPeriod{lunch}},
		{ID: Pathfinder, Name: "Pathfinder Dining Center", Meals: []MealPeriod{lunch, dinner}},
	}})

	t.Run("Additional Service Only", func(t *testing.T) {
		st := engine.Status(Cooper, at(13, "15:00"))
		limited, ok := st.(OpenLimited)
		require.True(t, ok, "got %#v", st)
		assert.Equal(t, "Lunch", limited.Meal.Name)
		assert.Equal(t, "16:00", limited.ClosingTime.String())
		assert.Nil(t, limited.Meal.AdditionalServices, "additional services are not exposed")
	})

	t.Run("Open Primary Window Extended By Service", func(t *testing.T) {
		st := engine.Status(Cooper, at(13, "12:00"))
		open, ok := st.(Open)
		require.True(t, ok, "got %#v", st)
		assert.Equal(t, "16:00", open.ClosingTime.String())
	})

	t.Run("Primary Window Elsewhere Is Never Limited", func(t *testing.T) {
		st := engine.Status(Pathfinder, at(13, "15:30"))
		open, ok := st.(Open)
		require.True(t, ok, "got %#v", st)
		// the first declared period owns the instant through its service
		assert.Equal(t, "Lunch", open.Meal.Name)
	})

	t.Run("Boundary Minute Still Open", func(t *testing.T) {
		assert.Equal(t, KindOpenLimited, engine.Status(Cooper, at(13, "16:00")).Kind())
		assert.Equal(t, KindClosed, engine.Status(Cooper, at(13, "16:01")).Kind())
	})
}

func TestEngineLocation(t *testing.T) {
	loc := time.FixedZone("EST", -5*60*60)
	lunch := meal("Lunch", "11:00", "14:00", Monday)
	table, err := NewTable(Document{DiningHalls: []HallSchedule{
		{ID: Cooper, Name: "Cooper Dining Center", Meals: []MealPeriod{lunch}},
	}}, "test")
	require.NoError(t, err)
	engine := NewEngine(table, WithLocation(loc))

	// 17:00 UTC is noon in the hall's zone
	assert.Equal(t, KindOpen, engine.Status(Cooper, at(13, "17:00")).Kind())
	assert.Equal(t, KindClosed, engine.Status(Cooper, at(13, "12:00")).Kind())
	assert.Equal(t, loc, engine.Location())
}

func TestEngineDefaultsToNow(t *testing.T) {
	lunch := meal("Lunch", "11:00", "14:00", Monday)
	engine := newTestEngine(t, Document{DiningHalls: []HallSchedule{
		{ID: Cooper, Name: "Cooper Dining Center", Meals: []MealPeriod{lunch}},
	}}, WithNow(func() time.Time { return at(13, "12:00") }))

	assert.Equal(t, KindOpen, engine.Status(Cooper, time.Time{}).Kind())
}

func TestEngineStartDate(t *testing.T) {
	lateNight := meal("Late Night", "20:30", "23:00", Monday, Tuesday)
	start, err := ParseDate("2025-10-14")
	require.NoError(t, err)
	lateNight.StartDate = &start
	doc := Document{DiningHalls: []HallSchedule{
		{ID: Lakeside, Name: "Lakeside Dining Center", Meals: []MealPeriod{lateNight}},
	}}

	t.Run("Ignored By Default", func(t *testing.T) {
		engine := newTestEngine(t, doc)
		assert.Equal(t, KindOpen, engine.Status(Lakeside, at(13, "21:00")).Kind())
	})

	t.Run("Enforced", func(t *testing.T) {
		engine := newTestEngine(t, doc, WithStartDateEnforcement())
		assert.Equal(t, KindClosed, engine.Status(Lakeside, at(13, "21:00")).Kind())
		assert.Equal(t, KindOpen, engine.Status(Lakeside, at(14, "21:00")).Kind())
	})

	t.Run("Enforced Next Opening Uses Tomorrow's Date", func(t *testing.T) {
		engine := newTestEngine(t, doc, WithStartDateEnforcement())
		closed, ok := engine.Status(Lakeside, at(13, "23:30")).(Closed)
		require.True(t, ok)
		require.NotNil(t, closed.Next)
		assert.True(t, closed.Next.Tomorrow)
		assert.Equal(t, time.Tuesday, closed.Next.Day)

		// not in effect on Monday, so the search falls through to Tuesday
		closed, ok = engine.Status(Lakeside, at(13, "08:00")).(Closed)
		require.True(t, ok)
		require.NotNil(t, closed.Next)
		assert.True(t, closed.Next.Tomorrow)
	})
}

func TestAllStatuses(t *testing.T) {
	store, err := NewStore(context.Background(), EmbeddedSource{})
	require.NoError(t, err)
	engine := NewEngine(store, WithLocation(time.UTC))

	for _, instant := range []time.Time{at(13, "03:00"), at(13, "12:00"), at(13, "15:00"), at(18, "11:00")} {
		all := engine.AllStatuses(instant)
		require.Len(t, all, 3)
		assert.Equal(t, Cooper, all[0].ID)
		assert.Equal(t, Lakeside, all[1].ID)
		assert.Equal(t, Pathfinder, all[2].ID)
		assert.Equal(t, "Cooper Dining Center", all[0].DisplayName)
		for _, hs := range all {
			assert.Equal(t, engine.Status(hs.ID, instant), hs.Status)
		}
	}
}

func TestBundledSchedule(t *testing.T) {
	store, err := NewStore(context.Background(), EmbeddedSource{})
	require.NoError(t, err)
	engine := NewEngine(store, WithLocation(time.UTC))

	t.Run("Cooper Grab And Go", func(t *testing.T) {
		st := engine.Status(Cooper, at(13, "15:00"))
		require.Equal(t, KindOpenLimited, st.Kind())
		assert.Equal(t, "Lunch until 4 PM", Summary(st))
	})

	t.Run("Pathfinder Coffee Bar Before Breakfast", func(t *testing.T) {
		st := engine.Status(Pathfinder, at(13, "06:45"))
		require.Equal(t, KindOpenLimited, st.Kind())
		assert.Equal(t, "Breakfast until 11 AM", Summary(st))
	})

	t.Run("Weekend Brunch", func(t *testing.T) {
		st := engine.Status(Cooper, at(18, "11:00"))
		require.Equal(t, KindOpen, st.Kind())
		assert.Equal(t, "Brunch until 1:30 PM", Summary(st))
	})

	t.Run("Lakeside Has Nothing On Saturday", func(t *testing.T) {
		st := engine.Status(Lakeside, at(17, "21:00"))
		assert.Equal(t, Closed{}, st)
	})
}
