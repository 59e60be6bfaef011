//go:build unit

package catalog_test

import (
	"strings"
	"testing"
	"time"

	"slotbook/internal/domain/catalog"
	"slotbook/internal/pkg/errs"
	"slotbook/internal/testsupport/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type testCase struct {
	name   string
	mutate func(*builder.ServiceBuilder)
	errIs  error
	field  string
}

func TestNewService(t *testing.T) {
	t.Run("basic success", func(t *testing.T) {
		sb := builder.NewServiceBuilder()
		s, err := sb.BuildDomain(now)
		require.NoError(t, err)

		want := catalog.ReconstructService(s.ID(), sb.BusinessID, sb.Fields(), true, now, now)
		if diff := cmp.Diff(want, s, cmp.AllowUnexported(catalog.Service{})); diff != "" {
			t.Errorf("Service mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("trims input and defaults the category", func(t *testing.T) {
		s, err := builder.NewServiceBuilder().With(func(b *builder.ServiceBuilder) {
			b.Name = "  Beard Trim "
			b.Category = "   "
		}).BuildDomain(now)
		require.NoError(t, err)
		assert.Equal(t, "Beard Trim", s.Name())
		assert.Equal(t, catalog.DefaultCategory, s.Category())
	})

	t.Run("field bounds", func(t *testing.T) {
		runCases(t, []testCase{
			{name: "name 2 chars OK", mutate: func(b *builder.ServiceBuilder) { b.Name = "Ab" }},
			{name: "name 1 char NG", mutate: func(b *builder.ServiceBuilder) { b.Name = "A" }, errIs: catalog.ErrInvalidName, field: "name"},
			{name: "name 101 chars NG", mutate: func(b *builder.ServiceBuilder) { b.Name = strings.Repeat("a", 101) }, errIs: catalog.ErrInvalidName, field: "name"},
			{name: "description 501 NG", mutate: func(b *builder.ServiceBuilder) { b.Description = strings.Repeat("d", 501) }, errIs: catalog.ErrDescriptionTooLong, field: "description"},
			{name: "category 1 char NG", mutate: func(b *builder.ServiceBuilder) { b.Category = "X" }, errIs: catalog.ErrInvalidCategory, field: "category"},
			{name: "duration 15 OK", mutate: func(b *builder.ServiceBuilder) { b.Duration = 15 }},
			{name: "duration 14 NG", mutate: func(b *builder.ServiceBuilder) { b.Duration = 14 }, errIs: catalog.ErrInvalidDuration, field: "duration"},
			{name: "duration 480 OK", mutate: func(b *builder.ServiceBuilder) { b.Duration = 480 }},
			{name: "duration 481 NG", mutate: func(b *builder.ServiceBuilder) { b.Duration = 481 }, errIs: catalog.ErrInvalidDuration, field: "duration"},
			{name: "free service OK", mutate: func(b *builder.ServiceBuilder) { b.Price = 0 }},
			{name: "negative price NG", mutate: func(b *builder.ServiceBuilder) { b.Price = -1 }, errIs: catalog.ErrInvalidPrice, field: "price"},
			{name: "price 10000 OK", mutate: func(b *builder.ServiceBuilder) { b.Price = 10000 }},
			{name: "price 10000.01 NG", mutate: func(b *builder.ServiceBuilder) { b.Price = 10000.01 }, errIs: catalog.ErrInvalidPrice, field: "price"},
		})
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewServiceBuilder().With(c.mutate).BuildDomain(now)

			if c.errIs == nil {
				require.NoError(t, err)
				require.NotNil(t, actual)
				return
			}
			require.Nil(t, actual)
			require.ErrorIs(t, err, c.errIs)
			assert.Equal(t, c.field, errs.Fields(err)[0].Field)
		})
	}
}

func TestApplyPatch(t *testing.T) {
	later := now.Add(time.Hour)

	t.Run("only provided fields change", func(t *testing.T) {
		s, err := builder.NewServiceBuilder().BuildDomain(now)
		require.NoError(t, err)

		price := 55.5
		require.NoError(t, s.Apply(catalog.Patch{Price: &price}, later))

		assert.InDelta(t, 55.5, s.Price(), 0.0001)
		assert.Equal(t, "Haircut", s.Name())
		assert.Equal(t, later, s.UpdatedAt())
		assert.Equal(t, now, s.CreatedAt())
	})

	t.Run("invalid patch leaves the service untouched", func(t *testing.T) {
		s, err := builder.NewServiceBuilder().BuildDomain(now)
		require.NoError(t, err)

		name, duration := "Renamed", 5
		err = s.Apply(catalog.Patch{Name: &name, Duration: &duration}, later)
		require.ErrorIs(t, err, catalog.ErrInvalidDuration)
		assert.Equal(t, "Haircut", s.Name())
		assert.Equal(t, now, s.UpdatedAt())
	})

	t.Run("reactivation through is_active", func(t *testing.T) {
		s, err := builder.NewServiceBuilder().BuildDomain(now)
		require.NoError(t, err)
		s.Deactivate(now)
		require.False(t, s.IsActive())

		active := true
		require.NoError(t, s.Apply(catalog.Patch{IsActive: &active}, later))
		assert.True(t, s.IsActive())
	})

	t.Run("empty patch", func(t *testing.T) {
		assert.True(t, catalog.Patch{}.IsEmpty())
		b := false
		assert.False(t, catalog.Patch{IsActive: &b}.IsEmpty())
	})
}

func TestMatches(t *testing.T) {
	s, err := builder.NewServiceBuilder().BuildDomain(now)
	require.NoError(t, err)

	for term, want := range map[string]bool{
		"":        true,
		"HAIR":    true,
		"style":   true,
		"haircut": true,
		"nails":   false,
	} {
		assert.Equal(t, want, s.Matches(term), "term %q", term)
	}
}

func TestAvailability(t *testing.T) {
	cases := []struct {
		duration int
		want     []string
	}{
		{240, []string{"09:00", "13:00"}},
		{180, []string{"09:00", "12:00", "15:00"}},
		{480, []string{"09:00"}},
	}
	for _, tc := range cases {
		s, err := builder.NewServiceBuilder().WithDuration(tc.duration).BuildDomain(now)
		require.NoError(t, err)

		var got []string
		for _, slot := range s.Availability() {
			assert.True(t, slot.Available)
			got = append(got, slot.Time)
		}
		assert.Equal(t, tc.want, got, "duration %d", tc.duration)
	}

	s, err := builder.NewServiceBuilder().WithDuration(60).BuildDomain(now)
	require.NoError(t, err)
	slots := s.Availability()
	require.Len(t, slots, 8)
	assert.Equal(t, "16:00", slots[len(slots)-1].Time)
}

func TestCatalogHelpers(t *testing.T) {
	biz := uuid.New()
	mk := func(name, category string, price float64, duration int, created time.Time) *catalog.Service {
		s, err := builder.NewServiceBuilder().WithBusinessID(biz).WithName(name).WithCategory(category).
			WithPrice(price).WithDuration(duration).BuildDomain(created)
		require.NoError(t, err)
		return s
	}
	cut := mk("cut", "Hair", 30, 30, now)
	color := mk("Color", "Hair", 90, 120, now.Add(time.Hour))
	nails := mk("Nails", "Hands", 30, 30, now.Add(2*time.Hour))
	old := mk("Old", "Legacy", 0, 60, now.Add(3*time.Hour))
	old.Deactivate(now)
	all := []*catalog.Service{cut, color, nails, old}

	t.Run("unique name ignores case and inactive services", func(t *testing.T) {
		require.ErrorIs(t, catalog.EnsureUniqueName(" CUT ", all, uuid.Nil), errs.ErrDuplicateService)
		require.NoError(t, catalog.EnsureUniqueName("cut", all, cut.ID()))
		require.NoError(t, catalog.EnsureUniqueName("old", all, uuid.Nil))
	})

	t.Run("sort by name is case insensitive", func(t *testing.T) {
		sorted := append([]*catalog.Service{}, all...)
		catalog.SortByName(sorted)
		var names []string
		for _, s := range sorted {
			names = append(names, s.Name())
		}
		assert.Equal(t, []string{"Color", "cut", "Nails", "Old"}, names)
	})

	t.Run("categories come from active services only", func(t *testing.T) {
		assert.Equal(t, []string{"Hair", "Hands"}, catalog.Categories(all))
	})

	t.Run("popular is newest active first", func(t *testing.T) {
		popular := catalog.Popular(all, 2)
		require.Len(t, popular, 2)
		assert.Equal(t, nails.ID(), popular[0].ID())
		assert.Equal(t, color.ID(), popular[1].ID())
	})

	t.Run("stats cover inactive services too", func(t *testing.T) {
		st := catalog.Summarize(all)
		assert.Equal(t, 4, st.Total)
		assert.Equal(t, 3, st.Active)
		assert.Equal(t, 1, st.Inactive)
		assert.Equal(t, 2, st.Categories, "the inactive service's category is not counted")
		assert.InDelta(t, 37.5, st.AveragePrice, 0.0001)
		assert.InDelta(t, 60, st.AverageDuration, 0.0001)
		assert.Equal(t, catalog.Stats{}, catalog.Summarize(nil))
	})
}
