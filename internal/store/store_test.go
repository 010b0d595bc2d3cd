package store

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petsim/internal/activity"
	"petsim/internal/battle"
	"petsim/internal/content"
	"petsim/internal/engine"
	"petsim/internal/pet"
	"petsim/internal/rng"
)

var testTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func fixedClock(t *testing.T) {
	t.Helper()
	orig := pet.TimeNow
	pet.TimeNow = func() time.Time { return testTime }
	t.Cleanup(func() { pet.TimeNow = orig })
}

func testEngine(t *testing.T) *engine.Engine {
	t.Helper()
	c, err := content.Default()
	require.NoError(t, err)
	return engine.New(c, rng.New(5), testLogger())
}

func testSave(t *testing.T, e *engine.Engine) *Save {
	t.Helper()
	p, err := e.NewPet("Ash", "emberkit")
	require.NoError(t, err)
	return &Save{
		Pet:        p,
		Inventory:  activity.Inventory{"berry": 2},
		LastSaved:  testTime,
		LastStatus: pet.GetStatus(p),
		Logs:       []LogEntry{{Time: testTime, NewStatus: pet.GetStatus(p)}},
	}
}

func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	st := NewRedisStore(mr.Addr(), "test", testLogger())
	return st, mr
}

func TestFileStoreRoundTrip(t *testing.T) {
	fixedClock(t)
	e := testEngine(t)
	ctx := context.Background()

	st := NewFileStore(filepath.Join(t.TempDir(), "nested", "pet.json"), testLogger())
	_, err := st.Load(ctx)
	assert.True(t, errors.Is(err, ErrNoSave))

	want := testSave(t, e)
	require.NoError(t, st.Save(ctx, want))

	got, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.NoError(t, st.Close())

	_, err = os.Stat(st.Path() + ".tmp")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestFileStoreCorruptSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pet.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"pet": {"activity": {"state": "dancing"}}}`), 0644))

	_, err := NewFileStore(path, testLogger()).Load(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoSave))
}

func TestRedisStoreRoundTrip(t *testing.T) {
	fixedClock(t)
	st, mr := setupTestRedis(t)
	defer mr.Close()
	defer st.Close()
	ctx := context.Background()

	require.NoError(t, st.Ping(ctx))

	_, err := st.Load(ctx)
	assert.True(t, errors.Is(err, ErrNoSave))

	want := testSave(t, testEngine(t))
	require.NoError(t, st.Save(ctx, want))
	assert.True(t, mr.Exists("petsim:save:test"))

	got, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRedisStoreUnavailable(t *testing.T) {
	st, mr := setupTestRedis(t)
	defer st.Close()
	mr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.Error(t, st.Ping(ctx))
	_, err := st.Load(ctx)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoSave))
}

func TestLoadDropsOrphanedBattle(t *testing.T) {
	fixedClock(t)
	e := testEngine(t)
	ctx := context.Background()
	sv := testSave(t, e)

	inBattle, b, err := e.WildBattle(sv.Pet, "meadow")
	require.NoError(t, err)

	st := NewFileStore(filepath.Join(t.TempDir(), "pet.json"), testLogger())

	// With its battle the pet stays in the fight.
	sv.Pet = inBattle
	sv.Battle = &b
	require.NoError(t, st.Save(ctx, sv))
	got, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, pet.StateBattling, got.Pet.Activity.State())
	require.NotNil(t, got.Battle)
	assert.Equal(t, b.ID, got.Battle.ID)

	// Without it the pet comes home.
	sv.Battle = nil
	require.NoError(t, st.Save(ctx, sv))
	got, err = st.Load(ctx)
	require.NoError(t, err)
	assert.True(t, got.Pet.Activity.IsIdle())
	assert.Nil(t, got.Battle)

	// A stale battle is dropped when the pet is idle.
	sv.Pet = pet.Leave(inBattle)
	sv.Battle = &battle.Battle{ID: "old"}
	require.NoError(t, st.Save(ctx, sv))
	got, err = st.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got.Battle)
}

func TestRecordStatus(t *testing.T) {
	e := testEngine(t)
	p, err := e.NewPet("Ash", "emberkit")
	require.NoError(t, err)

	sv := &Save{Pet: p}
	sv.RecordStatus(testTime)
	assert.Equal(t, pet.GetStatus(p), sv.LastStatus)
	assert.Empty(t, sv.Logs)

	sv.RecordStatus(testTime)
	assert.Empty(t, sv.Logs)

	sv.Pet, err = pet.Sleep(p)
	require.NoError(t, err)
	later := testTime.Add(time.Hour)
	sv.RecordStatus(later)
	require.Len(t, sv.Logs, 1)
	assert.Equal(t, later, sv.Logs[0].Time)
	assert.Equal(t, pet.GetStatus(p), sv.Logs[0].OldStatus)
	assert.Equal(t, pet.GetStatus(sv.Pet), sv.Logs[0].NewStatus)
}

func TestSessionHatchesWhenNothingSaved(t *testing.T) {
	fixedClock(t)
	st := NewFileStore(filepath.Join(t.TempDir(), "pet.json"), testLogger())
	s := NewSession(st, testEngine(t), time.Minute, 100, testLogger())

	r, err := s.Load(context.Background(), "Ash", "emberkit")
	require.NoError(t, err)
	assert.True(t, r.Created)
	assert.Equal(t, "Ash", r.Save.Pet.Identity.Name)
	assert.Equal(t, testTime, r.Save.LastSaved)
	require.Len(t, r.Save.Logs, 1)
	assert.NotNil(t, r.Save.Inventory)

	_, err = s.Load(context.Background(), "Ash", "dragon")
	assert.True(t, errors.Is(err, content.ErrNotFound))
}

func TestSessionCatchesUp(t *testing.T) {
	fixedClock(t)
	e := testEngine(t)
	ctx := context.Background()
	st := NewFileStore(filepath.Join(t.TempDir(), "pet.json"), testLogger())
	s := NewSession(st, e, time.Minute, 100, testLogger())

	sv := testSave(t, e)
	require.NoError(t, st.Save(ctx, sv))

	s.now = func() time.Time { return testTime.Add(10*time.Minute + 30*time.Second) }
	r, err := s.Load(ctx, "", "emberkit")
	require.NoError(t, err)
	assert.False(t, r.Created)
	assert.Equal(t, int64(10), r.Ticks)
	assert.Equal(t, int64(10), r.Save.Pet.Growth.AgeTicks)
	assert.Equal(t, 2, r.Save.Inventory["berry"])
	assert.Equal(t, testTime.Add(10*time.Minute), r.Save.Clock, "the partial tick is kept")

	// Save then reload with the clock far ahead: catch-up is capped.
	require.NoError(t, s.Save(ctx, r.Save))
	s.now = func() time.Time { return testTime.Add(48 * time.Hour) }
	r, err = s.Load(ctx, "", "emberkit")
	require.NoError(t, err)
	assert.Equal(t, int64(100), r.Ticks)
	assert.Equal(t, int64(110), r.Save.Pet.Growth.AgeTicks)
}

func TestSessionCarriesPartialTicks(t *testing.T) {
	fixedClock(t)
	e := testEngine(t)
	ctx := context.Background()
	st := NewFileStore(filepath.Join(t.TempDir(), "pet.json"), testLogger())
	s := NewSession(st, e, time.Minute, 0, testLogger())
	require.NoError(t, st.Save(ctx, testSave(t, e)))

	// Three loads 40s apart add up to two ticks, as running live would.
	var total int64
	for i := 1; i <= 3; i++ {
		s.now = func() time.Time { return testTime.Add(time.Duration(i) * 40 * time.Second) }
		r, err := s.Load(ctx, "", "emberkit")
		require.NoError(t, err)
		total += r.Ticks
		require.NoError(t, s.Save(ctx, r.Save))
	}
	assert.Equal(t, int64(2), total)

	sv, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, testTime.Add(2*time.Minute), sv.Clock)
	assert.Equal(t, int64(2), sv.Pet.Growth.AgeTicks)
}

func TestClockAfter(t *testing.T) {
	s := NewSession(nil, nil, time.Minute, 60, testLogger())
	tests := []struct {
		name  string
		last  time.Time
		now   time.Time
		ticks int64
		want  time.Time
	}{
		{"keeps partial tick", testTime, testTime.Add(5*time.Minute + 20*time.Second), 5, testTime.Add(5 * time.Minute)},
		{"capped drops the rest", testTime, testTime.Add(5 * time.Hour), 60, testTime.Add(5 * time.Hour)},
		{"clock went backwards", testTime, testTime.Add(-time.Hour), 0, testTime.Add(-time.Hour)},
		{"never saved", time.Time{}, testTime, 0, testTime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.clockAfter(tt.last, tt.now, tt.ticks))
		})
	}
}

func TestSaveTicked(t *testing.T) {
	fixedClock(t)
	sv := &Save{}
	sv.Ticked(time.Minute)
	assert.Equal(t, testTime, sv.Clock)
	sv.Ticked(time.Minute)
	assert.Equal(t, testTime.Add(time.Minute), sv.Clock)
}

func TestSessionCollectsForageDrops(t *testing.T) {
	fixedClock(t)
	e := testEngine(t)
	ctx := context.Background()
	st := NewFileStore(filepath.Join(t.TempDir(), "pet.json"), testLogger())
	s := NewSession(st, e, time.Minute, 0, testLogger())

	sv := testSave(t, e)
	sv.Inventory = activity.Inventory{}
	started, err := e.StartForaging(sv.Pet, activity.ForageContext{LocationID: "meadow", SkillLevel: 10})
	require.NoError(t, err)
	sv.Pet = started.Pet
	require.NoError(t, st.Save(ctx, sv))

	s.now = func() time.Time { return testTime.Add(2 * time.Hour) }
	r, err := s.Load(ctx, "", "emberkit")
	require.NoError(t, err)
	assert.Equal(t, int64(120), r.Ticks)
	assert.True(t, r.Save.Pet.Activity.IsIdle())

	want := activity.Inventory{}
	want.Collect(r.Events)
	assert.Equal(t, want, r.Save.Inventory)
}

func TestElapsedTicks(t *testing.T) {
	s := NewSession(nil, nil, time.Minute, 60, testLogger())
	tests := []struct {
		name string
		last time.Time
		now  time.Time
		want int64
	}{
		{"never saved", time.Time{}, testTime, 0},
		{"clock went backwards", testTime, testTime.Add(-time.Hour), 0},
		{"partial tick", testTime, testTime.Add(59 * time.Second), 0},
		{"whole ticks", testTime, testTime.Add(5 * time.Minute), 5},
		{"capped", testTime, testTime.Add(5 * time.Hour), 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.elapsedTicks(tt.last, tt.now))
		})
	}
}
