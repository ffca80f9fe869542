package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/go-storybook-kit/pkg/domain"
)

// fakeClock は手動で進められる時刻源です。
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// manualScheduler は予約された退避処理を手動で発火させます。
type manualScheduler struct {
	mu      sync.Mutex
	pending []func()
}

func (s *manualScheduler) schedule(_ time.Duration, evict func()) func() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := len(s.pending)
	s.pending = append(s.pending, evict)
	return func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.pending[idx] == nil {
			return false
		}
		s.pending[idx] = nil
		return true
	}
}

func (s *manualScheduler) fireAll() {
	s.mu.Lock()
	fns := make([]func(), len(s.pending))
	copy(fns, s.pending)
	s.mu.Unlock()

	for _, fn := range fns {
		if fn != nil {
			fn()
		}
	}
}

func testStory(id string) *domain.Story {
	return &domain.Story{StoryID: id, Title: "Mila and the Map"}
}

func TestStoryCache(t *testing.T) {
	newTestCache := func() (*StoryCache, *fakeClock, *manualScheduler) {
		clock := newFakeClock()
		sched := &manualScheduler{}
		c := NewStoryCache(WithClock(clock), WithScheduler(sched.schedule))
		return c, clock, sched
	}

	t.Run("登録直後のGetは同じストーリーを返す", func(t *testing.T) {
		c, _, _ := newTestCache()
		story := testStory("story-1")
		c.Put(story)

		got, ok := c.Get("story-1")
		require.True(t, ok)
		assert.Same(t, story, got)
	})

	t.Run("即時層のヒットは一度の読み取りで消費される", func(t *testing.T) {
		c, _, _ := newTestCache()
		c.Put(testStory("story-1"))

		_, ok := c.Get("story-1")
		require.True(t, ok)

		_, ok = c.Get("story-1")
		assert.False(t, ok, "即時層のみのエントリは2回目の読み取りで不在になる")
	})

	t.Run("TTL満了後のGetは不在になる", func(t *testing.T) {
		c, clock, _ := newTestCache()
		c.Put(testStory("story-1"))

		clock.Advance(DefaultImmediateTTL + time.Second)

		_, ok := c.Get("story-1")
		assert.False(t, ok)
	})

	t.Run("退避タイマーの発火でエントリが消える", func(t *testing.T) {
		c, _, sched := newTestCache()
		c.Put(testStory("story-1"))

		sched.fireAll()

		_, ok := c.Get("story-1")
		assert.False(t, ok)
	})

	t.Run("上書き後に古いタイマーが発火しても新エントリは残る", func(t *testing.T) {
		c, _, sched := newTestCache()
		c.Put(testStory("story-1"))

		replaced := testStory("story-1")
		c.Put(replaced)
		sched.fireAll()

		got, ok := c.Get("story-1")
		require.True(t, ok)
		assert.Same(t, replaced, got)
	})

	t.Run("参照層は消費されず何度でも読める", func(t *testing.T) {
		c, _, _ := newTestCache()
		c.PutLookup(testStory("story-1"))

		for i := 0; i < 3; i++ {
			_, ok := c.Get("story-1")
			require.True(t, ok)
		}
	})

	t.Run("即時層の期限切れ後も参照層が真実の源になる", func(t *testing.T) {
		c, clock, _ := newTestCache()
		story := testStory("story-1")
		c.Put(story)
		c.PutLookup(story)

		clock.Advance(DefaultImmediateTTL + time.Second)

		got, ok := c.Get("story-1")
		require.True(t, ok)
		assert.Same(t, story, got)
	})

	t.Run("Deleteは両層から削除し存在の有無を返す", func(t *testing.T) {
		c, _, _ := newTestCache()
		story := testStory("story-1")
		c.Put(story)
		c.PutLookup(story)

		assert.True(t, c.Delete("story-1"))

		_, ok := c.Get("story-1")
		assert.False(t, ok)
		assert.False(t, c.Delete("story-1"))
	})

	t.Run("未知のIDはエラーではなく不在として扱う", func(t *testing.T) {
		c, _, _ := newTestCache()

		got, ok := c.Get("no-such-story")
		assert.False(t, ok)
		assert.Nil(t, got)
	})
}
