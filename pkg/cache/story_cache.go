// Package cache は組み立て済みストーリーの二層キャッシュを提供します。
package cache

import (
	"log/slog"
	"sync"
	"time"

	"github.com/shouni/go-storybook-kit/pkg/domain"
)

// DefaultImmediateTTL は即時層エントリの既定の生存時間です。
// 作成直後から最初の閲覧までの短い窓を橋渡しする用途です。
const DefaultImmediateTTL = 10 * time.Minute

// immediateEntry は即時層の1エントリです。退避タイマーはエントリ単位で持ちます。
type immediateEntry struct {
	story     *domain.Story
	expiresAt time.Time
	stop      func() bool
}

// StoryCache はストーリーIDをキーとするプロセス内二層キャッシュです。
// 即時層はTTL付きで読み取り時に消費され、参照層は明示的に登録した
// エントリをプロセス終了まで保持します。
type StoryCache struct {
	mu        sync.Mutex
	ttl       time.Duration
	clock     Clock
	scheduler EvictionScheduler
	immediate map[string]*immediateEntry
	lookup    map[string]*domain.Story
}

// Option は StoryCache の挙動を調整します。
type Option func(*StoryCache)

// WithTTL は即時層の生存時間を設定します。
func WithTTL(ttl time.Duration) Option {
	return func(c *StoryCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock は時刻源を差し替えます。
func WithClock(clock Clock) Option {
	return func(c *StoryCache) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithScheduler は退避タイマーの実装を差し替えます。
func WithScheduler(scheduler EvictionScheduler) Option {
	return func(c *StoryCache) {
		if scheduler != nil {
			c.scheduler = scheduler
		}
	}
}

// NewStoryCache は StoryCache を初期化します。
func NewStoryCache(opts ...Option) *StoryCache {
	c := &StoryCache{
		ttl:       DefaultImmediateTTL,
		clock:     realClock{},
		scheduler: defaultScheduler,
		immediate: make(map[string]*immediateEntry),
		lookup:    make(map[string]*domain.Story),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Put はストーリーを即時層へ upsert し、エントリ単位の退避タイマーを張り直します。
func (c *StoryCache) Put(story *domain.Story) {
	if story == nil || story.StoryID == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.immediate[story.StoryID]; ok && old.stop != nil {
		old.stop()
	}

	entry := &immediateEntry{
		story:     story,
		expiresAt: c.clock.Now().Add(c.ttl),
	}
	entry.stop = c.scheduler(c.ttl, func() {
		c.evictImmediate(story.StoryID, entry)
	})
	c.immediate[story.StoryID] = entry
}

// PutLookup はストーリーを参照層へ登録します。参照層に自動退避はありません。
func (c *StoryCache) PutLookup(story *domain.Story) {
	if story == nil || story.StoryID == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.lookup[story.StoryID] = story
}

// Get はストーリーIDでキャッシュを引きます。即時層のヒットはその読み取りで
// 消費され、以後は参照層だけが応答します。両層とも不在なら ok=false です。
func (c *StoryCache) Get(storyID string) (*domain.Story, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.immediate[storyID]; ok {
		expired := !c.clock.Now().Before(entry.expiresAt)
		if entry.stop != nil {
			entry.stop()
		}
		delete(c.immediate, storyID)

		if !expired {
			return entry.story, true
		}
		slog.Debug("即時層のエントリが期限切れのため破棄しました", "story_id", storyID)
	}

	if story, ok := c.lookup[storyID]; ok {
		return story, true
	}
	return nil, false
}

// Delete は両層からストーリーを削除し、どちらかに存在したかを返します。
func (c *StoryCache) Delete(storyID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	var found bool
	if entry, ok := c.immediate[storyID]; ok {
		if entry.stop != nil {
			entry.stop()
		}
		delete(c.immediate, storyID)
		found = true
	}
	if _, ok := c.lookup[storyID]; ok {
		delete(c.lookup, storyID)
		found = true
	}
	return found
}

// evictImmediate はタイマー発火時の退避処理です。
// Put による上書き後に古いタイマーが発火しても新エントリは消しません。
func (c *StoryCache) evictImmediate(storyID string, expected *immediateEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if current, ok := c.immediate[storyID]; ok && current == expected {
		delete(c.immediate, storyID)
		slog.Debug("即時層のエントリをTTL満了で退避しました", "story_id", storyID)
	}
}
