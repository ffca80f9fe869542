package cache

import "time"

// Clock は現在時刻の取得を抽象化します。TTL判定のテストで差し替えます。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// EvictionScheduler は一定時間後の退避処理を予約し、取消関数を返します。
// 既定実装は time.AfterFunc です。
type EvictionScheduler func(d time.Duration, evict func()) (stop func() bool)

func defaultScheduler(d time.Duration, evict func()) func() bool {
	timer := time.AfterFunc(d, evict)
	return timer.Stop
}
