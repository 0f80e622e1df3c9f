package ratelimiter

import (
	"sync"
	"time"
)

// LimiterInterface は、ログイン試行などの操作の頻度を制限するインターフェースです。
type LimiterInterface interface {
	Allow(key string) bool
}

// Limiterは、キー（クライアントIPなど）ごとに固定ウィンドウで試行回数を制限します。
type Limiter struct {
	mu       sync.Mutex
	limit    int           // ウィンドウあたりの上限
	interval time.Duration // どの単位でリセットするか
	windows  map[string]*window
}

type window struct {
	count int
	start time.Time
}

// NewLimiterは新しいLimiterのインスタンスを生成します。
func NewLimiter(limit int, interval time.Duration) *Limiter {
	return &Limiter{
		limit:    limit,
		interval: interval,
		windows:  make(map[string]*window),
	}
}

// Allowは指定キーの試行を受け付けるかどうかを返します。
// ウィンドウを過ぎたカウントはリセットされます。
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	l.prune(now)

	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= l.interval {
		l.windows[key] = &window{count: 1, start: now}
		return true
	}

	w.count++
	return w.count <= l.limit
}

// pruneは期限切れウィンドウを破棄し、マップの肥大化を防ぎます。
func (l *Limiter) prune(now time.Time) {
	for key, w := range l.windows {
		if now.Sub(w.start) >= l.interval {
			delete(l.windows, key)
		}
	}
}
