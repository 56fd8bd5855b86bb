package cache

import (
	"context"
	"sync"
	"time"
)

// DedupStore 记录最近处理过的 webhook 消息 ID。
// 商业 webhook 是 at-least-once 投递，重复投递必须在进入管道前被拦下，
// 否则同一次物理打卡会触发重复的网关调用和重复回复。
type DedupStore interface {
	// TryMark 原子地标记消息 ID。首次出现返回 true；
	// TTL 窗口内再次出现返回 false。
	TryMark(ctx context.Context, messageID string) (bool, error)
}

// MemoryDedupStore 进程内实现，TTL 窗口 + 后台清理约束集合大小
type MemoryDedupStore struct {
	ttl  time.Duration
	seen sync.Map

	now  func() time.Time
	stop chan struct{}
	once sync.Once
}

func NewMemoryDedupStore(ttl, sweepInterval time.Duration) *MemoryDedupStore {
	s := &MemoryDedupStore{
		ttl:  ttl,
		now:  time.Now,
		stop: make(chan struct{}),
	}

	if sweepInterval > 0 {
		go s.sweepLoop(sweepInterval)
	}

	return s
}

func (s *MemoryDedupStore) TryMark(ctx context.Context, messageID string) (bool, error) {
	now := s.now()

	prev, loaded := s.seen.LoadOrStore(messageID, now)
	if !loaded {
		return true, nil
	}

	markedAt := prev.(time.Time)
	if now.Sub(markedAt) <= s.ttl {
		return false, nil
	}

	// 旧标记已出窗，争抢刷新权，输家视为重复
	return s.seen.CompareAndSwap(messageID, prev, now), nil
}

// Stop 停止后台清理
func (s *MemoryDedupStore) Stop() {
	s.once.Do(func() {
		close(s.stop)
	})
}

func (s *MemoryDedupStore) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *MemoryDedupStore) sweep() {
	cutoff := s.now().Add(-s.ttl)
	s.seen.Range(func(key, value any) bool {
		if markedAt, ok := value.(time.Time); ok && markedAt.Before(cutoff) {
			s.seen.CompareAndDelete(key, value)
		}
		return true
	})
}
