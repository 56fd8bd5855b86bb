package cache

import (
	"context"
	"sync"
	"time"
)

// Coordinates 一次位置上报的坐标
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// CoordinateStore 按发送者缓存最近一次实时坐标。
// 取代原实现里进程级全局 state map：显式注入、
// 单次消费（读即删）、超过 TTL 的条目不允许被复用。
type CoordinateStore interface {
	// Put 写入或覆盖发送者的坐标，最后一次写入生效
	Put(ctx context.Context, senderID string, lat, lon float64) error

	// TakeIfFresh 原子地读取并删除发送者的坐标。
	// 条目不存在或已超过 TTL 时返回 ok=false，这是正常业务结果而非错误。
	TakeIfFresh(ctx context.Context, senderID string) (Coordinates, bool, error)
}

type coordEntry struct {
	lat      float64
	lon      float64
	storedAt time.Time
}

// MemoryCoordinateStore 进程内实现。sync.Map 的 LoadAndDelete 保证
// 同一发送者并发消费只有一个赢家，不同发送者之间互不争锁。
type MemoryCoordinateStore struct {
	ttl     time.Duration
	entries sync.Map

	now  func() time.Time
	stop chan struct{}
	once sync.Once
}

func NewMemoryCoordinateStore(ttl, sweepInterval time.Duration) *MemoryCoordinateStore {
	s := &MemoryCoordinateStore{
		ttl:  ttl,
		now:  time.Now,
		stop: make(chan struct{}),
	}

	if sweepInterval > 0 {
		go s.sweepLoop(sweepInterval)
	}

	return s
}

func (s *MemoryCoordinateStore) Put(ctx context.Context, senderID string, lat, lon float64) error {
	s.entries.Store(senderID, coordEntry{lat: lat, lon: lon, storedAt: s.now()})
	return nil
}

func (s *MemoryCoordinateStore) TakeIfFresh(ctx context.Context, senderID string) (Coordinates, bool, error) {
	v, ok := s.entries.LoadAndDelete(senderID)
	if !ok {
		return Coordinates{}, false, nil
	}

	entry := v.(coordEntry)
	if s.now().Sub(entry.storedAt) > s.ttl {
		// 过期条目已随 LoadAndDelete 移除，按缺失处理
		return Coordinates{}, false, nil
	}

	return Coordinates{Latitude: entry.lat, Longitude: entry.lon}, true, nil
}

// Stop 停止后台清理
func (s *MemoryCoordinateStore) Stop() {
	s.once.Do(func() {
		close(s.stop)
	})
}

func (s *MemoryCoordinateStore) sweepLoop(interval time.Duration) {
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

// sweep 移除从未被消费的过期条目，约束内存上界
func (s *MemoryCoordinateStore) sweep() {
	cutoff := s.now().Add(-s.ttl)
	s.entries.Range(func(key, value any) bool {
		if entry, ok := value.(coordEntry); ok && entry.storedAt.Before(cutoff) {
			s.entries.CompareAndDelete(key, value)
		}
		return true
	})
}
