package cache

import (
	"TimerBot/config"
)

// NewCoordinateStore 按配置选择坐标缓存后端
func NewCoordinateStore() CoordinateStore {
	cfg := config.Cfg
	if cfg.CacheBackend == "redis" {
		return NewRedisCoordinateStore(cfg.LocationTTL())
	}
	return NewMemoryCoordinateStore(cfg.LocationTTL(), cfg.SweepInterval())
}

// NewDedupStore 按配置选择消息去重后端
func NewDedupStore() DedupStore {
	cfg := config.Cfg
	if cfg.CacheBackend == "redis" {
		return NewRedisDedupStore(cfg.DedupTTL())
	}
	return NewMemoryDedupStore(cfg.DedupTTL(), cfg.SweepInterval())
}
