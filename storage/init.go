package storage

import (
	"TimerBot/config"
	"TimerBot/storage/redis"
)

// 统一 init storage 层。坐标缓存默认是进程内存，
// 只有 CACHE_BACKEND=redis 时才需要外部连接。

func Init() error {
	if config.Cfg.CacheBackend != "redis" {
		return nil
	}

	if err := redis.Init(); err != nil {
		return err
	}

	return nil
}
