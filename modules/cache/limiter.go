package cache

import (
	"log"
	"net"
	"strconv"

	"github.com/gofiber/fiber/v2"
	fiberredis "github.com/gofiber/storage/redis/v3"
)

// LimiterStorage returns a fiber.Storage on the same Redis server so rate
// limit counters are shared between API replicas. It returns nil before the
// plugin has connected; fiber then falls back to its in-memory store.
func (m *PluginModule) LimiterStorage() fiber.Storage {
	if m.limiter == nil {
		return nil
	}
	return m.limiter
}

// openLimiterStorage must only run after a successful ping: the fiber
// storage driver panics when Redis is unreachable.
func (m *PluginModule) openLimiterStorage() {
	host, port := parseRedisAddr(m.redisAddr)
	m.limiter = fiberredis.New(fiberredis.Config{
		Host:     host,
		Port:     port,
		PoolSize: 10,
	})
	log.Printf("[cache] Rate limit storage on %s:%d", host, port)
}

func (m *PluginModule) closeLimiterStorage() {
	if m.limiter == nil {
		return
	}
	if err := m.limiter.Close(); err != nil {
		log.Printf("[cache] Error closing rate limit storage: %v", err)
	}
	m.limiter = nil
}

func parseRedisAddr(addr string) (string, int) {
	const defaultHost = "127.0.0.1"
	const defaultPort = 6379

	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return defaultHost, defaultPort
	}
	if host == "" {
		host = defaultHost
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		port = defaultPort
	}
	return host, port
}
