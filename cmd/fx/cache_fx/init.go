package cache_fx

import (
	"go.uber.org/fx"

	"pulse/internal/cache"
	"pulse/internal/infra"
)

var Module = fx.Provide(provideReportCache)

func provideReportCache() cache.ReportCache {
	return cache.NewRedisReportCache(infra.InitRedis())
}
