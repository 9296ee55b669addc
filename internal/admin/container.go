package admin

import "github.com/saulo-duarte/smart-quiz/internal/cache"

type AdminContainer struct {
	Handler *Handler
}

func NewAdminContainer(kv cache.Client, health HealthChecker, stats StatsSource) *AdminContainer {
	return &AdminContainer{Handler: NewHandler(NewService(kv, health, stats))}
}
