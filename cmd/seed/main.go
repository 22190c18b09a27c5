package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"echo-roster/config"
	"echo-roster/internal/model"
	"echo-roster/internal/repository"
	"echo-roster/pkg/database"
	applogger "echo-roster/pkg/logger"
)

// 初始数据导入工具：员工档案、排班地点与管理员账号。
// 幂等：已存在同名记录时跳过，可重复执行。

type employeeSeed struct {
	name         string
	age          int
	role         string
	maxHours     float64
	availability []model.Weekday
}

var employeeSeeds = []employeeSeed{
	{"Martha", 35, model.RoleStaff, 10.5, []model.Weekday{model.Monday, model.Tuesday, model.Thursday, model.Friday, model.Saturday}},
	{"Grisel", 28, model.RoleStaff, 8.5, []model.Weekday{model.Monday, model.Tuesday, model.Wednesday, model.Thursday, model.Friday, model.Saturday}},
	{"Emilio", 32, model.RoleStaff, 8.5, []model.Weekday{model.Tuesday, model.Wednesday, model.Thursday, model.Friday}},
	{"Annie", 29, model.RoleStaff, 8.5, []model.Weekday{model.Monday, model.Tuesday, model.Wednesday, model.Thursday, model.Friday}},
	{"Angela", 31, model.RoleStaff, 8.5, []model.Weekday{model.Monday, model.Tuesday, model.Wednesday, model.Thursday, model.Friday}},
	{"Alexandra", 27, model.RoleStaff, 8.5, []model.Weekday{model.Monday, model.Tuesday, model.Wednesday, model.Thursday, model.Friday}},
	{"Shannon", 33, model.RoleStaff, 8.5, []model.Weekday{model.Monday, model.Tuesday, model.Wednesday, model.Thursday, model.Friday}},
	{"Guadalupe", 30, model.RoleStaff, 8.5, []model.Weekday{model.Monday, model.Tuesday, model.Wednesday, model.Thursday, model.Friday}},
	{"William", 24, model.RoleStudent, 8.0, []model.Weekday{model.Monday, model.Tuesday, model.Wednesday, model.Thursday}},
}

type locationSeed struct {
	name      string
	address   string
	morning   int
	afternoon int
	night     int
}

var locationSeeds = []locationSeed{
	{"JDCH", "123 JDCH Ave", 3, 3, 2},
	{"W/M", "456 W/M Blvd", 2, 2, 1},
	{"THC", "", 1, 1, 0},
	{"Tx-IP", "", 1, 1, 0},
	{"OR/Inpat", "", 1, 1, 0},
	{"MHW", "", 1, 1, 0},
	{"MHM", "", 1, 1, 0},
	{"On Call Fetal", "", 0, 0, 1},
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	defer sqlDB.Close()

	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	repo := repository.NewRepository(db)
	ctx := context.Background()

	seedEmployees(ctx, repo, logger)
	seedLocations(ctx, repo, logger)
	seedAdminUser(ctx, repo, logger)

	logger.Info("初始数据导入完成")
}

func seedEmployees(ctx context.Context, repo *repository.Repository, logger *zap.Logger) {
	existing, err := repo.Employee.List(ctx)
	if err != nil {
		logger.Fatal("查询员工失败", zap.Error(err))
	}
	known := make(map[string]bool, len(existing))
	for i := range existing {
		known[existing[i].Name] = true
	}

	for _, seed := range employeeSeeds {
		if known[seed.name] {
			logger.Info("员工已存在，跳过", zap.String("name", seed.name))
			continue
		}
		emp := &model.Employee{
			Name:           seed.name,
			Age:            seed.age,
			Role:           seed.role,
			MaxHoursPerDay: seed.maxHours,
		}
		if err := repo.Employee.Create(ctx, emp); err != nil {
			logger.Fatal("创建员工失败", zap.String("name", seed.name), zap.Error(err))
		}
		if err := repo.Employee.ReplaceAvailability(ctx, emp.EmployeeID, seed.availability); err != nil {
			logger.Fatal("写入员工可用日失败", zap.String("name", seed.name), zap.Error(err))
		}
		logger.Info("员工已创建", zap.String("name", seed.name))
	}
}

func seedLocations(ctx context.Context, repo *repository.Repository, logger *zap.Logger) {
	for _, seed := range locationSeeds {
		if _, err := repo.Location.GetByName(ctx, seed.name); err == nil {
			logger.Info("地点已存在，跳过", zap.String("name", seed.name))
			continue
		}
		loc := &model.Location{
			Name:                   seed.name,
			Address:                seed.address,
			RequiredStaffMorning:   seed.morning,
			RequiredStaffAfternoon: seed.afternoon,
			RequiredStaffNight:     seed.night,
			IsActive:               true,
		}
		if err := repo.Location.Create(ctx, loc); err != nil {
			logger.Fatal("创建地点失败", zap.String("name", seed.name), zap.Error(err))
		}
		logger.Info("地点已创建", zap.String("name", seed.name))
	}
}

func seedAdminUser(ctx context.Context, repo *repository.Repository, logger *zap.Logger) {
	const username = "admin"
	if _, err := repo.User.GetByUsername(ctx, username); err == nil {
		logger.Info("管理员账号已存在，跳过")
		return
	}

	password := os.Getenv("ROSTER_ADMIN_PASSWORD")
	if password == "" {
		logger.Fatal("缺少环境变量 ROSTER_ADMIN_PASSWORD")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Fatal("生成密码哈希失败", zap.Error(err))
	}

	user := &model.User{
		Username:     username,
		PasswordHash: string(hash),
		DisplayName:  "系统管理员",
		Role:         model.RoleAdmin,
		IsActive:     true,
	}
	if err := repo.User.Create(ctx, user); err != nil {
		logger.Fatal("创建管理员账号失败", zap.Error(err))
	}
	logger.Info("管理员账号已创建", zap.String("username", username))
}
