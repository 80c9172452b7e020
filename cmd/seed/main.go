package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/blog-console/internal/config"
	"github.com/blog-console/internal/constants"
	"github.com/blog-console/internal/logger"
	"github.com/blog-console/internal/models"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

func main() {
	var configFile string
	var withDemo bool
	flag.StringVar(&configFile, "config", "", "配置文件路径")
	flag.BoolVar(&withDemo, "demo", false, "同时写入演示博客与收益数据")
	flag.Parse()

	// 连接数据库
	cfg, err := config.LoadFrom(viper.GetViper(), configFile)
	if err != nil {
		panic(fmt.Errorf("load config: %w", err))
	}
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, false); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	if err := models.EnsureSuperAdmin(models.DB, cfg.Bootstrap.AdminUsername, cfg.Bootstrap.AdminPassword); err != nil {
		stdLog.Fatalf("Failed to create super admin: %v", err)
	}
	created, err := models.EnsureTeamAccounts(models.DB)
	if err != nil {
		stdLog.Fatalf("Failed to create team accounts: %v", err)
	}
	stdLog.Printf("Team accounts created: %d", created)

	if !withDemo {
		return
	}

	var authors []models.User
	if err := models.DB.Where("role = ?", constants.RoleMarketer).Order("id asc").Find(&authors).Error; err != nil {
		stdLog.Fatalf("Failed to load marketers: %v", err)
	}
	if len(authors) == 0 {
		stdLog.Printf("No marketer accounts, skip demo data")
		return
	}

	var blogCount int64
	models.DB.Model(&models.Blog{}).Count(&blogCount)
	if blogCount == 0 {
		for i, author := range authors {
			blog := models.Blog{
				UserID:   author.ID,
				AuthorID: author.ID,
				Title:    fmt.Sprintf("%s 的投放复盘 #%d", author.Nickname, i+1),
				Content:  "## 本周小结\n\n- 调整了出价策略\n- 新增 **3** 组素材\n",
				Category: "复盘",
				Tags:     "投放,周报",
				Status:   constants.BlogStatusPublished,
			}
			if err := models.DB.Create(&blog).Error; err != nil {
				stdLog.Printf("Failed to create blog for %s: %v", author.Username, err)
			}
		}
		stdLog.Printf("Demo blogs created: %d", len(authors))
	} else {
		stdLog.Printf("Blogs already exist, skip demo blogs")
	}

	var revenueCount int64
	models.DB.Model(&models.EmployeeRevenue{}).Count(&revenueCount)
	if revenueCount > 0 {
		stdLog.Printf("Revenue records already exist, skip demo revenue")
		return
	}
	platforms := []string{"google", "meta", "tiktok"}
	now := time.Now()
	rows := 0
	for i, author := range authors {
		for month := 0; month < 3; month++ {
			expenditure := decimal.NewFromInt(int64(500 + 120*i + 80*month))
			revenue := expenditure.Mul(decimal.NewFromFloat(1.2 + 0.15*float64(month)))
			record := models.EmployeeRevenue{
				UserID:            author.ID,
				AdPlatform:        platforms[(i+month)%len(platforms)],
				ProductCategories: "家居",
				AdType:            "信息流",
				Region:            "US",
				Expenditure:       models.NewMoneyFromDecimal(expenditure),
				OrderCount:        10 + i*3 + month,
				AdCreationCount:   2 + month,
				Revenue:           models.NewMoneyFromDecimal(revenue),
				RecordTime:        now.AddDate(0, -month, 0),
			}
			record.RefreshROI()
			if err := models.DB.Create(&record).Error; err != nil {
				stdLog.Printf("Failed to create revenue for %s: %v", author.Username, err)
				continue
			}
			rows++
		}
	}
	stdLog.Printf("Demo revenue records created: %d", rows)
}
