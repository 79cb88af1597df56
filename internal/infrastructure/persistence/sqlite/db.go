package sqlite

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/libreria/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明:
// 1. 使用GORM v2 + SQLite(嵌入式单文件存储,开箱即用)
// 2. DSN开启WAL和busy_timeout(见config.DatabaseConfig.DSN)
// 3. 最大连接数设为1:SQLite同一时刻只允许一个写者,
//    单连接让存储层天然串行化写入,不需要行锁
// 4. 开发环境开启SQL日志,生产环境关闭
// 5. 自动迁移表结构(AutoMigrate)
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	// 1. 构建DSN连接字符串
	dsn := cfg.Database.DSN()

	// 2. 配置GORM日志
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	// 3. 连接数据库
	// TranslateError让驱动把UNIQUE约束冲突翻译成gorm.ErrDuplicatedKey
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 4. 配置连接
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	// 单连接串行化所有语句(配合WAL,读写互不死锁)
	sqlDB.SetMaxOpenConns(1)

	// 5. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	// 6. 自动迁移表结构(开发环境)
	// 注意:生产环境应使用专门的迁移工具(如golang-migrate)
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// AutoMigrate只会创建表、添加字段,不会删除或修改现有字段
func autoMigrate(db *gorm.DB) error {
	// 注意:这里使用GORM的模型定义(带tag),不是domain层的实体
	return db.AutoMigrate(
		&UserModel{},
		&BookModel{},
		&SaleModel{},
	)
}

// UserModel GORM用户模型
// 设计说明:
// 1. 这是infrastructure层的数据模型,包含GORM tag
// 2. domain/user/entity.go是领域实体,不依赖GORM
// 3. IsDeleted是显式布尔列而非gorm.DeletedAt:
//    领域要求已删除记录对部分查询仍然可见(登录、重名检查、恢复),
//    GORM的DeletedAt会在所有查询上自动过滤,语义不符
type UserModel struct {
	ID             uint      `gorm:"primaryKey"`
	Username       string    `gorm:"uniqueIndex;size:20;not null"`
	HashedPassword string    `gorm:"size:255;not null"`
	IsAdmin        bool      `gorm:"not null;default:false"`
	IsDeleted      bool      `gorm:"index;not null;default:false"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// BookModel GORM图书模型
// 设计说明:
// 1. Title有唯一索引,重名由数据库约束兜底(应用层检查之外的并发保护)
// 2. IsDeleted见UserModel的说明
type BookModel struct {
	ID        uint      `gorm:"primaryKey"`
	Title     string    `gorm:"uniqueIndex;size:100;not null"`
	Author    string    `gorm:"size:100;not null"`
	Category  string    `gorm:"size:100;not null"`
	Price     float64   `gorm:"not null"`
	Stock     int       `gorm:"not null;default:0"`
	IsDeleted bool      `gorm:"index;not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// SaleModel GORM销售记录模型
// 设计说明:
// 1. TotalPrice是成交时的总价快照,改价不影响历史记录
// 2. 不直接关联BookModel/UserModel对象,只保存外键ID
type SaleModel struct {
	ID         uint      `gorm:"primaryKey"`
	BookID     uint      `gorm:"index;not null"`
	UserID     uint      `gorm:"index;not null"`
	Quantity   int       `gorm:"not null"`
	TotalPrice float64   `gorm:"not null"`
	Date       time.Time `gorm:"not null"`
	IsDeleted  bool      `gorm:"index;not null;default:false"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName 指定表名
func (SaleModel) TableName() string {
	return "sales"
}
