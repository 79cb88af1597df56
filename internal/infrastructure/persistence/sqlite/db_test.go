package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/libreria/internal/infrastructure/config"
)

// newTestDB 在临时目录创建测试数据库(测试结束自动清理)
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "test"},
		Database: config.DatabaseConfig{
			Path:        filepath.Join(t.TempDir(), "test.db"),
			BusyTimeout: 5 * time.Second,
		},
	}
	db, err := NewDB(cfg)
	if err != nil {
		t.Fatalf("创建测试数据库失败: %v", err)
	}
	return db
}

// TestNewDB 测试连接与自动迁移
func TestNewDB(t *testing.T) {
	db := newTestDB(t)

	for _, table := range []string{"users", "books", "sales"} {
		if !db.Migrator().HasTable(table) {
			t.Errorf("自动迁移后应存在表%s", table)
		}
	}
}
