package sqlite

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// txKey context中事务DB的键(非导出类型,避免键冲突)
type txKey struct{}

// getDB 从context获取事务DB,如果没有则使用默认DB
// 事务传递机制:TxManager把事务DB放进context,
// 仓储方法统一从这里取,保证同一事务内的操作走同一个连接
func getDB(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}

// isDuplicateError 判断是否为SQLite唯一索引冲突错误
// SQLite的错误信息形如:UNIQUE constraint failed: books.title
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	// GORM v2的错误判断(TranslateError开启后驱动会翻译)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// 兼容检查:错误信息包含"UNIQUE constraint failed"
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
