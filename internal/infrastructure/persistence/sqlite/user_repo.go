package sqlite

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/libreria/internal/domain/lifecycle"
	"github.com/xiebiao/libreria/internal/domain/user"
	apperrors "github.com/xiebiao/libreria/pkg/errors"
)

// userRepository 用户仓储实现（SQLite）
// 设计说明：
// 1. 实现domain/user/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 处理数据库特定的错误（如用户名重复），转换为业务错误
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
// 注意：返回的是domain层的接口类型，不是具体类型（依赖倒置）
func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepository{db: db}
}

// Create 创建用户
// 学习要点：
// 1. 用户名唯一性最终由数据库UNIQUE索引保证（而非仅应用层SELECT再INSERT）
// 2. 捕获SQLite的UNIQUE constraint错误，转换为业务错误ErrUsernameDuplicate
func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	// 1. 领域实体 → GORM模型
	model := &UserModel{
		Username:       u.Username,
		HashedPassword: u.HashedPassword,
		IsAdmin:        u.IsAdmin,
		IsDeleted:      u.IsDeleted,
	}

	// 2. 插入数据库
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return user.ErrUsernameDuplicate
		}
		return apperrors.WrapDB(err, "创建用户失败")
	}

	// 3. 回填自增ID（GORM自动填充）
	u.ID = model.ID
	u.CreatedAt = model.CreatedAt
	u.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找用户（包含已删除记录）
func (r *userRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	var model UserModel
	err := getDB(ctx, r.db).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperrors.WrapDB(err, "查询用户失败")
	}

	return toUserEntity(&model), nil
}

// FindByUsername 根据用户名查找用户（包含已删除记录）
// 登录和重名检查都需要看到已删除用户
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	var model UserModel
	err := getDB(ctx, r.db).Where("username = ?", username).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperrors.WrapDB(err, "查询用户失败")
	}

	return toUserEntity(&model), nil
}

// Update 更新用户信息（含软删除标志）
func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	model := &UserModel{
		ID:             u.ID,
		Username:       u.Username,
		HashedPassword: u.HashedPassword,
		IsAdmin:        u.IsAdmin,
		IsDeleted:      u.IsDeleted,
		CreatedAt:      u.CreatedAt,
	}

	// 使用Save更新所有字段
	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		if isDuplicateError(err) {
			return user.ErrUsernameDuplicate
		}
		return apperrors.WrapDB(err, "更新用户失败")
	}

	u.UpdatedAt = model.UpdatedAt
	return nil
}

// HasAdmin 是否存在管理员用户（启动播种用，已删除的管理员也算）
func (r *userRepository) HasAdmin(ctx context.Context) (bool, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&UserModel{}).
		Where("is_admin = ?", true).
		Count(&count).Error
	if err != nil {
		return false, apperrors.WrapDB(err, "查询管理员失败")
	}
	return count > 0, nil
}

// =========================================
// 辅助函数：模型转换
// =========================================

// toUserEntity GORM模型 → 领域实体
// 说明：这是Repository的重要职责之一，隔离infrastructure层与domain层
func toUserEntity(model *UserModel) *user.User {
	return &user.User{
		ID:             model.ID,
		Username:       model.Username,
		HashedPassword: model.HashedPassword,
		IsAdmin:        model.IsAdmin,
		SoftDelete:     lifecycle.SoftDelete{IsDeleted: model.IsDeleted},
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	}
}
