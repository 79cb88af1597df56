package user

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/libreria/pkg/errors"
)

// bcryptCost 密码加密强度
// 学习要点：
// - bcrypt自动加盐，每次加密结果都不同（即使密码相同）
// - cost=12是推荐值，平衡安全性与性能（cost每+1，耗时翻倍）
// - 不要使用MD5/SHA1，已被证明不安全（彩虹表攻击）
const bcryptCost = 12

// Service 用户领域服务
// 设计说明：
// 1. Service包含不属于单个实体的业务逻辑（如密码加密、验证、重名检查）
// 2. Service依赖Repository接口，不依赖具体实现（依赖倒置）
// 3. Service不处理HTTP请求，只处理业务逻辑
type Service interface {
	// Register 注册普通用户
	Register(ctx context.Context, username, password string) (*User, error)

	// CreateAdmin 创建管理员用户
	CreateAdmin(ctx context.Context, username, password string) (*User, error)

	// Authenticate 凭据认证（登录）
	// 用户名不存在或密码错误都返回同一个凭据错误（不暴露哪一项错了）；
	// 已删除用户即使凭据正确也拒绝登录
	Authenticate(ctx context.Context, username, password string) (*User, error)

	// DeleteUser 软删除用户
	DeleteUser(ctx context.Context, id uint) (*User, error)

	// RestoreUser 恢复已删除的用户
	RestoreUser(ctx context.Context, id uint) (*User, error)

	// ChangePassword 修改密码（重新加密后存储）
	ChangePassword(ctx context.Context, id uint, newPassword string) (*User, error)

	// ValidatePassword 验证明文密码与哈希值是否匹配
	ValidatePassword(hashedPassword, plainPassword string) error
}

type service struct {
	repo Repository
}

// NewService 创建用户服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Register 注册普通用户
func (s *service) Register(ctx context.Context, username, password string) (*User, error) {
	return s.createUser(ctx, username, password, false)
}

// CreateAdmin 创建管理员用户
func (s *service) CreateAdmin(ctx context.Context, username, password string) (*User, error) {
	return s.createUser(ctx, username, password, true)
}

// createUser 创建用户
// 业务规则：
// 1. 用户名和密码非空（长度限制由请求schema层负责）
// 2. 用户名不能重复；重名检查不排除已删除记录
// 3. 密码bcrypt加密（cost=12）后存储
func (s *service) createUser(ctx context.Context, username, password string, isAdmin bool) (*User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if len(password) == 0 {
		return nil, ErrPasswordEmpty
	}

	// 重名检查（覆盖已删除记录，已删除用户的用户名同样占用）
	existing, err := s.repo.FindByUsername(ctx, username)
	if err == nil && existing != nil {
		return nil, ErrUsernameDuplicate
	}
	if err != nil && err != ErrUserNotFound {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, apperrors.Wrap(err, "密码加密失败")
	}

	newUser, err := NewUser(username, string(hashedPassword), isAdmin)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, newUser); err != nil {
		return nil, err // Repository已转换为业务错误
	}

	return newUser, nil
}

// Authenticate 凭据认证
// 业务规则：
// 1. 用户名不存在与密码错误返回同一个错误（防止用户名枚举）
// 2. 密码验证通过后仍要检查删除标志：已删除用户不能登录
func (s *service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if err == ErrUserNotFound {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.ValidatePassword(u.HashedPassword, password); err != nil {
		return nil, err
	}

	if u.Deleted() {
		return nil, apperrors.ErrUserDeleted
	}

	return u, nil
}

// DeleteUser 软删除用户
func (s *service) DeleteUser(ctx context.Context, id uint) (*User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := u.Delete(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// RestoreUser 恢复已删除的用户
func (s *service) RestoreUser(ctx context.Context, id uint) (*User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := u.Restore(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ChangePassword 修改密码
// 业务规则：目标用户必须存在且未删除；新密码重新bcrypt加密
func (s *service) ChangePassword(ctx context.Context, id uint, newPassword string) (*User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := u.EnsureVisible(); err != nil {
		return nil, err
	}

	if len(newPassword) == 0 {
		return nil, ErrPasswordEmpty
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return nil, apperrors.Wrap(err, "密码加密失败")
	}

	if err := u.ChangePassword(string(hashedPassword)); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ValidatePassword 验证密码
// 说明：登录时使用，验证明文密码与哈希值是否匹配
func (s *service) ValidatePassword(hashedPassword, plainPassword string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	if err != nil {
		if err == bcrypt.ErrMismatchedHashAndPassword {
			return apperrors.ErrInvalidCredentials
		}
		return apperrors.Wrap(err, "密码验证失败")
	}
	return nil
}
