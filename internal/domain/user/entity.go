package user

import (
	"time"

	"github.com/xiebiao/libreria/internal/domain/lifecycle"
)

// 用户名与密码的长度约束（请求schema层按这些值配置binding规则）
const (
	MinLengthUsername = 4
	MaxLengthUsername = 20
	MinLengthPassword = 8
)

// User 用户实体（聚合根）
// DDD设计说明：
// 1. User是用户聚合的根实体，包含用户的核心属性
// 2. 密码已加密存储（bcrypt），不应该有GetPassword()等方法暴露明文
// 3. IsAdmin是角色标志位，没有更细粒度的权限模型（刻意保持简单）
// 4. 领域实体不依赖GORM tag（infrastructure层的Repository实现时会处理映射）
type User struct {
	ID             uint
	Username       string
	HashedPassword string // bcrypt哈希值
	IsAdmin        bool
	lifecycle.SoftDelete
	CreatedAt time.Time
	UpdatedAt time.Time
}

// machine User的软删除状态机
var machine = lifecycle.Machine{
	ErrAlreadyDeleted: ErrUserAlreadyDeleted,
	ErrNotDeleted:     ErrUserNotDeleted,
	ErrDeleted:        ErrUserDeleted,
}

// NewUser 创建新用户（工厂方法）
// hashedPassword必须是bcrypt加密后的密码，不接受明文
func NewUser(username, hashedPassword string, isAdmin bool) (*User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validateHashedPassword(hashedPassword); err != nil {
		return nil, err
	}

	now := time.Now()
	return &User{
		Username:       username,
		HashedPassword: hashedPassword,
		IsAdmin:        isAdmin,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// ChangePassword 更换密码（领域行为）
// hashedPassword必须是bcrypt加密后的新密码
func (u *User) ChangePassword(hashedPassword string) error {
	if err := validateHashedPassword(hashedPassword); err != nil {
		return err
	}
	u.HashedPassword = hashedPassword
	u.UpdatedAt = time.Now()
	return nil
}

// Delete 软删除（领域行为）
func (u *User) Delete() error {
	return machine.Delete(u)
}

// Restore 恢复（领域行为）
func (u *User) Restore() error {
	return machine.Restore(u)
}

// EnsureVisible 默认查询的可见性检查
func (u *User) EnsureVisible() error {
	return machine.EnsureVisible(u)
}

// =========================================
// 字段校验
// =========================================

func validateUsername(username string) error {
	if len(username) == 0 {
		return ErrUsernameEmpty
	}
	return nil
}

func validateHashedPassword(hashedPassword string) error {
	if len(hashedPassword) == 0 {
		return ErrPasswordEmpty
	}
	return nil
}
