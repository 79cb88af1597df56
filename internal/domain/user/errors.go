package user

import (
	apperrors "github.com/xiebiao/libreria/pkg/errors"
)

// 用户领域错误定义
var (
	// ErrUserNotFound 用户不存在
	ErrUserNotFound = apperrors.New(apperrors.ErrCodeUserNotFound, "用户不存在")

	// ErrUsernameDuplicate 用户名已存在（重名检查覆盖已删除记录）
	ErrUsernameDuplicate = apperrors.New(apperrors.ErrCodeUsernameDuplicate, "用户已存在")

	// ErrUserDeleted 用户已被删除（默认查询命中已删除记录）
	ErrUserDeleted = apperrors.New(apperrors.ErrCodeEntityDeleted, "用户已被删除")

	// ErrUserAlreadyDeleted 用户已处于删除状态（重复删除）
	ErrUserAlreadyDeleted = apperrors.New(apperrors.ErrCodeAlreadyDeleted, "用户已处于删除状态")

	// ErrUserNotDeleted 用户未处于删除状态（恢复未删除用户）
	ErrUserNotDeleted = apperrors.New(apperrors.ErrCodeNotDeleted, "用户未处于删除状态")

	// 字段校验错误
	ErrUsernameEmpty = apperrors.New(apperrors.ErrCodeValidation, "用户名不能为空")
	ErrPasswordEmpty = apperrors.New(apperrors.ErrCodeValidation, "密码不能为空")
)
