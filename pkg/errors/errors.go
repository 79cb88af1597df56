package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError 自定义应用错误
// 约定：
// 1. Code是业务错误码，前三位即HTTP状态码（如40402 -> 404）
// 2. Message是返回给客户端的提示信息
// 3. Err是内部原因，仅记录日志，不序列化（防止泄露实现细节）
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus 从业务错误码推导HTTP状态码
func (e *AppError) HTTPStatus() int {
	status := e.Code / 100
	if status < 100 || status > 599 {
		return http.StatusInternalServerError
	}
	return status
}

// WithErr 返回附带内部原因的副本，预定义错误本身保持不可变
func (e *AppError) WithErr(err error) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		Err:     err,
	}
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装系统错误（如数据库错误），隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// WrapDB 包装数据库层错误
func WrapDB(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeDatabaseError,
		Message: message,
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：code/100 == HTTP状态码
// - 400xx: 字段校验、参数错误
// - 401xx: 认证失败
// - 403xx: 权限不足
// - 404xx: 资源不存在
// - 409xx: 状态冲突、业务规则冲突
// - 500xx: 服务端错误

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal      = 50000 // 内部错误
	ErrCodeDatabaseError = 50001 // 数据库错误

	// 校验错误（40000-40099）
	ErrCodeValidation        = 40000 // 字段校验失败(通用)
	ErrCodeInvalidPagination = 40001 // 分页参数非法
	ErrCodeBindError         = 40002 // 参数绑定失败

	// 认证错误（40100-40199）
	ErrCodeUnauthorized       = 40100 // 未登录
	ErrCodeInvalidToken       = 40101 // Token无效
	ErrCodeTokenExpired       = 40102 // Token过期
	ErrCodeInvalidCredentials = 40103 // 用户名或密码错误
	ErrCodeUserDeleted        = 40104 // 当前用户已被删除

	// 权限错误（40300-40399）
	ErrCodeForbidden = 40300 // 无权限

	// 资源错误（40400-40499）
	ErrCodeNotFound     = 40400 // 资源不存在(通用)
	ErrCodeUserNotFound = 40401 // 用户不存在
	ErrCodeBookNotFound = 40402 // 图书不存在
	ErrCodeSaleNotFound = 40403 // 销售记录不存在

	// 冲突错误（40900-40999）
	ErrCodeConflict          = 40900 // 状态冲突(通用)
	ErrCodeTitleDuplicate    = 40901 // 书名已存在
	ErrCodeUsernameDuplicate = 40902 // 用户名已存在
	ErrCodeInsufficientStock = 40903 // 库存不足
	ErrCodeAlreadyDeleted    = 40904 // 记录已处于删除状态
	ErrCodeNotDeleted        = 40905 // 记录未处于删除状态
	ErrCodeEntityDeleted     = 40906 // 记录已被删除，默认查询不可见
)

// =========================================
// 预定义错误（实体相关的错误定义在各domain包中）
// =========================================

var (
	// 系统错误
	ErrInternal      = New(ErrCodeInternal, "系统内部错误")
	ErrDatabaseError = New(ErrCodeDatabaseError, "数据库错误")

	// 校验与参数
	ErrValidation        = New(ErrCodeValidation, "字段校验失败")
	ErrInvalidPagination = New(ErrCodeInvalidPagination, "skip和limit必须为非负整数")
	ErrBindError         = New(ErrCodeBindError, "参数格式错误")

	// 认证授权
	ErrUnauthorized       = New(ErrCodeUnauthorized, "请先登录")
	ErrInvalidToken       = New(ErrCodeInvalidToken, "无效的Token")
	ErrTokenExpired       = New(ErrCodeTokenExpired, "Token已过期")
	ErrInvalidCredentials = New(ErrCodeInvalidCredentials, "用户名或密码错误")
	ErrUserDeleted        = New(ErrCodeUserDeleted, "当前用户已被删除")
	ErrForbidden          = New(ErrCodeForbidden, "无权限访问")
)

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "系统内部错误")
}

// Is 对预定义错误做同码判断（WithErr返回的副本与原错误视为同一错误）
func Is(err error, target *AppError) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.Code == target.Code
}
