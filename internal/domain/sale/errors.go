package sale

import (
	apperrors "github.com/xiebiao/libreria/pkg/errors"
)

// 销售领域错误定义
var (
	// ErrSaleNotFound 销售记录不存在
	ErrSaleNotFound = apperrors.New(apperrors.ErrCodeSaleNotFound, "销售记录不存在")

	// ErrNoSalesFound 列表查询没有命中任何销售记录
	ErrNoSalesFound = apperrors.New(apperrors.ErrCodeSaleNotFound, "没有找到任何销售记录")

	// ErrSaleDeleted 销售记录已被删除(默认查询命中已删除记录)
	ErrSaleDeleted = apperrors.New(apperrors.ErrCodeEntityDeleted, "销售记录已被删除")

	// ErrSaleAlreadyDeleted 销售记录已处于删除状态(重复删除)
	ErrSaleAlreadyDeleted = apperrors.New(apperrors.ErrCodeAlreadyDeleted, "销售记录已处于删除状态")

	// ErrSaleNotDeleted 销售记录未处于删除状态(恢复未删除记录)
	ErrSaleNotDeleted = apperrors.New(apperrors.ErrCodeNotDeleted, "销售记录未处于删除状态")

	// 字段校验错误
	ErrQuantityNegative   = apperrors.New(apperrors.ErrCodeValidation, "销售数量不能为负数")
	ErrTotalPriceNegative = apperrors.New(apperrors.ErrCodeValidation, "总价不能为负数")
	ErrDateInPast         = apperrors.New(apperrors.ErrCodeValidation, "销售日期不能早于今天")
)
