package book

import (
	"fmt"

	apperrors "github.com/xiebiao/libreria/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrNoBooksFound 列表查询没有命中任何图书
	ErrNoBooksFound = apperrors.New(apperrors.ErrCodeBookNotFound, "没有找到任何图书")

	// ErrTitleDuplicate 书名已存在(重名检查覆盖已删除记录)
	ErrTitleDuplicate = apperrors.New(apperrors.ErrCodeTitleDuplicate, "图书已存在")

	// ErrBookDeleted 图书已被删除(默认查询命中已删除记录)
	ErrBookDeleted = apperrors.New(apperrors.ErrCodeEntityDeleted, "图书已被删除")

	// ErrBookAlreadyDeleted 图书已处于删除状态(重复删除)
	ErrBookAlreadyDeleted = apperrors.New(apperrors.ErrCodeAlreadyDeleted, "图书已处于删除状态")

	// ErrBookNotDeleted 图书未处于删除状态(恢复未删除图书)
	ErrBookNotDeleted = apperrors.New(apperrors.ErrCodeNotDeleted, "图书未处于删除状态")

	// ErrInsufficientStock 库存不足
	ErrInsufficientStock = apperrors.New(apperrors.ErrCodeInsufficientStock, "销售数量超过库存数量")

	// 字段校验错误
	ErrTitleEmpty       = apperrors.New(apperrors.ErrCodeValidation, "书名不能为空")
	ErrTitleTooLong     = apperrors.New(apperrors.ErrCodeValidation, fmt.Sprintf("书名不能超过%d个字符", MaxLengthTitle))
	ErrAuthorEmpty      = apperrors.New(apperrors.ErrCodeValidation, "作者不能为空")
	ErrCategoryEmpty    = apperrors.New(apperrors.ErrCodeValidation, "分类不能为空")
	ErrPriceEmpty       = apperrors.New(apperrors.ErrCodeValidation, "价格不能为空")
	ErrPriceNegative    = apperrors.New(apperrors.ErrCodeValidation, "价格不能为负数")
	ErrStockNegative    = apperrors.New(apperrors.ErrCodeValidation, "库存不能为负数")
	ErrQuantityNegative = apperrors.New(apperrors.ErrCodeValidation, "数量不能为负数")
)
