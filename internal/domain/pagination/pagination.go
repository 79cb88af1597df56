package pagination

import (
	apperrors "github.com/xiebiao/libreria/pkg/errors"
)

// 默认分页参数
const (
	DefaultSkip  = 0
	DefaultLimit = 10
)

// Params 分页参数(skip/limit语义,所有列表查询共用)
type Params struct {
	Skip  int // 跳过的记录数(从0开始)
	Limit int // 返回的最大记录数
}

// Default 返回默认分页参数
func Default() Params {
	return Params{Skip: DefaultSkip, Limit: DefaultLimit}
}

// New 创建分页参数
// 业务规则:skip和limit都必须为非负整数,否则返回参数错误
func New(skip, limit int) (Params, error) {
	p := Params{Skip: skip, Limit: limit}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Validate 校验分页参数
func (p Params) Validate() error {
	if p.Skip < 0 || p.Limit < 0 {
		return apperrors.ErrInvalidPagination
	}
	return nil
}
