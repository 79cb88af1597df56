package dto

// CreateBookRequest HTTP图书录入请求
// 说明:这里不加数值范围的binding tag,字段级业务校验统一由领域层完成,
// 这样"价格为空"和"价格为负"能区分出不同的错误提示
type CreateBookRequest struct {
	Title    string  `json:"title" example:"Cien años de soledad"`
	Author   string  `json:"author" example:"Gabriel García Márquez"`
	Category string  `json:"category" example:"Novela"`
	Price    float64 `json:"price" example:"45.5"`
	Stock    int     `json:"stock" example:"8"`
}

// UpdateBookRequest HTTP图书修改请求(部分更新)
// validator tag说明:
// - omitempty: 字段缺失时跳过校验
// - min/max: 字符串按长度校验,数值按大小校验
// 指针字段区分"没传"和"传了零值"
type UpdateBookRequest struct {
	Title    *string  `json:"title" binding:"omitempty,min=1,max=100" example:"Cien años de soledad"`
	Author   *string  `json:"author" binding:"omitempty,min=1,max=100" example:"Gabriel García Márquez"`
	Category *string  `json:"category" example:"Novela"`
	Price    *float64 `json:"price" binding:"omitempty,gt=0" example:"49.9"`
	Stock    *int     `json:"stock" binding:"omitempty,min=0" example:"12"`
}

// ListQuery 列表查询参数(skip/limit分页,图书和销售列表共用)
// 负数不在binding层拦截,交给领域层返回统一的分页参数错误
type ListQuery struct {
	Skip  int `form:"skip,default=0" example:"0"`
	Limit int `form:"limit,default=10" example:"10"`
}
