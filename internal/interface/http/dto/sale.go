package dto

// DateLayout 销售日期的传输格式
const DateLayout = "2006-01-02"

// CreateSaleRequest HTTP创建销售请求
// 说明:
// - user_id不在请求体里,以Token解析出的当前用户为准
// - quantity不加binding tag,负数校验由领域层完成(0是合法值)
// - date按YYYY-MM-DD解析,格式错误在绑定阶段拒绝
type CreateSaleRequest struct {
	BookID   uint   `json:"book_id" binding:"required" example:"1"`
	Quantity int    `json:"quantity" example:"3"`
	Date     string `json:"date" binding:"required" example:"2026-08-21"`
}
