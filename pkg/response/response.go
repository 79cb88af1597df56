package response

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/libreria/pkg/errors"
)

// Response 统一响应结构
// Code是业务错误码（成功为0），HTTP状态码由错误码前三位决定
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error 错误响应（自动处理AppError并推导HTTP状态码）
// 用法：
//
//	if err := uc.Execute(ctx, req); err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)

	// 内部原因只进日志，不下发
	if appErr.Err != nil {
		log.Printf("[ERROR] %s %s: %v", c.Request.Method, c.Request.URL.Path, appErr.Err)
	}

	c.JSON(appErr.HTTPStatus(), Response{
		Code:    appErr.Code,
		Message: appErr.Message,
		Data:    nil,
	})
}

// ErrorWithCode 自定义错误码和消息，状态码同样由错误码推导
func ErrorWithCode(c *gin.Context, code int, message string) {
	c.JSON(code/100, Response{
		Code:    code,
		Message: message,
		Data:    nil,
	})
}

// =========================================
// 分页响应结构
// =========================================

// PageData 分页数据封装（skip/limit风格）
type PageData struct {
	List  interface{} `json:"list"`
	Total int64       `json:"total"` // 过滤后的总记录数
	Skip  int         `json:"skip"`
	Limit int         `json:"limit"`
}

// NewPageData 创建分页数据
func NewPageData(list interface{}, total int64, skip, limit int) *PageData {
	return &PageData{
		List:  list,
		Total: total,
		Skip:  skip,
		Limit: limit,
	}
}

// SuccessWithPage 分页成功响应
func SuccessWithPage(c *gin.Context, list interface{}, total int64, skip, limit int) {
	Success(c, NewPageData(list, total, skip, limit))
}
