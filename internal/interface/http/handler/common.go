package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/libreria/pkg/errors"
	"github.com/xiebiao/libreria/pkg/response"
)

// bindErrorCode 请求体/查询串/路径参数解析失败的统一错误码
const bindErrorCode = apperrors.ErrCodeBindError

// parseIDParam 解析路径中的:id参数
// 解析失败时已写入错误响应,调用方直接return即可
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.ErrorWithCode(c, bindErrorCode, "参数错误: 无效的ID")
		return 0, false
	}
	return uint(id), true
}
