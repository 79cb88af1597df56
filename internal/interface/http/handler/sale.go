package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	appsale "github.com/xiebiao/libreria/internal/application/sale"
	"github.com/xiebiao/libreria/internal/interface/http/dto"
	"github.com/xiebiao/libreria/internal/interface/http/middleware"
	"github.com/xiebiao/libreria/pkg/response"
)

// SaleHandler 销售HTTP处理器
type SaleHandler struct {
	createSaleUseCase    *appsale.CreateSaleUseCase
	listSalesUseCase     *appsale.ListSalesUseCase
	listUserSalesUseCase *appsale.ListUserSalesUseCase
	deleteSaleUseCase    *appsale.DeleteSaleUseCase
	restoreSaleUseCase   *appsale.RestoreSaleUseCase
}

// NewSaleHandler 创建销售处理器
func NewSaleHandler(
	createSaleUseCase *appsale.CreateSaleUseCase,
	listSalesUseCase *appsale.ListSalesUseCase,
	listUserSalesUseCase *appsale.ListUserSalesUseCase,
	deleteSaleUseCase *appsale.DeleteSaleUseCase,
	restoreSaleUseCase *appsale.RestoreSaleUseCase,
) *SaleHandler {
	return &SaleHandler{
		createSaleUseCase:    createSaleUseCase,
		listSalesUseCase:     listSalesUseCase,
		listUserSalesUseCase: listUserSalesUseCase,
		deleteSaleUseCase:    deleteSaleUseCase,
		restoreSaleUseCase:   restoreSaleUseCase,
	}
}

// CreateSale 创建销售
// @Summary      创建销售
// @Description  当前登录用户购买图书,同一事务内校验库存、按当前单价计算总价并扣减库存
// @Tags         销售
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateSaleRequest true "销售信息"
// @Success      200 {object} response.Response{data=appsale.SaleView}
// @Failure      400 {object} response.Response "字段校验失败"
// @Failure      401 {object} response.Response "未登录"
// @Failure      404 {object} response.Response "图书不存在"
// @Failure      409 {object} response.Response "库存不足"
// @Router       /api/v1/sales [post]
func (h *SaleHandler) CreateSale(c *gin.Context) {
	var req dto.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, bindErrorCode, "参数错误: "+err.Error())
		return
	}

	// 日期按固定格式解析,时间部分归零,"不早于今天"的校验在领域层
	date, err := time.Parse(dto.DateLayout, req.Date)
	if err != nil {
		response.ErrorWithCode(c, bindErrorCode, "参数错误: 日期格式应为"+dto.DateLayout)
		return
	}

	// 买家以Token解析出的当前用户为准,请求体里没有user_id
	userID := middleware.MustGetUserID(c)

	result, err := h.createSaleUseCase.Execute(c.Request.Context(), appsale.CreateSaleRequest{
		BookID:   req.BookID,
		UserID:   userID,
		Quantity: req.Quantity,
		Date:     date,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListSales 销售流水
// @Summary      销售流水
// @Description  管理员分页查看全部未删除的销售记录,结果为空返回404
// @Tags         销售
// @Produce      json
// @Security     BearerAuth
// @Param        skip  query int false "跳过条数" default(0)
// @Param        limit query int false "返回条数" default(10)
// @Success      200 {object} response.Response{data=response.PageData{list=[]appsale.SaleView}}
// @Failure      400 {object} response.Response "分页参数非法"
// @Failure      401 {object} response.Response "未登录"
// @Failure      403 {object} response.Response "非管理员"
// @Failure      404 {object} response.Response "没有销售记录"
// @Router       /api/v1/sales [get]
func (h *SaleHandler) ListSales(c *gin.Context) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ErrorWithCode(c, bindErrorCode, "参数错误: "+err.Error())
		return
	}

	result, err := h.listSalesUseCase.Execute(c.Request.Context(), appsale.ListSalesRequest{
		Skip:  q.Skip,
		Limit: q.Limit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, result.List, result.Total, result.Skip, result.Limit)
}

// ListMySales 个人销售流水
// @Summary      个人销售流水
// @Description  当前登录用户分页查看自己的购买记录,结果为空返回404
// @Tags         销售
// @Produce      json
// @Security     BearerAuth
// @Param        skip  query int false "跳过条数" default(0)
// @Param        limit query int false "返回条数" default(10)
// @Success      200 {object} response.Response{data=response.PageData{list=[]appsale.SaleView}}
// @Failure      400 {object} response.Response "分页参数非法"
// @Failure      401 {object} response.Response "未登录"
// @Failure      404 {object} response.Response "没有销售记录"
// @Router       /api/v1/sales/user [get]
func (h *SaleHandler) ListMySales(c *gin.Context) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ErrorWithCode(c, bindErrorCode, "参数错误: "+err.Error())
		return
	}

	userID := middleware.MustGetUserID(c)

	result, err := h.listUserSalesUseCase.Execute(c.Request.Context(), appsale.ListUserSalesRequest{
		UserID: userID,
		Skip:   q.Skip,
		Limit:  q.Limit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, result.List, result.Total, result.Skip, result.Limit)
}

// DeleteSale 删除销售记录
// @Summary      删除销售记录
// @Description  管理员软删除销售记录(冲正),图书库存不回补
// @Tags         销售
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "销售记录ID"
// @Success      200 {object} response.Response{data=appsale.SaleView}
// @Failure      401 {object} response.Response "未登录"
// @Failure      403 {object} response.Response "非管理员"
// @Failure      404 {object} response.Response "销售记录不存在"
// @Failure      409 {object} response.Response "销售记录已处于删除状态"
// @Router       /api/v1/sales/{id} [delete]
func (h *SaleHandler) DeleteSale(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.deleteSaleUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// RestoreSale 恢复销售记录
// @Summary      恢复销售记录
// @Description  管理员恢复已删除的销售记录,金额按删除前的快照保持不变
// @Tags         销售
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "销售记录ID"
// @Success      200 {object} response.Response{data=appsale.SaleView}
// @Failure      401 {object} response.Response "未登录"
// @Failure      403 {object} response.Response "非管理员"
// @Failure      404 {object} response.Response "销售记录不存在"
// @Failure      409 {object} response.Response "销售记录未处于删除状态"
// @Router       /api/v1/sales/{id}/restore [post]
func (h *SaleHandler) RestoreSale(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.restoreSaleUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
