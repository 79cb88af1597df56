package handler

import (
	"github.com/gin-gonic/gin"

	appuser "github.com/xiebiao/libreria/internal/application/user"
	"github.com/xiebiao/libreria/internal/interface/http/dto"
	"github.com/xiebiao/libreria/internal/interface/http/middleware"
	"github.com/xiebiao/libreria/pkg/response"
)

// UserHandler 用户HTTP处理器
// 设计说明：
// 1. Handler只负责HTTP相关的事情：解析请求、调用应用层、返回响应
// 2. 不包含业务逻辑（业务逻辑在domain和application层）
// 3. 使用依赖注入，便于测试
type UserHandler struct {
	registerUseCase       *appuser.RegisterUseCase
	loginUseCase          *appuser.LoginUseCase
	createAdminUseCase    *appuser.CreateAdminUseCase
	deleteUserUseCase     *appuser.DeleteUserUseCase
	restoreUserUseCase    *appuser.RestoreUserUseCase
	changePasswordUseCase *appuser.ChangePasswordUseCase
}

// NewUserHandler 创建用户处理器
func NewUserHandler(
	registerUseCase *appuser.RegisterUseCase,
	loginUseCase *appuser.LoginUseCase,
	createAdminUseCase *appuser.CreateAdminUseCase,
	deleteUserUseCase *appuser.DeleteUserUseCase,
	restoreUserUseCase *appuser.RestoreUserUseCase,
	changePasswordUseCase *appuser.ChangePasswordUseCase,
) *UserHandler {
	return &UserHandler{
		registerUseCase:       registerUseCase,
		loginUseCase:          loginUseCase,
		createAdminUseCase:    createAdminUseCase,
		deleteUserUseCase:     deleteUserUseCase,
		restoreUserUseCase:    restoreUserUseCase,
		changePasswordUseCase: changePasswordUseCase,
	}
}

// Register 用户注册
// @Summary      用户注册
// @Description  创建普通用户账号,用户名全局唯一(含已删除记录)
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "注册信息"
// @Success      200 {object} response.Response{data=appuser.UserView} "注册成功"
// @Failure      400 {object} response.Response "参数错误"
// @Failure      409 {object} response.Response "用户已存在"
// @Router       /api/v1/auth/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	// 1. 绑定并验证参数
	// 学习要点：Gin的ShouldBindJSON会自动校验binding tag
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// 参数验证失败（如用户名过短、密码长度不足）
		response.ErrorWithCode(c, bindErrorCode, "参数错误: "+err.Error())
		return
	}

	// 2. 调用应用层用例
	// 学习要点：Handler不直接调用domain层，而是通过application层
	result, err := h.registerUseCase.Execute(c.Request.Context(), appuser.RegisterRequest{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Login 用户登录
// @Summary      用户登录
// @Description  校验用户名密码,签发Access Token
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "登录凭据"
// @Success      200 {object} response.Response{data=appuser.LoginResponse} "登录成功"
// @Failure      400 {object} response.Response "参数错误"
// @Failure      401 {object} response.Response "用户名或密码错误"
// @Router       /api/v1/auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, bindErrorCode, "参数错误: "+err.Error())
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), appuser.LoginRequest{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CreateAdmin 创建管理员
// @Summary      创建管理员
// @Description  管理员创建新的管理员账号
// @Tags         用户
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateAdminRequest true "管理员信息"
// @Success      200 {object} response.Response{data=appuser.UserView}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      401 {object} response.Response "未登录"
// @Failure      403 {object} response.Response "非管理员"
// @Failure      409 {object} response.Response "用户已存在"
// @Router       /api/v1/users [post]
func (h *UserHandler) CreateAdmin(c *gin.Context) {
	var req dto.CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, bindErrorCode, "参数错误: "+err.Error())
		return
	}

	result, err := h.createAdminUseCase.Execute(c.Request.Context(), appuser.CreateAdminRequest{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteUser 删除用户
// @Summary      删除用户
// @Description  管理员按ID软删除用户,被删除用户的Token随即失效
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "用户ID"
// @Success      200 {object} response.Response{data=appuser.UserView}
// @Failure      401 {object} response.Response "未登录"
// @Failure      403 {object} response.Response "非管理员"
// @Failure      404 {object} response.Response "用户不存在"
// @Failure      409 {object} response.Response "用户已处于删除状态"
// @Router       /api/v1/users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.deleteUserUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteMe 注销自己的账号
// @Summary      注销账号
// @Description  当前登录用户自助软删除,删除后Token立即失效
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=appuser.UserView}
// @Failure      401 {object} response.Response "未登录"
// @Router       /api/v1/users/me [delete]
func (h *UserHandler) DeleteMe(c *gin.Context) {
	// 目标用户来自Token,不接受任何参数
	userID := middleware.MustGetUserID(c)

	result, err := h.deleteUserUseCase.Execute(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// RestoreUser 恢复用户
// @Summary      恢复用户
// @Description  管理员恢复已删除的用户,原密码和角色保持不变
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "用户ID"
// @Success      200 {object} response.Response{data=appuser.UserView}
// @Failure      401 {object} response.Response "未登录"
// @Failure      403 {object} response.Response "非管理员"
// @Failure      404 {object} response.Response "用户不存在"
// @Failure      409 {object} response.Response "用户未处于删除状态"
// @Router       /api/v1/users/{id}/restore [post]
func (h *UserHandler) RestoreUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.restoreUserUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ChangePassword 修改密码
// @Summary      修改密码
// @Description  当前登录用户修改自己的密码,旧Token在过期前仍然有效
// @Tags         用户
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.ChangePasswordRequest true "新密码"
// @Success      200 {object} response.Response{data=appuser.UserView}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      401 {object} response.Response "未登录"
// @Router       /api/v1/users/password [put]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, bindErrorCode, "参数错误: "+err.Error())
		return
	}

	userID := middleware.MustGetUserID(c)

	result, err := h.changePasswordUseCase.Execute(c.Request.Context(), appuser.ChangePasswordRequest{
		UserID:      userID,
		NewPassword: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
