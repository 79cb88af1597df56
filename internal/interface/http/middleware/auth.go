package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/libreria/internal/domain/user"
	apperrors "github.com/xiebiao/libreria/pkg/errors"
	"github.com/xiebiao/libreria/pkg/jwt"
	"github.com/xiebiao/libreria/pkg/response"
)

// AuthMiddleware JWT认证中间件
// 设计说明：
// 1. 从Header提取并验证Token
// 2. 每次请求回查用户表：Token无法主动失效，用户被删除后旧Token立即作废
// 3. 将user_id、is_admin注入Context，is_admin以库中当前值为准（不信任Token声明）
type AuthMiddleware struct {
	jwtManager *jwt.Manager
	userRepo   user.Repository
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(jwtManager *jwt.Manager, userRepo user.Repository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		userRepo:   userRepo,
	}
}

// RequireAuth 要求登录
// 使用方式：
//
//	authorized := r.Group("/api/v1")
//	authorized.Use(authMiddleware.RequireAuth())
//	authorized.GET("/books", bookHandler.ListBooks)
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. 从Header提取Token
		// 格式：Authorization: Bearer <token>
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}

		// 2. 解析Token格式
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Error(c, apperrors.ErrInvalidToken)
			c.Abort()
			return
		}

		// 3. 验证Token并解析Claims
		claims, err := m.jwtManager.ParseToken(parts[1])
		if err != nil {
			response.Error(c, err) // 自动处理ErrTokenExpired、ErrInvalidToken
			c.Abort()
			return
		}

		userID, err := claims.SubjectID()
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		// 4. 回查用户状态
		// Token签发后用户可能已被删除，仅凭签名验证会放行幽灵用户
		u, err := m.userRepo.FindByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				// 用户不存在等同于Token无效，不向客户端暴露区别
				response.Error(c, apperrors.ErrInvalidToken)
			} else {
				response.Error(c, err)
			}
			c.Abort()
			return
		}
		if u.Deleted() {
			response.Error(c, apperrors.ErrUserDeleted)
			c.Abort()
			return
		}

		// 5. 将用户信息注入到Context（后续Handler可以使用）
		c.Set("user_id", u.ID)
		c.Set("is_admin", u.IsAdmin)

		c.Next()
	}
}

// RequireAdmin 要求管理员身份
// 必须挂在RequireAuth之后，读取其注入的is_admin标志：
//
//	admin := r.Group("/api/v1", authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			response.Error(c, apperrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

// =========================================
// Context辅助函数（供Handler使用）
// =========================================

// GetUserID 从Context获取当前登录用户ID
// 未登录（未经过RequireAuth）时返回0
func GetUserID(c *gin.Context) uint {
	if userID, exists := c.Get("user_id"); exists {
		if uid, ok := userID.(uint); ok {
			return uid
		}
	}
	return 0
}

// IsAdmin 从Context获取当前用户是否为管理员
func IsAdmin(c *gin.Context) bool {
	if isAdmin, exists := c.Get("is_admin"); exists {
		if admin, ok := isAdmin.(bool); ok {
			return admin
		}
	}
	return false
}

// MustGetUserID 从Context获取用户ID（如果不存在则panic）
// 说明：用于已经通过RequireAuth中间件的Handler
func MustGetUserID(c *gin.Context) uint {
	userID := GetUserID(c)
	if userID == 0 {
		panic("user_id not found in context")
	}
	return userID
}

// =========================================
// 学习要点总结
// =========================================
//
// 1. c.Abort() vs c.Next()
//    - c.Abort(): 终止后续Handler执行（用于鉴权失败）
//    - c.Next(): 继续执行后续Handler
//
// 2. Context传递数据
//    - c.Set("key", value): 写入数据
//    - c.Get("key"): 读取数据
//    - 数据仅在当前请求的生命周期内有效
//
// 3. 无状态Token的失效策略
//    - 本服务不维护Token黑名单，Token在有效期内签名永远合法
//    - 删除用户是唯一的强制下线手段：中间件每次回查用户状态
//    - 代价是每个请求多一次主键查询，SQLite下可以接受
