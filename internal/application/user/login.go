package user

import (
	"context"

	"github.com/xiebiao/libreria/internal/domain/user"
	"github.com/xiebiao/libreria/pkg/jwt"
)

// LoginUseCase 用户登录用例
// 设计说明：
// 1. 验证用户名密码（领域服务负责，凭据错误不区分是哪一项）
// 2. 生成JWT Access Token，is_admin作为自定义Claim随Token下发
// 3. Token无法主动失效，用户状态以每次请求的回查为准（见middleware）
type LoginUseCase struct {
	userService user.Service
	jwtManager  *jwt.Manager
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(userService user.Service, jwtManager *jwt.Manager) *LoginUseCase {
	return &LoginUseCase{
		userService: userService,
		jwtManager:  jwtManager,
	}
}

// LoginRequest 登录请求DTO
type LoginRequest struct {
	Username string
	Password string
}

// LoginResponse 登录响应DTO（OAuth2风格的Bearer Token）
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"` // 固定为bearer
	ExpiresIn   int64  `json:"expires_in"` // 有效期（秒）
}

// Execute 执行登录
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	// 1. 凭据认证（已删除用户即使密码正确也会被拒绝）
	u, err := uc.userService.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	// 2. 签发Access Token
	token, err := uc.jwtManager.GenerateToken(u.ID, u.IsAdmin)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresIn:   token.ExpiresIn,
	}, nil
}
