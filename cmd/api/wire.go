//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 教学说明：
// 1. Wire是Google开发的编译期依赖注入工具
// 2. 与运行时反射注入（如Spring的@Autowired）不同，Wire在编译期生成代码
// 3. 优势：零运行时开销、类型安全、编译期检测循环依赖
//
// Wire工作流程：
// Step 1: 编写wire.go（本文件），定义Providers和Injector
// Step 2: 运行 `wire gen ./cmd/api`
// Step 3: Wire生成wire_gen.go，包含完整的依赖创建代码
// Step 4: main.go调用wire_gen.go中的InitializeApp()
//
// 核心概念：
// - Provider: 提供依赖的构造函数（如NewUserRepository）
// - Injector: 声明最终要构造的目标类型（如*gin.Engine）
// - wire.Build(): 告诉Wire如何组装依赖链

package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/wire"

	appbook "github.com/xiebiao/libreria/internal/application/book"
	appsale "github.com/xiebiao/libreria/internal/application/sale"
	appuser "github.com/xiebiao/libreria/internal/application/user"
	"github.com/xiebiao/libreria/internal/domain/book"
	"github.com/xiebiao/libreria/internal/domain/user"
	"github.com/xiebiao/libreria/internal/infrastructure/config"
	"github.com/xiebiao/libreria/internal/infrastructure/persistence/sqlite"
	"github.com/xiebiao/libreria/internal/interface/http/handler"
	"github.com/xiebiao/libreria/internal/interface/http/middleware"
	"github.com/xiebiao/libreria/pkg/jwt"
	"github.com/xiebiao/libreria/pkg/metrics"
)

// ========================================
// Wire Provider Sets (依赖分组)
// ========================================

// infrastructureSet 基础设施层依赖
// 包含：配置加载、数据库连接
var infrastructureSet = wire.NewSet(
	config.Load, // 加载配置文件
	sqlite.NewDB,
)

// repositorySet 仓储层依赖
// 包含：所有Repository的构造函数和事务管理器
var repositorySet = wire.NewSet(
	sqlite.NewUserRepository,
	sqlite.NewBookRepository,
	sqlite.NewSaleRepository,
	sqlite.NewTxManager,
)

// domainSet 领域层依赖
// 包含：所有领域服务的构造函数
// 说明：销售没有领域服务，创建销售的事务编排在应用层用例中
var domainSet = wire.NewSet(
	user.NewService,
	book.NewService,
)

// applicationSet 应用层依赖
// 包含：Handler用到的所有Use Case构造函数
// 说明：BootstrapAdminUseCase只在main的启动流程中使用，
// 不在引擎的依赖链上，所以不在这里列出（Wire会拒绝未使用的Provider）
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewCreateAdminUseCase,
	appuser.NewDeleteUserUseCase,
	appuser.NewRestoreUserUseCase,
	appuser.NewChangePasswordUseCase,

	appbook.NewCreateBookUseCase,
	appbook.NewListBooksUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,
	appbook.NewRestoreBookUseCase,

	appsale.NewCreateSaleUseCase,
	appsale.NewListSalesUseCase,
	appsale.NewListUserSalesUseCase,
	appsale.NewDeleteSaleUseCase,
	appsale.NewRestoreSaleUseCase,
)

// middlewareSet 中间件依赖
// 包含：JWT管理器、认证中间件
var middlewareSet = wire.NewSet(
	provideJWTManager,            // JWT管理器（需要从config提取参数）
	middleware.NewAuthMiddleware, // 认证中间件
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewUserHandler,
	handler.NewBookHandler,
	handler.NewSaleHandler,
)

// ========================================
// Custom Providers (自定义Provider)
// ========================================

// provideJWTManager 从配置创建JWT管理器
// 教学要点：config.Config 包含多个字段，但jwt.NewManager只需要JWT相关的配置
// Wire无法自动知道如何从Config提取参数，所以需要手动编写Provider
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
	)
}

// provideGinEngine 创建并配置Gin引擎
// 路由表与main.go共用registerRoutes，避免两条装配路径各自维护一份
func provideGinEngine(
	cfg *config.Config,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	saleHandler *handler.SaleHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AddAllowHeaders("Authorization")
	r.Use(cors.New(corsCfg))

	// InitMetrics有重复注册保护，手动DI路径已初始化时这里是空操作
	if cfg.Metrics.Enabled {
		metrics.InitMetrics()
		r.Use(middleware.Metrics())
	}
	// Tracer Provider的初始化（及其shutdown）属于启动流程，
	// 这里只挂中间件；Provider未初始化时Span是空操作
	if cfg.Tracing.Enabled {
		r.Use(middleware.Tracing(cfg.Tracing.ServiceName))
	}

	registerRoutes(r, cfg, userHandler, bookHandler, saleHandler, authMiddleware)

	return r
}

// ========================================
// Wire Injector (依赖注入器)
// ========================================
// 教学说明：
// InitializeApp是Wire的入口函数（Injector）
//
// wire.Build() 告诉Wire需要哪些Provider来构建*gin.Engine
// Wire会自动分析依赖关系：
//
// 依赖链示例：
// *gin.Engine 需要 → *handler.SaleHandler
// *handler.SaleHandler 需要 → *appsale.CreateSaleUseCase
// *appsale.CreateSaleUseCase 需要 → sale.Repository + book.Repository + *sqlite.TxManager
// sale.Repository 需要 → *gorm.DB
// *gorm.DB 需要 → *config.Config
//
// Wire会按正确的顺序调用所有构造函数

// InitializeApp 初始化整个应用
// 返回：配置好的Gin引擎
// 错误：如果任何依赖创建失败
func InitializeApp() (*gin.Engine, error) {
	// wire.Build 的参数是所有的 Provider
	// Wire会在编译期分析依赖关系，生成初始化代码
	wire.Build(
		// 基础设施层
		infrastructureSet,

		// 仓储层
		repositorySet,

		// 领域层
		domainSet,

		// 应用层
		applicationSet,

		// 中间件层
		middlewareSet,

		// 接口层
		handlerSet,

		// Gin引擎
		provideGinEngine,
	)

	// 返回值类型必须与wire.Build的最终产出一致
	// Wire会在wire_gen.go中生成实际的初始化代码
	// 这里的返回值是占位符，实际运行时会被wire_gen.go替代
	return nil, nil
}
