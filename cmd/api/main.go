package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/xiebiao/libreria/docs" // swag生成的API文档(swag init)
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
	"github.com/xiebiao/libreria/pkg/response"
	"github.com/xiebiao/libreria/pkg/tracing"
)

// @title           Gestor de inventario para librerias
// @version         1.0
// @description     书店库存管理API：图书、销售与用户管理，全部删除均为软删除且可恢复。
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
// @description     格式：Bearer <token>

// main 主程序入口
// 说明：手动依赖注入（cmd/api/wire.go提供Wire版本，两者组装的依赖链一致）
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 数据库文件: %s\n", cfg.Database.Path)

	// 2. 初始化可观测性组件
	if cfg.Metrics.Enabled {
		metrics.InitMetrics()
		fmt.Printf("✓ Prometheus指标已注册\n")
	}

	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(
			cfg.Tracing.ServiceName,
			cfg.Tracing.Endpoint,
			cfg.Tracing.SampleRatio,
		)
		if err != nil {
			log.Fatalf("初始化链路追踪失败: %v", err)
		}
		defer shutdown(context.Background())
		fmt.Printf("✓ 链路追踪已启用: %s\n", cfg.Tracing.Endpoint)
	}

	// 3. 初始化数据库连接（含表结构迁移）
	db, err := sqlite.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	// 4. 依赖注入（手动组装）
	// 学习要点：依赖注入链
	// Repository ← Service ← UseCase ← Handler

	// 基础设施层
	userRepo := sqlite.NewUserRepository(db)
	bookRepo := sqlite.NewBookRepository(db)
	saleRepo := sqlite.NewSaleRepository(db)
	txManager := sqlite.NewTxManager(db)
	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpire)

	// 领域层
	userService := user.NewService(userRepo)
	bookService := book.NewService(bookRepo)

	// 应用层
	registerUseCase := appuser.NewRegisterUseCase(userService)
	loginUseCase := appuser.NewLoginUseCase(userService, jwtManager)
	createAdminUseCase := appuser.NewCreateAdminUseCase(userService)
	deleteUserUseCase := appuser.NewDeleteUserUseCase(userService)
	restoreUserUseCase := appuser.NewRestoreUserUseCase(userService)
	changePasswordUseCase := appuser.NewChangePasswordUseCase(userService)
	bootstrapAdminUseCase := appuser.NewBootstrapAdminUseCase(userService, userRepo)

	createBookUseCase := appbook.NewCreateBookUseCase(bookService)
	listBooksUseCase := appbook.NewListBooksUseCase(bookService)
	getBookUseCase := appbook.NewGetBookUseCase(bookService)
	updateBookUseCase := appbook.NewUpdateBookUseCase(bookService)
	deleteBookUseCase := appbook.NewDeleteBookUseCase(bookService)
	restoreBookUseCase := appbook.NewRestoreBookUseCase(bookService)

	createSaleUseCase := appsale.NewCreateSaleUseCase(saleRepo, bookRepo, txManager)
	listSalesUseCase := appsale.NewListSalesUseCase(saleRepo)
	listUserSalesUseCase := appsale.NewListUserSalesUseCase(saleRepo)
	deleteSaleUseCase := appsale.NewDeleteSaleUseCase(saleRepo)
	restoreSaleUseCase := appsale.NewRestoreSaleUseCase(saleRepo)

	// 接口层
	userHandler := handler.NewUserHandler(
		registerUseCase,
		loginUseCase,
		createAdminUseCase,
		deleteUserUseCase,
		restoreUserUseCase,
		changePasswordUseCase,
	)
	bookHandler := handler.NewBookHandler(
		createBookUseCase,
		listBooksUseCase,
		getBookUseCase,
		updateBookUseCase,
		deleteBookUseCase,
		restoreBookUseCase,
	)
	saleHandler := handler.NewSaleHandler(
		createSaleUseCase,
		listSalesUseCase,
		listUserSalesUseCase,
		deleteSaleUseCase,
		restoreSaleUseCase,
	)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)

	// 5. 播种默认管理员
	// 幂等：库里已有管理员时跳过
	created, err := bootstrapAdminUseCase.Execute(
		context.Background(),
		cfg.Bootstrap.AdminUsername,
		cfg.Bootstrap.AdminPassword,
	)
	if err != nil {
		log.Fatalf("播种默认管理员失败: %v", err)
	}
	if created {
		fmt.Printf("✓ 默认管理员已创建: %s\n", cfg.Bootstrap.AdminUsername)
	} else {
		fmt.Printf("✓ 已存在管理员，跳过播种\n")
	}

	// 6. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	// CORS：原型阶段全放开，生产环境应收紧Origin白名单
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AddAllowHeaders("Authorization")
	r.Use(cors.New(corsCfg))

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics())
	}
	if cfg.Tracing.Enabled {
		r.Use(middleware.Tracing(cfg.Tracing.ServiceName))
	}

	// 7. 注册路由
	registerRoutes(r, cfg, userHandler, bookHandler, saleHandler, authMiddleware)

	// 8. 启动服务
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Printf("\n🚀 服务启动成功！\n")
	fmt.Printf("   访问地址: http://localhost%s\n", addr)
	fmt.Printf("   API文档:  http://localhost%s/swagger/index.html\n", addr)
	fmt.Printf("   健康检查: http://localhost%s/healthz\n", addr)
	if cfg.Metrics.Enabled {
		fmt.Printf("   指标端点: http://localhost%s/metrics\n", addr)
	}
	fmt.Printf("\n按Ctrl+C停止服务\n\n")

	if err := r.Run(addr); err != nil {
		log.Fatalf("启动服务失败: %v", err)
	}
}

// registerRoutes 注册路由
// 权限分三档：公开（注册/登录）、登录用户、管理员
func registerRoutes(
	r *gin.Engine,
	cfg *config.Config,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	saleHandler *handler.SaleHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// 欢迎页
	r.GET("/", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "Bienvenido al gestor de inventario para librerias",
		})
	})

	// 健康检查
	r.GET("/healthz", func(c *gin.Context) {
		response.Success(c, gin.H{
			"status": "healthy",
		})
	})

	// Prometheus指标端点
	if cfg.Metrics.Enabled {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	// Swagger文档
	// 访问 http://localhost:8080/swagger/index.html 查看API文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API路由组
	v1 := r.Group("/api/v1")
	{
		// 认证模块（公开接口，不需要登录）
		auth := v1.Group("/auth")
		{
			auth.POST("/register", userHandler.Register)
			auth.POST("/login", userHandler.Login)
		}

		// 图书模块（读操作登录即可，写操作仅管理员）
		books := v1.Group("/books")
		books.Use(authMiddleware.RequireAuth())
		{
			books.GET("", bookHandler.ListBooks)
			books.GET("/:id", bookHandler.GetBook)
			books.POST("", authMiddleware.RequireAdmin(), bookHandler.CreateBook)
			books.PUT("/:id", authMiddleware.RequireAdmin(), bookHandler.UpdateBook)
			books.DELETE("/:id", authMiddleware.RequireAdmin(), bookHandler.DeleteBook)
			books.POST("/:id/restore", authMiddleware.RequireAdmin(), bookHandler.RestoreBook)
		}

		// 销售模块（下单和查自己的流水登录即可，其余仅管理员）
		sales := v1.Group("/sales")
		sales.Use(authMiddleware.RequireAuth())
		{
			sales.POST("", saleHandler.CreateSale)
			sales.GET("", authMiddleware.RequireAdmin(), saleHandler.ListSales)
			sales.GET("/user", saleHandler.ListMySales)
			sales.DELETE("/:id", authMiddleware.RequireAdmin(), saleHandler.DeleteSale)
			sales.POST("/:id/restore", authMiddleware.RequireAdmin(), saleHandler.RestoreSale)
		}

		// 用户模块（自助操作登录即可，管理操作仅管理员）
		users := v1.Group("/users")
		users.Use(authMiddleware.RequireAuth())
		{
			users.POST("", authMiddleware.RequireAdmin(), userHandler.CreateAdmin)
			users.DELETE("/me", userHandler.DeleteMe)
			users.DELETE("/:id", authMiddleware.RequireAdmin(), userHandler.DeleteUser)
			users.POST("/:id/restore", authMiddleware.RequireAdmin(), userHandler.RestoreUser)
			users.PUT("/password", userHandler.ChangePassword)
		}
	}
}
