package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homestagram-backend/config"
	"homestagram-backend/internal/api/posting"
	"homestagram-backend/internal/api/product"
	"homestagram-backend/internal/api/user"
	"homestagram-backend/internal/identity"
	"homestagram-backend/internal/middleware"
	"homestagram-backend/internal/repository/mysql"
	"homestagram-backend/internal/service"
	"homestagram-backend/internal/storage"
	"homestagram-backend/internal/util"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

func main() {
	// 初始化配置
	config.Init()

	// 初始化日志
	util.InitLogger(config.AppConfig.LogLevel)
	defer util.Logger.Sync()
	zap.ReplaceGlobals(util.Logger)

	util.Logger.Info("应用程序启动")

	// 设置数据库连接字符串
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		config.AppConfig.DBUser,
		config.AppConfig.DBPassword,
		config.AppConfig.DBHost,
		config.AppConfig.DBPort,
		config.AppConfig.DBName)

	// 连接数据库
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		util.Logger.Fatal("连接数据库失败", zap.Error(err))
	}
	defer db.Close()

	// 测试数据库连接
	if err := db.Ping(); err != nil {
		util.Logger.Fatal("数据库连接测试失败", zap.Error(err))
	}
	util.Logger.Info("数据库连接成功")

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	// 注册自定义验证器
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("nickname", util.ValidateNickname)
	}

	// 初始化对象存储
	store := newStorage()

	// 初始化 Kakao 身份适配器
	kakaoClient := identity.NewClient(config.AppConfig.KakaoAPIBaseURL)

	// 初始化存储库、服务和处理器
	userRepo := mysql.NewUserRepository(db)
	postingRepo := mysql.NewPostingRepository(db)
	productRepo := mysql.NewProductRepository(db)

	userService := service.NewUserService(userRepo, productRepo, kakaoClient)
	postingService := service.NewPostingService(postingRepo, store)
	productService := service.NewProductService(productRepo)

	authHandler := user.NewAuthHandler(userService)
	userHandler := user.NewUserHandler(userService)
	postingHandler := posting.NewPostingHandler(postingService)
	productHandler := product.NewProductHandler(productService)

	// 初始化错误监控
	errorMonitor := middleware.NewErrorMonitor()

	// 设置 Gin 路由
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.ErrorMonitorMiddleware(errorMonitor))

	// 配置 CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{config.AppConfig.FrontendURL}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// 需要认证的接口共用同一个门卫
	auth := middleware.AuthMiddleware(userService)

	// 用户相关路由
	r.POST("/users/signin", authHandler.SignIn)
	r.POST("/users/:user_id/nickname", authHandler.RegisterNickname)
	r.GET("/users/follow", auth, userHandler.ListFollowing)
	r.POST("/users/follow", auth, userHandler.ToggleFollow)
	r.GET("/users/purchase-history", auth, userHandler.ListPurchases)
	r.POST("/users/purchase-history", auth, userHandler.CreatePurchase)

	// 帖子相关路由
	r.POST("/posting", auth, postingHandler.CreatePosting)
	r.GET("/postings/feed/public", postingHandler.PublicFeed)
	r.GET("/postings/feed/private", auth, postingHandler.PrivateFeed)
	r.POST("/postings/:posting_id/bookmark", auth, postingHandler.ToggleBookmark)
	r.GET("/postings/list", auth, postingHandler.ListBookmarks)
	r.POST("/postings/:posting_id/comment", auth, postingHandler.CreateComment)
	r.PATCH("/postings/comment/:comment_id", auth, postingHandler.UpdateComment)
	r.DELETE("/postings/comment/:comment_id", auth, postingHandler.DeleteComment)

	// 商品相关路由
	r.GET("/products/:product_id/detail", productHandler.GetProductDetail)

	srv := &http.Server{
		Addr:    ":8080",
		Handler: r,
	}

	// 在一个新的 goroutine 中启动服务器
	go func() {
		util.Logger.Info("服务器正在启动，监听端口 :8080")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			util.Logger.Fatal("启动服务器失败", zap.Error(err))
		}
	}()

	// 等待中断信号以优雅地关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	util.Logger.Info("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		util.Logger.Fatal("服务器强制关闭", zap.Error(err))
	}

	util.Logger.Info("服务器已优雅关闭")
}

// newStorage 按配置选择对象存储后端
func newStorage() storage.Storage {
	switch config.AppConfig.StorageBackend {
	case "gcs":
		store, err := storage.NewGCSClient(
			config.AppConfig.GCSProjectID,
			config.AppConfig.GCSBucketName,
			config.AppConfig.GCSCredentialsFile)
		if err != nil {
			util.Logger.Fatal("初始化GCS存储失败", zap.Error(err))
		}
		return store
	case "local":
		store, err := storage.NewLocalStorage(config.AppConfig.LocalStoragePath)
		if err != nil {
			util.Logger.Fatal("初始化本地存储失败", zap.Error(err))
		}
		return store
	default:
		store, err := storage.NewS3Client(config.AppConfig.S3Region, config.AppConfig.S3Bucket)
		if err != nil {
			util.Logger.Fatal("初始化S3存储失败", zap.Error(err))
		}
		return store
	}
}
