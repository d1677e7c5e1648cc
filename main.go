package main

import (
	"log"
	"time"

	"umastagram/config"
	"umastagram/handler"
	"umastagram/middleware"
	"umastagram/service"
	"umastagram/utils"

	"github.com/gin-gonic/gin"
)

func init() {
	// 设置时区为 UTC（推荐服务端统一使用 UTC）
	time.Local = time.UTC
}

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化数据库
	if err := utils.InitDB(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer utils.CloseDB()

	// 同步表结构
	if err := utils.MigrateDB(utils.GetDB()); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// 初始化 Redis
	if err := utils.InitRedis(cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer utils.CloseRedis()

	// 初始化认证中间件
	middleware.InitAuth(cfg.JWTSecret, cfg.JWTExpireHour)

	// 创建服务（启动时装配一次，不在请求中重建）
	userSvc := service.NewUserService(utils.GetDB())
	frSvc := service.NewFriendRequestService(utils.GetDB(), userSvc)
	followSvc := service.NewFollowService(utils.GetDB(), userSvc)
	postSvc := service.NewPostService(utils.GetDB(), userSvc)
	umaSvc := service.NewUmaService(utils.GetDB())
	horseSvc := service.NewHorseService(utils.GetDB())
	notifSvc := service.NewNotificationService(utils.GetDB())
	oauthSvc := service.NewOAuthService(utils.GetRedis(), userSvc, cfg)

	// 创建 WebSocket Hub 并接入通知推送
	hub := handler.NewHub(utils.GetRedis())
	notifSvc.SetHubNotifier(hub)

	// 创建处理器
	userHandler := handler.NewUserHandler(userSvc)
	friendHandler := handler.NewFriendHandler(frSvc, followSvc, userSvc, notifSvc)
	postHandler := handler.NewPostHandler(postSvc, notifSvc)
	umaHandler := handler.NewUmaHandler(umaSvc)
	horseHandler := handler.NewHorseHandler(horseSvc)
	notifHandler := handler.NewNotificationHandler(notifSvc)
	oauthHandler := handler.NewOAuthHandler(oauthSvc, cfg.WebSuccessRedirectURL)

	// 创建 Gin 路由
	r := gin.Default()

	// 注册统一错误处理中间件
	r.Use(middleware.ErrorHandlerMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, gin.H{"status": "ok"})
	})

	// WebSocket 连接（token query 参数认证，不走 HTTP 中间件）
	r.GET("/ws", handler.HandleWebSocket(hub))

	// 认证相关（公开）
	auth := r.Group("/auth")
	{
		auth.POST("/signup", userHandler.Signup)
		auth.POST("/login", userHandler.Login)
		auth.GET("/:provider/callback", oauthHandler.Callback) // 必须在 /:provider/:platform 之前
		auth.GET("/:provider/:platform", oauthHandler.Login)
	}

	// HTTP API 路由组（需要认证）
	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware())
	{
		// 用户
		api.GET("/users/:user_id", userHandler.GetUser)

		// 好友申请 / 关注
		api.POST("/friends/requests", friendHandler.SendFriendRequest)
		api.POST("/friends/requests/accept", friendHandler.AcceptFriendRequest)
		api.POST("/friends/requests/withdraw", friendHandler.WithdrawFriendRequest)
		api.POST("/friends/requests/reject", friendHandler.RejectFriendRequest)
		api.GET("/friends/requests", friendHandler.GetFriendRequests)
		api.POST("/friends/follow", friendHandler.Follow)
		api.POST("/friends/unfollow", friendHandler.Unfollow)
		api.GET("/friends/followers/:user_id", friendHandler.GetUserFollowers)

		// 帖子 / 点赞 / 评论
		api.POST("/posts", postHandler.CreatePost)
		api.GET("/posts", postHandler.GetAllPosts)
		api.GET("/posts/user/:user_id", postHandler.GetPostsByUser)
		api.GET("/posts/liked", postHandler.GetLikedPosts)
		api.GET("/posts/:id", postHandler.GetPostByID)
		api.DELETE("/posts/:id", postHandler.DeletePost)
		api.POST("/posts/:id/like", postHandler.LikePost)
		api.POST("/posts/:id/unlike", postHandler.UnlikePost)
		api.POST("/posts/:id/comments", postHandler.CreateComment)
		api.GET("/posts/:id/comments", postHandler.GetComments)

		// 图鉴（只读）
		api.GET("/umas", umaHandler.GetAllUmas)
		api.GET("/umas/:id", umaHandler.GetUmaByID)
		api.GET("/horses", horseHandler.GetAllHorses)
		api.GET("/horses/:id", horseHandler.GetHorseByID)

		// 通知
		api.GET("/notifications", notifHandler.GetNotifications)
		api.POST("/notifications/read-all", notifHandler.MarkAllAsRead)
	}

	// 启动服务
	log.Printf("🚀 umastagram service starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
