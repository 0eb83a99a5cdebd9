package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/inkwell/backend/api/handler"
)

type Handlers struct {
	Auth    *apiHandler.AuthHandler
	Post    *apiHandler.PostHandler
	Comment *apiHandler.CommentHandler
	User    *apiHandler.UserHandler
	Upload  *apiHandler.UploadHandler
	Health  *apiHandler.HealthHandler
}

// New wires every route. Only routes wrapped in authMiddleware pass through
// the request gate; public reads stay public.
func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/auth/register", handlers.Auth.Register)
	r.POST("/api/auth/login", handlers.Auth.Login)
	r.GET("/api/auth/profile", authMiddleware(handlers.Auth.GetProfile))
	r.PATCH("/api/auth/profile", authMiddleware(handlers.Auth.UpdateProfile))

	// Posts
	r.GET("/api/posts", handlers.Post.List)
	r.GET("/api/posts/user/{userId}", handlers.Post.ListByUser)
	r.GET("/api/posts/{id}", handlers.Post.Get)
	r.POST("/api/posts", authMiddleware(handlers.Post.Create))
	r.PATCH("/api/posts/{id}", authMiddleware(handlers.Post.Update))
	r.DELETE("/api/posts/{id}", authMiddleware(handlers.Post.Delete))

	// Comments
	r.GET("/api/comments", handlers.Comment.List)
	r.GET("/api/comments/post/{postId}", handlers.Comment.ListByPost)
	r.GET("/api/comments/user/{userId}", handlers.Comment.ListByUser)
	r.GET("/api/comments/{id}", handlers.Comment.Get)
	r.POST("/api/comments", authMiddleware(handlers.Comment.Create))
	r.PATCH("/api/comments/{id}", authMiddleware(handlers.Comment.Update))
	r.DELETE("/api/comments/{id}", authMiddleware(handlers.Comment.Delete))

	// Users (public reads)
	r.GET("/api/users", handlers.User.List)
	r.GET("/api/users/{id}", handlers.User.Get)

	// Uploaded images
	r.GET("/api/uploads/{name}", handlers.Upload.Serve)

	return r
}
