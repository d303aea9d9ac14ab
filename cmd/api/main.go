package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "library-backend/internal/adapter/http"
	"library-backend/internal/adapter/middleware"
	"library-backend/internal/adapter/repository/mysql"
	"library-backend/internal/config"
	bookDomain "library-backend/internal/domain/book"
	borrowDomain "library-backend/internal/domain/borrow"
	userDomain "library-backend/internal/domain/user"
	"library-backend/internal/infrastructure/cache"
	"library-backend/internal/infrastructure/db"
	authUC "library-backend/internal/usecase/auth"
	bookUC "library-backend/internal/usecase/book"
	borrowUC "library-backend/internal/usecase/borrow"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	if err := gdb.AutoMigrate(&userDomain.User{}, &bookDomain.Book{}, &borrowDomain.Borrow{}); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	users := mysql.NewUserRepository(gdb)
	books := mysql.NewBookRepository(gdb)
	borrows := mysql.NewBorrowRepository(gdb)
	uow := mysql.NewGormUoW(gdb)

	authUsecase := authUC.NewUsecase(users, []byte(cfg.JWTSecret), cfg.JWTTokenTTL)
	borrowUsecase := borrowUC.NewUsecase(borrows, uow)
	bookUsecase := bookUC.NewUsecase(books, uow)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := authUsecase.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPass); err != nil {
		log.Fatalf("bootstrap admin: %v", err)
	}
	cancel()

	h := httpadp.NewHandler()
	authHandler := httpadp.NewAuthHandler(authUsecase)
	bookHandler := httpadp.NewBookHandler(bookUsecase)
	borrowHandler := httpadp.NewBorrowHandler(borrowUsecase)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	jwt := middleware.JWT([]byte(cfg.JWTSecret))
	admin := middleware.RequireRole(string(userDomain.RoleAdmin))
	member := middleware.RequireRole(string(userDomain.RoleMember))
	idemp := middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	e.GET("/health", h.Health)

	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/login", authHandler.Login)

	// catalog reads are open; writes are admin-only
	e.GET("/books", bookHandler.ListBooks)
	e.GET("/books/:book_id", bookHandler.GetBook)
	e.POST("/books", bookHandler.CreateBook, jwt, admin)
	e.PUT("/books/:book_id", bookHandler.UpdateBook, jwt, admin)
	e.DELETE("/books/:book_id", bookHandler.DeleteBook, jwt, admin)

	b := e.Group("/borrows", jwt)
	b.POST("", borrowHandler.RequestBorrow, member, idemp)
	b.POST("/:borrow_id/approve", borrowHandler.ApproveBorrow, admin, idemp)
	b.POST("/:borrow_id/reject", borrowHandler.RejectBorrow, admin, idemp)
	b.POST("/:borrow_id/return", borrowHandler.ReturnBorrow, member, idemp)
	b.GET("", borrowHandler.ListBorrows)
	b.GET("/:borrow_id", borrowHandler.GetBorrow)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
