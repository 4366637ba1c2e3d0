package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/talenta-go-api/internal/config"
	"github.com/noah-isme/talenta-go-api/internal/database"
	"github.com/noah-isme/talenta-go-api/internal/handler"
	"github.com/noah-isme/talenta-go-api/internal/middleware"
	"github.com/noah-isme/talenta-go-api/internal/policy"
	"github.com/noah-isme/talenta-go-api/internal/repository"
	"github.com/noah-isme/talenta-go-api/internal/router"
	"github.com/noah-isme/talenta-go-api/internal/service"
	"github.com/noah-isme/talenta-go-api/internal/token"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	validate := validator.New(validator.WithRequiredStructEnabled())
	tokens := token.NewService(cfg.JWTSecret, cfg.TokenTTL)
	engine := policy.NewDefaultEngine()
	courseCache := service.NewCourseCache(redisClient, cfg.CourseCacheTTL, logger)

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	moduleRepo := repository.NewModuleRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	profileFieldRepo := repository.NewProfileFieldRepository(db)

	authService := service.NewAuthService(userRepo, tokens, validate, logger)
	userService := service.NewUserService(userRepo, profileFieldRepo, engine, validate, logger)
	courseService := service.NewCourseService(courseRepo, moduleRepo, courseCache, engine, validate, logger)
	moduleService := service.NewModuleService(moduleRepo, courseRepo, courseCache, engine, validate, logger)
	scheduleService := service.NewScheduleService(scheduleRepo, courseRepo, userRepo, engine, validate, logger)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, userRepo, engine, validate, logger)
	attendanceService := service.NewAttendanceService(attendanceRepo, enrollmentRepo, scheduleRepo, engine, validate, logger)
	profileFieldService := service.NewProfileFieldService(profileFieldRepo, engine, validate, logger)

	authenticate := middleware.Authenticate(tokens)

	authHandler := handler.NewAuthHandler(authService, userService, authenticate, logger)
	userHandler := handler.NewUserHandler(userService, logger)
	courseHandler := handler.NewCourseHandler(courseService, moduleService, logger)
	scheduleHandler := handler.NewScheduleHandler(scheduleService, enrollmentService, attendanceService, logger)
	profileFieldHandler := handler.NewProfileFieldHandler(profileFieldService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:         authHandler,
		UserHandler:         userHandler,
		CourseHandler:       courseHandler,
		ScheduleHandler:     scheduleHandler,
		ProfileFieldHandler: profileFieldHandler,
		JWTMiddleware:       authenticate,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
