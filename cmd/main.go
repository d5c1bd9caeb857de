package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	brdhandler "github.com/Jamolkhon5/brd/internal/ai/brd/handler"
	brdservice "github.com/Jamolkhon5/brd/internal/ai/brd/service"
	"github.com/Jamolkhon5/brd/internal/ai/llm"
	"github.com/Jamolkhon5/brd/internal/auth"
	"github.com/Jamolkhon5/brd/internal/config"
	"github.com/Jamolkhon5/brd/internal/handler"
	"github.com/Jamolkhon5/brd/internal/repository"
	"github.com/Jamolkhon5/brd/internal/storage"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.NewConfig(".env")
	if err != nil {
		log.Fatal(err)
	}

	// Подключение к базе данных
	dbURL := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.PgHost, cfg.PgPort, cfg.PgUser, cfg.PgPassword, cfg.PgName)

	db, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// Создание таблиц
	_, err = db.Exec(`
        CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            email VARCHAR(255) NOT NULL UNIQUE,
            password_hash VARCHAR(255) NOT NULL,
            name VARCHAR(255) NOT NULL
        );

        CREATE TABLE IF NOT EXISTS groups (
            id SERIAL PRIMARY KEY,
            name VARCHAR(255) NOT NULL,
            created_by INTEGER NOT NULL REFERENCES users(id)
        );

        CREATE TABLE IF NOT EXISTS group_members (
            user_id INTEGER NOT NULL REFERENCES users(id),
            group_id INTEGER NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
            PRIMARY KEY (user_id, group_id)
        );

        CREATE TABLE IF NOT EXISTS projects (
            id SERIAL PRIMARY KEY,
            name VARCHAR(255) NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            group_id INTEGER NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
            created_by INTEGER NOT NULL REFERENCES users(id),
            prompt TEXT NOT NULL DEFAULT '',
            template BYTEA NOT NULL DEFAULT ''::bytea
        );

        CREATE TABLE IF NOT EXISTS documents (
            id SERIAL PRIMARY KEY,
            filename VARCHAR(255) NOT NULL,
            path VARCHAR(512) NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            summary_title TEXT NOT NULL DEFAULT '',
            summary_description TEXT NOT NULL DEFAULT '',
            project_id INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
            uploaded_by INTEGER NOT NULL REFERENCES users(id)
        )
    `)
	if err != nil {
		log.Fatal(err)
	}

	// Инициализация auth
	auth.Init(cfg.JwtSecret)

	// Хранилище загрузок
	uploads, err := storage.NewLocal(cfg.UploadDir)
	if err != nil {
		log.Fatal(err)
	}

	// Клиент сервиса генерации текста
	completer, err := llm.NewGroqClient(&llm.Settings{
		APIKey:  cfg.GroqApiKey,
		Model:   cfg.ModelName,
		BaseURL: cfg.GroqBaseUrl,
	})
	if err != nil {
		log.Fatal(err)
	}

	// Инициализация репозитория и хендлеров
	repo := repository.NewRepository(db)
	brdSvc := brdservice.NewService(completer)
	apiHandler := handler.NewHandler(repo, uploads, brdSvc)
	brdHandler := brdhandler.NewBRDHandler(repo, brdSvc)

	// Настройка роутера
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		apiHandler.RegisterRoutes(r)
		brdHandler.RegisterRoutes(r)
	})

	// Настройка и запуск сервера
	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: r,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown Server ...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}
	log.Println("Server exiting")
}
