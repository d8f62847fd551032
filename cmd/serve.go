package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	httpHdlr "wikiicp/handler/http"
	"wikiicp/src/core/wiki"
	"wikiicp/src/log"
	"wikiicp/src/openai"
	"wikiicp/src/storage/meili"
	"wikiicp/src/storage/postgres/contentctrl"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the knowledge-base API server",
	Long:  `The serve command starts the HTTP server exposing the search and assist endpoints.`,
	Run:   RunServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	settingDefaultConfig()
}

func RunServer(cmd *cobra.Command, args []string) {
	store, err := buildContentStore()
	if err != nil {
		log.Error(err, "Failed to initialize content store")
		return
	}

	cfg := wiki.Config{
		ArticleLimit:  viper.GetInt("search.article_limit"),
		TutorialLimit: viper.GetInt("search.tutorial_limit"),
		Model:         viper.GetString("ai.model"),
		Temperature:   viper.GetFloat64("ai.temperature"),
		MaxTokens:     viper.GetInt("ai.max_tokens"),
		SystemPrompt:  viper.GetString("ai.system_prompt"),
		MessageLength: viper.GetInt("ai.message_length"),
	}

	timeout, err := time.ParseDuration(viper.GetString("ai.timeout"))
	if err != nil {
		timeout = openai.DefaultTimeout
	}
	provider := openai.NewClient(openai.Config{
		Endpoint:     viper.GetString("ai.endpoint"),
		Model:        cfg.Model,
		SystemPrompt: cfg.SystemPrompt,
		Temperature:  cfg.Temperature,
		MaxTokens:    cfg.MaxTokens,
	}, &http.Client{Timeout: timeout})

	// The key is static per deployment, so one lookup serves the process.
	apiKey := sync.OnceValue(func() string {
		return strings.TrimSpace(viper.GetString("ai.api_key"))
	})

	searchService := wiki.NewSearchService(store)
	assistService := wiki.NewAssistService(store, searchService, provider, cfg, apiKey)

	handler := httpHdlr.NewHandler(searchService, assistService, cfg)

	// Setup gin router
	r := gin.Default()
	r.Use(httpHdlr.RequestID())

	// Register routes
	handler.RegisterRoutes(r)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + viper.GetString("server.port"),
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(err, "Failed to start server")
			return
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Parse shutdown timeout
	shutdownTimeout, err := time.ParseDuration(viper.GetString("server.shutdown_timeout"))
	if err != nil {
		log.Error(err, "Invalid shutdown timeout, using default 5s")
		shutdownTimeout = 5 * time.Second
	}

	// Create context with timeout for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		log.Error(err, "Server forced to shutdown")
	}

	log.Info("Server exited")
}

// buildContentStore picks the store backend from configuration.
func buildContentStore() (wiki.ContentStore, error) {
	driver := viper.GetString("store.driver")
	switch driver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			viper.GetString("postgres.host"),
			viper.GetString("postgres.user"),
			viper.GetString("postgres.password"),
			viper.GetString("postgres.db"),
			viper.GetString("postgres.port"))
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		ctrl, err := contentctrl.NewContentService(db)
		if err != nil {
			return nil, err
		}
		if err := ctrl.Migrate(); err != nil {
			return nil, err
		}
		return ctrl, nil
	case "meilisearch":
		client := meilisearch.New(
			viper.GetString("meili.host"),
			meilisearch.WithAPIKey(viper.GetString("meili.api_key")),
		)
		store := meili.NewContentStore(client)
		if err := store.EnsureIndexes(context.Background()); err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}
