package cmd

import "github.com/spf13/viper"

func settingDefaultConfig() {
	// Enable automatic environment variable binding
	viper.AutomaticEnv()

	// Map environment variables to Viper keys for the server
	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("server.shutdown_timeout", "SERVER_SHUTDOWN_TIMEOUT")

	// Map environment variables to Viper keys for the content store
	viper.BindEnv("store.driver", "STORE_DRIVER")
	viper.BindEnv("postgres.host", "POSTGRES_HOST")
	viper.BindEnv("postgres.port", "POSTGRES_PORT")
	viper.BindEnv("postgres.user", "POSTGRES_USER")
	viper.BindEnv("postgres.password", "POSTGRES_PASSWORD")
	viper.BindEnv("postgres.db", "POSTGRES_DB")
	viper.BindEnv("meili.host", "MEILI_HOST")
	viper.BindEnv("meili.api_key", "MEILI_API_KEY")

	// Map environment variables to Viper keys for the completion provider
	viper.BindEnv("ai.api_key", "WIKI_ICP_OPENAI_KEY")
	viper.BindEnv("ai.endpoint", "WIKI_ICP_AI_ENDPOINT")
	viper.BindEnv("ai.model", "WIKI_ICP_AI_MODEL")

	// Set default values for the server
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.shutdown_timeout", "5s")

	// Set default values for the content store
	viper.SetDefault("store.driver", "postgres")
	viper.SetDefault("postgres.host", "localhost")
	viper.SetDefault("postgres.port", "5432")
	viper.SetDefault("postgres.user", "postgres")
	viper.SetDefault("postgres.password", "postgres")
	viper.SetDefault("postgres.db", "wikiicp")
	viper.SetDefault("meili.host", "http://localhost:7700")

	// Set default values for search limits
	viper.SetDefault("search.article_limit", 60)
	viper.SetDefault("search.tutorial_limit", 40)

	// Set default values for the completion provider
	viper.SetDefault("ai.endpoint", "https://api.openai.com/v1/chat/completions")
	viper.SetDefault("ai.model", "gpt-4o-mini")
	viper.SetDefault("ai.temperature", 0.2)
	viper.SetDefault("ai.max_tokens", 320)
	viper.SetDefault("ai.message_length", 900)
	viper.SetDefault("ai.timeout", "12s")
}
