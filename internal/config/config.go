package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm"      validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port               int      `mapstructure:"port"                 validate:"required,gt=0,lt=65536"`
	LogLevel           string   `mapstructure:"log_level"            validate:"required,oneof=debug info warn error"`
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL          string `mapstructure:"url"            validate:"required,url"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=1"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// LLMConfig contains all LLM integration related settings.
//
// API keys are optional here on purpose: a missing key disables content
// generation (reported at startup and by the generation endpoints) but the
// rest of the API keeps serving.
type LLMConfig struct {
	Provider      string `mapstructure:"provider"        validate:"required,oneof=gemini openai"`
	GeminiAPIKey  string `mapstructure:"gemini_api_key"`
	OpenAIAPIKey  string `mapstructure:"openai_api_key"`
	OpenAIBaseURL string `mapstructure:"openai_base_url" validate:"omitempty,url"`

	// TextModel is the Gemini model used for text generation.
	TextModel string `mapstructure:"text_model" validate:"required"`
	// OpenAIModel is used instead of TextModel when Provider is "openai".
	OpenAIModel string `mapstructure:"openai_model" validate:"required"`
	// ImageModels are tried in order for every storybook illustration.
	ImageModels []string `mapstructure:"image_models" validate:"required,min=1,dive,required"`

	Temperature      float32 `mapstructure:"temperature"       validate:"gte=0,lte=2"`
	StoryTemperature float32 `mapstructure:"story_temperature" validate:"gte=0,lte=2"`
	ImageTemperature float32 `mapstructure:"image_temperature" validate:"gte=0,lte=2"`
	MaxOutputTokens  int32   `mapstructure:"max_output_tokens" validate:"gt=0"`

	// OpenAIMaxOutputTokens replaces MaxOutputTokens for OpenAI models,
	// whose completion limits are lower than Gemini's.
	OpenAIMaxOutputTokens int32 `mapstructure:"openai_max_output_tokens" validate:"gt=0"`

	IllustrationConcurrency int `mapstructure:"illustration_concurrency" validate:"gte=1,lte=16"`
	StoryPages              int `mapstructure:"story_pages"              validate:"gte=1,lte=30"`
}

// EngineModel returns the model and output token limit used for
// single-call generations with the configured provider.
func (c LLMConfig) EngineModel() (model string, maxOutputTokens int32) {
	if c.Provider == "openai" {
		return c.OpenAIModel, c.OpenAIMaxOutputTokens
	}
	return c.TextModel, c.MaxOutputTokens
}
