package cfg

type Cfg struct {
	// Outbound service credentials
	AnthropicAPIKey string
	AnthropicModel  string
	GitHubToken     string
	LibraryRepo     string

	// Application configuration
	LogsDir            string
	Port               string
	StaticDir          string
	ExtractorOverrides string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
