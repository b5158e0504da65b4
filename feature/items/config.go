package items

// Config holds configuration for the item metadata service.
type Config struct {
	// TokenURL is the OAuth client-credentials token endpoint.
	TokenURL string `mapstructure:"token_url" default:"https://us.battle.net/oauth/token"`
	// APIBase is the base URL of the item metadata API.
	APIBase string `mapstructure:"api_base" default:"https://us.api.blizzard.com/data/wow"`
	// Namespace selects the static game-data namespace to query.
	Namespace string `mapstructure:"namespace" default:"static-classic1x-us"`
	// Locale is the display-name locale.
	Locale string `mapstructure:"locale" default:"en_US"`
	// ClientID is the OAuth client id.
	ClientID string `mapstructure:"client_id" default:""`
	// Secret is the OAuth client secret.
	Secret string `mapstructure:"secret" default:""`
	// TimeoutSeconds is the per-request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"15"`
	// RetryDelaySeconds is the fixed delay between lookup attempts.
	RetryDelaySeconds int `mapstructure:"retry_delay_seconds" default:"2"`
}
