package env

import (
	"os"

	"github.com/joho/godotenv"
)

const (
	AWSRegion             = "AWS_REGION"
	AWSID                 = "AWS_ID"
	AWSSecret             = "AWS_SECRET"
	AWSToken              = "AWS_TOKEN"
	DynamoDBEndpoint      = "DYNAMODB_ENDPOINT"
	MemberSecretKey       = "MEMBER_SECRET"
	AdminSecretKey        = "ADMIN_SECRET"
	TechDirectorSecretKey = "TECH_DIRECTOR_SECRET"
	AuthRedisURL          = "AUTH_REDIS_URL"
	AuthRedisPass         = "AUTH_REDIS_PASS"
	EventsRedisURL        = "EVENTS_REDIS_URL"
	EventsRedisPass       = "EVENTS_REDIS_PASS"
	AutomationWebhookURL  = "AUTOMATION_WEBHOOK_URL"
	WebUrl                = "WEB_URL"
)

func init() {
	// Local development keeps its settings in a .env file; deployed
	// environments inject real variables and the load is a no-op.
	_ = godotenv.Load()
}

// CheckRequired panics when a server binary is started without the variables
// it cannot run without. Called from main, not from init, so tests and the
// CLI can import packages below this one with an empty environment.
func CheckRequired() {
	required := []string{
		AWSRegion,
		AWSID,
		AWSSecret,
		// AWSToken,
		MemberSecretKey,
		AdminSecretKey,
		TechDirectorSecretKey,
		AuthRedisURL,
		EventsRedisURL,
		AutomationWebhookURL,
		WebUrl,
	}
	for _, key := range required {
		if os.Getenv(key) == "" {
			panic("env: required environment variable not set: " + key)
		}
	}
}

func Get(key string) string {
	return os.Getenv(key)
}

func GetOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func MustGet(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic("env: required environment variable not set: " + key)
	}
	return val
}
