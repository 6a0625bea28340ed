package config

import (
	"crypto/rsa"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/launchdarkly/go-sdk-common/v3/ldcontext"
	ld "github.com/launchdarkly/go-server-sdk/v7"

	"github.com/integration-ia/ceus-crm-backend/internal/utils"
)

type Config struct {
	AppName string
	AppPort string
	Env     string

	DatabaseURL string

	JWTPublicKey *rsa.PublicKey

	SendgridAPIKey string
	TwilioSID      string
	TwilioToken    string
	GoogleMapsKey  string

	S3Region   string
	S3Bucket   string
	S3Endpoint string

	HostingAPIKey  string
	HostingBaseURL string

	// Feature-flag snapshots
	LDFlag_SendgridFromEmail       string
	LDFlag_ValidateEmailWithSG     bool
	LDFlag_ValidatePhoneWithTwilio bool
	LDFlag_EnableMarketplaceShare  bool
}

const LDConnectionTimeout = 5 * time.Second

// build-time overrides, set with -ldflags
var (
	AppName             string
	LDServerContextKey  string
	LDServerContextKind string
)

// LoadConfig resolves configuration in order: ldflags, environment
// variables, BWS secrets, LaunchDarkly flag snapshots. Anything missing
// is fatal at startup rather than a latent runtime failure.
func LoadConfig() *Config {
	//----------------------------------------------------------------------
	// 1) Validate required ldflags
	//----------------------------------------------------------------------
	if AppName == "" {
		utils.Logger.Fatal("AppName was not provided via ldflags")
	}
	if LDServerContextKey == "" {
		utils.Logger.Fatal("LDServerContextKey was not provided via ldflags")
	}
	if LDServerContextKind == "" {
		utils.Logger.Fatal("LDServerContextKind was not provided via ldflags")
	}

	utils.Logger.Info("Loading config for app: ", AppName)

	//----------------------------------------------------------------------
	// 2) Runtime environment vars
	//----------------------------------------------------------------------
	env := os.Getenv("ENV")
	if env == "" {
		utils.Logger.Fatal("ENV env var is missing")
	}
	appPort := os.Getenv("APP_PORT")
	if appPort == "" {
		utils.Logger.Fatal("APP_PORT env var is missing")
	}
	s3Region := os.Getenv("S3_REGION")
	if s3Region == "" {
		utils.Logger.Fatal("S3_REGION env var is missing")
	}
	s3Bucket := os.Getenv("S3_MEDIA_BUCKET")
	if s3Bucket == "" {
		utils.Logger.Fatal("S3_MEDIA_BUCKET env var is missing")
	}
	s3Endpoint := os.Getenv("S3_ENDPOINT") // optional, local development only

	//----------------------------------------------------------------------
	// 3) BWS secrets
	//----------------------------------------------------------------------
	client, err := utils.NewBWSSecretsClient()
	if err != nil {
		utils.Logger.WithError(err).Fatal("Init BWS client")
	}
	bwsProjectName := fmt.Sprintf("%s-%s", AppName, env)
	appSecrets, err := client.GetBWSSecrets(bwsProjectName)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Fetch BWS secrets")
	}

	bwsSharedProjectName := fmt.Sprintf("shared-%s", env)
	sharedSecrets, err := client.GetBWSSecrets(bwsSharedProjectName)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Fetch shared BWS secrets")
	}

	dbURL := requireSecret(appSecrets, "DATABASE_URL")

	jwtPubPEM := requireSecret(sharedSecrets, "JWT_PUBLIC_KEY_PEM")
	jwtPub, err := jwt.ParseRSAPublicKeyFromPEM([]byte(jwtPubPEM))
	if err != nil {
		utils.Logger.WithError(err).Fatal("Parse JWT public key")
	}

	sgAPI := requireSecret(sharedSecrets, "SENDGRID_API_KEY")
	twilioSID := requireSecret(sharedSecrets, "TWILIO_ACCOUNT_SID")
	twilioToken := requireSecret(sharedSecrets, "TWILIO_AUTH_TOKEN")
	gmapsKey := requireSecret(sharedSecrets, "GOOGLE_MAPS_API_KEY")
	hostingKey := requireSecret(appSecrets, "HOSTING_API_KEY")
	hostingBaseURL := appSecrets["HOSTING_BASE_URL"] // optional override

	ldSDK := requireSecret(appSecrets, "LD_SDK_KEY")

	//----------------------------------------------------------------------
	// 4) LaunchDarkly client & flag snapshots
	//----------------------------------------------------------------------
	ldClient, err := ld.MakeClient(ldSDK, LDConnectionTimeout)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to create LaunchDarkly client")
	}
	if !ldClient.Initialized() {
		ldClient.Close()
		utils.Logger.Fatal("LaunchDarkly client failed to initialize")
	}
	defer ldClient.Close()

	ctx := ldcontext.NewWithKind(ldcontext.Kind(LDServerContextKind), LDServerContextKey)

	fromEmail, err := ldClient.StringVariation("sendgrid_from_email", ctx, "")
	if err != nil || fromEmail == "" {
		utils.Logger.Fatal("sendgrid_from_email flag error / empty")
	}
	validateWithSG, err := ldClient.BoolVariation("validate_email_with_sendgrid", ctx, false)
	if err != nil {
		utils.Logger.Fatal("validate_email_with_sendgrid flag error")
	}
	validateWithTwilio, err := ldClient.BoolVariation("validate_phone_with_twilio", ctx, false)
	if err != nil {
		utils.Logger.Fatal("validate_phone_with_twilio flag error")
	}
	marketplaceShare, err := ldClient.BoolVariation("enable_marketplace_sharing", ctx, true)
	if err != nil {
		utils.Logger.Fatal("enable_marketplace_sharing flag error")
	}

	utils.Logger.Infof("Loaded config for %s (%s)", AppName, env)

	return &Config{
		AppName: AppName,
		AppPort: appPort,
		Env:     env,

		DatabaseURL:  dbURL,
		JWTPublicKey: jwtPub,

		SendgridAPIKey: sgAPI,
		TwilioSID:      twilioSID,
		TwilioToken:    twilioToken,
		GoogleMapsKey:  gmapsKey,

		S3Region:   s3Region,
		S3Bucket:   s3Bucket,
		S3Endpoint: s3Endpoint,

		HostingAPIKey:  hostingKey,
		HostingBaseURL: hostingBaseURL,

		LDFlag_SendgridFromEmail:       fromEmail,
		LDFlag_ValidateEmailWithSG:     validateWithSG,
		LDFlag_ValidatePhoneWithTwilio: validateWithTwilio,
		LDFlag_EnableMarketplaceShare:  marketplaceShare,
	}
}

func requireSecret(secrets map[string]string, key string) string {
	v, ok := secrets[key]
	if !ok || v == "" {
		utils.Logger.Fatalf("%s missing in BWS secrets", key)
	}
	return v
}
