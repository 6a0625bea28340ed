package main

import (
	"context"
	"net/http"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"
	"github.com/sendgrid/sendgrid-go"
	twilio "github.com/twilio/twilio-go"

	"github.com/integration-ia/ceus-crm-backend/internal/app"
	"github.com/integration-ia/ceus-crm-backend/internal/config"
	"github.com/integration-ia/ceus-crm-backend/internal/controllers"
	"github.com/integration-ia/ceus-crm-backend/internal/middleware"
	"github.com/integration-ia/ceus-crm-backend/internal/routes"
	"github.com/integration-ia/ceus-crm-backend/internal/services"
	"github.com/integration-ia/ceus-crm-backend/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize app:", err)
	}
	defer application.Close()

	twClient := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioSID,
		Password: cfg.TwilioToken,
	})
	sgClient := sendgrid.NewSendClient(cfg.SendgridAPIKey)

	geocode := func(ctx context.Context, address string) (float64, float64, error) {
		return utils.GeocodeAddress(ctx, address, cfg.GoogleMapsKey)
	}

	notifier := services.NewSendgridNotifier(sgClient, cfg.LDFlag_SendgridFromEmail)
	mediaReconciler := services.NewMediaReconciler(application.Storage)

	propertyService := services.NewPropertyService(
		application.Store,
		mediaReconciler,
		notifier,
		geocode,
		cfg.LDFlag_EnableMarketplaceShare,
	)
	mediaService := services.NewMediaService(application.Storage)
	clientService := services.NewClientService(
		application.Store,
		twClient,
		cfg.SendgridAPIKey,
		cfg.LDFlag_ValidatePhoneWithTwilio,
		cfg.LDFlag_ValidateEmailWithSG,
	)
	noteService := services.NewNoteService(application.Store)
	agentService := services.NewAgentService(application.Store)
	domainService := services.NewDomainService(application.Store, application.Hosting)

	healthController := controllers.NewHealthController(application)
	propertyController := controllers.NewPropertyController(propertyService, mediaService)
	clientController := controllers.NewClientController(clientService)
	noteController := controllers.NewNoteController(noteService)
	agentController := controllers.NewAgentController(agentService)
	domainController := controllers.NewDomainController(domainService)

	router := mux.NewRouter()

	// Public
	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)

	secured := router.NewRoute().Subrouter()
	secured.Use(middleware.AuthMiddleware(cfg.JWTPublicKey))

	secured.HandleFunc(routes.Properties, propertyController.CreatePropertyHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.Properties, propertyController.ListPropertiesHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.MediaUploadURLs, propertyController.GenerateUploadURLsHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.PropertyByID, propertyController.GetPropertyHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.PropertyByID, propertyController.UpdatePropertyHandler).Methods(http.MethodPut)
	secured.HandleFunc(routes.PropertyByID, propertyController.DeletePropertyHandler).Methods(http.MethodDelete)
	secured.HandleFunc(routes.PropertyNotes, noteController.ListPropertyNotesHandler).Methods(http.MethodGet)

	secured.HandleFunc(routes.Clients, clientController.CreateClientHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.Clients, clientController.ListClientsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.ClientByID, clientController.GetClientHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.ClientByID, clientController.UpdateClientHandler).Methods(http.MethodPut)
	secured.HandleFunc(routes.ClientByID, clientController.DeleteClientHandler).Methods(http.MethodDelete)
	secured.HandleFunc(routes.ClientNotes, noteController.ListClientNotesHandler).Methods(http.MethodGet)

	secured.HandleFunc(routes.Notes, noteController.CreateNoteHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.NoteByID, noteController.UpdateNoteHandler).Methods(http.MethodPut)
	secured.HandleFunc(routes.NoteByID, noteController.DeleteNoteHandler).Methods(http.MethodDelete)

	secured.HandleFunc(routes.Agents, agentController.CreateAgentHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.Agents, agentController.ListAgentsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.AgentByID, agentController.GetAgentHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.AgentByID, agentController.UpdateAgentHandler).Methods(http.MethodPut)
	secured.HandleFunc(routes.AgentByID, agentController.DeleteAgentHandler).Methods(http.MethodDelete)

	secured.HandleFunc(routes.Domains, domainController.RegisterDomainHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.Domains, domainController.ListDomainsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.DomainVerify, domainController.VerifyDomainHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.DomainByID, domainController.RemoveDomainHandler).Methods(http.MethodDelete)

	c := cron.New()
	_, cronErr := c.AddFunc("@every 10m", func() {
		domainService.VerifyAll(context.Background())
	})
	if cronErr != nil {
		utils.Logger.WithError(cronErr).Fatal("Failed to schedule domain verification cron")
	}
	c.Start()

	co := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("server failed to start:", err)
	}
}
