package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clearmind/config"
	"clearmind/cron"
	"clearmind/database"
	familyRepoPkg "clearmind/database/repository/family"
	"clearmind/handlers"
	"clearmind/routes"
	"clearmind/services/assistant"
	"clearmind/services/calendar"
	"clearmind/services/family"
	"clearmind/services/intelligence"
	"clearmind/services/scheduling"
	"clearmind/services/speech"
	"clearmind/services/tasks"
	"clearmind/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	famRepo := familyRepoPkg.NewMongoFamilyRepo()

	// services.
	loc := config.UserLocation()

	languageModel := intelligence.NewDefaultLanguageModel(config.AppConfig.GeminiAPIKey)
	calendarService := calendar.NewGoogleCalendarService(config.AppConfig.UserTimezone)
	groupService := &family.DefaultGroupService{Repo: famRepo}
	reminderScheduler := tasks.NewScheduler()

	assistantService := &assistant.DefaultAssistantService{
		LLM:       languageModel,
		Calendar:  calendarService,
		Detector:  scheduling.NewDetector(loc),
		Tracker:   assistant.NewSessionTracker(),
		History:   assistant.NewHistoryStore(utils.GetContextCacheClient(), 30*time.Minute),
		Reminders: reminderScheduler,
		Loc:       loc,
	}

	ttsLimiter := speech.NewRateLimiter(config.TTSMinInterval(), nil)
	synthesizer := speech.NewOpenAISynthesizer(config.AppConfig.OpenAIAPIKey, ttsLimiter)

	// Reminder worker consumes the queue the assistant feeds.
	cron.InitReminderWorker(groupService)
	utils.StartHealthMonitor([]*redis.Client{utils.GetContextCacheClient()}, database.MongoClient)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// Speech endpoints.
		ProcessSpeechHandler: handlers.ProcessSpeechHandler(assistantService),
		TTSHandler:           handlers.TTSHandler(synthesizer),
		STTHandler:           handlers.STTHandler,

		// Calendar endpoints.
		ListEventsHandler:  handlers.ListEventsHandler(calendarService),
		CreateEventHandler: handlers.CreateEventHandler(calendarService),
		UpdateEventHandler: handlers.UpdateEventHandler(calendarService),
		DeleteEventHandler: handlers.DeleteEventHandler(calendarService),

		// Family group endpoints.
		CreateGroupHandler:          handlers.CreateGroupHandler(groupService),
		ListGroupsHandler:           handlers.ListGroupsHandler(groupService),
		GetGroupHandler:             handlers.GetGroupHandler(groupService),
		UpdateGroupHandler:          handlers.UpdateGroupHandler(groupService),
		DeleteGroupHandler:          handlers.DeleteGroupHandler(groupService),
		InviteMemberHandler:         handlers.InviteMemberHandler(groupService),
		ListInvitationsHandler:      handlers.ListInvitationsHandler(groupService),
		RespondInvitationHandler:    handlers.RespondInvitationHandler(groupService),
		RemoveMemberHandler:         handlers.RemoveMemberHandler(groupService),
		LeaveGroupHandler:           handlers.LeaveGroupHandler(groupService),
		UpdatePreferencesHandler:    handlers.UpdatePreferencesHandler(groupService),
		NotifyGroupHandler:          handlers.NotifyGroupHandler(groupService),
		ListNotificationsHandler:    handlers.ListNotificationsHandler(groupService),
		MarkNotificationReadHandler: handlers.MarkNotificationReadHandler(groupService),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
