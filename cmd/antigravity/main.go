package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"antigravity-pm/internal/config"
	"antigravity-pm/internal/geocode"
	"antigravity-pm/internal/httpapi"
	"antigravity-pm/internal/logging"
	"antigravity-pm/internal/mailer"
	"antigravity-pm/internal/repository"
	"antigravity-pm/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		logging.Logger.Warn("no .env file found, using OS environment")
	}

	logging.Init("logs/antigravity.log")

	cfg, err := config.Load()
	if err != nil {
		logging.Logger.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		logging.Logger.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	calendarRepo := repository.NewCalendarRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	smtpMailer := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPEmail, cfg.SMTPPassword)

	notifier := service.NewNotifierService(userRepo, notificationRepo)
	authSvc := service.NewAuthService(userRepo, cfg.SessionSecret)
	projectSvc := service.NewProjectService(projectRepo, notifier)
	taskSvc := service.NewTaskService(taskRepo, userRepo, notifier)
	calendarSvc := service.NewCalendarService(calendarRepo)
	attendanceSvc := service.NewAttendanceService(attendanceRepo)
	inviteSvc := service.NewInviteService(userRepo, smtpMailer, cfg.BaseURL)
	reminderSvc := service.NewReminderService(taskRepo, calendarRepo, userRepo, notifier, smtpMailer, cfg.BaseURL)

	// One reminder loop per deployment: running a second instance reopens
	// the notify-twice race the conditional flag writes only narrow.
	scheduler := service.NewSchedulerService(time.UTC)
	if _, err := scheduler.ScheduleInterval(cfg.ReminderInterval, func() {
		tickCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		now := time.Now().UTC()
		reminderSvc.RunDeadlinePass(tickCtx, now)
		reminderSvc.RunCalendarPass(tickCtx, now)
	}); err != nil {
		logging.Logger.Fatalf("schedule reminders: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	server := httpapi.NewServer(authSvc, projectSvc, taskSvc, calendarSvc, attendanceSvc,
		inviteSvc, geocode.NewClient(), userRepo, notificationRepo, commentRepo)

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: server.Router(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logging.Logger.Errorf("shutdown: %v", err)
		}
	}()

	logging.Logger.Infof("Antigravity PM listening on :%s (reminder interval %s)", cfg.Port, cfg.ReminderInterval)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logging.Logger.Fatalf("server stopped with error: %v", err)
	}
	logging.Logger.Info("Shutdown complete.")
}
