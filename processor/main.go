// Command processor mails the follow-up reminders due on one day. It is
// meant to run once a day from cron.
package main

import (
	"context"
	"crm-app/config"
	"crm-app/controllers/idgen"
	"crm-app/database"
	"crm-app/repositories"
	"crm-app/services"
	"crm-app/types"
	"crm-app/utils"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"
)

func main() {
	dateFlag := flag.String("date", "", "due date YYYY-MM-DD, today when empty")
	timeout := flag.Duration("timeout", 5*time.Minute, "overall deadline")
	flag.Parse()

	config.LoadConfig()
	logger, err := config.NewLogger()
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	day := types.Today()
	if *dateFlag != "" {
		day, err = types.ParseDate(*dateFlag)
		if err != nil {
			logger.Fatal("Invalid date", zap.Error(err))
		}
	}

	idgen.Init(config.SnowflakeNode)
	db, err := config.OpenDB(logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := database.Prepare(db, logger); err != nil {
		logger.Fatal("Failed to prepare database", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	reminders := services.NewReminderService(
		repositories.NewFollowUpRepository(db),
		repositories.NewInquiryRepository(db),
		utils.NewSMTPMailerFromConfig(),
		logger,
	)

	logger.Info("Sending reminders", zap.Stringer("date", day))
	result, err := reminders.SendDue(ctx, day)
	if err != nil {
		logger.Fatal("Reminder run failed", zap.Error(err))
	}
	logger.Info("Reminder run finished",
		zap.Int("follow_ups", result.FollowUps),
		zap.Int("emails", result.Emails),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed))
	if result.Failed > 0 {
		os.Exit(1)
	}
}
