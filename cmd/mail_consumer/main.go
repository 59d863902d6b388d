package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/SeakMengs/AutoRFP/internal/auth"
	"github.com/SeakMengs/AutoRFP/internal/config"
	"github.com/SeakMengs/AutoRFP/internal/constant"
	"github.com/SeakMengs/AutoRFP/internal/database"
	"github.com/SeakMengs/AutoRFP/internal/env"
	"github.com/SeakMengs/AutoRFP/internal/mailer"
	"github.com/SeakMengs/AutoRFP/internal/queue"
	"github.com/SeakMengs/AutoRFP/internal/repository"
	"github.com/SeakMengs/AutoRFP/internal/util"
	"gorm.io/gorm"
)

// this function run before main
func init() {
	env.LoadEnv(".env")
}

const (
	MAX_WORKER = 3
)

func main() {
	cfg := config.GetConfig()
	logger := util.NewFileLogger(cfg.ENV, cfg.LogFile)

	if !cfg.RabbitMQ.Enabled() {
		logger.Fatal("RABBITMQ_URL is not configured, nothing to consume")
	}

	db, err := database.ConnectReturnGormDB(cfg.DB)
	if err != nil {
		logger.Panic(err)
	}

	sqlDb, err := db.DB()
	if err != nil {
		logger.Panic(err)
	}
	defer sqlDb.Close()
	logger.Info("Database connected \n")

	jwtService := auth.NewJwt(cfg.Auth, logger)
	repo := repository.NewRepository(db, logger, jwtService, nil)
	app := queue.MailConsumerContext{
		Config:     &cfg,
		Repository: repo,
		Logger:     logger,
		Mailer:     mailer.New(cfg, logger),
	}

	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQ.GetConnectionString())
	if err != nil {
		logger.Panic("Error connecting to RabbitMQ: ", err)
	}
	logger.Info("RabbitMQ connected \n")
	defer func() {
		if err := rabbitMQ.Close(); err != nil {
			logger.Errorf("Failed to close RabbitMQ connection: %v", err)
		}
	}()

	ctx := context.Background()

	if err := rabbitMQ.ConsumeMailJob(ctx, mailJobHandler, MAX_WORKER, &app); err != nil {
		logger.Fatalf("Failed to consume mail job: %v", err)
	}

	logger.Infof("Started consuming mail job")

	// Block forever to keep the consumer running
	select {}
}

func mailJobHandler(ctx context.Context, jobPayload queue.MailJobPayload, app *queue.MailConsumerContext) (bool, error) {
	var (
		data any
		err  error
	)

	switch jobPayload.TemplateFile {
	case mailer.TemplateTeamInvitation:
		var d mailer.TeamInvitationData
		if err = json.Unmarshal(jobPayload.Data, &d); err != nil {
			return false, fmt.Errorf("failed to unmarshal TeamInvitationData: %w", err)
		}
		if retry, err := invitationStillPending(ctx, app, d); err != nil {
			return retry, err
		}
		data = d
	case mailer.TemplateInvitationResponse:
		data, err = decode[mailer.InvitationResponseData](jobPayload)
	case mailer.TemplateLeadNotification:
		data, err = decode[mailer.LeadNotificationData](jobPayload)
	case mailer.TemplateLeadWelcome:
		data, err = decode[mailer.LeadWelcomeData](jobPayload)
	case mailer.TemplatePasswordReset:
		data, err = decode[mailer.PasswordResetData](jobPayload)
	default:
		return false, fmt.Errorf("unsupported template: %s", jobPayload.TemplateFile)
	}
	if err != nil {
		return false, err
	}

	status, err := app.Mailer.Send(jobPayload.TemplateFile, jobPayload.ToEmail, data)
	if err != nil {
		return true, fmt.Errorf("failed to send email: %w", err)
	}

	if status >= http.StatusBadRequest {
		return true, fmt.Errorf("email sending failed with status: %d", status)
	}

	return true, nil
}

func decode[T any](jobPayload queue.MailJobPayload) (T, error) {
	var data T
	if err := json.Unmarshal(jobPayload.Data, &data); err != nil {
		return data, fmt.Errorf("failed to unmarshal %s data: %w", jobPayload.TemplateFile, err)
	}
	return data, nil
}

// invitationStillPending drops invitation emails for invitations that were removed or already
// answered while the job sat in the queue.
func invitationStillPending(ctx context.Context, app *queue.MailConsumerContext, d mailer.TeamInvitationData) (bool, error) {
	invitation, err := app.Repository.Invitation.GetByProposalAndEmail(ctx, nil, d.ProposalID, d.InviteeEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, fmt.Errorf("invitation not found: %s/%s", d.ProposalID, d.InviteeEmail)
		}
		return true, fmt.Errorf("failed to get invitation: %w", err)
	}

	if invitation.Status != constant.InvitationStatusInvited {
		return false, fmt.Errorf("invitation for %s is already %s", d.InviteeEmail, invitation.Status)
	}

	return false, nil
}
