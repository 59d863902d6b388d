package main

import (
	"context"
	"errors"

	"github.com/SeakMengs/AutoRFP/internal/auth"
	"github.com/SeakMengs/AutoRFP/internal/config"
	"github.com/SeakMengs/AutoRFP/internal/constant"
	"github.com/SeakMengs/AutoRFP/internal/model"
	"github.com/SeakMengs/AutoRFP/internal/repository"
	"github.com/SeakMengs/AutoRFP/internal/util"
	"github.com/spf13/cobra"
	"gorm.io/datatypes"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create a demo account with a public company profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		db, err := connect(cmd)
		if err != nil {
			return err
		}

		cfg := config.GetConfig()
		logger := util.NewLogger(cfg.ENV)
		repo := repository.NewRepository(db, logger, auth.NewJwt(cfg.Auth, logger), nil)

		hash, err := auth.HashPassword(password)
		if err != nil {
			return err
		}

		user := &model.User{Email: email, FirstName: "Demo", LastName: "User", PasswordHash: hash}
		profile := &model.CompanyProfile{
			CompanyName:     "Acme Consulting",
			Industry:        "Technology",
			Description:     "Cloud migration and data platform consultancy serving public sector clients.",
			Website:         "https://acme.example.com",
			Services:        datatypes.NewJSONSlice([]string{"Cloud migration", "Data engineering", "Managed services"}),
			Certifications:  datatypes.NewJSONSlice([]string{"ISO 27001", "SOC 2 Type II"}),
			YearsInBusiness: 12,
			EmployeeCount:   85,
			Visibility:      constant.ProfileVisibilityPublic,
		}

		err = repo.User.CreateWithProfile(context.Background(), nil, user, profile)
		if errors.Is(err, repository.ErrEmailTaken) {
			logger.Infof("Demo user %s already exists", email)
			return nil
		}
		if err != nil {
			return err
		}

		logger.Infof("Created demo user %s with profile %s", email, profile.ID)
		return nil
	},
}

func init() {
	seedCmd.Flags().String("email", "demo@autorfp.local", "demo account email")
	seedCmd.Flags().String("password", "password123", "demo account password")
}
