package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/noah-isme/shipledger/internal/app"
	"github.com/noah-isme/shipledger/internal/auth"
	"github.com/noah-isme/shipledger/internal/common"
	"github.com/noah-isme/shipledger/internal/customer"
	"github.com/noah-isme/shipledger/internal/lock"
)

var demoCustomers = []customer.Input{
	{
		CompanyName:  "Konkan Agro Exports Pvt Ltd",
		GSTIN:        "27AABCK1234F1Z5",
		AddressLine1: "Plot 12, MIDC Taloja",
		City:         "Navi Mumbai",
		State:        "Maharashtra",
		StateCode:    "27",
		ContactName:  "Priya Kulkarni",
		Email:        "accounts@konkanagro.example",
	},
	{
		CompanyName:  "Deccan Precision Tools LLP",
		GSTIN:        "29AAGFD5678K1Z2",
		AddressLine1: "14 Peenya Industrial Area",
		City:         "Bengaluru",
		State:        "Karnataka",
		StateCode:    "29",
		ContactName:  "Arun Rao",
		Email:        "logistics@deccantools.example",
	},
	{
		CompanyName: "Harbour Line Traders",
		GSTIN:       "32AAAFH9012L1Z8",
		City:        "Kochi",
		State:       "Kerala",
		StateCode:   "32",
	},
}

func newSeedCmd() *cobra.Command {
	var (
		adminName     string
		adminEmail    string
		adminPassword string
		withCustomers bool
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the admin user and demo customers",
		Example: `  invoicectl seed --admin-email ops@example.com --admin-password 's3cret!'
  invoicectl seed --customers=false`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if adminPassword == "" {
				return errors.New("--admin-password is required")
			}
			deps, logger, err := openDeps(cmd.Context())
			if err != nil {
				return err
			}
			defer deps.Close()

			svc, err := app.NewServices(deps)
			if err != nil {
				return err
			}
			locker := lock.Locker{R: deps.Redis, Wait: 10 * time.Second}
			return locker.WithLock(cmd.Context(), "shipledger:lock:seed", 2*time.Minute, func(ctx context.Context) error {
				return seed(ctx, cmd.OutOrStdout(), svc, logger, seedOptions{
					adminName: adminName, adminEmail: adminEmail, adminPassword: adminPassword, withCustomers: withCustomers,
				})
			})
		},
	}
	cmd.Flags().StringVar(&adminName, "admin-name", "Administrator", "display name of the admin user")
	cmd.Flags().StringVar(&adminEmail, "admin-email", "admin@shipledger.local", "login email of the admin user")
	cmd.Flags().StringVar(&adminPassword, "admin-password", "", "password of the admin user")
	cmd.Flags().BoolVar(&withCustomers, "customers", true, "also create demo customers")
	return cmd
}

type seedOptions struct {
	adminName     string
	adminEmail    string
	adminPassword string
	withCustomers bool
}

func seed(ctx context.Context, out io.Writer, svc *app.Services, logger zerolog.Logger, o seedOptions) error {
	user, err := svc.Auth.CreateUser(ctx, o.adminName, o.adminEmail, o.adminPassword, []string{auth.RoleAdmin})
	var appErr *common.AppError
	switch {
	case errors.As(err, &appErr) && appErr.Code == "EMAIL_ALREADY_USED":
		logger.Info().Str("email", o.adminEmail).Msg("admin already present")
	case err != nil:
		return fmt.Errorf("create admin: %w", err)
	default:
		logger.Info().Str("user_id", user.ID).Msg("admin created")
	}

	if !o.withCustomers {
		return nil
	}
	for _, in := range demoCustomers {
		c, err := svc.Customers.Create(ctx, in)
		if errors.Is(err, customer.ErrDuplicateGSTIN) {
			logger.Info().Str("company", in.CompanyName).Msg("customer already present")
			continue
		}
		if err != nil {
			return fmt.Errorf("create customer %q: %w", in.CompanyName, err)
		}
		fmt.Fprintf(out, "%s\t%s\n", c.ID, c.CompanyName)
	}
	return nil
}
