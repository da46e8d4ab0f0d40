package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/autoassistgroup-dev/AutoAssist--portal/internal/database"
	authsvc "github.com/autoassistgroup-dev/AutoAssist--portal/internal/service/auth"

	"github.com/spf13/cobra"
)

var (
	seedMemberEmail    string
	seedMemberName     string
	seedMemberPassword string
	seedMemberRole     string
)

var seedMemberCmd = &cobra.Command{
	Use:   "seed-member",
	Short: "Create a staff member with a bcrypt-hashed password",
	RunE:  runSeedMember,
}

func init() {
	seedMemberCmd.Flags().StringVar(&seedMemberEmail, "email", "", "login email")
	seedMemberCmd.Flags().StringVar(&seedMemberName, "name", "", "display name")
	seedMemberCmd.Flags().StringVar(&seedMemberPassword, "password", "", "initial password, 8 characters minimum")
	seedMemberCmd.Flags().StringVar(&seedMemberRole, "role", "", "member role, defaults to Agent")
	seedMemberCmd.MarkFlagRequired("email")
	seedMemberCmd.MarkFlagRequired("name")
	seedMemberCmd.MarkFlagRequired("password")
}

func runSeedMember(cmd *cobra.Command, args []string) error {
	db, err := database.NewDatabase()
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	member, err := authsvc.New(db).CreateMember(ctx, authsvc.CreateMemberParams{
		Email:    seedMemberEmail,
		Name:     seedMemberName,
		Password: seedMemberPassword,
		Role:     seedMemberRole,
	})
	if err != nil {
		return fmt.Errorf("create member: %w", err)
	}

	log.Printf("seed-member: created %s (%s) with role %s", member.Email, member.MemberID, member.Role)
	return nil
}
