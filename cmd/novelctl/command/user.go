package command

import (
	"context"
	"fmt"
	"io"
	"strings"

	"novelhub/internal/microservices/http-api/models"
	"novelhub/internal/microservices/http-api/repository"
	"novelhub/internal/microservices/http-api/service"

	"github.com/spf13/cobra"
)

var promoteRole string

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Account management commands",
}

var promoteCmd = &cobra.Command{
	Use:   "promote [email]",
	Short: "Change the role of the account registered with email",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo := repository.NewUserRepository(env.db)
		return promoteUser(cmd.Context(), cmd.OutOrStdout(), repo, service.NewUserService(repo), args[0], promoteRole)
	},
}

func promoteUser(ctx context.Context, out io.Writer, repo repository.UserRepository, svc service.UserService, email, role string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := repo.FindByEmail(ctx, email)
	if err != nil {
		if repository.IsNotFound(err) {
			return fmt.Errorf("no user registered with %s", email)
		}
		return err
	}

	updated, err := svc.ChangeRole(ctx, u.ID, role)
	if err != nil {
		return fmt.Errorf("failed to change role: %w", err)
	}

	fmt.Fprintf(out, "✓ %s (%s) is now %s\n", updated.Username, updated.Email, updated.Role)
	return nil
}

func init() {
	promoteCmd.Flags().StringVar(&promoteRole, "role", models.RoleAdmin, "role to assign (user or admin)")
	userCmd.AddCommand(promoteCmd)
	rootCmd.AddCommand(userCmd)
}
