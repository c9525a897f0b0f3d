package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/benedict-erwin/blog-service/internal/entities/user"
	"github.com/benedict-erwin/blog-service/internal/storage"
	userService "github.com/benedict-erwin/blog-service/internal/services/user"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
	Long:  `Manage blog users directly against the configured storage`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return storage.Init(cmd.Context())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		storage.Close()
	},
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	RunE:  runUserList,
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create new user",
	RunE:  runUserCreate,
}

var userDeleteCmd = &cobra.Command{
	Use:           "delete [user_id]",
	Short:         "Delete user permanently",
	Long:          `Permanently delete a user and every article they created`,
	Args:          cobra.ExactArgs(1),
	RunE:          runUserDelete,
	SilenceErrors: true,
}

// Command flags
var (
	userName     string
	userEmail    string
	userPassword string
)

func init() {
	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userDeleteCmd)

	userCreateCmd.Flags().StringVarP(&userName, "username", "u", "", "Username (required)")
	userCreateCmd.Flags().StringVarP(&userEmail, "email", "e", "", "Email (required)")
	userCreateCmd.Flags().StringVarP(&userPassword, "password", "p", "", "Password (required)")
	userCreateCmd.MarkFlagRequired("username")
	userCreateCmd.MarkFlagRequired("email")
	userCreateCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(userCmd)
}

// runUserList renders every user with their article count
func runUserList(cmd *cobra.Command, args []string) error {
	users, err := userService.List(cmd.Context())
	if err != nil {
		return err
	}

	if len(users) == 0 {
		fmt.Println("No users found.")
		return nil
	}

	fmt.Printf("Users (%d total):\n\n", len(users))
	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Username", "Email", "Articles", "Published"})
	for _, u := range users {
		published := 0
		for _, a := range u.Items {
			if a.Published {
				published++
			}
		}
		table.Append([]string{u.Username, u.Email, strconv.Itoa(len(u.Items)), strconv.Itoa(published)})
	}
	table.Render()
	return nil
}

// runUserCreate creates a user with a hashed password
func runUserCreate(cmd *cobra.Command, args []string) error {
	username := strings.TrimSpace(userName)
	req := &user.UserBase{Username: &username, Email: &userEmail, Password: &userPassword}

	display, err := userService.Create(cmd.Context(), req, "")
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Printf("User created successfully!\n\n")
	fmt.Printf("Username:  %s\n", display.Username)
	fmt.Printf("Email:     %s\n", display.Email)
	return nil
}

// runUserDelete deletes a user by id
func runUserDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Printf("Invalid user id: %s\n", args[0])
		return err
	}

	if err := userService.Delete(cmd.Context(), id); err != nil {
		fmt.Printf("Failed to delete user %d: %v\n", id, err)
		return err
	}
	fmt.Printf("User %d deleted\n", id)
	return nil
}
