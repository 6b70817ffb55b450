package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/codecovctl/codecov"
	"github.com/s0up4200/codecovctl/filter"
	"github.com/s0up4200/codecovctl/schema"
)

var ownersFlags listFlags

// ownersCmd lists the owners of a service
var ownersCmd = &cobra.Command{
	Use:   "owners",
	Short: "List owners the token has access to",
	Args:  cobra.NoArgs,
	RunE:  runOwners,
}

var ownerCmd = &cobra.Command{
	Use:   "owner [name]",
	Short: "Show an owner",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runOwner,
}

var (
	usersFlags     listFlags
	usersActivated bool
	usersAdmin     bool
	usersSearch    string
)

var usersCmd = &cobra.Command{
	Use:   "users [owner]",
	Short: "List the users of an owner",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runUsers,
}

func init() {
	ownersFlags.register(ownersCmd)
	ownersCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")

	usersFlags.register(usersCmd)
	usersCmd.Flags().BoolVar(&usersActivated, "activated", false, "only activated users")
	usersCmd.Flags().BoolVar(&usersAdmin, "admin", false, "only admins")
	usersCmd.Flags().StringVar(&usersSearch, "search", "", "search by name or username")

	rootCmd.AddCommand(ownersCmd, ownerCmd, usersCmd)
}

func runOwners(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	svc, err := service()
	if err != nil {
		return err
	}

	opts := ownersFlags.options()
	first, err := client.ServiceOwners(ctx, svc, &opts)
	if err != nil {
		return fmt.Errorf("failed to list owners: %w", err)
	}

	bound, err := collectBound(ctx, first, ownersFlags.all)
	if err != nil {
		return fmt.Errorf("failed to list owners: %w", err)
	}

	owners := make([]schema.Owner, len(bound))
	for i, o := range bound {
		owners[i] = o.Owner
	}

	owners, err = applyFilter(ctx, owners, filter.OwnerEnv)
	if err != nil {
		return err
	}

	p := newPrinter(cmd)
	if jsonOutput {
		return p.JSON(owners)
	}
	if err := p.Owners(owners); err != nil {
		return err
	}
	footer(p, first.Plain(), len(owners), ownersFlags.all)
	return nil
}

func runOwner(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	svc, err := service()
	if err != nil {
		return err
	}
	name, err := owner(args)
	if err != nil {
		return err
	}

	o, err := client.Users.OwnerDetail(ctx, svc, name)
	if err != nil {
		return fmt.Errorf("failed to get owner %s: %w", name, err)
	}

	p := newPrinter(cmd)
	if jsonOutput {
		return p.JSON(o.Owner)
	}
	return p.Owners([]schema.Owner{o.Owner})
}

func runUsers(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	svc, err := service()
	if err != nil {
		return err
	}
	name, err := owner(args)
	if err != nil {
		return err
	}

	opts := codecov.UserListOptions{ListOptions: usersFlags.options()}
	if cmd.Flags().Changed("activated") {
		opts.Activated = codecov.Bool(usersActivated)
	}
	if cmd.Flags().Changed("admin") {
		opts.IsAdmin = codecov.Bool(usersAdmin)
	}
	if usersSearch != "" {
		opts.Search = codecov.String(usersSearch)
	}

	o := codecov.UpgradeOwner(schema.Owner{Service: svc, Username: &name}, client, codecov.Scope{})
	first, err := o.Users(ctx, &opts)
	if err != nil {
		return fmt.Errorf("failed to list users of %s: %w", name, err)
	}

	bound, err := collectBound(ctx, first, usersFlags.all)
	if err != nil {
		return fmt.Errorf("failed to list users of %s: %w", name, err)
	}
	users := make([]schema.User, len(bound))
	for i, u := range bound {
		users[i] = u.User
	}

	p := newPrinter(cmd)
	if jsonOutput {
		return p.JSON(users)
	}
	if err := p.Users(users); err != nil {
		return err
	}
	footer(p, first.Plain(), len(users), usersFlags.all)
	return nil
}
