package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"accessgraph/domain"
)

func newUsersCmd(factory *clientFactory, output *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage users and their mappings",
	}
	cmd.AddCommand(
		newUsersListCmd(factory, output),
		newUsersAddCmd(factory),
		newUsersRemoveCmd(factory),
		newUsersContainsCmd(factory),
		newUsersGroupsCmd(factory, output),
		newUsersAddGroupCmd(factory),
		newUsersRemoveGroupCmd(factory),
		newUsersComponentsCmd(factory, output),
		newUsersGrantComponentCmd(factory),
		newUsersRevokeComponentCmd(factory),
		newUsersEntitiesCmd(factory, output),
		newUsersGrantEntityCmd(factory),
		newUsersRevokeEntityCmd(factory),
	)
	return cmd
}

func newUsersListCmd(factory *clientFactory, output *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all registered users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := factory.New()
			if err != nil {
				return err
			}
			users, err := c.Users(cmd.Context())
			if err != nil {
				return err
			}
			return printList(cmd.OutOrStdout(), *output, users)
		},
	}
}

func newUsersAddCmd(factory *clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "add USER",
		Short: "Register a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := factory.New()
			if err != nil {
				return err
			}
			if err := c.AddUser(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added user %q\n", args[0])
			return nil
		},
	}
}

func newUsersRemoveCmd(factory *clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "remove USER",
		Short: "Remove a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := factory.New()
			if err != nil {
				return err
			}
			if err := c.RemoveUser(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed user %q\n", args[0])
			return nil
		},
	}
}

func newUsersContainsCmd(factory *clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "contains USER",
		Short: "Check whether a user is registered",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := factory.New()
			if err != nil {
				return err
			}
			ok, err := c.ContainsUser(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ok)
			return nil
		},
	}
}

func newUsersGroupsCmd(factory *clientFactory, output *string) *cobra.Command {
	var indirect bool
	cmd := &cobra.Command{
		Use:   "groups USER",
		Short: "List the groups a user is mapped to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := factory.New()
			if err != nil {
				return err
			}
			groups, err := c.GetUserToGroupMappings(cmd.Context(), args[0], indirect)
			if err != nil {
				return err
			}
			return printList(cmd.OutOrStdout(), *output, groups)
		},
	}
	cmd.Flags().BoolVar(&indirect, "indirect", false, "Include groups reached through group-to-group mappings")
	return cmd
}

func newUsersAddGroupCmd(factory *clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "add-group USER GROUP",
		Short: "Map a user to a group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := factory.New()
			if err != nil {
				return err
			}
			if err := c.AddUserToGroupMapping(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Mapped user %q to group %q\n", args[0], args[1])
			return nil
		},
	}
}

func newUsersRemoveGroupCmd(factory *clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-group USER GROUP",
		Short: "Remove a user-to-group mapping",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := factory.New()
			if err != nil {
				return err
			}
			if err := c.RemoveUserToGroupMapping(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Unmapped user %q from group %q\n", args[0], args[1])
			return nil
		},
	}
}

func newUsersComponentsCmd(factory *clientFactory, output *string) *cobra.Command {
	var accessible bool
	cmd := &cobra.Command{
		Use:   "components USER",
		Short: "List application component and access level mappings for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := factory.New()
			if err != nil {
				return err
			}
			var pairs []domain.ComponentAndAccessLevel[string, string]
			if accessible {
				pairs, err = c.GetApplicationComponentsAccessibleByUser(cmd.Context(), args[0])
			} else {
				pairs, err = c.GetUserToApplicationComponentAndAccessLevelMappings(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}
			return printComponentPairs(cmd.OutOrStdout(), *output, pairs)
		},
	}
	cmd.Flags().BoolVar(&accessible, "accessible", false, "Include components accessible through group membership")
	return cmd
}

func newUsersGrantComponentCmd(factory *clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "grant-component USER COMPONENT ACCESS_LEVEL",
		Short: "Map a user to an application component at an access level",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := factory.New()
			if err != nil {
				return err
			}
			if err := c.AddUserToApplicationComponentAndAccessLevelMapping(cmd.Context(), args[0], args[1], args[2]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Granted user %q access level %q on component %q\n", args[0], args[2], args[1])
			return nil
		},
	}
}

func newUsersRevokeComponentCmd(factory *clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "revoke-component USER COMPONENT ACCESS_LEVEL",
		Short: "Remove a user's component and access level mapping",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := factory.New()
			if err != nil {
				return err
			}
			if err := c.RemoveUserToApplicationComponentAndAccessLevelMapping(cmd.Context(), args[0], args[1], args[2]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Revoked user %q access level %q on component %q\n", args[0], args[2], args[1])
			return nil
		},
	}
}

func newUsersEntitiesCmd(factory *clientFactory, output *string) *cobra.Command {
	var (
		accessible bool
		entityType string
	)
	cmd := &cobra.Command{
		Use:   "entities USER",
		Short: "List entity mappings for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := factory.New()
			if err != nil {
				return err
			}
			if entityType != "" {
				var entities []string
				if accessible {
					entities, err = c.GetEntitiesAccessibleByUserForType(cmd.Context(), args[0], entityType)
				} else {
					entities, err = c.GetUserToEntityMappingsForType(cmd.Context(), args[0], entityType)
				}
				if err != nil {
					return err
				}
				return printList(cmd.OutOrStdout(), *output, entities)
			}
			var refs []domain.EntityTypeAndEntity
			if accessible {
				refs, err = c.GetEntitiesAccessibleByUser(cmd.Context(), args[0])
			} else {
				refs, err = c.GetUserToEntityMappings(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}
			return printEntityRefs(cmd.OutOrStdout(), *output, refs)
		},
	}
	cmd.Flags().BoolVar(&accessible, "accessible", false, "Include entities accessible through group membership")
	cmd.Flags().StringVar(&entityType, "type", "", "Restrict to a single entity type")
	return cmd
}

func newUsersGrantEntityCmd(factory *clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "grant-entity USER ENTITY_TYPE ENTITY",
		Short: "Map a user to an entity",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := factory.New()
			if err != nil {
				return err
			}
			if err := c.AddUserToEntityMapping(cmd.Context(), args[0], args[1], args[2]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Granted user %q access to %s %q\n", args[0], args[1], args[2])
			return nil
		},
	}
}

func newUsersRevokeEntityCmd(factory *clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "revoke-entity USER ENTITY_TYPE ENTITY",
		Short: "Remove a user's entity mapping",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := factory.New()
			if err != nil {
				return err
			}
			if err := c.RemoveUserToEntityMapping(cmd.Context(), args[0], args[1], args[2]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Revoked user %q access to %s %q\n", args[0], args[1], args[2])
			return nil
		},
	}
}

func printComponentPairs(w io.Writer, format string, pairs []domain.ComponentAndAccessLevel[string, string]) error {
	if format == outputJSON {
		return printJSON(w, pairs)
	}
	rows := make([][]string, 0, len(pairs))
	for _, p := range pairs {
		rows = append(rows, []string{p.ApplicationComponent, p.AccessLevel})
	}
	return printTable(w, []string{"COMPONENT", "ACCESS LEVEL"}, rows)
}

func printEntityRefs(w io.Writer, format string, refs []domain.EntityTypeAndEntity) error {
	if format == outputJSON {
		return printJSON(w, refs)
	}
	rows := make([][]string, 0, len(refs))
	for _, r := range refs {
		rows = append(rows, []string{r.EntityType, r.Entity})
	}
	return printTable(w, []string{"ENTITY TYPE", "ENTITY"}, rows)
}
