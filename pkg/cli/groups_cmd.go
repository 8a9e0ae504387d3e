package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"accessgraph/domain"
)

func newGroupsCmd(factory *clientFactory, output *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "Manage groups and their mappings",
	}
	cmd.AddCommand(
		newGroupsListCmd(factory, output),
		newGroupsAddCmd(factory),
		newGroupsRemoveCmd(factory),
		newGroupsContainsCmd(factory),
		newGroupsUsersCmd(factory, output),
		newGroupsMembersCmd(factory, output),
		newGroupsAddMemberCmd(factory),
		newGroupsRemoveMemberCmd(factory),
		newGroupsComponentsCmd(factory, output),
		newGroupsGrantComponentCmd(factory),
		newGroupsRevokeComponentCmd(factory),
		newGroupsEntitiesCmd(factory, output),
		newGroupsGrantEntityCmd(factory),
		newGroupsRevokeEntityCmd(factory),
	)
	return cmd
}

func newGroupsListCmd(factory *clientFactory, output *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all registered groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := factory.New()
			if err != nil {
				return err
			}
			groups, err := c.Groups(cmd.Context())
			if err != nil {
				return err
			}
			return printList(cmd.OutOrStdout(), *output, groups)
		},
	}
}

func newGroupsAddCmd(factory *clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "add GROUP",
		Short: "Register a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := factory.New()
			if err != nil {
				return err
			}
			if err := c.AddGroup(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added group %q\n", args[0])
			return nil
		},
	}
}

func newGroupsRemoveCmd(factory *clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "remove GROUP",
		Short: "Remove a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := factory.New()
			if err != nil {
				return err
			}
			if err := c.RemoveGroup(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed group %q\n", args[0])
			return nil
		},
	}
}

func newGroupsContainsCmd(factory *clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "contains GROUP",
		Short: "Check whether a group is registered",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := factory.New()
			if err != nil {
				return err
			}
			ok, err := c.ContainsGroup(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ok)
			return nil
		},
	}
}

func newGroupsUsersCmd(factory *clientFactory, output *string) *cobra.Command {
	var indirect bool
	cmd := &cobra.Command{
		Use:   "users GROUP",
		Short: "List the users mapped to a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := factory.New()
			if err != nil {
				return err
			}
			users, err := c.GetGroupToUserMappings(cmd.Context(), args[0], indirect)
			if err != nil {
				return err
			}
			return printList(cmd.OutOrStdout(), *output, users)
		},
	}
	cmd.Flags().BoolVar(&indirect, "indirect", false, "Include users reaching the group through group-to-group mappings")
	return cmd
}

func newGroupsMembersCmd(factory *clientFactory, output *string) *cobra.Command {
	var (
		indirect bool
		reverse  bool
	)
	cmd := &cobra.Command{
		Use:   "members GROUP",
		Short: "List group-to-group mappings for a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := factory.New()
			if err != nil {
				return err
			}
			var groups []string
			if reverse {
				groups, err = c.GetGroupToGroupReverseMappings(cmd.Context(), args[0], indirect)
			} else {
				groups, err = c.GetGroupToGroupMappings(cmd.Context(), args[0], indirect)
			}
			if err != nil {
				return err
			}
			return printList(cmd.OutOrStdout(), *output, groups)
		},
	}
	cmd.Flags().BoolVar(&indirect, "indirect", false, "Include groups reached transitively")
	cmd.Flags().BoolVar(&reverse, "reverse", false, "List groups mapped to this group instead of from it")
	return cmd
}

func newGroupsAddMemberCmd(factory *clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "add-member FROM_GROUP TO_GROUP",
		Short: "Map one group to another",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := factory.New()
			if err != nil {
				return err
			}
			if err := c.AddGroupToGroupMapping(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Mapped group %q to group %q\n", args[0], args[1])
			return nil
		},
	}
}

func newGroupsRemoveMemberCmd(factory *clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-member FROM_GROUP TO_GROUP",
		Short: "Remove a group-to-group mapping",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := factory.New()
			if err != nil {
				return err
			}
			if err := c.RemoveGroupToGroupMapping(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Unmapped group %q from group %q\n", args[0], args[1])
			return nil
		},
	}
}

func newGroupsComponentsCmd(factory *clientFactory, output *string) *cobra.Command {
	var accessible bool
	cmd := &cobra.Command{
		Use:   "components GROUP",
		Short: "List application component and access level mappings for a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := factory.New()
			if err != nil {
				return err
			}
			var pairs []domain.ComponentAndAccessLevel[string, string]
			if accessible {
				pairs, err = c.GetApplicationComponentsAccessibleByGroup(cmd.Context(), args[0])
			} else {
				pairs, err = c.GetGroupToApplicationComponentAndAccessLevelMappings(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}
			return printComponentPairs(cmd.OutOrStdout(), *output, pairs)
		},
	}
	cmd.Flags().BoolVar(&accessible, "accessible", false, "Include components accessible through mapped groups")
	return cmd
}

func newGroupsGrantComponentCmd(factory *clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "grant-component GROUP COMPONENT ACCESS_LEVEL",
		Short: "Map a group to an application component at an access level",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := factory.New()
			if err != nil {
				return err
			}
			if err := c.AddGroupToApplicationComponentAndAccessLevelMapping(cmd.Context(), args[0], args[1], args[2]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Granted group %q access level %q on component %q\n", args[0], args[2], args[1])
			return nil
		},
	}
}

func newGroupsRevokeComponentCmd(factory *clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "revoke-component GROUP COMPONENT ACCESS_LEVEL",
		Short: "Remove a group's component and access level mapping",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := factory.New()
			if err != nil {
				return err
			}
			if err := c.RemoveGroupToApplicationComponentAndAccessLevelMapping(cmd.Context(), args[0], args[1], args[2]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Revoked group %q access level %q on component %q\n", args[0], args[2], args[1])
			return nil
		},
	}
}

func newGroupsEntitiesCmd(factory *clientFactory, output *string) *cobra.Command {
	var (
		accessible bool
		entityType string
	)
	cmd := &cobra.Command{
		Use:   "entities GROUP",
		Short: "List entity mappings for a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := factory.New()
			if err != nil {
				return err
			}
			if entityType != "" {
				var entities []string
				if accessible {
					entities, err = c.GetEntitiesAccessibleByGroupForType(cmd.Context(), args[0], entityType)
				} else {
					entities, err = c.GetGroupToEntityMappingsForType(cmd.Context(), args[0], entityType)
				}
				if err != nil {
					return err
				}
				return printList(cmd.OutOrStdout(), *output, entities)
			}
			var refs []domain.EntityTypeAndEntity
			if accessible {
				refs, err = c.GetEntitiesAccessibleByGroup(cmd.Context(), args[0])
			} else {
				refs, err = c.GetGroupToEntityMappings(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}
			return printEntityRefs(cmd.OutOrStdout(), *output, refs)
		},
	}
	cmd.Flags().BoolVar(&accessible, "accessible", false, "Include entities accessible through mapped groups")
	cmd.Flags().StringVar(&entityType, "type", "", "Restrict to a single entity type")
	return cmd
}

func newGroupsGrantEntityCmd(factory *clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "grant-entity GROUP ENTITY_TYPE ENTITY",
		Short: "Map a group to an entity",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := factory.New()
			if err != nil {
				return err
			}
			if err := c.AddGroupToEntityMapping(cmd.Context(), args[0], args[1], args[2]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Granted group %q access to %s %q\n", args[0], args[1], args[2])
			return nil
		},
	}
}

func newGroupsRevokeEntityCmd(factory *clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "revoke-entity GROUP ENTITY_TYPE ENTITY",
		Short: "Remove a group's entity mapping",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := factory.New()
			if err != nil {
				return err
			}
			if err := c.RemoveGroupToEntityMapping(cmd.Context(), args[0], args[1], args[2]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Revoked group %q access to %s %q\n", args[0], args[1], args[2])
			return nil
		},
	}
}
