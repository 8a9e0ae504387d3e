package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAccessCmd(factory *clientFactory, output *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "access",
		Short: "Evaluate effective access and reverse mappings",
	}
	cmd.AddCommand(
		newAccessCheckComponentCmd(factory),
		newAccessCheckEntityCmd(factory),
		newAccessComponentUsersCmd(factory, output),
		newAccessComponentGroupsCmd(factory, output),
	)
	return cmd
}

func newAccessCheckComponentCmd(factory *clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "check-component USER COMPONENT ACCESS_LEVEL",
		Short: "Check whether a user has access to a component, including through groups",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := factory.New()
			if err != nil {
				return err
			}
			ok, err := c.HasAccessToApplicationComponent(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ok)
			return nil
		},
	}
}

func newAccessCheckEntityCmd(factory *clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "check-entity USER ENTITY_TYPE ENTITY",
		Short: "Check whether a user has access to an entity, including through groups",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := factory.New()
			if err != nil {
				return err
			}
			ok, err := c.HasAccessToEntity(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ok)
			return nil
		},
	}
}

func newAccessComponentUsersCmd(factory *clientFactory, output *string) *cobra.Command {
	var indirect bool
	cmd := &cobra.Command{
		Use:   "component-users COMPONENT ACCESS_LEVEL",
		Short: "List the users mapped to a component at an access level",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := factory.New()
			if err != nil {
				return err
			}
			users, err := c.GetApplicationComponentAndAccessLevelToUserMappings(cmd.Context(), args[0], args[1], indirect)
			if err != nil {
				return err
			}
			return printList(cmd.OutOrStdout(), *output, users)
		},
	}
	cmd.Flags().BoolVar(&indirect, "indirect", false, "Include users with access through group membership")
	return cmd
}

func newAccessComponentGroupsCmd(factory *clientFactory, output *string) *cobra.Command {
	var indirect bool
	cmd := &cobra.Command{
		Use:   "component-groups COMPONENT ACCESS_LEVEL",
		Short: "List the groups mapped to a component at an access level",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := factory.New()
			if err != nil {
				return err
			}
			groups, err := c.GetApplicationComponentAndAccessLevelToGroupMappings(cmd.Context(), args[0], args[1], indirect)
			if err != nil {
				return err
			}
			return printList(cmd.OutOrStdout(), *output, groups)
		},
	}
	cmd.Flags().BoolVar(&indirect, "indirect", false, "Include groups with access through group-to-group mappings")
	return cmd
}
