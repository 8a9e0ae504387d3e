package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newEntityTypesCmd(factory *clientFactory, output *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entity-types",
		Short: "Manage entity types and their entities",
	}
	cmd.AddCommand(
		newEntityTypesListCmd(factory, output),
		newEntityTypesAddCmd(factory),
		newEntityTypesRemoveCmd(factory),
		newEntityTypesContainsCmd(factory),
		newEntitiesListCmd(factory, output),
		newEntitiesAddCmd(factory),
		newEntitiesRemoveCmd(factory),
		newEntitiesContainsCmd(factory),
		newEntityUsersCmd(factory, output),
		newEntityGroupsCmd(factory, output),
	)
	return cmd
}

func newEntityTypesListCmd(factory *clientFactory, output *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all registered entity types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := factory.New()
			if err != nil {
				return err
			}
			types, err := c.EntityTypes(cmd.Context())
			if err != nil {
				return err
			}
			return printList(cmd.OutOrStdout(), *output, types)
		},
	}
}

func newEntityTypesAddCmd(factory *clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "add ENTITY_TYPE",
		Short: "Register an entity type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := factory.New()
			if err != nil {
				return err
			}
			if err := c.AddEntityType(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added entity type %q\n", args[0])
			return nil
		},
	}
}

func newEntityTypesRemoveCmd(factory *clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ENTITY_TYPE",
		Short: "Remove an entity type and all its entities",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := factory.New()
			if err != nil {
				return err
			}
			if err := c.RemoveEntityType(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed entity type %q\n", args[0])
			return nil
		},
	}
}

func newEntityTypesContainsCmd(factory *clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "contains ENTITY_TYPE",
		Short: "Check whether an entity type is registered",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := factory.New()
			if err != nil {
				return err
			}
			ok, err := c.ContainsEntityType(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ok)
			return nil
		},
	}
}

func newEntitiesListCmd(factory *clientFactory, output *string) *cobra.Command {
	return &cobra.Command{
		Use:   "entities ENTITY_TYPE",
		Short: "List the entities of an entity type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := factory.New()
			if err != nil {
				return err
			}
			entities, err := c.GetEntities(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printList(cmd.OutOrStdout(), *output, entities)
		},
	}
}

func newEntitiesAddCmd(factory *clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "add-entity ENTITY_TYPE ENTITY",
		Short: "Register an entity under an entity type",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := factory.New()
			if err != nil {
				return err
			}
			if err := c.AddEntity(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %q\n", args[0], args[1])
			return nil
		},
	}
}

func newEntitiesRemoveCmd(factory *clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-entity ENTITY_TYPE ENTITY",
		Short: "Remove an entity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := factory.New()
			if err != nil {
				return err
			}
			if err := c.RemoveEntity(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s %q\n", args[0], args[1])
			return nil
		},
	}
}

func newEntitiesContainsCmd(factory *clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "contains-entity ENTITY_TYPE ENTITY",
		Short: "Check whether an entity is registered",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := factory.New()
			if err != nil {
				return err
			}
			ok, err := c.ContainsEntity(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ok)
			return nil
		},
	}
}

func newEntityUsersCmd(factory *clientFactory, output *string) *cobra.Command {
	var indirect bool
	cmd := &cobra.Command{
		Use:   "users ENTITY_TYPE ENTITY",
		Short: "List the users mapped to an entity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := factory.New()
			if err != nil {
				return err
			}
			users, err := c.GetEntityToUserMappings(cmd.Context(), args[0], args[1], indirect)
			if err != nil {
				return err
			}
			return printList(cmd.OutOrStdout(), *output, users)
		},
	}
	cmd.Flags().BoolVar(&indirect, "indirect", false, "Include users with access through group membership")
	return cmd
}

func newEntityGroupsCmd(factory *clientFactory, output *string) *cobra.Command {
	var indirect bool
	cmd := &cobra.Command{
		Use:   "groups ENTITY_TYPE ENTITY",
		Short: "List the groups mapped to an entity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := factory.New()
			if err != nil {
				return err
			}
			groups, err := c.GetEntityToGroupMappings(cmd.Context(), args[0], args[1], indirect)
			if err != nil {
				return err
			}
			return printList(cmd.OutOrStdout(), *output, groups)
		},
	}
	cmd.Flags().BoolVar(&indirect, "indirect", false, "Include groups with access through group-to-group mappings")
	return cmd
}
