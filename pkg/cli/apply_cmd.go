package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"accessgraph/client"
)

// manifest is the declarative on-disk description of an access graph.
// Elements are created before the mappings that reference them.
type manifest struct {
	Users       []string           `yaml:"users,omitempty"`
	Groups      []string           `yaml:"groups,omitempty"`
	EntityTypes []manifestEntities `yaml:"entityTypes,omitempty"`

	UserGroups  []manifestUserGroup  `yaml:"userGroups,omitempty"`
	GroupGroups []manifestGroupGroup `yaml:"groupGroups,omitempty"`

	ComponentGrants []manifestComponentGrant `yaml:"componentGrants,omitempty"`
	EntityGrants    []manifestEntityGrant    `yaml:"entityGrants,omitempty"`
}

type manifestEntities struct {
	Name     string   `yaml:"name"`
	Entities []string `yaml:"entities,omitempty"`
}

type manifestUserGroup struct {
	User  string `yaml:"user"`
	Group string `yaml:"group"`
}

type manifestGroupGroup struct {
	FromGroup string `yaml:"fromGroup"`
	ToGroup   string `yaml:"toGroup"`
}

type manifestComponentGrant struct {
	User                 string `yaml:"user,omitempty"`
	Group                string `yaml:"group,omitempty"`
	ApplicationComponent string `yaml:"applicationComponent"`
	AccessLevel          string `yaml:"accessLevel"`
}

type manifestEntityGrant struct {
	User       string `yaml:"user,omitempty"`
	Group      string `yaml:"group,omitempty"`
	EntityType string `yaml:"entityType"`
	Entity     string `yaml:"entity"`
}

func newApplyCmd(factory *clientFactory) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Create the users, groups, entities, and mappings described in a manifest file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read manifest: %w", err)
			}
			var m manifest
			if err := yaml.Unmarshal(data, &m); err != nil {
				return fmt.Errorf("parse manifest %s: %w", file, err)
			}
			if err := m.validate(); err != nil {
				return fmt.Errorf("invalid manifest %s: %w", file, err)
			}
			c, err := factory.New()
			if err != nil {
				return err
			}
			if err := applyManifest(cmd.Context(), c, &m); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Applied %s\n", file)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to the manifest file")
	cmd.MarkFlagRequired("file")
	return cmd
}

func (m *manifest) validate() error {
	for i, g := range m.ComponentGrants {
		if (g.User == "") == (g.Group == "") {
			return fmt.Errorf("componentGrants[%d]: exactly one of user or group must be set", i)
		}
		if g.ApplicationComponent == "" || g.AccessLevel == "" {
			return fmt.Errorf("componentGrants[%d]: applicationComponent and accessLevel are required", i)
		}
	}
	for i, g := range m.EntityGrants {
		if (g.User == "") == (g.Group == "") {
			return fmt.Errorf("entityGrants[%d]: exactly one of user or group must be set", i)
		}
		if g.EntityType == "" || g.Entity == "" {
			return fmt.Errorf("entityGrants[%d]: entityType and entity are required", i)
		}
	}
	for i, t := range m.EntityTypes {
		if t.Name == "" {
			return fmt.Errorf("entityTypes[%d]: name is required", i)
		}
	}
	return nil
}

// applyManifest creates elements concurrently, then mappings in order.
// Mappings reference elements so they only start once all elements
// exist.
func applyManifest(ctx context.Context, c *client.StringClient, m *manifest) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)

	for _, user := range m.Users {
		g.Go(func() error {
			return ensureCreated(c.AddUser(gctx, user), "user %q", user)
		})
	}
	for _, group := range m.Groups {
		g.Go(func() error {
			return ensureCreated(c.AddGroup(gctx, group), "group %q", group)
		})
	}
	for _, t := range m.EntityTypes {
		g.Go(func() error {
			if err := ensureCreated(c.AddEntityType(gctx, t.Name), "entity type %q", t.Name); err != nil {
				return err
			}
			for _, entity := range t.Entities {
				if err := ensureCreated(c.AddEntity(gctx, t.Name, entity), "entity %q/%q", t.Name, entity); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, ug := range m.UserGroups {
		if err := ensureCreated(c.AddUserToGroupMapping(ctx, ug.User, ug.Group), "user %q to group %q mapping", ug.User, ug.Group); err != nil {
			return err
		}
	}
	for _, gg := range m.GroupGroups {
		if err := ensureCreated(c.AddGroupToGroupMapping(ctx, gg.FromGroup, gg.ToGroup), "group %q to group %q mapping", gg.FromGroup, gg.ToGroup); err != nil {
			return err
		}
	}
	for _, grant := range m.ComponentGrants {
		var err error
		if grant.User != "" {
			err = c.AddUserToApplicationComponentAndAccessLevelMapping(ctx, grant.User, grant.ApplicationComponent, grant.AccessLevel)
		} else {
			err = c.AddGroupToApplicationComponentAndAccessLevelMapping(ctx, grant.Group, grant.ApplicationComponent, grant.AccessLevel)
		}
		if err := ensureCreated(err, "component grant on %q", grant.ApplicationComponent); err != nil {
			return err
		}
	}
	for _, grant := range m.EntityGrants {
		var err error
		if grant.User != "" {
			err = c.AddUserToEntityMapping(ctx, grant.User, grant.EntityType, grant.Entity)
		} else {
			err = c.AddGroupToEntityMapping(ctx, grant.Group, grant.EntityType, grant.Entity)
		}
		if err := ensureCreated(err, "entity grant on %q/%q", grant.EntityType, grant.Entity); err != nil {
			return err
		}
	}
	return nil
}

func ensureCreated(err error, format string, args ...any) error {
	if err != nil {
		return fmt.Errorf("create "+format+": %w", append(args, err)...)
	}
	return nil
}
