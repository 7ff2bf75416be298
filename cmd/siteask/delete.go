package main

import (
	"fmt"

	"siteask"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return siteask.Errorf(siteask.EINVALID, "use --force to confirm deletion")
	}

	projects, err := deps.Projects.FindProjects(deps.Ctx, siteask.ProjectFilter{Name: &c.Name})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", siteask.ErrorMessage(err))
		return err
	}

	if len(projects) == 0 {
		fmt.Fprintf(deps.Stderr, "error: project %q not found. Use 'siteask list' to see available projects.\n", c.Name)
		return siteask.Errorf(siteask.ENOTFOUND, "project %q not found", c.Name)
	}

	project := projects[0]
	if err := deps.Projects.DeleteProject(deps.Ctx, project.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", siteask.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted project %q\n", project.Name)
	return nil
}
