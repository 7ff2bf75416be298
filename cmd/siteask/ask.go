package main

import (
	"fmt"

	"siteask"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
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

	answer, err := deps.Asker.Ask(deps.Ctx, project.ID, c.Question)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", siteask.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, answer)
	return nil
}
