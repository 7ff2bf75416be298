package main

import (
	"fmt"

	"siteask"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	projects, err := deps.Projects.FindProjects(deps.Ctx, siteask.ProjectFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", siteask.ErrorMessage(err))
		return err
	}

	if len(projects) == 0 {
		fmt.Fprintln(deps.Stdout, "No projects found. Use 'siteask add' to create one.")
		return nil
	}

	for _, p := range projects {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", p.ID, p.Name, p.SourceURL)
	}

	return nil
}
