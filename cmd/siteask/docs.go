package main

import (
	"fmt"

	"siteask"
	"siteask/fs"
)

// Run executes the docs command.
func (c *DocsCmd) Run(deps *Dependencies) error {
	project, docs, err := findProjectDocuments(deps, c.Name)
	if err != nil {
		return err
	}

	if c.Full {
		for _, doc := range docs {
			fmt.Fprintln(deps.Stdout, fs.FormatDocument(doc))
		}
		return nil
	}

	// Print summary listing
	fmt.Fprintf(deps.Stdout, "Documents for %s (%d total):\n\n", project.Name, len(docs))
	for i, doc := range docs {
		title := doc.Title
		if title == "" {
			title = doc.SourceURL
		}
		fmt.Fprintf(deps.Stdout, "  %d. %s\n     %s\n", i+1, title, doc.SourceURL)
	}

	return nil
}

// findProjectDocuments resolves a project by name and loads its documents
// in page order.
func findProjectDocuments(deps *Dependencies, name string) (*siteask.Project, []*siteask.Document, error) {
	projects, err := deps.Projects.FindProjects(deps.Ctx, siteask.ProjectFilter{Name: &name})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", siteask.ErrorMessage(err))
		return nil, nil, err
	}

	if len(projects) == 0 {
		fmt.Fprintf(deps.Stderr, "error: project %q not found. Use 'siteask list' to see available projects.\n", name)
		return nil, nil, siteask.Errorf(siteask.ENOTFOUND, "project %q not found", name)
	}

	project := projects[0]

	docs, err := deps.Documents.FindDocuments(deps.Ctx, siteask.DocumentFilter{
		ProjectID: &project.ID,
		SortBy:    siteask.SortByPosition,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", siteask.ErrorMessage(err))
		return nil, nil, err
	}

	if len(docs) == 0 {
		fmt.Fprintf(deps.Stderr, "error: project %q has no documents. To re-add, first run 'siteask delete %s --force', then add it again.\n", name, name)
		return nil, nil, siteask.Errorf(siteask.ENOTFOUND, "project %q has no documents", name)
	}

	return project, docs, nil
}
