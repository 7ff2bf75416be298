package main

import (
	"fmt"
	"path/filepath"

	"siteask"
	"siteask/fs"
)

// Run executes the ingest command.
func (c *IngestCmd) Run(deps *Dependencies) error {
	if c.Force {
		if err := deleteProjectByName(deps, c.Name); err != nil {
			return err
		}
	}

	absPath, err := filepath.Abs(c.Path)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: invalid path %q\n", c.Path)
		return siteask.Errorf(siteask.EINVALID, "invalid path %q", c.Path)
	}

	ingester := fs.NewIngester(absPath, deps.Extractor)
	docs, err := ingester.Scrape(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", siteask.ErrorMessage(err))
		return err
	}
	if len(docs) == 0 {
		fmt.Fprintf(deps.Stderr, "error: no readable files found in %q\n", c.Path)
		return siteask.Errorf(siteask.ENOTFOUND, "no readable files found in %q", c.Path)
	}

	project := &siteask.Project{
		Name:      c.Name,
		SourceURL: "file://" + absPath,
		Kind:      siteask.KindFile,
	}
	if err := deps.Projects.CreateProject(deps.Ctx, project); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", siteask.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Added project %q (%s)\n", c.Name, project.ID)

	saved := 0
	for _, doc := range docs {
		doc.ProjectID = project.ID
		if err := deps.Documents.CreateDocument(deps.Ctx, doc); err != nil {
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", doc.SourceURL, err)
			continue
		}
		saved++
	}

	fmt.Fprintf(deps.Stdout, "  Ingested %d files\n", saved)
	return nil
}
