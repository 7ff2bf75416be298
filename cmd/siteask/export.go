package main

import (
	"fmt"

	"siteask"
	"siteask/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	project, docs, err := findProjectDocuments(deps, c.Name)
	if err != nil {
		return err
	}

	writer := fs.NewWriter(c.Dir)

	exported := 0
	for _, doc := range docs {
		if err := writer.CreateDocument(deps.Ctx, doc); err != nil {
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", doc.SourceURL, siteask.ErrorMessage(err))
			continue
		}
		exported++
	}

	fmt.Fprintf(deps.Stdout, "Exported %d documents from %q to %s\n", exported, project.Name, c.Dir)
	return nil
}
