package main

import (
	"context"
	"io"
	"time"

	"siteask"
	"siteask/crawl"
	"siteask/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	DB        *sqlite.DB
	Projects  siteask.ProjectService
	Documents siteask.DocumentService
	Sitemaps  siteask.SitemapService
	Extractor siteask.Extractor
	Crawler   *crawl.Scheduler
	Asker     siteask.Asker
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Add    AddCmd    `cmd:"" help:"Add a project and crawl its site"`
	Ingest IngestCmd `cmd:"" help:"Add a project from local files"`
	List   ListCmd   `cmd:"" help:"List all registered projects"`
	Delete DeleteCmd `cmd:"" help:"Delete a project and its documents"`
	Docs   DocsCmd   `cmd:"" help:"List documents for a project"`
	Export ExportCmd `cmd:"" help:"Export a project's documents as markdown files"`
	Ask    AskCmd    `cmd:"" help:"Ask a question about a project's pages"`
}

// AddCmd is the "add" subcommand.
type AddCmd struct {
	Name        string        `arg:"" help:"Project name"`
	URL         string        `arg:"" help:"Seed URL to crawl from"`
	Preview     bool          `short:"p" help:"Show sitemap URLs without creating a project"`
	Force       bool          `short:"f" help:"Delete existing project first"`
	Filter      []string      `short:"F" name:"filter" help:"Filter URLs by regex (repeatable)"`
	MaxLinks    int           `default:"10" help:"Maximum number of pages to fetch"`
	Depth       int           `default:"1" help:"Maximum link distance from the seed"`
	Timeout     time.Duration `default:"10s" help:"Per-page load timeout"`
	Settle      time.Duration `default:"5s" help:"Extra wait after page load for late-rendering content"`
	RPM         int           `name:"rpm" default:"10" help:"Requests per minute per domain"`
	Concurrency int           `short:"c" default:"1" help:"Concurrent fetch limit"`
	Scope       string        `default:"path" enum:"path,domain" help:"Crawl scope: path or domain"`
	KeepQuery   bool          `help:"Keep query strings on discovered URLs"`
	Renderer    string        `default:"auto" enum:"auto,browser,http" help:"Page renderer: auto, browser, or http"`
	Sitemap     bool          `help:"Seed the crawl from the site's sitemap"`
}

// IngestCmd is the "ingest" subcommand.
type IngestCmd struct {
	Name  string `arg:"" help:"Project name"`
	Path  string `arg:"" type:"path" help:"Directory or file to ingest"`
	Force bool   `short:"f" help:"Delete existing project first"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Name  string `arg:"" help:"Project name"`
	Force bool   `help:"Confirm deletion"`
}

// DocsCmd is the "docs" subcommand.
type DocsCmd struct {
	Name string `arg:"" help:"Project name"`
	Full bool   `help:"Show full document content"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Name string `arg:"" help:"Project name"`
	Dir  string `arg:"" type:"path" help:"Output directory"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Name     string `arg:"" help:"Project name"`
	Question string `arg:"" help:"Question to ask about the project's pages"`
}
