package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"google.golang.org/genai"

	"siteask"
	"siteask/crawl"
	"siteask/gemini"
	"siteask/goquery"
	"siteask/htmltomarkdown"
	sitehttp "siteask/http"
	"siteask/robots"
	"siteask/rod"
	"siteask/sqlite"
	"siteask/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	ProjectService  siteask.ProjectService
	DocumentService siteask.DocumentService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("siteask"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'siteask --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set SITEASK_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.ProjectService = sqlite.NewProjectService(m.DB)
	m.DocumentService = sqlite.NewDocumentService(m.DB)
	deps.DB = m.DB
	deps.Projects = m.ProjectService
	deps.Documents = m.DocumentService
	deps.Sitemaps = sitehttp.NewSitemapService(nil)
	deps.Extractor = trafilatura.NewExtractor()

	// Wire command-specific dependencies based on command
	if cmd == "add" && !cli.Add.Preview {
		fetcher, err := m.selectFetcher(ctx, &cli.Add, stderr)
		if err != nil {
			return err
		}
		defer fetcher.Close()

		scope := siteask.ScopePath
		if cli.Add.Scope == "domain" {
			scope = siteask.ScopeDomain
		}
		discovererOpts := []goquery.Option{goquery.WithScope(scope)}
		if cli.Add.KeepQuery {
			discovererOpts = append(discovererOpts, goquery.WithKeepQuery())
		}
		discoverer, err := goquery.NewDiscoverer(cli.Add.URL, discovererOpts...)
		if err != nil {
			return err
		}

		tokenCounter, err := gemini.NewTokenCounter(tokenizerModel)
		if err != nil {
			return fmt.Errorf("failed to create token counter: %w", err)
		}

		deps.Crawler = &crawl.Scheduler{
			Fetcher:      fetcher,
			Extractor:    deps.Extractor,
			Links:        discoverer,
			Robots:       robots.NewGate(),
			Limiter:      crawl.NewDomainLimiter(cli.Add.RPM),
			Converter:    htmltomarkdown.NewConverter(),
			Documents:    m.DocumentService,
			TokenCounter: tokenCounter,
			Config: crawl.Config{
				MaxLinks:        cli.Add.MaxLinks,
				MaxDepth:        cli.Add.Depth,
				PageLoadTimeout: cli.Add.Timeout,
				Concurrency:     cli.Add.Concurrency,
			},
		}
		if cli.Add.Sitemap {
			deps.Crawler.Sitemaps = deps.Sitemaps
		}
	}

	if cmd == "ask" {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		deps.Asker = gemini.NewAsker(client, m.DocumentService)
	}

	return kongCtx.Run(deps)
}

// selectFetcher picks a page fetcher for the add command based on the
// renderer flag. In auto mode the seed is probed with both fetchers and
// the browser is kept only when it renders meaningfully more content.
func (m *Main) selectFetcher(ctx context.Context, c *AddCmd, stderr io.Writer) (siteask.Fetcher, error) {
	httpFetcher := sitehttp.NewFetcher(
		sitehttp.WithUserAgent(crawl.DefaultUserAgent),
		sitehttp.WithTimeout(c.Timeout),
	)

	if c.Renderer == "http" {
		return httpFetcher, nil
	}

	browserFetcher, err := rod.NewFetcher(rod.WithSettleDelay(c.Settle))
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	if c.Renderer == "browser" {
		return browserFetcher, nil
	}

	needsBrowser, err := crawl.NeedsBrowser(ctx, c.URL, httpFetcher, browserFetcher, trafilatura.NewExtractor())
	if err != nil {
		browserFetcher.Close()
		return nil, err
	}
	if needsBrowser {
		return browserFetcher, nil
	}
	browserFetcher.Close()
	return httpFetcher, nil
}

// tokenizerModel is used for token counting. The local tokenizer trails
// the generation model in supported names.
const tokenizerModel = "gemini-2.5-flash"

func defaultDBPath() string {
	if path := os.Getenv("SITEASK_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "siteask.db"
	}
	dir := filepath.Join(home, ".siteask")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "siteask.db")
}
