// Command attacksim runs a catalog of simulated adversary commands
// against the local host and reports what the host's defenses stopped.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/noxsec/attacksim"
	"github.com/noxsec/attacksim/internal/catalog"
	"github.com/noxsec/attacksim/internal/config"
	"github.com/noxsec/attacksim/internal/importer"
	simmcp "github.com/noxsec/attacksim/internal/mcp"
	"github.com/noxsec/attacksim/internal/report"
	"github.com/noxsec/attacksim/internal/runner"
	"github.com/noxsec/attacksim/internal/simulate"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("attacksim: ")

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "run":
		err = runMain(args)
	case "import":
		err = importMain(args)
	case "mcp":
		err = mcpMain(args)
	case "version":
		fmt.Println(attacksim.Version)
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "attacksim: unknown command %q\n", cmd)
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: attacksim <command> [flags]

Commands:
  run         Execute the command catalog and write the HTML report
  import      Sync a technique repository and rebuild the command catalog
  mcp         Start the MCP server
  version     Print the version
  help        Show this help

Use "attacksim <command> -h" for command-specific flags.`)
}

// --- run ---

func runMain(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	configPath := fs.String("config-path", "", "path to the command catalog JSON file")
	outputPath := fs.String("output-path", "", "path for the generated HTML report")
	jsonFlag := fs.Bool("json", false, "print results as JSON instead of a text summary")
	timeoutFlag := fs.Duration("timeout", 0, "override per-command timeout (e.g. 30s)")
	concurrencyFlag := fs.Int("concurrency", 0, "override worker count (1 = sequential)")
	_ = fs.Parse(args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	catalogPath := *configPath
	if catalogPath == "" {
		catalogPath = cfg.CatalogPath()
	}
	reportPath := *outputPath
	if reportPath == "" {
		reportPath = cfg.ReportPath()
	}

	// A missing or malformed catalog is fatal: no commands run, no
	// report is produced.
	specs, err := catalog.Load(catalogPath)
	if err != nil {
		return err
	}

	orch := newOrchestrator(cfg, *timeoutFlag, *concurrencyFlag)
	orch.Progress = func(index, total int, spec catalog.CommandSpec) {
		log.Printf("[%d/%d] running: %s", index+1, total, spec.Command)
	}

	run := orch.RunAll(ctx, specs)

	if *jsonFlag {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(run); err != nil {
			return err
		}
	} else {
		fmt.Println(run.Summary())
	}

	// The run is complete and valid at this point; only the report
	// write can still fail, and it is retryable against another path.
	if err := report.WriteHTML(reportPath, run); err != nil {
		return err
	}
	log.Printf("report written to %s", reportPath)
	return nil
}

func newOrchestrator(cfg *config.Config, timeoutOverride time.Duration, concurrencyOverride int) *simulate.Orchestrator {
	timeout := cfg.Timeout()
	if timeoutOverride > 0 {
		timeout = timeoutOverride
	}
	concurrency := cfg.Concurrency()
	if concurrencyOverride > 0 {
		concurrency = concurrencyOverride
	}

	return &simulate.Orchestrator{
		Runner: &simulate.Runner{
			Executor: &runner.Runner{
				Shell:     cfg.Shell(),
				Timeout:   timeout,
				MaxOutput: cfg.MaxOutputBytes(),
			},
			Classifier: simulate.NewClassifier(cfg.Classify.AccessDenied, cfg.Classify.Blocked),
		},
		Concurrency: concurrency,
	}
}

// --- import ---

func importMain(args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	repoURL := fs.String("url", "", "git URL of the technique repository (omit to parse an existing clone)")
	repoName := fs.String("name", "", "directory name of the repository clone")
	workDir := fs.String("work-dir", ".", "directory holding repository clones")
	outPath := fs.String("out", "", "path for the generated catalog JSON")
	_ = fs.Parse(args)

	if *repoName == "" {
		return fmt.Errorf("import: -name is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	out := *outPath
	if out == "" {
		out = cfg.CatalogPath()
	}

	im := &importer.Importer{Logf: log.Printf}

	var repoDir string
	if *repoURL != "" {
		repoDir, err = im.Sync(ctx, *workDir, *repoURL, *repoName)
		if err != nil {
			return err
		}
	} else {
		repoDir = filepath.Join(*workDir, *repoName)
	}

	specs, err := im.Parse(repoDir)
	if err != nil {
		return err
	}
	if err := catalog.Write(out, specs); err != nil {
		return err
	}
	log.Printf("parsed %d commands into %s", len(specs), out)
	return nil
}

// --- mcp ---

func mcpMain(args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ExitOnError)
	instructions := fs.Bool("instructions", false, "print model instructions and exit")
	httpAddr := fs.String("http", "", "start HTTP server on address (e.g. :9090)")
	configPath := fs.String("config-path", "", "path to the command catalog JSON file")
	_ = fs.Parse(args)

	if *instructions {
		fmt.Print(simmcp.Instructions)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	catalogPath := *configPath
	if catalogPath == "" {
		catalogPath = cfg.CatalogPath()
	}

	orch := newOrchestrator(cfg, 0, 0)
	store := report.NewLRUStore(5, report.NewDiskStore())

	server := simmcp.NewServer(orch, store, catalogPath)

	if *httpAddr != "" {
		return serveHTTP(ctx, server, *httpAddr)
	}
	return server.Run(ctx, &mcpsdk.StdioTransport{})
}

func serveHTTP(ctx context.Context, server *mcpsdk.Server, addr string) error {
	handler := mcpsdk.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcpsdk.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		<-ctx.Done()
		_ = httpServer.Close()
	}()

	log.Printf("listening on %s", addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// --- shared ---

func loadConfig() (*config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("determining working directory: %w", err)
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}
