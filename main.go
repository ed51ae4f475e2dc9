// Command rover runs rover missions on a wrap-around grid.
//
// Local commands read a mission, run it, and print one result line:
//
//	rover run --grid planet.txt --vehicle rover.txt   # commands from stdin
//	rover scenario default                            # stored scenario
//	rover script kata.mission                         # single-file script
//
// Server commands expose the same missions to other programs:
//
//	rover serve    # REST API, WebSocket results and an /mcp HTTP endpoint
//	rover mcp      # MCP stdio server backed by the REST API
//
// A .env file in the working directory is loaded before flags are parsed.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/wricardo/rover-mission/api"
	"github.com/wricardo/rover-mission/mission/config"
	"github.com/wricardo/rover-mission/mission/service"
	"github.com/wricardo/rover-mission/transport/console"
	"github.com/wricardo/rover-mission/transport/file"
	"github.com/wricardo/rover-mission/transport/mcp"
	"github.com/wricardo/rover-mission/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Rover Mission"
)

// serverOptions controls how the HTTP server starts
type serverOptions struct {
	host         string
	port         int
	ngrokEnabled bool
	ngrokAuth    string
	ngrokDomain  string
}

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	}

	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// newApp builds the command tree
func newApp() *cli.Command {
	return &cli.Command{
		Name:    "rover",
		Usage:   "run rover missions on a wrap-around grid",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "directory containing scenario files",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("debug") {
				log.SetFlags(log.LstdFlags | log.Lshortfile)
			} else {
				log.SetFlags(log.LstdFlags)
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			runCommand(),
			scenarioCommand(),
			scriptCommand(),
			listCommand(),
			serveCommand(),
			mcpCommand(),
		},
	}
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "run a mission from a grid file and a vehicle file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "grid", Value: "planet.txt", Usage: "file with size and obstacles lines"},
			&cli.StringFlag{Name: "vehicle", Value: "rover.txt", Usage: "file with position and heading lines"},
			&cli.StringFlag{Name: "commands", Usage: "command string (read from stdin when empty)"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			source := file.NewPairSource(cmd.String("grid"), cmd.String("vehicle"))

			var channel service.Channel = console.NewChannel(os.Stdin, os.Stdout)
			if commands := cmd.String("commands"); commands != "" {
				channel = &service.TextSource{Commands: commands}
			}
			return runLocal(ctx, source, channel)
		},
	}
}

func scenarioCommand() *cli.Command {
	return &cli.Command{
		Name:      "scenario",
		Usage:     "run a stored scenario",
		ArgsUsage: "<name>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "commands", Usage: "replace the scenario's commands"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return cli.Exit("usage: rover scenario <name>", 2)
			}

			manager, err := config.NewManager(cmd.String("config-dir"))
			if err != nil {
				return err
			}

			scenario, err := manager.LoadScenario(cmd.Args().First())
			if err != nil {
				return err
			}

			source := scenario.TextSource(cmd.String("commands"))
			var channel service.Channel = source
			if source.Commands == "" {
				channel = console.NewChannel(os.Stdin, os.Stdout)
			}
			return runLocal(ctx, source, channel)
		},
	}
}

func scriptCommand() *cli.Command {
	return &cli.Command{
		Name:      "script",
		Usage:     "run a mission script file",
		ArgsUsage: "<file>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return cli.Exit("usage: rover script <file>", 2)
			}

			source := file.NewScriptSource(cmd.Args().First(), console.NewChannel(os.Stdin, os.Stdout))
			return runLocal(ctx, source, source)
		},
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "list stored scenarios",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			manager, err := config.NewManager(cmd.String("config-dir"))
			if err != nil {
				return err
			}

			infos, err := manager.ListScenarios()
			if err != nil {
				return err
			}
			for _, info := range infos {
				fmt.Printf("%-20s %-6s %-8s %s\n", info.ScenarioID, info.Format, info.Size, info.Name)
			}
			return nil
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP server with REST API, WebSocket and MCP endpoint",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "host", Value: "localhost", Usage: "HTTP server host"},
			&cli.IntFlag{Name: "port", Value: 8080, Usage: "HTTP server port", Sources: cli.EnvVars("PORT")},
			&cli.BoolFlag{Name: "ngrok", Usage: "enable ngrok tunnel", Sources: cli.EnvVars("NGROK_ENABLED")},
			&cli.StringFlag{Name: "ngrok-auth", Usage: "ngrok auth token", Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN")},
			&cli.StringFlag{Name: "ngrok-domain", Usage: "custom ngrok domain", Sources: cli.EnvVars("NGROK_DOMAIN")},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			missionService, err := initializeServices(cmd.String("config-dir"))
			if err != nil {
				return fmt.Errorf("failed to initialize services: %w", err)
			}

			log.Printf("Starting %s v%s", AppName, Version)
			return runHTTPServer(missionService, serverOptions{
				host:         cmd.String("host"),
				port:         int(cmd.Int("port")),
				ngrokEnabled: cmd.Bool("ngrok"),
				ngrokAuth:    cmd.String("ngrok-auth"),
				ngrokDomain:  cmd.String("ngrok-domain"),
			})
		},
	}
}

func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:    "mcp",
		Aliases: []string{"stdio-mcp"},
		Usage:   "run an MCP stdio server, starting an internal HTTP API if none is reachable",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "api-url", Value: "http://localhost:8080", Usage: "external REST API to use when reachable"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			missionService, err := initializeServices(cmd.String("config-dir"))
			if err != nil {
				return fmt.Errorf("failed to initialize services: %w", err)
			}
			return runStdioMCPWithInternalServer(missionService, cmd.String("api-url"))
		},
	}
}

// runLocal runs one mission against the console reporter. A failed mission
// has already been reported, so only the exit status is returned.
func runLocal(ctx context.Context, source service.Source, channel service.Channel) error {
	if err := service.RunApp(ctx, source, channel, console.NewReporter(os.Stdout)); err != nil {
		return cli.Exit("", 1)
	}
	return nil
}

// initializeServices wires the scenario manager and the mission service
func initializeServices(configDir string) (service.MissionService, error) {
	manager, err := config.NewManager(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}
	return service.NewMissionService(manager), nil
}

// newHandler combines the API server with the /mcp JSON-RPC endpoint
func newHandler(missionService service.MissionService, hub *websocket.Hub, baseURL string) http.Handler {
	apiServer := api.NewServer(missionService, hub)
	mcpClient := mcp.NewClient(baseURL)

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)

	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	})

	return mainRouter
}

// runHTTPServer starts the HTTP server and, when enabled, an ngrok tunnel.
// It blocks until SIGINT or SIGTERM.
func runHTTPServer(missionService service.MissionService, opts serverOptions) error {
	hub := websocket.NewHub()
	go hub.Run()

	addr := fmt.Sprintf("%s:%d", opts.host, opts.port)
	handler := newHandler(missionService, hub, fmt.Sprintf("http://%s", addr))

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Printf("HTTP server listening on %s", addr)
		log.Printf("REST API: http://%s/api", addr)
		log.Printf("WebSocket: ws://%s/ws?topic=<scenario|adhoc|*>", addr)
		log.Printf("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	if opts.ngrokEnabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(ctx, handler, opts)
		}()
	}

	sig := <-stop
	log.Printf("Received signal: %v. Shutting down...", sig)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	wg.Wait()
	log.Println("Server stopped")
	return nil
}

// runNgrokTunnel serves handler through an ngrok tunnel until ctx is done
func runNgrokTunnel(ctx context.Context, handler http.Handler, opts serverOptions) {
	if opts.ngrokAuth == "" {
		log.Println("WARNING: Ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN env var)")
		return
	}

	log.Println("Starting ngrok tunnel...")

	var tunnel ngrokConfig.Tunnel
	if opts.ngrokDomain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(opts.ngrokDomain))
		log.Printf("Using custom ngrok domain: %s", opts.ngrokDomain)
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(opts.ngrokAuth))
	if err != nil {
		log.Printf("Failed to start ngrok tunnel: %v", err)
		return
	}
	defer func() {
		if err := tun.Close(); err != nil {
			log.Printf("Failed to close ngrok tunnel: %v", err)
		}
	}()

	// Close the listener on shutdown so http.Serve returns
	go func() {
		<-ctx.Done()
		tun.Close()
	}()

	ngrokURL := tun.URL()
	log.Printf("🚀 Ngrok tunnel established: %s", ngrokURL)
	log.Printf("  REST API (ngrok): %s/api", ngrokURL)
	log.Printf("  WebSocket (ngrok): %s/ws?topic=*", ngrokURL)
	log.Printf("  MCP endpoint (ngrok): %s/mcp", ngrokURL)

	if err := http.Serve(tun, handler); err != nil && err != http.ErrServerClosed && ctx.Err() == nil {
		log.Printf("Ngrok server error: %v", err)
	}
	log.Println("Ngrok tunnel closed")
}

// runStdioMCPWithInternalServer runs an MCP stdio server. It reuses the API
// at externalURL when reachable; otherwise it starts an internal HTTP API on
// a random loopback port.
func runStdioMCPWithInternalServer(missionService service.MissionService, externalURL string) error {
	var baseURL string

	log.Printf("Checking for external API server at %s...", externalURL)

	testClient := &http.Client{Timeout: 2 * time.Second}
	if apiReachable(testClient, externalURL) {
		log.Printf("External API server found at %s, using it for MCP", externalURL)
		baseURL = externalURL
	} else {
		log.Printf("No external API server found, starting internal HTTP server")

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}

		internalAddr := listener.Addr().String()
		log.Printf("Starting internal HTTP server on %s for MCP stdio", internalAddr)

		hub := websocket.NewHub()
		go hub.Run()

		httpServer := &http.Server{
			Handler: api.NewServer(missionService, hub),
		}
		go func() {
			if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
				log.Printf("Internal HTTP server error: %v", err)
			}
		}()

		baseURL = fmt.Sprintf("http://%s", internalAddr)
	}

	mcpClient := mcp.NewClient(baseURL)
	log.Printf("MCP stdio server ready (API at %s)", baseURL)

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}

// apiReachable reports whether the API at baseURL answers its health check
// without a server error
func apiReachable(client *http.Client, baseURL string) bool {
	resp, err := client.Get(baseURL + "/api/health")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode < 500
}
