package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/master-moose/aurorakvm/internal/capture"
	"github.com/master-moose/aurorakvm/internal/client"
	"github.com/master-moose/aurorakvm/internal/config"
	"github.com/master-moose/aurorakvm/internal/discovery"
	"github.com/master-moose/aurorakvm/internal/hostinfo"
	"github.com/master-moose/aurorakvm/internal/logging"
	"github.com/master-moose/aurorakvm/internal/platform"
	"github.com/master-moose/aurorakvm/internal/server"
	"github.com/master-moose/aurorakvm/internal/statusui"
	"github.com/master-moose/aurorakvm/internal/topology"
	"github.com/master-moose/aurorakvm/internal/wire"
)

var (
	version = "0.1.0"
	cfgFile string
	logFmt  string
	logLvl  string
	logFile string

	serverPort     uint16
	serverHeadless bool

	clientHost string
)

var log = logging.L("main")

var rootCmd = &cobra.Command{
	Use:   "aurora-kvm",
	Short: "Software KVM switch",
	Long:  "aurora-kvm shares one keyboard and mouse across multiple machines on a local network.",
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the host that owns the physical keyboard and mouse",
	Run: func(cmd *cobra.Command, args []string) {
		runServer(cmd.Flags().Changed("port"))
	},
}

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Connect to a running server and accept routed input",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runClient()
	},
}

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Listen for servers beaconing on the local network",
	Run: func(cmd *cobra.Command, args []string) {
		runDiscover()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		info := hostinfo.Describe()
		fmt.Printf("aurora-kvm v%s\n", version)
		fmt.Printf("host: %s (%s), up %s\n", info.Hostname, info.OS, info.Uptime.Round(time.Second))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $XDG_CONFIG_HOME/aurora_kvm/config.json)")
	rootCmd.PersistentFlags().StringVar(&logFmt, "log-format", "text", "log format: text or json")
	rootCmd.PersistentFlags().StringVar(&logLvl, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write logs to this file, rotating at 50MB")

	serverCmd.Flags().Uint16Var(&serverPort, "port", 8080, "TCP port to listen on (overrides the config file's port)")
	serverCmd.Flags().BoolVar(&serverHeadless, "headless", false, "disable the local status viewer")

	clientCmd.Flags().StringVar(&clientHost, "host", "", "server address host:port (optional; attempts LAN discovery for 5s when omitted)")

	rootCmd.AddCommand(serverCmd, clientCmd, discoverCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initLogging wires the configured format/level/destination into the
// global logger, tee-ing to a rotating file when --log-file is set.
func initLogging() {
	out := io.Writer(os.Stdout)
	if logFile != "" {
		rw, err := logging.NewRotatingWriter(logFile, 50, 3)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file %s: %v\n", logFile, err)
		} else {
			out = logging.TeeWriter(os.Stdout, rw)
		}
	}
	logging.Init(logFmt, logLvl, out)
	log = logging.L("main")
}

func runServer(portFlagSet bool) {
	initLogging()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		log.Warn("failed to load config, continuing with defaults", "error", err)
		cfg = config.Default()
	}
	if portFlagSet {
		cfg.Port = serverPort
	}

	topo := topology.New(cfg.ToTopologyConfig())
	srv := server.New(topo)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hook := capture.NewHook()
	if !hook.Grab() {
		log.Warn("this platform can only observe input, not grab it; local movement continues even while routed remotely")
	}

	captureLoop := capture.NewLoop(topo, hook, srv.Bus().Publish)

	go func() {
		if err := captureLoop.Run(ctx); err != nil && ctx.Err() == nil {
			log.Error("capture loop stopped", "error", err)
		}
	}()

	if cfgFile != "" {
		go func() {
			if err := config.Watch(ctx, topo, cfgFile); err != nil {
				log.Warn("config watcher stopped", "error", err)
			}
		}()
	}

	name := hostinfo.Hostname()
	go func() {
		if err := discovery.Beacon(ctx, name, cfg.Port); err != nil && ctx.Err() == nil {
			log.Warn("discovery beacon stopped", "error", err)
		}
	}()

	if !serverHeadless {
		status := statusui.New(topo, srv.Roster())
		go func() {
			if err := status.ListenAndServe(ctx, "127.0.0.1:7791"); err != nil {
				log.Warn("status server stopped", "error", err)
			}
		}()
	} else {
		log.Info("status viewer disabled (--headless)")
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Info("starting server", "version", version, "addr", addr, "name", name)

	go func() {
		if err := srv.ListenAndServe(ctx, addr); err != nil && ctx.Err() == nil {
			log.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	srv.Shutdown(shutdownCtx)
	log.Info("server stopped")
}

func runClient() {
	initLogging()

	serverAddr := clientHost
	if serverAddr == "" {
		log.Info("no --host given, listening for a server beacon", "timeout", discovery.DefaultListenTimeout)

		discoverCtx, cancel := context.WithTimeout(context.Background(), discovery.DefaultListenTimeout)
		announcements, err := discovery.Discover(discoverCtx, discovery.DefaultListenTimeout)
		cancel()
		if err != nil {
			log.Error("discovery failed", "error", err)
			os.Exit(1)
		}
		if len(announcements) == 0 {
			log.Error("no servers found and no --host given")
			os.Exit(1)
		}

		found := announcements[0]
		serverAddr = fmt.Sprintf("%s:%d", found.Addr, found.Port)
		log.Info("discovered server", "name", found.Name, "addr", serverAddr)
	}

	screens, err := platform.ListScreens()
	if err != nil || len(screens) == 0 {
		log.Warn("failed to enumerate screens, using a default descriptor", "error", err)
		screens = []platform.Screen{{Name: "primary", Width: 1920, Height: 1080, IsPrimary: true}}
	}
	primary := screens[0]

	cfg := client.Config{
		ServerAddr: serverAddr,
		Screen: wire.ScreenInfo{
			Name:   hostinfo.Hostname(),
			X:      primary.X,
			Y:      primary.Y,
			Width:  primary.Width,
			Height: primary.Height,
		},
	}

	synth := platform.NewSynthesizer()
	c := client.New(cfg, synth)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("connecting", "version", version, "server", serverAddr, "name", cfg.Screen.Name)
	if err := c.Run(ctx); err != nil && ctx.Err() == nil {
		log.Error("client stopped", "error", err)
		os.Exit(1)
	}
	log.Info("client stopped")
}

func runDiscover() {
	initLogging()

	ctx, cancel := context.WithTimeout(context.Background(), discovery.DefaultListenTimeout)
	defer cancel()

	fmt.Printf("listening for servers for %s...\n", discovery.DefaultListenTimeout)
	announcements, err := discovery.Discover(ctx, discovery.DefaultListenTimeout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "discover failed: %v\n", err)
		os.Exit(1)
	}

	if len(announcements) == 0 {
		fmt.Println("no servers found")
		return
	}
	for _, a := range announcements {
		fmt.Printf("%s  addr=%s  port=%d  version=%d\n", a.Name, a.Addr, a.Port, a.Version)
	}
}
