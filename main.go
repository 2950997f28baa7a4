package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"fyne.io/fyne/v2"
	"github.com/google/uuid"

	"localsketch/internal/config"
	"localsketch/internal/net"
	"localsketch/internal/ui"
)

// Version is the release version, set at build time.
var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to a TOML config file")
	share := flag.Bool("share", false, "share the sketch with viewers on the local network")
	port := flag.Int("port", 0, "port to share on, overrides the config")
	view := flag.String("view", "", "mirror a shared sketch; an address or \"auto\" to discover one")
	version := flag.Bool("version", false, "print the version and exit")
	flag.Parse()

	if *version {
		fmt.Println("localsketch", Version)
		return 0
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "localsketch: %v\n", err)
			return 1
		}
		cfg = loaded
	}
	if *port != 0 {
		cfg.Share.Port = *port
	}

	if *view != "" {
		return runViewer(cfg, *view)
	}
	return runHost(cfg, *configPath, *share)
}

func runHost(cfg config.Config, configPath string, share bool) int {
	a := ui.New("LocalSketch")
	pad := ui.NewSketchPad(cfg.StrokeColor(), float32(cfg.Stroke.Width))
	a.ShowSketch(pad, float32(cfg.Window.Width), float32(cfg.Window.Height))

	if share {
		pm := net.NewPeerManager()
		pm.OnChange = func(count int) {
			a.SetStatus(fmt.Sprintf("%d viewer(s) connected", count))
		}
		pad.OnPoint = pm.BroadcastPoint
		pad.OnClear = pm.BroadcastClear

		srv := net.NewServer(pm, pad.Snapshot)
		if err := srv.Start(cfg.Share.Port); err != nil {
			fmt.Fprintf(os.Stderr, "localsketch: %v\n", err)
			return 1
		}
		defer srv.Stop()

		session := uuid.NewString()
		log.Printf("[share] session %s", session)
		stop, err := net.Advertise(cfg.Share.Port, session)
		if err != nil {
			// Viewers can still dial the address directly.
			log.Printf("[share] %v", err)
		} else {
			defer stop()
		}

		a.SetStatus(fmt.Sprintf("Sharing at %s:%d", net.OutgoingIP(), cfg.Share.Port))
	}

	if configPath != "" {
		w, err := config.Watch(configPath, config.DefaultWatchDebounce, func(next config.Config) {
			fyne.Do(func() {
				pad.SetStroke(next.StrokeColor(), float32(next.Stroke.Width))
			})
			log.Printf("[config] reloaded %s", configPath)
		}, func(err error) {
			log.Printf("[config] %v", err)
		})
		if err != nil {
			log.Printf("[config] watch: %v", err)
		} else {
			defer w.Stop()
		}
	}

	a.Run()
	return 0
}

func runViewer(cfg config.Config, target string) int {
	addr := target
	if target == "auto" {
		found := net.Discover()
		if len(found) == 0 {
			fmt.Fprintln(os.Stderr, "localsketch: no shared sketch found on this network")
			return 1
		}
		addr = found[0]
		log.Printf("[view] discovered %s", addr)
	}

	a := ui.New("LocalSketch (viewing)")
	mirror := ui.NewMirror(cfg.StrokeColor(), float32(cfg.Stroke.Width))
	a.ShowMirror(mirror, float32(cfg.Window.Width), float32(cfg.Window.Height))

	v := &net.Viewer{}
	ui.BindViewer(v, mirror)
	v.OnClose = func(error) {
		a.SetStatus("Disconnected from host")
	}
	if err := v.Connect(addr); err != nil {
		fmt.Fprintf(os.Stderr, "localsketch: %v\n", err)
		return 1
	}
	defer v.Close()
	a.SetStatus("Viewing " + addr)

	a.Run()
	return 0
}
