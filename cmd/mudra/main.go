package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tray"
)

type flags struct {
	config   string
	device   int
	width    int
	height   int
	record   string
	headless bool
	db       string
	addr     string
	static   string
	tray     bool
}

func parseFlags() flags {
	var f flags
	flag.StringVar(&f.config, "config", "", "YAML config file with camera, detector and threshold settings")
	flag.IntVar(&f.device, "device", 0, "Webcam device index")
	flag.IntVar(&f.width, "width", capture.DefaultWidth, "Capture width")
	flag.IntVar(&f.height, "height", capture.DefaultHeight, "Capture height")
	flag.StringVar(&f.record, "record", "", "Optional output video path (e.g. output.mp4)")
	flag.BoolVar(&f.headless, "headless", false, "Run without a preview window and log gestures instead")
	flag.StringVar(&f.db, "db", "", "SQLite file for the gesture event log (empty disables)")
	flag.StringVar(&f.addr, "addr", "", "HTTP listen address such as :8080 (empty disables)")
	flag.StringVar(&f.static, "static", "", "Directory served at / by the HTTP server")
	flag.BoolVar(&f.tray, "tray", false, "Show the system tray menu")
	flag.Parse()
	return f
}

// apply copies explicitly set flags over cfg.
func (f flags) apply(cfg *config.Config) {
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "device":
			cfg.Camera.Device = f.device
		case "width":
			cfg.Camera.Width = f.width
		case "height":
			cfg.Camera.Height = f.height
		case "record":
			cfg.Record = f.record
		case "headless":
			cfg.Headless = f.headless
		case "db":
			cfg.DBPath = f.db
		case "addr":
			cfg.Addr = f.addr
		case "static":
			cfg.StaticDir = f.static
		case "tray":
			cfg.Tray = f.tray
		}
	})
}

func loadConfig(path string, f flags) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	f.apply(cfg)
	return cfg, cfg.Validate()
}

func main() {
	fmt.Println("Mudra - Hand Gesture Recognition")

	f := parseFlags()

	cfg, err := loadConfig(f.config, f)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var st *store.Store
	enabled := true
	if cfg.DBPath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
			log.Fatalf("Failed to create data directory: %v", err)
		}
		st, err = store.New(cfg.DBPath)
		if err != nil {
			log.Fatalf("Failed to initialize store: %v", err)
		}
		defer st.Close()

		cfg, enabled = restoreSettings(st, f, cfg)
	}

	det, err := detector.NewMediaPipeDetector(cfg.DetectorConfig())
	if err != nil {
		log.Fatalf("Hand landmark service unavailable: %v (install mediapipe and place scripts/hand_landmarks.py next to the binary)", err)
	}
	defer det.Close()

	a := app.New(app.Config{
		Camera:        capture.NewCamera(cfg.Camera.Device, cfg.Camera.Width, cfg.Camera.Height),
		Detector:      det,
		Classifier:    gesture.NewClassifier(cfg.ClassifierThresholds()),
		Store:         st,
		Width:         cfg.Camera.Width,
		Height:        cfg.Camera.Height,
		RecordPath:    cfg.Record,
		Headless:      cfg.Headless,
		LogEvery:      cfg.LogEvery,
		PublishFrames: cfg.Addr != "",
	})
	a.SetEnabled(enabled)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Addr != "" {
		hub := server.NewHub()
		a.Subscribe(func(o app.Observation) { hub.Publish(o) })

		srv := server.New(server.Config{
			StaticDir:  cfg.StaticDir,
			Store:      st,
			Classifier: a.Classifier(),
			Frames:     a,
			Hub:        hub,
		})

		go func() {
			log.Printf("Starting server on %s", cfg.Addr)
			if err := srv.ListenAndServe(cfg.Addr); err != nil {
				log.Printf("Server failed: %v", err)
			}
		}()
	}

	if !cfg.Tray {
		if err := a.Run(ctx); err != nil {
			log.Fatalf("Pipeline failed: %v", err)
		}
		return
	}

	// The tray owns the main thread; the pipeline runs beside it.
	t := tray.New(enabled)
	t.OnToggle(func(on bool) {
		a.SetEnabled(on)
		if st != nil {
			if err := st.Settings().Set(store.SettingEnabled, strconv.FormatBool(on)); err != nil {
				log.Printf("Failed to save setting: %v", err)
			}
		}
	})
	t.OnQuit(stop)
	a.Subscribe(func(o app.Observation) { t.SetLastGesture(o.Label.String()) })

	go func() {
		if err := a.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("Pipeline failed: %v", err)
		}
		t.Quit()
	}()

	t.Run()
}

// restoreSettings loads the remembered config file when none was given and
// records the current one otherwise. It also returns the saved enabled state.
func restoreSettings(st *store.Store, f flags, cfg *config.Config) (*config.Config, bool) {
	settings := st.Settings()

	if f.config != "" {
		abs, err := filepath.Abs(f.config)
		if err == nil {
			err = settings.Set(store.SettingThresholdsFile, abs)
		}
		if err != nil {
			log.Printf("Failed to remember config path: %v", err)
		}
	} else if path, err := settings.Get(store.SettingThresholdsFile); err == nil {
		if restored, err := loadConfig(path, f); err == nil {
			log.Printf("Using remembered config %s", path)
			cfg = restored
		} else {
			log.Printf("Ignoring remembered config %s: %v", path, err)
		}
	}

	value, err := settings.GetDefault(store.SettingEnabled, "true")
	if err != nil {
		log.Printf("Failed to read settings: %v", err)
		return cfg, true
	}
	enabled, err := strconv.ParseBool(value)
	if err != nil {
		return cfg, true
	}
	return cfg, enabled
}
