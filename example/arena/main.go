package main

import (
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/oomph-ac/cover/actor"
	"github.com/oomph-ac/cover/cover"
	"github.com/oomph-ac/cover/level"
	"github.com/oomph-ac/cover/player"
	"github.com/oomph-ac/cover/settings"
	"github.com/oomph-ac/cover/utils"
	"github.com/oomph-ac/cover/worker"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"go.uber.org/atomic"
)

// The following program runs the actors of a level through its covers and logs what they do.
func main() {
	loadOptions()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		ForceColors:     false,
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})
	logLevel, err := logrus.ParseLevel(viper.GetString("log_level"))
	if err != nil {
		logger.Fatalf("invalid log level: %v", err)
	}
	logger.SetLevel(logLevel)
	log := slog.New(slog.NewTextHandler(logger.WriterLevel(logLevel), &slog.HandlerOptions{Level: slogLevel(logLevel)}))

	if dsn := viper.GetString("sentry_dsn"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: dsn}); err != nil {
			logger.Fatalf("sentry init failed: %v", err)
		}
		defer sentry.Flush(time.Second * 5)
	}

	if os.Getenv("PPROF_ENABLED") != "" {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr(viper.GetString("pprof_addr")))

		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
	}

	s, err := settings.Load(viper.GetString("settings"))
	if err != nil {
		logger.Fatalf("unable to load settings: %v", err)
	}

	a, err := newArena(log, logger, s, viper.GetString("level"))
	if err != nil {
		logger.Fatalf("unable to load level: %v", err)
	}
	defer a.close()

	var levels <-chan *level.Level
	var watchErrors <-chan error
	if viper.GetBool("watch") {
		w, err := level.NewWatcher(log, viper.GetString("level"), a.lvl.Hash)
		if err != nil {
			logger.Fatalf("unable to watch level: %v", err)
		}
		defer w.Close()
		levels, watchErrors = w.Levels, w.Errors
	}

	var running atomic.Bool
	running.Store(true)
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	tickRate := viper.GetInt("tick_rate")
	if tickRate <= 0 {
		logger.Fatalf("tick rate must be positive, got %d", tickRate)
	}
	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	defer ticker.Stop()

	var deadline <-chan time.Time
	if d := viper.GetDuration("duration"); d > 0 {
		deadline = time.After(d)
	}

	dt := 1 / float32(tickRate)
	for running.Load() {
		select {
		case <-ticker.C:
			a.tick(dt)
		case l, ok := <-levels:
			if !ok {
				levels = nil
				continue
			}
			if err := a.load(l); err != nil {
				logger.Errorf("unable to reload level, keeping the old one: %v", err)
			}
		case err, ok := <-watchErrors:
			if !ok {
				watchErrors = nil
				continue
			}
			logger.Warnf("level watcher: %v", err)
		case <-interrupt:
			running.Store(false)
		case <-deadline:
			running.Store(false)
		}
	}
	logger.Infof("stopped after %.1fs of simulation", a.elapsed)
}

func loadOptions() {
	viper.SetDefault("level", "example/arena/arena.yaml")
	viper.SetDefault("settings", "settings.toml")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("tick_rate", 20)
	viper.SetDefault("duration", "0s")
	viper.SetDefault("watch", true)
	viper.SetDefault("sentry_dsn", "")
	viper.SetDefault("pprof_addr", "localhost:8080")

	viper.SetEnvPrefix("COVER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName("arena")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			logrus.Fatalf("unable to read options: %v", err)
		}
	}
}

func slogLevel(l logrus.Level) slog.Level {
	switch {
	case l >= logrus.DebugLevel:
		return slog.LevelDebug
	case l >= logrus.InfoLevel:
		return slog.LevelInfo
	case l >= logrus.WarnLevel:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// arena is a loaded level with a player driving every actor.
type arena struct {
	log      *slog.Logger
	logger   *logrus.Logger
	settings settings.Settings

	lvl      *level.Level
	registry *actor.Registry
	scene    *cover.Scene
	players  []*player.Player
	elapsed  float32
}

func newArena(log *slog.Logger, logger *logrus.Logger, s settings.Settings, path string) (*arena, error) {
	l, err := level.Load(path)
	if err != nil {
		return nil, err
	}
	a := &arena{log: log, logger: logger, settings: s}
	return a, a.load(l)
}

// load replaces the running level with l. The running level is kept if l cannot be built.
func (a *arena) load(l *level.Level) error {
	registry := actor.NewRegistry()
	scene, _, err := l.Build(a.log, registry)
	if err != nil {
		return err
	}
	a.close()

	a.lvl, a.registry, a.scene, a.elapsed = l, registry, scene, 0
	a.players = nil
	for _, act := range l.Spawn(registry) {
		p := player.New(a.log, act, scene, a.settings)
		p.Handle(&eventLogger{logger: a.logger})
		a.players = append(a.players, p)
	}
	a.logger.Infof("loaded level %q with %d covers and %d actors", l.Name, scene.Len(), registry.Len())
	return nil
}

func (a *arena) close() {
	for _, p := range a.players {
		_ = p.Close()
	}
	if a.scene != nil {
		a.scene.Unload()
	}
}

func (a *arena) tick(dt float32) {
	a.elapsed += dt
	for i, spec := range a.lvl.Actors {
		a.players[i].Actor().Move(spec.PositionAt(a.elapsed), spec.YawAt(a.elapsed))
	}

	jobs := make([]func(), len(a.players))
	for i, p := range a.players {
		jobs[i] = func() { p.Tick(dt) }
	}
	worker.Wait(jobs...)

	whole := int(a.elapsed)
	if whole > 0 && int(a.elapsed-dt) < whole && whole%5 == 0 {
		a.summary()
	}
}

func (a *arena) summary() {
	a.logger.Debugf("%.0fs into %q, %d actors alive", a.elapsed, a.lvl.Name, a.registry.Len())
	for _, c := range a.scene.Covers() {
		occupants := a.scene.Occupants(c)
		if len(occupants) == 0 {
			continue
		}
		names := make([]string, 0, len(occupants))
		for _, o := range occupants {
			names = append(names, o.Name())
		}
		a.logger.Infof("%s %s", c.Name(), utils.KeyValsToString([]any{"occupants", strings.Join(names, ","), "tall", c.IsTall()}))
	}
}

// eventLogger logs the cover events of a player.
type eventLogger struct {
	player.NopHandler
	logger *logrus.Logger
}

func (h *eventLogger) HandleEnterCover(p *player.Player, c *cover.Cover) {
	state := p.State()
	h.logger.WithFields(logrus.Fields{
		"cover":   c.Name(),
		"tall":    state.IsTall(),
		"climb":   p.Climb(),
		"corners": [2]bool{state.HasLeftCorner(), state.HasRightCorner()},
	}).Infof("%s took cover", p.Actor().Name())
}

func (h *eventLogger) HandleLeaveCover(p *player.Player, c *cover.Cover) {
	h.logger.WithField("cover", c.Name()).Infof("%s left cover", p.Actor().Name())
}
