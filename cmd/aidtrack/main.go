package main

import (
	"flag"
	"log"
	"time"

	lib "github.com/trailops/aidtrack"
	"github.com/trailops/aidtrack/config"
	"github.com/trailops/aidtrack/estimate"
	"github.com/trailops/aidtrack/scheduler"
	"github.com/trailops/aidtrack/store"
	"github.com/trailops/aidtrack/utils"
)

func main() {
	configPath := flag.String("config", "", "path to config.yml")
	flag.Parse()

	lib.InitLogging()

	var (
		cfg config.AppConfig
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadAppConfig(*configPath)
	} else {
		cfg, err = config.LoadAppConfig()
	}
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	clock := utils.SystemClock{}
	st, err := store.NewBoltStore(cfg.Store.Path, clock)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer func() { _ = st.Close() }()

	state, err := st.Load()
	if err != nil {
		log.Printf("snapshot unusable, starting from empty state: %v", err)
	}

	tracker := lib.NewTracker(state, clock, utils.UUIDGenerator{}, estimate.Options{
		DefaultSpeedMPH:  cfg.Estimation.DefaultSpeedMPH,
		FatigueFactor:    cfg.Estimation.FatigueFactor,
		GenerosityFactor: cfg.Estimation.GenerosityFactor,
	})

	// Recompute and persist after every data change
	tracker.Subscribe(func() {
		tracker.Recompute()
		if err := st.Save(tracker.State()); err != nil {
			log.Printf("snapshot save failed: %v", err)
		}
	})
	tracker.Recompute()

	sched := scheduler.New(time.Duration(cfg.Refresh.IntervalMS)*time.Millisecond, tracker.Recompute)
	if err := sched.Start(); err != nil {
		log.Fatalf("scheduler: %v", err)
	}
	defer sched.Stop()

	srv := lib.NewServer(cfg.Server.Port, tracker)
	srv.Start()
	lib.HandleGracefulShutdown(srv)
}
