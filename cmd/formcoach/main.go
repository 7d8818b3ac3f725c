package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/ayusman/formcoach/internal/app"
	"github.com/ayusman/formcoach/internal/config"
	"github.com/ayusman/formcoach/internal/engine"
	"github.com/ayusman/formcoach/internal/server"
	"github.com/ayusman/formcoach/internal/store"
)

func main() {
	configPath := flag.String("config", "formcoach.yaml", "path to the YAML configuration file")
	liveMode := flag.Bool("live", false, "start the live camera analysis pipeline")
	exerciseName := flag.String("exercise", "", "exercise to analyze on startup (squat, pushup, plank, lunge, deadlift)")
	flag.Parse()

	fmt.Println("FormCoach - Exercise Form Analysis")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	st, err := store.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	coaching := app.New(app.Config{
		Store:        st,
		CameraID:     cfg.CameraID,
		MotionThresh: cfg.MotionThreshold,
		WindowSize:   cfg.WindowSize,
	})

	live := server.NewLiveHandler()
	coaching.SetSink(live.Publish)

	serverCfg := server.Config{
		StaticDir:     cfg.StaticDir,
		Store:         st,
		Extractor:     coaching.Extractor(),
		Live:          live,
		Coach:         coaching,
		FrameInterval: cfg.FrameInterval,
	}

	if *liveMode {
		// The pipeline analyzes nothing until an exercise is selected,
		// either here or later via POST /api/live/exercise
		if *exerciseName != "" {
			exercise, err := engine.ParseExercise(*exerciseName)
			if err != nil {
				log.Fatalf("Invalid exercise %q: must be one of %v", *exerciseName, engine.Exercises())
			}
			if err := coaching.SetExercise(exercise); err != nil {
				log.Fatalf("Failed to start analysis session: %v", err)
			}
		}

		if err := coaching.Start(); err != nil {
			log.Fatalf("Failed to start analysis pipeline: %v", err)
		}
		defer coaching.Stop()
		serverCfg.Source = coaching.Source()
	}

	srv := server.New(serverCfg)

	fmt.Printf("Starting server on %s\n", cfg.ListenAddr)
	if err := srv.ListenAndServe(cfg.ListenAddr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
