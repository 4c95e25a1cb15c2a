package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"github.com/rs/zerolog/log"

	clockapp "fptclock/internal/app"
	"fptclock/internal/audio"
	"fptclock/internal/core/countdown"
	"fptclock/internal/platform"
	"fptclock/internal/storage"
	"fptclock/internal/ui/preferences"
	"fptclock/resources"
)

func runClock(ctx context.Context, opts *rootOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	stagesPath := storage.ResolveStagesPath(opts.stages)
	program, err := storage.LoadStages(stagesPath)
	if err != nil {
		return fmt.Errorf("load stages %s: %w", stagesPath, err)
	}

	settings, err := storage.LoadSettings(appName)
	if err != nil {
		log.Warn().Err(err).Msg("load settings, using defaults")
	}
	if opts.monitor {
		settings.OpenMonitor = true
	}

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := fyneapp.NewWithID(appID)
	fyneApp.SetIcon(resources.MustLogo(resources.RightLogo))

	assetDir := filepath.Dir(stagesPath)
	var alarm countdown.Alarm
	if !opts.mute {
		tone, err := resources.SoundFrom(assetDir, resources.WarningTone)
		if err != nil {
			log.Warn().Err(err).Msg("load warning tone, using synthesized tone")
		}
		player := audio.NewPlayer(tone, audio.SpeakerOutput())
		defer player.Close()
		alarm = player
	}

	controller, err := clockapp.New(fyneApp, clockapp.Options{
		Program:  program,
		Settings: settings,
		AssetDir: assetDir,
		Alarm:    alarm,
		SaveSettings: func(updated preferences.Settings) error {
			return storage.SaveSettings(appName, updated)
		},
	})
	if err != nil {
		return err
	}
	defer controller.Stop()

	go clockapp.LogEvents(log.Logger, controller.Countdown().Subscribe(16))

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			fyne.Do(controller.Quit)
		case <-done:
		}
	}()

	log.Info().
		Str("stages", stagesPath).
		Int("count", program.Len()).
		Dur("total", program.Total()).
		Bool("mute", opts.mute).
		Msg("program loaded")

	controller.Start(ctx)
	fyneApp.Run()
	return nil
}
