package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"voicecal/config"
	"voicecal/internal/auth"
	authFile "voicecal/internal/auth/repository/file"
	authUC "voicecal/internal/auth/usecase"
	"voicecal/internal/event"
	"voicecal/internal/event/repository/gcal"
	eventUC "voicecal/internal/event/usecase"
	"voicecal/internal/model"
	"voicecal/internal/window"
	"voicecal/pkg/gcalendar"
	"voicecal/pkg/log"
	"voicecal/pkg/speech"
	"voicecal/pkg/suggest"
)

func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting VoiceCal...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Window resolver
	resolver, err := window.NewResolver(cfg.Window.Timezone)
	if err != nil {
		logger.Warnf(ctx, "Invalid timezone %q, falling back to UTC: %v", cfg.Window.Timezone, err)
		resolver, _ = window.NewResolver("UTC")
	}

	// 4. Credential lifecycle
	oauthCfg, err := authUC.LoadOAuthConfig(cfg.Google.CredentialsPath)
	if err != nil {
		logger.Errorf(ctx, "Cannot load OAuth client secret %s: %v", cfg.Google.CredentialsPath, err)
		return
	}
	tokenStore := authFile.NewStore(cfg.Google.TokenPath)
	authMgr := authUC.New(logger, tokenStore, oauthCfg, func(authURL string) {
		fmt.Println("Open this URL in your browser to sign in:")
		fmt.Println("  " + authURL)
	})

	if _, err := authMgr.GetValid(ctx); err != nil {
		if !errors.Is(err, auth.ErrCredentialUnavailable) {
			logger.Errorf(ctx, "Credential check failed: %v", err)
			return
		}
		logger.Info(ctx, "No usable credential, starting interactive sign-in")
		if _, err := authMgr.CreateInteractive(ctx); err != nil {
			logger.Errorf(ctx, "Interactive sign-in failed: %v", err)
			return
		}
	}

	// 5. Remote calendar client and repository
	calClient, err := gcalendar.NewClient(ctx, authMgr.TokenSource(ctx))
	if err != nil {
		logger.Errorf(ctx, "Cannot create calendar client: %v", err)
		return
	}
	repo := gcal.New(calClient)

	// 6. Suggestion store and speech client
	suggestStore, err := suggest.Open(cfg.Suggest.Path)
	if err != nil {
		logger.Errorf(ctx, "Cannot open suggestion store %s: %v", cfg.Suggest.Path, err)
		return
	}
	speechClient := speech.New(speech.Config{
		BaseURL:        cfg.Speech.URL,
		PrimaryDevice:  cfg.Speech.PrimaryDevice,
		FallbackDevice: cfg.Speech.FallbackDevice,
	})

	// 7. Event façade. Mutations arm a delayed reload; the channel
	// coalesces signals that arrive while one is already pending.
	reloadCh := make(chan struct{}, 1)
	requestReload := func() {
		select {
		case reloadCh <- struct{}{}:
		default:
		}
	}
	uc := eventUC.New(
		logger,
		repo,
		authMgr,
		resolver,
		suggestStore,
		cfg.Google.CalendarID,
		cfg.Window.PastDays,
		cfg.Window.UpcomingDays,
		cfg.Window.MutationRefreshDelay,
		requestReload,
	)

	info, err := uc.Login(ctx, cfg.Google.CalendarID)
	if err != nil {
		logger.Errorf(ctx, "Login failed: %v", err)
		return
	}
	logger.Infof(ctx, "Signed in to %s (%s)", info.Summary, info.ID)

	// 8. Initial window plus periodic auto-refresh. The in-flight
	// guard suppresses a reload that overlaps a running one.
	var inFlight atomic.Bool
	reload := func() {
		if !inFlight.CompareAndSwap(false, true) {
			logger.Debug(ctx, "Reload already running, skipping")
			return
		}
		defer inFlight.Store(false)

		win, err := uc.LoadWindow(ctx, time.Now())
		if err != nil {
			logger.Errorf(ctx, "Window reload failed: %v", err)
			return
		}
		printWindow(win)
	}
	reload()

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(fmt.Sprintf("@every %s", cfg.Window.AutoRefreshInterval), requestReload); err != nil {
		logger.Errorf(ctx, "Cannot schedule auto-refresh: %v", err)
		return
	}
	scheduler.Start()
	defer scheduler.Stop()

	go readCommands(ctx, logger, uc, speechClient, suggestStore, cfg.Speech, requestReload)

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Shutting down")
			return
		case <-reloadCh:
			reload()
		}
	}
}

// readCommands runs the minimal terminal loop: r reloads, v records a
// voice note and suggests matching titles, q quits.
func readCommands(
	ctx context.Context,
	logger log.Logger,
	uc event.UseCase,
	speechClient *speech.Client,
	suggestStore *suggest.Store,
	speechCfg config.SpeechConfig,
	requestReload func(),
) {
	sc := bufio.NewScanner(os.Stdin)
	fmt.Println("Commands: [r]eload, [v]oice note, [q]uit")
	for sc.Scan() {
		switch strings.TrimSpace(sc.Text()) {
		case "r":
			requestReload()
		case "v":
			fmt.Printf("Recording for %ds...\n", speechCfg.RecordSeconds)
			text, err := speechClient.Transcribe(ctx, speech.Request{
				Duration: time.Duration(speechCfg.RecordSeconds) * time.Second,
				Language: speechCfg.Language,
			})
			if errors.Is(err, speech.ErrNoSpeech) {
				fmt.Println("No speech detected, try again.")
				continue
			}
			if err != nil {
				logger.Errorf(ctx, "Transcription failed: %v", err)
				continue
			}
			fmt.Printf("Heard: %q\n", text)
			if matches := suggestStore.Suggest(text, 5); len(matches) > 0 {
				fmt.Println("Matching event titles:")
				for _, m := range matches {
					fmt.Println("  - " + m)
				}
			}
		case "q":
			_ = uc.Logout(ctx)
			proc, _ := os.FindProcess(os.Getpid())
			_ = proc.Signal(os.Interrupt)
			return
		}
	}
}

// printWindow renders the three buckets to the terminal.
func printWindow(win *event.Window) {
	sections := []struct {
		title  string
		events []model.CalendarEvent
	}{
		{"PAST", win.Past},
		{"TODAY", win.Today},
		{"UPCOMING", win.Upcoming},
	}
	for _, s := range sections {
		fmt.Printf("\n=== %s (%d) ===\n", s.title, len(s.events))
		for _, ev := range s.events {
			fmt.Println("  " + formatEvent(ev))
		}
	}
	if n := len(win.Malformed); n > 0 {
		fmt.Printf("\n(%d malformed events skipped)\n", n)
	}
}

func formatEvent(ev model.CalendarEvent) string {
	var when string
	if ev.Start.AllDay {
		last := event.UserEndDate(ev.End.Time)
		if ev.Start.SameDate(last) {
			when = ev.Start.Time.Format("2006-01-02")
		} else {
			when = ev.Start.Time.Format("2006-01-02") + " .. " + last.Format("2006-01-02")
		}
	} else {
		when = ev.Start.Time.Format("2006-01-02 15:04") + " - " + ev.End.Time.Format("15:04")
	}
	line := when + "  " + ev.Title
	if ev.Location != "" {
		line += " @ " + ev.Location
	}
	return line
}
