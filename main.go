package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/guptarohit/asciigraph"
	"golang.org/x/oauth2"

	"stridetrack/internal/config"
	"stridetrack/internal/provider"
	"stridetrack/internal/service"
	"stridetrack/internal/store"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	ctx := context.Background()

	args := os.Args[1:]
	if len(args) == 0 {
		usage()
		return nil
	}

	// Load configuration
	cfg, err := config.Load()
	if errors.Is(err, config.ErrNoConfig) {
		fmt.Println("No config file found. Creating default config...")
		cfg = config.DefaultConfig()
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("creating default config: %w", err)
		}
		dir, _ := config.Dir()
		fmt.Printf("\nPlease edit the config file at:\n  %s/config.json\n\n", dir)
		fmt.Println("You need to add your provider API credentials.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Open database
	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	goalSvc := service.NewGoalService(db, cfg.Analysis.Workers)

	switch args[0] {
	case "login":
		return cmdLogin(db, args[1:])
	case "sync":
		return cmdSync(ctx, db, cfg)
	case "add":
		return cmdAdd(db, goalSvc, args[1:])
	case "goals":
		return cmdGoals(goalSvc)
	case "analyze":
		return cmdAnalyze(ctx, goalSvc)
	case "report":
		return cmdReport(goalSvc, args[1:])
	case "pause":
		return cmdStatus(goalSvc.PauseGoal, "pause", "paused", args[1:])
	case "resume":
		return cmdStatus(goalSvc.ResumeGoal, "resume", "resumed", args[1:])
	case "delete":
		return cmdStatus(goalSvc.DeleteGoal, "delete", "deleted", args[1:])
	default:
		usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func usage() {
	fmt.Println(`Usage: stridetrack <command>

Commands:
  login      store provider API tokens
  sync       fetch new activities from the provider
  add        create a goal
  goals      list goals
  analyze    analyze all active goals
  report     show a detailed report for one goal
  pause      pause a goal
  resume     resume a paused goal
  delete     delete a goal`)
}

// cmdLogin stores externally provisioned tokens. There is no interactive
// OAuth flow; get a token pair from the provider's settings page.
func cmdLogin(db *store.DB, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	athleteID := fs.Int64("athlete", 0, "athlete ID")
	accessToken := fs.String("access-token", "", "access token")
	refreshToken := fs.String("refresh-token", "", "refresh token")
	expiresIn := fs.Duration("expires-in", time.Hour, "access token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *athleteID == 0 || *accessToken == "" || *refreshToken == "" {
		return errors.New("login requires -athlete, -access-token and -refresh-token")
	}

	err := db.SaveAuth(&store.Auth{
		AthleteID:    *athleteID,
		AccessToken:  *accessToken,
		RefreshToken: *refreshToken,
		ExpiresAt:    time.Now().Add(*expiresIn),
	})
	if err != nil {
		return fmt.Errorf("saving auth: %w", err)
	}

	fmt.Printf("Stored tokens for athlete %d\n", *athleteID)
	return nil
}

func cmdSync(ctx context.Context, db *store.DB, cfg *config.Config) error {
	storedAuth, err := db.GetAuth()
	if errors.Is(err, store.ErrNoAuth) {
		return errors.New("no authentication stored; run 'stridetrack login' first")
	}
	if err != nil {
		return fmt.Errorf("checking auth: %w", err)
	}

	oauthCfg := provider.NewOAuthConfig(cfg.Provider.ClientID, cfg.Provider.ClientSecret)
	token := &oauth2.Token{
		AccessToken:  storedAuth.AccessToken,
		RefreshToken: storedAuth.RefreshToken,
		Expiry:       storedAuth.ExpiresAt,
	}
	tokenSource := provider.NewTokenSource(oauthCfg, token, func(newToken *oauth2.Token) error {
		return db.UpdateTokens(newToken.AccessToken, newToken.RefreshToken, newToken.Expiry)
	})

	client := provider.NewClient(tokenSource)
	syncSvc := service.NewSyncService(db, client)

	fmt.Println("Syncing activities...")
	result, err := syncSvc.Sync(ctx, func(fetched int) {
		fmt.Printf("\rFetched %d activities", fetched)
	})
	if err != nil {
		return fmt.Errorf("sync: %w", err)
	}

	fmt.Printf("\rFetched %d activities, stored %d runs (store version %d)\n",
		result.Fetched, result.Stored, result.Version)
	return nil
}

func cmdAdd(db *store.DB, goalSvc *service.GoalService, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	name := fs.String("name", "", "goal name")
	goalType := fs.String("type", "", "goal type: distance, pace, frequency, consistency, race")
	target := fs.Float64("target", 0, "target value (meters, seconds, or count)")
	date := fs.String("date", "", "target date (YYYY-MM-DD)")
	raceDistance := fs.Float64("race-distance", 0, "race distance in meters (pace and race goals)")
	raceType := fs.String("race-type", "", "race category filter (frequency goals): 5k, 10k, half_marathon, marathon, any")
	if err := fs.Parse(args); err != nil {
		return err
	}

	storedAuth, err := db.GetAuth()
	if errors.Is(err, store.ErrNoAuth) {
		return errors.New("no authentication stored; run 'stridetrack login' first")
	}
	if err != nil {
		return err
	}

	targetDate, err := time.Parse("2006-01-02", *date)
	if err != nil {
		return fmt.Errorf("parsing -date: %w", err)
	}

	params := service.CreateGoalParams{
		AthleteID:   storedAuth.AthleteID,
		Name:        *name,
		Type:        store.GoalType(*goalType),
		TargetValue: *target,
		Unit:        unitForType(store.GoalType(*goalType)),
		TargetDate:  targetDate,
	}
	if *raceDistance > 0 {
		params.RaceDistance = raceDistance
	}
	if *raceType != "" {
		params.RaceType = raceType
	}

	g, err := goalSvc.CreateGoal(params)
	if err != nil {
		return err
	}

	fmt.Printf("Created goal %s (%s)\n", g.Name, g.ID)
	return nil
}

func unitForType(t store.GoalType) store.GoalUnit {
	switch t {
	case store.GoalDistance:
		return store.UnitMeters
	case store.GoalPace, store.GoalRace:
		return store.UnitSeconds
	default:
		return store.UnitCount
	}
}

func cmdGoals(goalSvc *service.GoalService) error {
	goals, err := goalSvc.ListGoals()
	if err != nil {
		return err
	}
	if len(goals) == 0 {
		fmt.Println("No goals yet. Create one with 'stridetrack add'.")
		return nil
	}

	for _, g := range goals {
		fmt.Printf("%-36s  %-12s  %-9s  %6.1f%%  due %s  %s\n",
			g.ID, g.Type, g.Status, g.CurrentValue, g.TargetDate.Format("2006-01-02"), g.Name)
	}
	return nil
}

func cmdAnalyze(ctx context.Context, goalSvc *service.GoalService) error {
	reports, err := goalSvc.AnalyzeAll(ctx, time.Now().UTC())
	if err != nil {
		return err
	}
	if len(reports) == 0 {
		fmt.Println("No active goals to analyze.")
		return nil
	}

	phraser := service.StaticPhraser{}
	for _, r := range reports {
		fmt.Printf("\n== %s ==\n", r.Goal.Name)
		if r.Err != nil {
			fmt.Printf("analysis failed: %v\n", r.Err)
			continue
		}
		fmt.Println(phraser.Phrase(r.Analysis))
	}
	return nil
}

func cmdReport(goalSvc *service.GoalService, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: stridetrack report <goal-id>")
	}

	a, err := goalSvc.AnalyzeGoal(args[0], time.Now().UTC())
	if err != nil {
		return err
	}

	phraser := service.StaticPhraser{}
	fmt.Println(phraser.Phrase(a))

	if len(a.Series) >= 2 {
		values := make([]float64, len(a.Series))
		for i, p := range a.Series {
			values[i] = p.Value
		}
		fmt.Println("\nProgress over time (%):")
		fmt.Println(asciigraph.Plot(values, asciigraph.Height(8), asciigraph.Width(60)))
	}

	return nil
}

func cmdStatus(op func(id string) error, name, done string, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: stridetrack %s <goal-id>", name)
	}
	if err := op(args[0]); err != nil {
		return err
	}
	fmt.Printf("Goal %s %s\n", args[0], done)
	return nil
}
