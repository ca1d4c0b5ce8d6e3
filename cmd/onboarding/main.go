// cmd/onboarding/main.go
package main

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tutor-onboarding/internal/common/camunda"
	"tutor-onboarding/internal/common/config"
	"tutor-onboarding/internal/common/database"
	"tutor-onboarding/internal/common/errors"
	"tutor-onboarding/internal/common/logger"
	"tutor-onboarding/internal/common/matching"
	"tutor-onboarding/internal/common/observability"
	"tutor-onboarding/internal/models"
	"tutor-onboarding/internal/recommendation"
	"tutor-onboarding/internal/survey"
)

const (
	roleStudent = "student"
	roleTutor   = "tutor"
)

type options struct {
	configPath  string
	answersPath string
	role        string
	userID      string
	subject     string
	minScore    float64
	minScoreSet bool
	limit       int
	explainID   string
	serve       bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("onboarding", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{}
	fs.StringVar(&opts.configPath, "config", "", "Path to a config YAML file (default: configs/config.yaml)")
	fs.StringVar(&opts.answersPath, "answers", "", "Path to the survey answers JSON file")
	fs.StringVar(&opts.role, "role", roleStudent, "Who is asking for recommendations: student or tutor")
	fs.StringVar(&opts.userID, "user", "", "User ID used to save and resume survey drafts")
	fs.StringVar(&opts.subject, "subject", "", "Subject or post ID to query recommendations for")
	fs.Float64Var(&opts.minScore, "min-score", 0, "Minimum match score in [0,1] (default from config)")
	fs.IntVar(&opts.limit, "limit", 0, "Maximum number of candidates (default from config)")
	fs.StringVar(&opts.explainID, "explain", "", "Candidate ID to fetch an AI explanation for")
	fs.BoolVar(&opts.serve, "serve", false, "Keep serving /health and /metrics until interrupted")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "min-score" {
			opts.minScoreSet = true
		}
	})
	if opts.role != roleStudent && opts.role != roleTutor {
		return nil, fmt.Errorf("-role must be %q or %q", roleStudent, roleTutor)
	}
	if opts.minScore < 0 || opts.minScore > 1 {
		return nil, fmt.Errorf("-min-score must be within [0,1]")
	}
	if opts.limit < 0 {
		return nil, fmt.Errorf("-limit must not be negative")
	}
	if opts.role == roleStudent && opts.answersPath == "" && opts.userID == "" {
		return nil, fmt.Errorf("-answers or -user is required for students")
	}
	return opts, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !stderrors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "onboarding: %v\n", err)
		}
		os.Exit(1)
	}
}

// app holds the wired components for one run.
type app struct {
	cfg      *config.Config
	log      logger.Logger
	reporter *errors.Reporter
	matching *matching.Client
	recs     *recommendation.Service
	drafts   *survey.DraftStore
	zeebe    *camunda.Client
	out      *printer
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	zapLog := logger.NewWithOutput(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	out := newPrinter(stdout)
	reporter := errors.NewReporter(log, errors.NotifierFunc(func(_ context.Context, n errors.Notification) {
		fmt.Fprintf(stderr, "[%s] %s\n", n.Level, n.Message)
	}))

	a := &app{
		cfg:      cfg,
		log:      log,
		reporter: reporter,
		matching: matching.NewClient(cfg, obs, log),
		out:      out,
	}
	a.recs = recommendation.NewService(recommendation.LoadConfig(cfg), a.matching, a.matching, reporter, log)

	// Zeebe is needed to submit, and to report on /health.
	if cfg.Submission.Transport == config.TransportCamunda && (opts.role == roleStudent || cfg.Metrics.Enabled) {
		closeZeebe, err := a.connectZeebe()
		if err != nil {
			return err
		}
		defer closeZeebe()
	}

	if cfg.Metrics.Enabled {
		srv := startServer(cfg.Metrics.Address, a.healthCheck(), log)
		defer shutdownServer(srv, log)
	}

	if opts.userID != "" {
		store, closeStore := a.openDraftStore(ctx)
		defer closeStore()
		a.drafts = store
	}

	params := recommendation.Params{
		SubjectOrPostID: opts.subject,
		MinScore:        opts.minScore,
		MinScoreSet:     opts.minScoreSet,
		Limit:           opts.limit,
	}

	var result *recommendation.Result
	var sourceID string
	switch opts.role {
	case roleTutor:
		sourceID = opts.userID
		result, err = a.recs.PostsForTutor(ctx, params)
		if err != nil {
			return err
		}
	default:
		res, err := a.completeSurvey(ctx, opts, a.submitter())
		if err != nil {
			return err
		}
		sourceID = res.Survey.ID
		result = a.recs.FromSubmission(res, params)
	}

	out.printResult(result)

	if opts.explainID != "" {
		if err := a.explain(ctx, result, sourceID, opts.explainID); err != nil {
			return err
		}
	}

	if opts.serve && cfg.Metrics.Enabled {
		log.Info("serving health and metrics until interrupted", map[string]interface{}{
			"address": cfg.Metrics.Address,
		})
		<-ctx.Done()
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

// openDraftStore connects to Redis. Drafts are optional: an unreachable
// Redis disables them instead of failing the run.
func (a *app) openDraftStore(ctx context.Context) (*survey.DraftStore, func()) {
	noop := func() {}
	rdb, err := database.NewRedis(a.cfg.Database.Redis)
	if err != nil {
		a.log.Warn("survey drafts disabled", map[string]interface{}{"error": err.Error()})
		return nil, noop
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx); err != nil {
		rdb.Close()
		a.log.Warn("survey drafts disabled", map[string]interface{}{"error": err.Error()})
		return nil, noop
	}
	return survey.NewDraftStore(rdb.GetClient(), survey.LoadConfig(a.cfg), a.log), func() { rdb.Close() }
}

// connectZeebe dials the broker and keeps the client on a.
func (a *app) connectZeebe() (func(), error) {
	client, err := camunda.NewClient(a.cfg.Camunda.BrokerAddress, config.GetDuration(a.cfg.Camunda.RequestTimeout))
	if err != nil {
		return nil, fmt.Errorf("zeebe client failed: %w", err)
	}
	a.zeebe = client
	return func() {
		if err := client.Close(); err != nil {
			a.log.Error("error closing Zeebe client", map[string]interface{}{"error": err.Error()})
		}
	}, nil
}

func (a *app) submitter() survey.Submitter {
	if a.zeebe == nil {
		return a.matching
	}
	a.log.Info("submitting surveys through Zeebe", map[string]interface{}{
		"broker":    a.cfg.Camunda.BrokerAddress,
		"processId": a.cfg.Submission.ProcessID,
	})
	return camunda.NewSurveySubmitter(a.zeebe, a.cfg.Submission.ProcessID, a.log)
}

// healthCheck reports the broker's reachability when surveys go through Zeebe.
func (a *app) healthCheck() func(context.Context) error {
	if a.zeebe == nil {
		return nil
	}
	return a.zeebe.HealthCheck
}

// completeSurvey resumes the user's draft if there is one, walks the remaining
// steps with the answers file and submits. An unfinished survey is saved back
// as a draft.
func (a *app) completeSurvey(ctx context.Context, opts *options, submitter survey.Submitter) (*models.SubmissionResult, error) {
	wizard := survey.NewWizard(survey.LoadConfig(a.cfg), submitter, a.reporter, a.log)

	if a.drafts != nil {
		draft, err := a.drafts.Load(ctx, opts.userID)
		switch {
		case err == nil:
			if err := wizard.Restore(*draft); err != nil {
				return nil, err
			}
			a.out.printResumed(wizard.CurrentStep(), wizard.TotalSteps())
		case !stderrors.Is(err, survey.ErrDraftNotFound):
			a.log.Warn("draft restore failed", map[string]interface{}{"error": err.Error()})
		}
	}

	var answers models.SurveyAnswers
	if opts.answersPath != "" {
		var err error
		if answers, err = readAnswers(opts.answersPath); err != nil {
			return nil, err
		}
	}

	for {
		step := wizard.Step()
		wizard.Update(func(ans *survey.Answers) { applyStep(ans, step.Key, answers) })

		res, err := wizard.Next(ctx)
		if err != nil {
			a.saveDraft(ctx, wizard, opts.userID)
			if errors.HasCode(err, errors.ErrCodeStepValidationFailed) {
				stdErr, _ := errors.AsStandardError(err)
				a.out.printStepRejected(wizard.CurrentStep(), wizard.Step().Title, stdErr.Message)
			}
			return nil, err
		}
		if res != nil {
			a.deleteDraft(ctx, opts.userID)
			return res, nil
		}
	}
}

func (a *app) saveDraft(ctx context.Context, wizard *survey.Wizard, userID string) {
	if a.drafts == nil {
		return
	}
	if err := a.drafts.Save(ctx, wizard.Draft(userID)); err != nil {
		a.log.Warn("draft save failed", map[string]interface{}{"error": err.Error()})
	}
}

func (a *app) deleteDraft(ctx context.Context, userID string) {
	if a.drafts == nil {
		return
	}
	if err := a.drafts.Delete(ctx, userID); err != nil {
		a.log.Warn("draft delete failed", map[string]interface{}{"error": err.Error()})
	}
}

// explain expands one candidate's explanation, fetching the AI narrative.
func (a *app) explain(ctx context.Context, result *recommendation.Result, sourceID, candidateID string) error {
	for _, c := range result.Candidates {
		if c.ID != candidateID {
			continue
		}
		cache := a.recs.NewExplanationCache(c, sourceID)
		defer cache.Close()

		cache.ToggleExpand()
		if err := cache.Fetch(ctx); err != nil {
			// Reported by the cache; the synthesized text still stands.
			a.log.Debug("explanation fetch failed", map[string]interface{}{
				"candidateId": candidateID,
				"error":       err.Error(),
			})
		}
		a.out.printExplanation(c, cache.State())
		return nil
	}
	return fmt.Errorf("candidate %q is not in the result list", candidateID)
}

func readAnswers(path string) (models.SurveyAnswers, error) {
	var answers models.SurveyAnswers
	raw, err := os.ReadFile(path)
	if err != nil {
		return answers, fmt.Errorf("read answers: %w", err)
	}
	if err := json.Unmarshal(raw, &answers); err != nil {
		return answers, fmt.Errorf("parse answers %s: %w", path, err)
	}
	return answers, nil
}
