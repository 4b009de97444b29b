// Package extract turns article text into candidate geographic entities with
// the help of a text-understanding service.
package extract

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ppiankov/geolens/internal/cache"
	"github.com/ppiankov/geolens/internal/llm"
	"github.com/ppiankov/geolens/internal/model"
	"github.com/ppiankov/geolens/internal/validate"
	"github.com/ppiankov/geolens/internal/worker"
)

const (
	defaultMaxRetries = 3
	defaultRetryDelay = time.Second
	maxRetryDelay     = 2 * time.Minute
)

// evidenceTrim is stripped from evidence before the trimmed match
const evidenceTrim = " \t\r\n\"'“”‘’«».…"

// extractSleepFunc waits out a rate-limit backoff. Tests replace it.
var extractSleepFunc = func(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Observer receives extraction events
type Observer interface {
	ExtractionDone(outcome string, elapsed time.Duration)
	RateLimitRetry()
	ReplyCacheHit()
}

type nopObserver struct{}

func (nopObserver) ExtractionDone(string, time.Duration) {}
func (nopObserver) RateLimitRetry()                      {}
func (nopObserver) ReplyCacheHit()                       {}

// Extractor asks a text-understanding service for the geographic entities
// of an article and cleans up what comes back
type Extractor struct {
	provider   llm.Provider
	validator  *validate.Validator
	cache      cache.Cache
	limiter    *worker.Limiter
	rules      []NoiseRule
	model      string
	maxRetries int
	logger     *zap.Logger
	observer   Observer
	newID      func() string
	now        func() time.Time
}

// Option configures an Extractor
type Option func(*Extractor)

// WithCache stores service replies so the same article is never sent twice
func WithCache(c cache.Cache) Option {
	return func(e *Extractor) {
		if c != nil {
			e.cache = c
		}
	}
}

// WithLimiter paces calls to the service
func WithLimiter(l *worker.Limiter) Option {
	return func(e *Extractor) { e.limiter = l }
}

// WithValidator shares a validator so its counters cover extraction
func WithValidator(v *validate.Validator) Option {
	return func(e *Extractor) {
		if v != nil {
			e.validator = v
		}
	}
}

// WithRules replaces the noise rule table
func WithRules(rules []NoiseRule) Option {
	return func(e *Extractor) { e.rules = rules }
}

// WithModel overrides the provider's default model
func WithModel(name string) Option {
	return func(e *Extractor) { e.model = name }
}

// WithMaxRetries sets how often a rate-limited call is retried
func WithMaxRetries(n int) Option {
	return func(e *Extractor) {
		if n >= 0 {
			e.maxRetries = n
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Extractor) {
		if l != nil {
			e.logger = l
		}
	}
}

func WithObserver(o Observer) Option {
	return func(e *Extractor) {
		if o != nil {
			e.observer = o
		}
	}
}

// WithIDFunc replaces the target id generator
func WithIDFunc(f func() string) Option {
	return func(e *Extractor) {
		if f != nil {
			e.newID = f
		}
	}
}

// New creates an extractor on top of provider
func New(provider llm.Provider, opts ...Option) *Extractor {
	e := &Extractor{
		provider:   provider,
		validator:  validate.New(),
		cache:      cache.NopCache{},
		rules:      DefaultNoiseRules(),
		maxRetries: defaultMaxRetries,
		logger:     zap.NewNop(),
		observer:   nopObserver{},
		newID:      uuid.NewString,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// reply is the JSON object the prompt asks for
type reply struct {
	Regions []replyItem `json:"regions"`
	Places  []replyItem `json:"places"`
}

type replyItem struct {
	Name       string `json:"name"`
	Role       string `json:"role"`
	Confidence number `json:"confidence"`
	Evidence   string `json:"evidence"`
	Country    string `json:"country"`
	AdminLevel number `json:"admin_level"`
}

// number accepts 0.9 as well as "0.9"
type number float64

func (n *number) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return fmt.Errorf("%s is not a number", b)
	}
	*n = number(f)
	return nil
}

// Extract returns the geographic entities of text, most confident first
func (e *Extractor) Extract(ctx context.Context, text, sourceURL string) (set *model.GeoTargetSet, err error) {
	start := time.Now()
	cached := false
	defer func() {
		e.observer.ExtractionDone(outcome(err, cached), time.Since(start))
	}()

	text = strings.TrimSpace(text)
	if LooksLikeHTML(text) {
		visible, err := VisibleText(text)
		if err != nil {
			return nil, fmt.Errorf("failed to read HTML: %w", err)
		}
		text = visible
	}
	if text == "" {
		return nil, errors.New("no text to analyze")
	}

	prompt := BuildPrompt(text)
	key := cache.Key("reply", e.provider.Name(), e.model, prompt)

	var parsed reply
	if raw, ok := e.cache.Get(key); ok && e.validator.RepairAndDecode(string(raw), &parsed) == nil {
		cached = true
		e.observer.ReplyCacheHit()
		e.logger.Debug("reply cache hit", zap.String("key", key))
	} else {
		answer, err := e.complete(ctx, prompt)
		if err != nil {
			return nil, err
		}
		parsed = reply{}
		if err := e.validator.RepairAndDecode(answer, &parsed); err != nil {
			e.logger.Warn("unparseable reply", zap.Error(err), zap.Int("bytes", len(answer)))
			return nil, err
		}
		if err := e.cache.Set(key, []byte(answer), 0); err != nil {
			e.logger.Warn("failed to cache reply", zap.Error(err))
		}
	}

	targets := e.filter(text, e.buildTargets(parsed, text))
	sort.SliceStable(targets, func(i, j int) bool {
		return targets[i].Confidence > targets[j].Confidence
	})

	e.logger.Debug("extraction finished",
		zap.Int("regions", len(parsed.Regions)),
		zap.Int("places", len(parsed.Places)),
		zap.Int("kept", len(targets)),
		zap.Bool("cached", cached))

	return &model.GeoTargetSet{
		SourceText: text,
		SourceURL:  sourceURL,
		CreatedAt:  e.now(),
		Targets:    targets,
	}, nil
}

// complete calls the service, backing off on rate limits
func (e *Extractor) complete(ctx context.Context, prompt string) (string, error) {
	req := llm.CompletionRequest{Prompt: prompt, Model: e.model, JSON: true}

	for attempt := 0; ; attempt++ {
		if e.limiter != nil {
			if err := e.limiter.Wait(ctx, e.provider.Name()); err != nil {
				return "", classify(ctx, err)
			}
		}

		resp, err := e.provider.Complete(ctx, req)
		if err == nil {
			return resp.Text, nil
		}

		limited, ok := llm.IsRateLimit(err)
		if !ok {
			return "", classify(ctx, err)
		}
		if attempt >= e.maxRetries {
			return "", fmt.Errorf("%w: gave up after %d retries: %v", model.ErrQuotaExceeded, e.maxRetries, err)
		}

		delay := backoff(limited.RetryAfter, attempt)
		e.observer.RateLimitRetry()
		e.logger.Warn("rate limited, backing off",
			zap.String("provider", e.provider.Name()),
			zap.Int("attempt", attempt+1),
			zap.Duration("delay", delay))

		if err := extractSleepFunc(ctx, delay); err != nil {
			return "", classify(ctx, err)
		}
	}
}

// backoff doubles the service's hint (or one second) per attempt
func backoff(hint time.Duration, attempt int) time.Duration {
	base := hint
	if base <= 0 {
		base = defaultRetryDelay
	}
	delay := base << attempt
	if delay <= 0 || delay > maxRetryDelay {
		return maxRetryDelay
	}
	return delay
}

func classify(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, model.ErrServiceUnavailable):
		return err
	case llm.IsTimeout(err), errors.Is(ctx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", model.ErrTimeout, err)
	case errors.Is(err, context.Canceled):
		return err
	default:
		return fmt.Errorf("text-understanding call failed: %w", err)
	}
}

func outcome(err error, cached bool) string {
	switch {
	case err == nil && cached:
		return "cached"
	case err == nil:
		return "ok"
	case errors.Is(err, model.ErrTimeout):
		return "timeout"
	case errors.Is(err, model.ErrQuotaExceeded):
		return "quota"
	case errors.Is(err, model.ErrMalformedResponse):
		return "malformed"
	case errors.Is(err, model.ErrServiceUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}

func (e *Extractor) buildTargets(r reply, source string) []model.GeoTarget {
	targets := make([]model.GeoTarget, 0, len(r.Regions)+len(r.Places))
	add := func(kind model.Kind, item replyItem) {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			return
		}
		evidence := strings.TrimSpace(item.Evidence)
		start, end := locateEvidence(source, evidence)

		t := model.GeoTarget{
			ID:            e.newID(),
			Kind:          kind,
			Name:          name,
			Confidence:    clampConfidence(float64(item.Confidence)),
			Role:          model.ParseRole(strings.ToLower(strings.TrimSpace(item.Role))),
			Evidence:      evidence,
			EvidenceStart: start,
			EvidenceEnd:   end,
		}
		switch kind {
		case model.KindRegion:
			t.AdminLevel = int(item.AdminLevel)
		case model.KindPlace:
			t.CountryHint = strings.TrimSpace(item.Country)
		}
		targets = append(targets, t)
	}

	for _, item := range r.Regions {
		add(model.KindRegion, item)
	}
	for _, item := range r.Places {
		add(model.KindPlace, item)
	}
	return targets
}

// filter drops the candidates the noise rules reject
func (e *Extractor) filter(source string, targets []model.GeoTarget) []model.GeoTarget {
	candidates := make([]Candidate, len(targets))
	for i, t := range targets {
		candidates[i] = Candidate{Name: t.Name, Evidence: t.Evidence, Confidence: t.Confidence}
	}
	noiseCtx := NewNoiseContext(source, candidates)

	kept := targets[:0]
	for i, t := range targets {
		decision, rule := FilterNoise(e.rules, candidates[i], noiseCtx)
		if decision == Drop {
			e.logger.Debug("dropped candidate",
				zap.String("name", t.Name),
				zap.String("rule", rule),
				zap.String("evidence", t.Evidence))
			continue
		}
		kept = append(kept, t)
	}
	return kept
}

// clampConfidence maps percentages onto [0,1] and clamps the rest
func clampConfidence(c float64) float64 {
	if c > 1 && c <= 100 {
		c /= 100
	}
	switch {
	case c < 0:
		return 0
	case c > 1:
		return 1
	default:
		return c
	}
}

// locateEvidence finds evidence in source: exact, then trimmed, then by its
// first 40 and 20 bytes. It returns -1, -1 when nothing matches.
func locateEvidence(source, evidence string) (int, int) {
	if evidence == "" {
		return -1, -1
	}
	if i := strings.Index(source, evidence); i >= 0 {
		return i, i + len(evidence)
	}

	trimmed := strings.Trim(evidence, evidenceTrim)
	if trimmed == "" {
		return -1, -1
	}
	if i := strings.Index(source, trimmed); i >= 0 {
		return i, i + len(trimmed)
	}

	for _, n := range []int{40, 20} {
		if len(trimmed) <= n {
			continue
		}
		prefix := truncateBytes(trimmed, n)
		if i := strings.Index(source, prefix); i >= 0 {
			return i, i + len(prefix)
		}
	}
	return -1, -1
}

// truncateBytes cuts s to at most n bytes without splitting a rune
func truncateBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
