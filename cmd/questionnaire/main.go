package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"github.com/burenotti/go_bodyfat_backend/internal/adapter/cache"
	"github.com/burenotti/go_bodyfat_backend/internal/adapter/metrics"
	"github.com/burenotti/go_bodyfat_backend/internal/app/estimation"
	"github.com/burenotti/go_bodyfat_backend/internal/app/locale"
	"github.com/burenotti/go_bodyfat_backend/internal/app/messagebus"
	"github.com/burenotti/go_bodyfat_backend/internal/app/questionnaire"
	"github.com/burenotti/go_bodyfat_backend/internal/domain/measurement"
	"github.com/burenotti/go_bodyfat_backend/internal/domain/wizard"
	"github.com/prometheus/client_golang/prometheus"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
)

const (
	cmdBack  = "back"
	cmdReset = "reset"
	cmdQuit  = "quit"
)

func main() {
	var (
		lang  string
		unit  string
		delay time.Duration
	)
	flag.StringVar(&lang, "lang", "en", "interface language (en, tr)")
	flag.StringVar(&unit, "units", "metric", "unit system (metric, imperial)")
	flag.DurationVar(&delay, "delay", 1500*time.Millisecond, "how long the loading screen is shown")
	flag.Parse()

	system, err := measurement.ParseUnitSystem(unit)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	bus := messagebus.New(logger)
	collectors := metrics.New(prometheus.NewRegistry())
	memo := cache.NewMemoryCache(time.Hour)
	defer memo.PurgeEvery(time.Hour)()
	estimator := estimation.New(logger, memo, collectors, bus)
	svc := questionnaire.New(logger, estimator, bus, collectors, questionnaire.Config{LoadingDelay: delay})
	defer bus.Close()
	defer svc.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	t := &terminal{
		svc:   svc,
		l:     locale.MustNew("en").Resolve(lang),
		out:   os.Stdout,
		lines: readLines(os.Stdin),
		delay: delay,
	}
	if err := t.run(ctx, system); err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, context.Canceled) {
		logger.Error("questionnaire failed", "error", err)
		os.Exit(1)
	}
}

func readLines(r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			lines <- strings.TrimSpace(scanner.Text())
		}
	}()
	return lines
}

type terminal struct {
	svc   *questionnaire.Service
	l     *locale.Localizer
	out   io.Writer
	lines <-chan string
	delay time.Duration
}

func (t *terminal) run(ctx context.Context, system measurement.UnitSystem) error {
	view, err := t.svc.Start(ctx, t.l.Locale(), system)
	if err != nil {
		return err
	}

	for {
		var next questionnaire.View
		switch view.Step {
		case wizard.StepLoading:
			next, err = t.waitForResults(ctx, view)
		case wizard.StepResults:
			t.printResults(view)
			next, err = t.prompt(ctx, view, fmt.Sprintf("[%s: %s]", cmdReset, t.l.Text(locale.KeyReset)))
		case wizard.StepWelcome:
			fmt.Fprintf(t.out, "%s\n%s\n", t.l.Text(locale.KeyAppTitle), t.l.Text(locale.KeyWelcome))
			next, err = t.prompt(ctx, view, "[enter]")
		default:
			next, err = t.prompt(ctx, view, t.question(view))
		}

		switch {
		case err == nil:
			view = next
		case errors.Is(err, io.EOF), errors.Is(err, context.Canceled):
			return err
		default:
			fmt.Fprintln(t.out, t.describe(err))
		}
	}
}

func (t *terminal) question(v questionnaire.View) string {
	text := t.l.Text(locale.Key("step." + string(v.Step)))
	switch v.Step {
	case wizard.StepSex:
		return fmt.Sprintf("%s (%s/%s)", text, measurement.Male, measurement.Female)
	case wizard.StepAge:
		return fmt.Sprintf("%s (%s)", text, t.l.Text(locale.KeyYears))
	case wizard.StepWeight:
		if v.Units == measurement.Imperial {
			return fmt.Sprintf("%s (%s)", text, t.l.Text(locale.KeyLbs))
		}
		return fmt.Sprintf("%s (%s)", text, t.l.Text(locale.KeyKg))
	case wizard.StepHeight:
		if v.Units == measurement.Imperial {
			return fmt.Sprintf("%s (%s %s)", text, t.l.Text(locale.KeyFt), t.l.Text(locale.KeyIn))
		}
	}
	if v.Units == measurement.Imperial {
		return fmt.Sprintf("%s (%s)", text, t.l.Text(locale.KeyIn))
	}
	return fmt.Sprintf("%s (%s)", text, t.l.Text(locale.KeyCm))
}

// prompt reads one line and applies it to the active step.
func (t *terminal) prompt(ctx context.Context, v questionnaire.View, text string) (questionnaire.View, error) {
	fmt.Fprintf(t.out, "%s\n> ", text)

	var line string
	select {
	case <-ctx.Done():
		return v, ctx.Err()
	case l, ok := <-t.lines:
		if !ok {
			return v, io.EOF
		}
		line = l
	}

	switch line {
	case cmdQuit:
		return v, io.EOF
	case cmdBack:
		return t.svc.Back(ctx, v.ID)
	case cmdReset:
		return t.svc.Reset(ctx, v.ID)
	}

	switch v.Step {
	case wizard.StepWelcome:
		return t.svc.Next(ctx, v.ID)
	case wizard.StepResults:
		return v, nil
	case wizard.StepSex:
		return t.svc.Answer(ctx, v.ID, v.Step, strings.ToLower(line))
	case wizard.StepHeight:
		if v.Units == measurement.Imperial {
			return t.svc.Answer(ctx, v.ID, v.Step, strings.Fields(line)...)
		}
	}
	return t.svc.Answer(ctx, v.ID, v.Step, line)
}

// waitForResults shows the loading screen. back and reset typed meanwhile
// cancel it.
func (t *terminal) waitForResults(ctx context.Context, v questionnaire.View) (questionnaire.View, error) {
	fmt.Fprintln(t.out, t.l.Text(locale.KeyLoading))

	timer := time.NewTimer(t.delay)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return v, ctx.Err()
		case line, ok := <-t.lines:
			if !ok {
				return v, io.EOF
			}
			switch line {
			case cmdBack:
				return t.svc.Back(ctx, v.ID)
			case cmdReset:
				return t.svc.Reset(ctx, v.ID)
			case cmdQuit:
				return v, io.EOF
			}
		case <-timer.C:
			current, err := t.svc.Get(ctx, v.ID)
			if err != nil || current.Step != wizard.StepLoading {
				return current, err
			}
			return t.svc.Reveal(ctx, v.ID)
		}
	}
}

func (t *terminal) printResults(v questionnaire.View) {
	if v.Result == nil {
		fmt.Fprintln(t.out, t.l.Text(locale.KeyCalculationError))
		return
	}

	r := v.Result
	percent := func(value *float64) string {
		if value == nil {
			return t.l.Text(locale.KeyNotAvailable)
		}
		return t.l.Number(*value, 1) + "%"
	}

	fmt.Fprintf(t.out, "\n%s\n", t.l.Text(locale.KeyResults))
	if r.BMI != nil {
		fmt.Fprintf(t.out, "  %-28s %s\n", t.l.Text(locale.KeyBMI), t.l.Number(*r.BMI, 1))
	} else {
		fmt.Fprintf(t.out, "  %-28s %s\n", t.l.Text(locale.KeyBMI), t.l.Text(locale.KeyNotAvailable))
	}
	rows := []struct {
		key   locale.Key
		value *float64
	}{
		{locale.KeyBMIBased, r.BMIBased},
		{locale.KeyNavy, r.Navy},
		{locale.KeyRelativeFatMass, r.RelativeFatMass},
		{locale.KeyCunBae, r.CunBae},
		{locale.KeyEcore, r.Ecore},
		{locale.KeyAverage, r.AverageBf},
	}
	for _, row := range rows {
		fmt.Fprintf(t.out, "  %-28s %s\n", t.l.Text(row.key), percent(row.value))
	}

	category := r.Category(v.Record.Sex)
	fmt.Fprintf(t.out, "\n%s\n%s\n\n", t.l.CategoryLabel(category), t.l.CategoryMessage(category))
}

func (t *terminal) describe(err error) string {
	switch {
	case errors.Is(err, measurement.ErrOutOfRange), errors.Is(err, measurement.ErrInvalidNumber):
		return t.l.ValidationMessage(err)
	case errors.Is(err, wizard.ErrNotAnswered):
		return t.l.Text(locale.KeyInvalidNumber)
	case errors.Is(err, estimation.ErrIncompleteRecord):
		return t.l.Text(locale.KeyCalculationError)
	default:
		return err.Error()
	}
}
