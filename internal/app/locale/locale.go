package locale

import (
	"errors"
	"fmt"
	"github.com/burenotti/go_bodyfat_backend/internal/domain/estimate"
	"github.com/burenotti/go_bodyfat_backend/internal/domain/measurement"
	"github.com/samber/lo"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"golang.org/x/text/number"
	"sort"
)

var (
	ErrUnsupportedLocale = errors.New("unsupported locale")
)

// Bundle owns the string catalog of every supported locale.
type Bundle struct {
	catalog  *catalog.Builder
	tags     []language.Tag
	matcher  language.Matcher
	fallback language.Tag
}

func New(defaultLocale string) (*Bundle, error) {
	fallback, err := language.Parse(defaultLocale)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLocale, defaultLocale)
	}
	if _, ok := tables[fallback]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLocale, defaultLocale)
	}

	// the fallback goes first so that the matcher prefers it on ties
	others := lo.Without(lo.Keys(tables), fallback)
	sort.Slice(others, func(i, j int) bool {
		return others[i].String() < others[j].String()
	})
	tags := append([]language.Tag{fallback}, others...)

	b := catalog.NewBuilder(catalog.Fallback(fallback))
	for tag, table := range tables {
		for key, msg := range table {
			if err := b.SetString(tag, string(key), msg); err != nil {
				return nil, fmt.Errorf("failed to register %s/%s: %w", tag, key, err)
			}
		}
	}

	return &Bundle{
		catalog:  b,
		tags:     tags,
		matcher:  language.NewMatcher(tags),
		fallback: fallback,
	}, nil
}

func MustNew(defaultLocale string) *Bundle {
	b, err := New(defaultLocale)
	if err != nil {
		panic(err)
	}
	return b
}

// Locales lists the supported locales, default first.
func (b *Bundle) Locales() []string {
	return lo.Map(b.tags, func(t language.Tag, _ int) string {
		return t.String()
	})
}

// Resolve picks the best supported locale for the given preferences, which may
// be plain tags or Accept-Language header values.
func (b *Bundle) Resolve(preferences ...string) *Localizer {
	_, index := language.MatchStrings(b.matcher, preferences...)
	return b.localizer(b.tags[index])
}

// Lookup returns the localizer for an exact supported locale.
func (b *Bundle) Lookup(locale string) (*Localizer, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLocale, locale)
	}
	base, _ := tag.Base()
	for _, t := range b.tags {
		if tb, _ := t.Base(); tb == base {
			return b.localizer(t), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedLocale, locale)
}

func (b *Bundle) localizer(tag language.Tag) *Localizer {
	return &Localizer{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(b.catalog)),
	}
}

type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

func (l *Localizer) Locale() string {
	return l.tag.String()
}

func (l *Localizer) Text(key Key, args ...any) string {
	return l.printer.Sprintf(string(key), args...)
}

// Number formats v with at most decimals fraction digits and the locale's separators.
func (l *Localizer) Number(v float64, decimals int) string {
	return l.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(decimals)))
}

// Table returns the raw string table, placeholders included.
func (l *Localizer) Table() map[Key]string {
	return lo.Assign(tables[l.tag])
}

// ValidationMessage renders a measurement validation error. It returns an
// empty string for nil.
func (l *Localizer) ValidationMessage(err error) string {
	var rangeErr *measurement.RangeError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &rangeErr):
		return l.Text(KeyOutOfRange, l.Number(rangeErr.Min, 1), l.Number(rangeErr.Max, 1))
	case errors.Is(err, measurement.ErrInvalidNumber):
		return l.Text(KeyInvalidNumber)
	default:
		return err.Error()
	}
}

func (l *Localizer) CategoryLabel(c estimate.Category) string {
	return l.Text(KeyCategoryPrefix + Key(c))
}

func (l *Localizer) CategoryMessage(c estimate.Category) string {
	return l.Text(KeyMessagePrefix + Key(c))
}

func (l *Localizer) SexLabel(s measurement.Sex) string {
	if s == measurement.Female {
		return l.Text(KeyFemale)
	}
	return l.Text(KeyMale)
}
