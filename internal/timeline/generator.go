package timeline

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-agestack/internal/chronology"
	"github.com/tartampluch/go-agestack/internal/config"
)

// BuildConfig selects the two orthogonal presentation axes of a chronology:
// how finely photos are bucketed and which way the stack reads.
type BuildConfig struct {
	Granularity chronology.Granularity
	Reversed    bool // flip the canonical birth-proximity order
}

// Generator turns a person's photo set into an ordered bucket chronology and
// its iCalendar rendering.
type Generator struct {
	Clock chronology.Clock // Interface for time mocking.

	// FormatSummary allows the caller to inject localized event summaries.
	// When nil, a plain English fallback is used.
	FormatSummary func(label string, count int) string

	// CalendarName overrides the X-WR-CALNAME property when set.
	CalendarName string
}

// Build groups, orders and renders the chronology. It returns the ICS feed
// bytes together with the ordered buckets so callers can reuse the grouping
// without recomputing it.
func (g *Generator) Build(person chronology.Person, photos []chronology.Photo, cfg BuildConfig) ([]byte, []chronology.Bucket, error) {
	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompTimeline,
		config.LogKeyName, person.Name,
	)
	log.Info(config.MsgBuildStarted,
		config.LogKeyGranular, granularityName(cfg.Granularity),
		config.LogKeyPhotos, len(photos),
	)

	buckets, err := chronology.Group(photos, person.DateOfBirth, cfg.Granularity)
	if err != nil {
		return nil, nil, err
	}
	buckets = chronology.Order(buckets)
	if cfg.Reversed {
		buckets = chronology.Reverse(buckets)
	}

	ics, err := g.renderCalendar(person, buckets)
	if err != nil {
		return nil, nil, err
	}

	log.Info(config.MsgBuildSuccess,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyPhotos, len(photos)),
			slog.Int(config.LogKeyBuckets, len(buckets)),
		),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return ics, buckets, nil
}

// renderCalendar builds the iCalendar object: one all-day event per bucket,
// anchored at the start of the date range its label denotes.
func (g *Generator) renderCalendar(person chronology.Person, buckets []chronology.Bucket) ([]byte, error) {
	if len(buckets) == 0 {
		// A valid empty VCALENDAR keeps feed clients subscribed.
		return []byte(config.StubVCalendar), nil
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, g.calendarName())
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// RFC 7986: Suggest a refresh interval.
	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(g.now().UTC())

	for _, b := range buckets {
		event := ical.NewEvent()
		labelText := b.Label.String()

		event.Props.SetText(config.PropUID, g.eventUID(person, labelText))

		summary := fmt.Sprintf("%s (%d)", labelText, len(b.Photos))
		if g.FormatSummary != nil {
			summary = g.FormatSummary(labelText, len(b.Photos))
		}
		event.Props.SetText(config.PropSummary, summary)

		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(g.bucketAnchor(b, person.DateOfBirth))
		event.Props.Set(dtStartProp)
		event.Props.Set(dtStampProp)

		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return buf.Bytes(), nil
}

// bucketAnchor picks the calendar date an event lands on. Labels with an
// unbounded or unresolvable window fall back to the bucket's earliest photo.
func (g *Generator) bucketAnchor(b chronology.Bucket, birth time.Time) time.Time {
	start, _, err := chronology.ResolveRange(b.Label, birth)
	if err == nil && !start.IsZero() {
		return start
	}

	anchor := b.Photos[0].DateTaken
	for _, p := range b.Photos[1:] {
		if p.DateTaken.Before(anchor) {
			anchor = p.DateTaken
		}
	}
	if err != nil {
		slog.Debug(config.ErrUnresolvableLabel,
			config.LogKeyComponent, config.CompTimeline,
			config.LogKeyLabel, b.Label.String(),
		)
	}
	return anchor
}

// eventUID derives a deterministic UID so feed refreshes do not duplicate
// events in subscribed clients.
func (g *Generator) eventUID(person chronology.Person, label string) string {
	input := fmt.Sprintf(config.FormatHashInput, person.ID.String(), label, config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	base := fmt.Sprintf("%x", hash[:config.UIDHashLength])
	return fmt.Sprintf(config.FormatUID, base, person.ID.String()[:8], config.ICalDomain)
}

func (g *Generator) calendarName() string {
	if g.CalendarName != "" {
		return g.CalendarName
	}
	return config.AppName
}

func (g *Generator) now() time.Time {
	if g.Clock == nil {
		return time.Now()
	}
	return g.Clock.Now()
}

func granularityName(g chronology.Granularity) string {
	if g == chronology.Coarse {
		return config.GranularityCoarseName
	}
	return config.GranularityFineName
}
