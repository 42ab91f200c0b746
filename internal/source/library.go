package source

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	"time"

	"github.com/google/uuid"
	"github.com/tartampluch/go-agestack/internal/chronology"
	"github.com/tartampluch/go-agestack/internal/config"
)

// manifestEntry is the wire form of one photo record in a manifest.
type manifestEntry struct {
	ID        string `json:"id"`
	DateTaken string `json:"date_taken"`
	ImageRef  string `json:"image_ref"`
}

// DecodePhotos reads a JSON photo manifest. Entries with unparseable dates
// are skipped with a debug log, mirroring how contact import treats bad
// BDAY values; an entry without an id gets a fresh one.
func DecodePhotos(r io.Reader) ([]chronology.Photo, error) {
	var entries []manifestEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrManifestParse, err)
	}

	photos := make([]chronology.Photo, 0, len(entries))
	skipped := 0
	for _, e := range entries {
		taken, err := ParseDate(e.DateTaken)
		if err != nil {
			skipped++
			slog.Debug(config.MsgSkippedPhoto,
				config.LogKeyComponent, config.CompSource,
				config.LogKeyValue, e.DateTaken)
			continue
		}

		id, err := uuid.Parse(e.ID)
		if err != nil {
			id = uuid.New()
		}

		photos = append(photos, chronology.Photo{
			ID:        id,
			DateTaken: taken,
			ImageRef:  e.ImageRef,
		})
	}

	slog.Info(config.MsgManifestLoaded,
		config.LogKeyComponent, config.CompSource,
		config.LogKeyPhotos, len(photos),
		config.LogKeySkipped, skipped)

	return photos, nil
}

// Library is an in-memory person/photo store. It backs the CLI and tests;
// a real deployment would put a photo-library service behind the same
// methods. Photos are unique by id within a person: re-adding an id
// replaces the earlier record.
type Library struct {
	mu      sync.RWMutex
	persons map[uuid.UUID]chronology.Person
	photos  map[uuid.UUID][]chronology.Photo // keyed by person id
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{
		persons: make(map[uuid.UUID]chronology.Person),
		photos:  make(map[uuid.UUID][]chronology.Photo),
	}
}

// UpdatePerson inserts or replaces a tracked person.
func (l *Library) UpdatePerson(p chronology.Person) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.persons[p.ID] = p
}

// Person looks a person up by id.
func (l *Library) Person(id uuid.UUID) (chronology.Person, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	p, ok := l.persons[id]
	return p, ok
}

// AddPhoto attaches a photo to a person. The returned photo carries a
// generated id when the input had none.
func (l *Library) AddPhoto(personID uuid.UUID, photo chronology.Photo) chronology.Photo {
	if photo.ID == uuid.Nil {
		photo.ID = uuid.New()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	existing := l.photos[personID]
	for i, p := range existing {
		if p.ID == photo.ID {
			existing[i] = photo
			return photo
		}
	}
	l.photos[personID] = append(existing, photo)
	return photo
}

// Photos returns a person's photos sorted by the date taken, oldest first.
func (l *Library) Photos(personID uuid.UUID) []chronology.Photo {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]chronology.Photo, len(l.photos[personID]))
	copy(out, l.photos[personID])
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DateTaken.Before(out[j].DateTaken)
	})
	return out
}

// PhotosInRange returns the person's photos inside [start, end), sorted by
// the date taken. A zero start means unbounded below, matching the coarse
// pregnancy window.
func (l *Library) PhotosInRange(personID uuid.UUID, start, end time.Time) []chronology.Photo {
	all := l.Photos(personID)
	out := make([]chronology.Photo, 0, len(all))
	for _, p := range all {
		if !start.IsZero() && p.DateTaken.Before(start) {
			continue
		}
		if !p.DateTaken.Before(end) {
			continue
		}
		out = append(out, p)
	}
	return out
}
