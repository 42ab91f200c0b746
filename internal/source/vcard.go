package source

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/google/uuid"
	"github.com/tartampluch/go-agestack/internal/chronology"
	"github.com/tartampluch/go-agestack/internal/config"
)

// LoadPersons reads tracked persons from a vCard stream. Only cards carrying
// a parseable BDAY become persons; malformed cards are skipped so one bad
// export does not sink the whole contact file. A future BDAY is legitimate
// here: it is how a pregnancy is tracked before the due date.
func LoadPersons(r io.Reader) ([]chronology.Person, error) {
	decoder := vcard.NewDecoder(r)
	var persons []chronology.Person

	for {
		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompSource,
				config.LogKeyError, err)
			continue
		}

		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			continue
		}

		birthDate, err := ParseDate(bday.Value)
		if err != nil {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompSource,
				config.LogKeyValue, bday.Value)
			continue
		}

		// Name Strategy: FN (Formatted) > N (Structured) > Fallback
		name := config.FallbackName
		if fn := card.Get(config.VCardFN); fn != nil {
			name = fn.Value
		} else if n := card.Get(config.VCardN); n != nil {
			name = n.Value
		}

		persons = append(persons, chronology.Person{
			ID:          personID(name, birthDate),
			Name:        name,
			DateOfBirth: birthDate,
		})

		slog.Debug(config.MsgPersonLoaded,
			config.LogKeyComponent, config.CompSource,
			config.LogKeyName, name,
			config.LogKeyDOB, birthDate.Format(config.DateFormatFullDash))
	}

	if len(persons) == 0 {
		return nil, errors.New(config.ErrNoPersons)
	}
	return persons, nil
}

// personID derives a stable identifier from the name and birth date so a
// re-import of the same contact file yields the same IDs.
func personID(name string, birthDate time.Time) uuid.UUID {
	input := fmt.Sprintf(config.FormatHashInput,
		name, birthDate.Format(time.RFC3339), config.UIDSalt)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(input))
}

// ParseDate handles the date formats seen in vCard BDAY fields and photo
// manifests.
func ParseDate(value string) (time.Time, error) {
	formatsWithYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}
	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			return t, nil
		}
	}

	// Truncated dates (Year unknown) - vCard specific.
	// Safe leap year fallback.
	formatsWithoutYear := []string{config.DateFormatNoYearD, config.DateFormatNoYearB}
	for _, f := range formatsWithoutYear {
		if t, err := time.Parse(f, value); err == nil {
			return time.Date(config.DefaultLeapYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}

	return time.Time{}, errors.New(config.ErrDateParse)
}
