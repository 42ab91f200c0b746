package chronology

import (
	"time"

	"github.com/google/uuid"
)

// Person is a tracked subject. DateOfBirth may lie in the future when the
// pregnancy is still ongoing; every computation in this package is relative
// to it.
type Person struct {
	ID          uuid.UUID
	Name        string
	DateOfBirth time.Time
}

// Photo is a dated photo record. ImageRef is an opaque handle owned by the
// photo-library collaborator; this package never dereferences it.
type Photo struct {
	ID        uuid.UUID
	DateTaken time.Time
	ImageRef  string
}

// Bucket is a named group of photos sharing the same age-relative label.
// Buckets are derived on demand and never persisted.
type Bucket struct {
	Label  Label
	Photos []Photo
}

// Granularity controls how finely buckets subdivide time around birth.
type Granularity int

const (
	// Fine buckets at week precision before birth and month precision in the
	// first year, with "Birth Month" as the month-0 bucket.
	Fine Granularity = iota
	// Coarse collapses the whole pregnancy into one bucket and keeps month 0
	// as a regular "0 Months" bucket.
	Coarse
)
