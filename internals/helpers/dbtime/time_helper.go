// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Diisi oleh middleware UseSchoolLocation
const LocSchoolLoc = "school_loc" // *time.Location

const DefaultTimezone = "Asia/Jakarta"

// LoadSchoolLocation: nama zona → *time.Location, fallback Asia/Jakarta lalu UTC.
func LoadSchoolLocation(name string) *time.Location {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultTimezone
	}
	if loc, err := time.LoadLocation(name); err == nil {
		return loc
	}
	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

// UseSchoolLocation menaruh timezone sekolah di locals.
func UseSchoolLocation(loc *time.Location) fiber.Handler {
	if loc == nil {
		loc = time.UTC
	}
	return func(c *fiber.Ctx) error {
		c.Locals(LocSchoolLoc, loc)
		return c.Next()
	}
}

func GetSchoolLocation(c *fiber.Ctx) *time.Location {
	if c != nil {
		if loc, ok := c.Locals(LocSchoolLoc).(*time.Location); ok && loc != nil {
			return loc
		}
	}
	return time.UTC
}

// ToSchoolTime mengonversi waktu (biasanya dari DB = UTC) ke timezone sekolah.
// Kalau t.IsZero() → dikembalikan apa adanya.
func ToSchoolTime(c *fiber.Ctx, t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.In(GetSchoolLocation(c))
}

// Helper kecil untuk "sekarang di timezone sekolah"
func NowInSchool(c *fiber.Ctx) time.Time {
	return time.Now().In(GetSchoolLocation(c))
}

// TodayInSchool: tanggal kalender hari ini (jam 00:00 UTC) menurut timezone sekolah.
func TodayInSchool(c *fiber.Ctx) time.Time {
	n := NowInSchool(c)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}
