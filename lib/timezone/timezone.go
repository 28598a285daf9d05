package timezone

import (
	"time"
	_ "time/tzdata"
)

// Location is the timezone the site renders its timestamps in.
var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Asia/Tbilisi")
	if err != nil {
		panic(err)
	}
}

// timestamps scraped from the site carry no offset, they are always
// interpreted in Location regardless of where the server runs.
func Now() time.Time {
	return time.Now().In(Location)
}

// ParseInLocation parses value with layout in the site's timezone.
func ParseInLocation(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, Location)
}
