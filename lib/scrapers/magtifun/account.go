package magtifun

import (
	"context"
	"strconv"
	"time"

	"github.com/ABGEO/magtifun.abgeo.dev/lib/htmlutil"
	"github.com/ABGEO/magtifun.abgeo.dev/lib/telemetry"
	"github.com/ABGEO/magtifun.abgeo.dev/lib/timezone"

	"github.com/PuerkitoBio/goquery"
)

// the settings page renders month names in georgian regardless of `lang`
var georgianMonths = map[string]time.Month{
	"იანვარი":    time.January,
	"თებერვალი":  time.February,
	"მარტი":      time.March,
	"აპრილი":     time.April,
	"მაისი":      time.May,
	"ივნისი":     time.June,
	"ივლისი":     time.July,
	"აგვისტო":    time.August,
	"სექტემბერი": time.September,
	"ოქტომბერი":  time.October,
	"ნოემბერი":   time.November,
	"დეკემბერი":  time.December,
}

func (c *Client) GetAccount(ctx context.Context, identity UserIdentity) (AccountProfile, error) {
	ctx, span := tracer.Start(ctx, "client:GetAccount")
	defer span.End()

	s := c.newSession(identity.Token())
	doc, err := s.getDocument(ctx, pageAccount)
	if err != nil {
		return AccountProfile{}, c.fail(span, report_client_get_account, err)
	}

	account, err := ParseAccount(doc, c.tel)
	if err != nil {
		return AccountProfile{}, c.fail(span, report_client_get_account, err)
	}
	return account, nil
}

// ParseAccount reads the profile out of the settings page. tel may be nil.
func ParseAccount(doc *goquery.Document, tel telemetry.API) (AccountProfile, error) {
	birthdate, err := parseBirthdate(doc)
	if err != nil {
		return AccountProfile{}, err
	}

	firstName := htmlutil.FirstById(doc, "input", "f_name")
	if firstName.Length() == 0 {
		return AccountProfile{}, parseErrorf(pageAccount, "could not find input#f_name")
	}
	lastName := htmlutil.FirstById(doc, "input", "l_name")
	if lastName.Length() == 0 {
		return AccountProfile{}, parseErrorf(pageAccount, "could not find input#l_name")
	}

	phone := doc.Find("input.round_border.large_box[disabled]").First()
	if phone.Length() == 0 {
		return AccountProfile{}, parseErrorf(pageAccount, "could not find the phone input")
	}

	citySelect := htmlutil.FirstById(doc, "select", "city")
	if citySelect.Length() == 0 {
		return AccountProfile{}, parseErrorf(pageAccount, "could not find select#city")
	}
	city, ok := htmlutil.SelectedOption(citySelect)
	if !ok {
		return AccountProfile{}, parseErrorf(pageAccount, "select#city has no selected option")
	}

	return AccountProfile{
		FirstName: firstName.AttrOr("value", ""),
		LastName:  lastName.AttrOr("value", ""),
		Username:  htmlutil.FirstById(doc, "input", "user_name").AttrOr("value", ""),
		Phone:     phone.AttrOr("value", ""),
		City:      city,
		Birthdate: birthdate,
		Gender:    parseGender(doc, tel),
	}, nil
}

func selectedById(doc *goquery.Document, id string) (string, error) {
	sel := htmlutil.FirstById(doc, "select", id)
	if sel.Length() == 0 {
		return "", parseErrorf(pageAccount, "could not find select#%s", id)
	}
	// an unselected date field is the same as an empty one
	text, _ := htmlutil.SelectedOption(sel)
	return text, nil
}

// parseBirthdate returns nil when any of the day, month or year fields is
// left empty on the page.
func parseBirthdate(doc *goquery.Document) (*time.Time, error) {
	day, err := selectedById(doc, "day")
	if err != nil {
		return nil, err
	}
	month, err := selectedById(doc, "month")
	if err != nil {
		return nil, err
	}
	year, err := selectedById(doc, "year")
	if err != nil {
		return nil, err
	}
	if day == "" || month == "" || year == "" {
		return nil, nil
	}

	dayNo, err := strconv.Atoi(day)
	if err != nil {
		return nil, parseErrorf(pageAccount, "birth day %q is not a number", day)
	}
	monthNo, ok := georgianMonths[month]
	if !ok {
		return nil, parseErrorf(pageAccount, "unknown birth month %q", month)
	}
	yearNo, err := strconv.Atoi(year)
	if err != nil {
		return nil, parseErrorf(pageAccount, "birth year %q is not a number", year)
	}

	birthdate := time.Date(yearNo, monthNo, dayNo, 0, 0, 0, 0, timezone.Location)
	if birthdate.Day() != dayNo || birthdate.Month() != monthNo {
		return nil, parseErrorf(pageAccount, "birthdate %s %s %s does not exist", day, month, year)
	}
	return &birthdate, nil
}

func parseGender(doc *goquery.Document, tel telemetry.API) Gender {
	female := htmlutil.FirstById(doc, "input", "female")
	if female.Length() > 0 {
		if _, checked := female.Attr("checked"); checked {
			return GenderFemale
		}
		return DefaultGender
	}

	if tel != nil && htmlutil.FirstById(doc, "input", "male").Length() == 0 {
		tel.ReportWarning(
			report_account_gender,
			"neither input#female nor input#male exist, using default",
			DefaultGender,
		)
	}
	return DefaultGender
}
