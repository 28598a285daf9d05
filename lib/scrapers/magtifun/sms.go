package magtifun

import (
	"context"
	"strconv"
	"strings"

	"github.com/ABGEO/magtifun.abgeo.dev/lib/htmlutil"
	"github.com/ABGEO/magtifun.abgeo.dev/lib/timezone"

	"github.com/PuerkitoBio/goquery"
)

const (
	// the day is not zero padded on every page, "2" accepts both 4 and 04
	smsDateLayout = "2Jan200615:04:05"
	// message elements have ids like "msg_123456"
	smsIdPrefixLength = 4
)

// GetSmsHistory collects the sent messages of every history page. The first
// page is fetched with GET, every following page is requested by POSTing its
// number to the same url, the site does not accept it the other way around.
func (c *Client) GetSmsHistory(ctx context.Context, identity UserIdentity) ([]SmsHistoryItem, error) {
	ctx, span := tracer.Start(ctx, "client:GetSmsHistory")
	defer span.End()

	s := c.newSession(identity.Token())
	doc, err := s.getDocument(ctx, pageSmsHistory)
	if err != nil {
		return nil, c.fail(span, report_client_get_sms_history, err)
	}

	items, err := ParseSmsPage(doc)
	if err != nil {
		return nil, c.fail(span, report_client_get_sms_history, err)
	}

	pages := ParsePageNumbers(doc)
	if len(pages) > 0 {
		// the first page number is the page we already have
		for _, page := range pages[1:] {
			c.tel.ReportDebug("fetch sms history page", page)

			pageDoc, err := s.postDocument(ctx, pageSmsHistory, map[string]string{
				"cur_page": page,
			})
			if err != nil {
				return nil, c.fail(span, report_client_get_sms_history, err)
			}
			pageItems, err := ParseSmsPage(pageDoc)
			if err != nil {
				return nil, c.fail(span, report_client_get_sms_history, err)
			}
			items = append(items, pageItems...)
		}
	}

	c.tel.ReportCount("sms-history.items", int64(len(items)))
	return items, nil
}

// ParsePageNumbers returns the labels of the pagination controls in the order
// they appear.
func ParsePageNumbers(doc *goquery.Document) []string {
	var pages []string
	doc.Find("span.page_number").Each(func(_ int, s *goquery.Selection) {
		pages = append(pages, htmlutil.Text(s))
	})
	return pages
}

// ParseSmsPage parses the messages of a single history page.
func ParseSmsPage(doc *goquery.Document) ([]SmsHistoryItem, error) {
	list := htmlutil.FirstById(doc, "div", "message_list")
	if list.Length() == 0 {
		return nil, parseErrorf(pageSmsHistory, "could not find div#message_list")
	}

	items := []SmsHistoryItem{}
	var err error
	list.Children().EachWithBreak(func(_ int, message *goquery.Selection) bool {
		var item SmsHistoryItem
		item, err = parseSmsMessage(message)
		if err != nil {
			return false
		}
		items = append(items, item)
		return true
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func parseSmsMessage(message *goquery.Selection) (SmsHistoryItem, error) {
	elementId := message.AttrOr("id", "")
	if len(elementId) <= smsIdPrefixLength {
		return SmsHistoryItem{}, parseErrorf(pageSmsHistory, "bad message id %q", elementId)
	}
	id, err := strconv.Atoi(elementId[smsIdPrefixLength:])
	if err != nil {
		return SmsHistoryItem{}, parseErrorf(pageSmsHistory, "bad message id %q", elementId)
	}

	dateCell := message.Find("td.msg_date").First()
	if dateCell.Length() == 0 {
		return SmsHistoryItem{}, parseErrorf(pageSmsHistory, "message %d has no date", id)
	}
	// the date is split across several inline elements
	stamp := htmlutil.StripSpace(htmlutil.Text(dateCell))
	date, err := timezone.ParseInLocation(smsDateLayout, stamp)
	if err != nil {
		return SmsHistoryItem{}, parseErrorf(pageSmsHistory, "message %d has bad date %q", id, stamp)
	}

	body := message.Find("td.msg_body").First()
	if body.Length() == 0 {
		return SmsHistoryItem{}, parseErrorf(pageSmsHistory, "message %d has no body", id)
	}
	// the first red span is the "to:" label, the second one the number
	recipient := body.Find("p.message_list_recipient").First().Find("span.red").Eq(1)
	if recipient.Length() == 0 {
		return SmsHistoryItem{}, parseErrorf(pageSmsHistory, "message %d has no recipient", id)
	}
	text := body.Find("p.msg_text").First()
	if text.Length() == 0 {
		return SmsHistoryItem{}, parseErrorf(pageSmsHistory, "message %d has no text", id)
	}

	return SmsHistoryItem{
		Id:        id,
		Date:      date,
		Recipient: htmlutil.Text(recipient),
		// message bodies keep their line breaks
		Text:      strings.TrimSpace(htmlutil.GetText(text.Nodes[0])),
		Delivered: message.HasClass("msg_sent"),
	}, nil
}
