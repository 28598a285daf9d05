package magtifun

import (
	"context"
	"strconv"
	"strings"

	"github.com/ABGEO/magtifun.abgeo.dev/lib/htmlutil"
	"github.com/ABGEO/magtifun.abgeo.dev/lib/timezone"

	"github.com/PuerkitoBio/goquery"
)

// the history page is requested with lang=en, so month names are english
const balanceHistoryDateLayout = "2 January 2006 15:04:05"

func (c *Client) GetBalance(ctx context.Context, identity UserIdentity) (Balance, error) {
	ctx, span := tracer.Start(ctx, "client:GetBalance")
	defer span.End()

	s := c.newSession(identity.Token())
	doc, err := s.getDocument(ctx, pageHome)
	if err != nil {
		return Balance{}, c.fail(span, report_client_get_balance, err)
	}

	balance, err := ParseBalance(doc)
	if err != nil {
		return Balance{}, c.fail(span, report_client_get_balance, err)
	}
	return balance, nil
}

func parseInt(page, name, text string) (int, error) {
	value, err := strconv.Atoi(htmlutil.StripSpace(text))
	if err != nil {
		return 0, parseErrorf(page, "%s %q is not a number", name, text)
	}
	return value, nil
}

// ParseBalance reads the credit and money figures from the landing page.
func ParseBalance(doc *goquery.Document) (Balance, error) {
	form := doc.Find("form").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.AttrOr("name", "") == "user_action"
	}).First()
	if form.Length() == 0 {
		return Balance{}, parseErrorf(pageHome, "could not find form[name=user_action]")
	}

	creditSpan := htmlutil.ExactClass(form, "span", "xxlarge dark english").First()
	if creditSpan.Length() == 0 {
		return Balance{}, parseErrorf(pageHome, "could not find the credit span")
	}
	amountSpan := htmlutil.ExactClass(form, "span", "dark english").First()
	if amountSpan.Length() == 0 {
		return Balance{}, parseErrorf(pageHome, "could not find the amount span")
	}

	credit, err := parseInt(pageHome, "credit", htmlutil.Text(creditSpan))
	if err != nil {
		return Balance{}, err
	}
	amount, err := parseInt(pageHome, "amount", htmlutil.Text(amountSpan))
	if err != nil {
		return Balance{}, err
	}

	return Balance{Credit: credit, Amount: amount}, nil
}

func (c *Client) GetBalanceHistory(ctx context.Context, identity UserIdentity) ([]BalanceHistoryItem, error) {
	ctx, span := tracer.Start(ctx, "client:GetBalanceHistory")
	defer span.End()

	s := c.newSession(identity.Token())
	doc, err := s.getDocument(ctx, pageBalanceHistory)
	if err != nil {
		return nil, c.fail(span, report_client_get_balance_history, err)
	}

	items, err := ParseBalanceHistory(doc)
	if err != nil {
		return nil, c.fail(span, report_client_get_balance_history, err)
	}
	return items, nil
}

// ParseBalanceHistory walks the divs of the history page in document order.
// A date separator sets the date for every transaction box after it, up to
// the next separator.
func ParseBalanceHistory(doc *goquery.Document) ([]BalanceHistoryItem, error) {
	leftSide := doc.Find("div.left_side").First()
	if leftSide.Length() == 0 {
		return nil, parseErrorf(pageBalanceHistory, "could not find div.left_side")
	}

	items := []BalanceHistoryItem{}
	currentDate := ""
	var err error

	leftSide.Find("div").EachWithBreak(func(i int, div *goquery.Selection) bool {
		if div.HasClass("date_separator") {
			currentDate = htmlutil.Text(div)
			return true
		}
		if !div.HasClass("box_div") {
			return true
		}

		var item BalanceHistoryItem
		item, err = parseBalanceHistoryBox(div, currentDate)
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

func parseBalanceHistoryBox(div *goquery.Selection, currentDate string) (BalanceHistoryItem, error) {
	if currentDate == "" {
		return BalanceHistoryItem{}, parseErrorf(pageBalanceHistory, "transaction before any date separator")
	}

	row := div.Find("tr").First()
	if row.Length() == 0 {
		return BalanceHistoryItem{}, parseErrorf(pageBalanceHistory, "transaction has no row")
	}
	timeCell := row.Find("td.msg_date").First()
	amountCell := row.Find("td.credit_list_amount").First()
	bodyCell := row.Find("td.msg_body").First()
	if timeCell.Length() == 0 || amountCell.Length() == 0 || bodyCell.Length() == 0 {
		return BalanceHistoryItem{}, parseErrorf(pageBalanceHistory, "transaction row is missing a cell")
	}

	stamp := currentDate + " " + htmlutil.Text(timeCell)
	date, err := timezone.ParseInLocation(balanceHistoryDateLayout, stamp)
	if err != nil {
		return BalanceHistoryItem{}, parseErrorf(pageBalanceHistory, "bad timestamp %q", stamp)
	}

	charge, amount, err := parseSignedAmount(htmlutil.Text(amountCell))
	if err != nil {
		return BalanceHistoryItem{}, err
	}

	return BalanceHistoryItem{
		Date:    date,
		Message: htmlutil.Text(bodyCell),
		Amount:  amount,
		Charge:  charge,
	}, nil
}

// parseSignedAmount splits "- 5" / "+ 10" into the sign and the value, the
// sign glued to the number ("-5") is accepted too.
func parseSignedAmount(text string) (charge bool, amount uint, err error) {
	parts := strings.Fields(text)
	if len(parts) == 1 && len(parts[0]) > 1 && (parts[0][0] == '-' || parts[0][0] == '+') {
		parts = []string{parts[0][:1], parts[0][1:]}
	}
	if len(parts) != 2 {
		return false, 0, parseErrorf(pageBalanceHistory, "bad amount %q", text)
	}

	value, err := strconv.ParseUint(parts[1], 10, 0)
	if err != nil {
		return false, 0, parseErrorf(pageBalanceHistory, "bad amount %q", text)
	}
	return parts[0] == "-", uint(value), nil
}
