// Package portal разбирает HTML-страницу списка дел портала UYAP в черновики дел.
package portal

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"davazen/internal/cases/domain/entities"
)

const (
	tableSelector = "table.rich-table"
	rowSelector   = "tbody tr"
	minCells      = 5

	errCtxParse = "parsing portal page"
)

// ParseTable возвращает по черновику на каждую строку первой таблицы дел.
// Строки, в которых меньше пяти ячеек, пропускаются. Нет таблицы - пустой результат.
func ParseTable(r io.Reader) ([]entities.CaseDraft, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxParse, err)
	}

	drafts := make([]entities.CaseDraft, 0)

	table := doc.Find(tableSelector).First()
	table.Find(rowSelector).Each(func(_ int, row *goquery.Selection) {
		cells := row.ChildrenFiltered("td")
		if cells.Length() < minCells {
			return
		}

		cell := func(i int) string {
			return cellText(cells.Eq(i))
		}
		drafts = append(drafts, entities.CaseDraft{
			CourtName:  cell(0),
			FileNumber: cell(1),
			Parties:    cell(2),
			TarafAdi:   cell(3),
			CaseStatus: cell(4),
		})
	})

	return drafts, nil
}

// cellText сворачивает пробельные символы так же, как их показывает браузер.
func cellText(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.Text()), " ")
}
