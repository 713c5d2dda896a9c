package i18n

import (
	"fmt"
	"time"

	"github.com/dmitrymomot/folio/pkg/lang"
)

type dateFormat struct {
	layout string
	cjk    string
}

func formatFor(code lang.Code) dateFormat {
	switch code {
	case lang.Japanese:
		return dateFormat{cjk: "%d年%d月%d日"}
	case lang.Korean:
		return dateFormat{cjk: "%d년 %d월 %d일"}
	default:
		return dateFormat{layout: "January 2, 2006"}
	}
}

func (f dateFormat) date(d time.Time) string {
	if f.cjk != "" {
		return fmt.Sprintf(f.cjk, d.Year(), int(d.Month()), d.Day())
	}
	return d.Format(f.layout)
}
