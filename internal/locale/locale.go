// Package locale holds the static locale registry used by the date picker and
// the pure date formatters built on top of it.
//
// The registry is built once at package init and never mutated. Lookups are
// exact on the locale code; unknown codes resolve to the base locale ("en").
package locale

import "sort"

// Base is the locale every unknown code falls back to.
const Base = "en"

// Order is the field order a locale uses for wheel columns and year-month labels.
type Order int

const (
	// DayFirst renders Day/Month/Year columns and "<month> <year>" labels.
	DayFirst Order = iota
	// YearFirst renders Year/Month/Day columns and "<year><unit><month>" labels.
	YearFirst
)

func (o Order) String() string {
	if o == YearFirst {
		return "year-first"
	}
	return "day-first"
}

// Strings are the dialog texts shown by the picker.
type Strings struct {
	Title   string `json:"title"`
	Confirm string `json:"confirm"`
}

// Locale is one immutable registry entry.
type Locale struct {
	Code string
	// Pattern uses {YYYY}, {MM}, {DD} (zero-padded) and {M}, {D} (unpadded).
	Pattern string
	Months  [12]string
	Order   Order
	// YearUnit sits between year and month label for YearFirst locales.
	YearUnit string
	Strings  Strings
}

const (
	patternISO      = "{YYYY}-{MM}-{DD}"
	patternDashDMY  = "{DD}-{MM}-{YYYY}"
	patternSlashDMY = "{DD}/{MM}/{YYYY}"
	patternDotDMY   = "{DD}.{MM}.{YYYY}"
	patternSlashYMD = "{YYYY}/{MM}/{DD}"
	patternHindi    = "{D}/{M}/{YYYY}"
	patternCJK      = "{YYYY}年{M}月{D}日"
	patternKorean   = "{YYYY}년 {M}월 {D}일"
)

var (
	monthsEN = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	monthsCJ = [12]string{"1月", "2月", "3月", "4月", "5月", "6月", "7月", "8月", "9月", "10月", "11月", "12月"}
	monthsKO = [12]string{"1월", "2월", "3월", "4월", "5월", "6월", "7월", "8월", "9월", "10월", "11월", "12월"}
	monthsES = [12]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sep", "oct", "nov", "dic"}
	monthsFR = [12]string{"janv", "févr", "mars", "avr", "mai", "juin", "juil", "août", "sept", "oct", "nov", "déc"}
	monthsDE = [12]string{"Jan", "Feb", "Mär", "Apr", "Mai", "Jun", "Jul", "Aug", "Sep", "Okt", "Nov", "Dez"}
	monthsAR = [12]string{"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو", "يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر"}
	monthsHI = [12]string{"जन", "फर", "मार्च", "अप्र", "मई", "जून", "जुल", "अग", "सित", "अक्ट", "नव", "दिस"}
	monthsIT = [12]string{"gen", "feb", "mar", "apr", "mag", "giu", "lug", "ago", "set", "ott", "nov", "dic"}
	monthsPT = [12]string{"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"}
	monthsRU = [12]string{"янв", "фев", "мар", "апр", "мая", "июн", "июл", "авг", "сен", "окт", "ноя", "дек"}
)

var (
	stringsEN = Strings{Title: "Select Date", Confirm: "Confirm"}
	stringsZH = Strings{Title: "选择日期", Confirm: "确认"}
	stringsJA = Strings{Title: "日付を選択", Confirm: "確認"}
	stringsKO = Strings{Title: "날짜 선택", Confirm: "확인"}
	stringsES = Strings{Title: "Seleccionar fecha", Confirm: "Confirmar"}
	stringsFR = Strings{Title: "Sélectionner la date", Confirm: "Confirmer"}
	stringsDE = Strings{Title: "Datum auswählen", Confirm: "Bestätigen"}
	stringsAR = Strings{Title: "اختر التاريخ", Confirm: "تأكيد"}
	stringsHI = Strings{Title: "तारीख चुनें", Confirm: "पुष्टि करें"}
	stringsIT = Strings{Title: "Seleziona data", Confirm: "Conferma"}
	stringsPT = Strings{Title: "Selecionar data", Confirm: "Confirmar"}
	stringsRU = Strings{Title: "Выберите дату", Confirm: "Подтвердить"}
)

// family groups codes that share one table row.
type family struct {
	codes    []string
	pattern  string
	months   [12]string
	order    Order
	yearUnit string
	strings  Strings
}

var families = []family{
	{codes: []string{"en", "en-US"}, pattern: patternISO, months: monthsEN, strings: stringsEN},
	{codes: []string{"en-GB"}, pattern: patternDashDMY, months: monthsEN, strings: stringsEN},
	// "zh-tw" is kept lowercase: lookups are exact.
	{codes: []string{"zh", "zh-CN", "zh-tw", "cn"}, pattern: patternCJK, months: monthsCJ, order: YearFirst, yearUnit: "年", strings: stringsZH},
	{codes: []string{"ja", "ja-JP"}, pattern: patternCJK, months: monthsCJ, order: YearFirst, yearUnit: "年", strings: stringsJA},
	{codes: []string{"ko", "ko-KR"}, pattern: patternKorean, months: monthsKO, order: YearFirst, yearUnit: "년 ", strings: stringsKO},
	{codes: []string{"es", "es-ES", "es-MX"}, pattern: patternSlashDMY, months: monthsES, strings: stringsES},
	{codes: []string{"fr", "fr-FR"}, pattern: patternSlashDMY, months: monthsFR, strings: stringsFR},
	{codes: []string{"de", "de-DE"}, pattern: patternDotDMY, months: monthsDE, strings: stringsDE},
	{codes: []string{"ar", "ar-SA"}, pattern: patternSlashYMD, months: monthsAR, strings: stringsAR},
	{codes: []string{"hi", "hi-IN"}, pattern: patternHindi, months: monthsHI, strings: stringsHI},
	{codes: []string{"it", "it-IT"}, pattern: patternSlashDMY, months: monthsIT, strings: stringsIT},
	{codes: []string{"pt", "pt-BR", "pt-PT"}, pattern: patternSlashDMY, months: monthsPT, strings: stringsPT},
	{codes: []string{"ru", "ru-RU"}, pattern: patternDotDMY, months: monthsRU, strings: stringsRU},
}

var (
	registry = buildRegistry()
	codes    = sortedCodes(registry)
)

func buildRegistry() map[string]Locale {
	out := make(map[string]Locale, 32)
	for _, f := range families {
		for _, c := range f.codes {
			out[c] = Locale{
				Code:     c,
				Pattern:  f.pattern,
				Months:   f.months,
				Order:    f.order,
				YearUnit: f.yearUnit,
				Strings:  f.strings,
			}
		}
	}
	return out
}

func sortedCodes(r map[string]Locale) []string {
	out := make([]string, 0, len(r))
	for c := range r {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Lookup returns the entry for code. When the code is unknown it returns the
// base locale and ok=false.
func Lookup(code string) (Locale, bool) {
	if l, ok := registry[code]; ok {
		return l, true
	}
	return registry[Base], false
}

// Resolve is Lookup without the ok flag.
func Resolve(code string) Locale {
	l, _ := Lookup(code)
	return l
}

// Known reports whether code is a registry key.
func Known(code string) bool {
	_, ok := registry[code]
	return ok
}

// Codes returns every registry key, sorted.
func Codes() []string {
	return append([]string(nil), codes...)
}

// DialogStrings returns the picker title/confirm texts for code.
func DialogStrings(code string) Strings {
	return Resolve(code).Strings
}

// MonthLabels returns the 12 month labels for code.
func MonthLabels(code string) [12]string {
	return Resolve(code).Months
}
