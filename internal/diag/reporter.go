package diag

// Reporter — минимальный контракт получения диагностик от проверок.
// Реализации: BagReporter (кладёт в Bag), ReporterFunc.
type Reporter interface {
	Report(line int, category string, confidence int, message string)
}

// ReporterFunc adapts a plain function to Reporter.
type ReporterFunc func(line int, category string, confidence int, message string)

func (f ReporterFunc) Report(line int, category string, confidence int, message string) {
	f(line, category, confidence, message)
}

// BagReporter — адаптер, который пишет в *Bag.
type BagReporter struct {
	Bag  *Bag
	File string
}

func (r BagReporter) Report(line int, category string, confidence int, message string) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{
		File:       r.File,
		Line:       line,
		Category:   category,
		Confidence: confidence,
		Message:    message,
	})
}
