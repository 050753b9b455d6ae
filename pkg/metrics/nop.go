package metrics

import "time"

// Nop реализация метрик для запуска с выключенными метриками
type Nop struct{}

func (Nop) RecordHTTPRequest(string, string, int, time.Duration) {}
func (Nop) RecordDBQuery(string, time.Duration, error)            {}
func (Nop) RecordReportRun(string, time.Duration)                 {}
func (Nop) RecordRows(int, map[string]int)                        {}
func (Nop) RecordReconciliation(string)                           {}
func (Nop) SetUtilization(string, float64)                        {}
