package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// CellKind тип значения ячейки документа
type CellKind int

const (
	CellEmpty CellKind = iota
	CellNumber
	CellText
	CellTime
)

// Cell represents a single raw value read from the document store.
// Time-of-day values may arrive in any of the kinds: a structured time,
// a fraction of a day or free text.
type Cell struct {
	Kind   CellKind
	Number float64
	Text   string
	Time   time.Time
}

// NumberCell создает числовую ячейку
func NumberCell(v float64) Cell {
	return Cell{Kind: CellNumber, Number: v}
}

// TextCell создает текстовую ячейку; пустая строка дает пустую ячейку
func TextCell(s string) Cell {
	if strings.TrimSpace(s) == "" {
		return Cell{Kind: CellEmpty}
	}
	return Cell{Kind: CellText, Text: s}
}

// TimeCell создает ячейку с датой/временем
func TimeCell(t time.Time) Cell {
	if t.IsZero() {
		return Cell{Kind: CellEmpty}
	}
	return Cell{Kind: CellTime, Time: t}
}

// IsEmpty returns true if the cell holds no value
func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty
}

// String returns the cell value as displayed text
func (c Cell) String() string {
	switch c.Kind {
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case CellText:
		return c.Text
	case CellTime:
		return c.Time.Format(time.RFC3339)
	default:
		return ""
	}
}

// ParseNumber возвращает числовое значение ячейки
// Текст допускается, если он целиком является числом
func ParseNumber(c Cell) (float64, bool) {
	switch c.Kind {
	case CellNumber:
		return c.Number, true
	case CellText:
		v, err := strconv.ParseFloat(strings.TrimSpace(c.Text), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return v, true
	default:
		return 0, false
	}
}
