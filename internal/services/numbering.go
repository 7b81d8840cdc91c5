package services

import "github.com/diewo77/glasspro/internal/models"

// Counters holds the last issued document sequence per year.
// Invoices and quotations share one sequence so a conversion never collides.
type Counters map[int]int

// Observe raises the year's counter to at least n's sequence.
func (c Counters) Observe(n models.DocumentNumber) {
	if n.Sequence > c[n.Year] {
		c[n.Year] = n.Sequence
	}
}

// Next reserves and returns the next number for docType in year.
func (c Counters) Next(docType models.DocumentType, year int) models.DocumentNumber {
	c[year]++
	return models.DocumentNumber{Prefix: docType.Prefix(), Year: year, Sequence: c[year]}
}
