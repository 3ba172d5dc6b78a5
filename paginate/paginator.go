// Package paginate splits counted lists into numbered pages
package paginate

import "strconv"

type Paginator struct {
	Count   int
	PerPage int
}

func New(count, perPage int) *Paginator {
	if perPage < 1 {
		perPage = 1
	}
	if count < 0 {
		count = 0
	}
	return &Paginator{Count: count, PerPage: perPage}
}

// NumPages is never below 1, an empty list still has one empty page
func (p *Paginator) NumPages() int {
	if p.Count == 0 {
		return 1
	}
	return (p.Count + p.PerPage - 1) / p.PerPage
}

func (p *Paginator) PageRange() []int {
	pages := make([]int, p.NumPages())
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

// Number resolves the raw page query value. Anything that is not a number
// gives the first page, numbers past the end give the last one
func (p *Paginator) Number(raw string) int {
	number, err := strconv.Atoi(raw)
	if err != nil || number < 1 {
		return 1
	}
	if last := p.NumPages(); number > last {
		return last
	}
	return number
}

// Bounds is the offset and limit of the given page
func (p *Paginator) Bounds(number int) (offset, limit int) {
	return (number - 1) * p.PerPage, p.PerPage
}

type Page[T any] struct {
	Items     []T
	Number    int
	Paginator *Paginator
}

func NewPage[T any](items []T, number int, paginator *Paginator) *Page[T] {
	return &Page[T]{Items: items, Number: number, Paginator: paginator}
}

func (pg *Page[T]) Len() int {
	return len(pg.Items)
}

func (pg *Page[T]) HasNext() bool {
	return pg.Number < pg.Paginator.NumPages()
}

func (pg *Page[T]) HasPrevious() bool {
	return pg.Number > 1
}

func (pg *Page[T]) HasOtherPages() bool {
	return pg.HasNext() || pg.HasPrevious()
}

func (pg *Page[T]) NextNumber() int {
	return pg.Number + 1
}

func (pg *Page[T]) PreviousNumber() int {
	return pg.Number - 1
}

// StartIndex is the 1-based index of the first item, 0 on an empty page
func (pg *Page[T]) StartIndex() int {
	if pg.Paginator.Count == 0 {
		return 0
	}
	return (pg.Number-1)*pg.Paginator.PerPage + 1
}

func (pg *Page[T]) EndIndex() int {
	if pg.Number == pg.Paginator.NumPages() {
		return pg.Paginator.Count
	}
	return pg.Number * pg.Paginator.PerPage
}
