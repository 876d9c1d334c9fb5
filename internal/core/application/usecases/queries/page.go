package queries

import (
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

var ErrPageIsNotConstructed = errs.NewValueIsRequiredError("page must be created via NewPage constructor")

// Page selects a window of a listing. Numbers start at 1.
type Page struct {
	number int
	size   int
	guard  guard.ConstructorGuard
}

// NewPage validates paging input. Zero means "not given" and falls back to
// the first page and DefaultPageSize.
func NewPage(number, size int) (Page, error) {
	if number == 0 {
		number = 1
	}
	if size == 0 {
		size = DefaultPageSize
	}
	if number < 1 {
		return Page{}, errs.NewValueIsOutOfRangeError("page", number, 1, "unbounded")
	}
	if size < 1 || size > MaxPageSize {
		return Page{}, errs.NewValueIsOutOfRangeError("page size", size, 1, MaxPageSize)
	}
	return Page{number: number, size: size, guard: guard.NewConstructorGuard()}, nil
}

func (p Page) Validate() error {
	return p.guard.Validate(ErrPageIsNotConstructed)
}

func (p Page) Number() int {
	return p.number
}

func (p Page) Size() int {
	return p.size
}

func (p Page) Offset() int {
	return (p.number - 1) * p.size
}
