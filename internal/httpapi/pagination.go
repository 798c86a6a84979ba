package httpapi

import "strconv"

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Page — одна страница элементов в ответе списочных ручек.
type Page[T any] struct {
	Items    []T   `json:"items"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
	HasNext  bool  `json:"has_next"`
	HasPrev  bool  `json:"has_prev"`
}

// NewPage собирает страницу из уже отфильтрованных хранилищем элементов.
func NewPage[T any](items []T, page, pageSize int, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:    items,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
		HasNext:  int64(page*pageSize) < total,
		HasPrev:  page > 1,
	}
}

// pageParams разбирает query-параметры page и page_size с дефолтами.
func pageParams(pageStr, sizeStr string) (page, pageSize, limit, offset int) {
	page, _ = strconv.Atoi(pageStr)
	if page <= 0 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(sizeStr)
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize, pageSize, (page - 1) * pageSize
}
