package utils

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type Pagination struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

type Paging struct {
	Page    int
	PerPage int
}

func (p Paging) Offset() int { return (p.Page - 1) * p.PerPage }

// Normalize mengisi page/per_page yang kosong atau di luar batas.
func (p Paging) Normalize(defaultPerPage, maxPerPage int) Paging {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage <= 0 {
		p.PerPage = defaultPerPage
	}
	if maxPerPage > 0 && p.PerPage > maxPerPage {
		p.PerPage = maxPerPage
	}
	return p
}

// ResolvePaging membaca ?page= dan ?limit= (alias ?per_page=).
func ResolvePaging(c *fiber.Ctx, defaultPerPage, maxPerPage int) Paging {
	perPageStr := strings.TrimSpace(c.Query("limit"))
	if perPageStr == "" {
		perPageStr = strings.TrimSpace(c.Query("per_page"))
	}
	page, _ := strconv.Atoi(strings.TrimSpace(c.Query("page", "1")))
	perPage, _ := strconv.Atoi(perPageStr)
	return Paging{Page: page, PerPage: perPage}.Normalize(defaultPerPage, maxPerPage)
}

func BuildPagination(total int64, p Paging) Pagination {
	perPage := p.PerPage
	if perPage <= 0 {
		perPage = 20
	}
	page := p.Page
	if page <= 0 {
		page = 1
	}
	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	if totalPages == 0 {
		totalPages = 1
	}
	return Pagination{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
