package util

import (
	"strconv"

	"github.com/SeakMengs/AutoRFP/internal/constant"
	"github.com/gin-gonic/gin"
)

type Pagination struct {
	Page     uint `json:"page"`
	PageSize uint `json:"pageSize"`
}

func (p Pagination) Offset() int {
	return int((p.Page - 1) * p.PageSize)
}

func (p Pagination) Limit() int {
	return int(p.PageSize)
}

// ReadPagination reads ?page and ?pageSize, clamping them to sane bounds.
func ReadPagination(ctx *gin.Context) Pagination {
	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	pageSize, err := strconv.Atoi(ctx.DefaultQuery("pageSize", strconv.Itoa(constant.DefaultPageSize)))
	if err != nil || pageSize < 1 {
		pageSize = constant.DefaultPageSize
	}

	return Pagination{Page: uint(page), PageSize: uint(min(pageSize, constant.MaxPageSize))}
}

func CalculateTotalPage(totalItems int64, pageSize uint) int {
	if pageSize <= 0 {
		pageSize = constant.DefaultPageSize
	}
	if totalItems == 0 {
		return 1
	}
	totalPage := int(totalItems / int64(pageSize))
	if totalItems%int64(pageSize) != 0 {
		totalPage++
	}
	return totalPage
}
