package util

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		total    int64
		pageSize uint
		want     int
	}{
		{0, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 0, 3},
	}

	for _, tt := range tests {
		if got := CalculateTotalPage(tt.total, tt.pageSize); got != tt.want {
			t.Errorf("CalculateTotalPage(%d, %d) = %d, want %d", tt.total, tt.pageSize, got, tt.want)
		}
	}
}

func TestReadPagination(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query      string
		wantPage   uint
		wantSize   uint
		wantOffset int
	}{
		{"", 1, 10, 0},
		{"?page=3&pageSize=20", 3, 20, 40},
		{"?page=-1&pageSize=abc", 1, 10, 0},
		{"?pageSize=1000", 1, 100, 0},
	}

	for _, tt := range tests {
		ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
		ctx.Request = httptest.NewRequest("GET", "/api/proposals"+tt.query, nil)

		p := ReadPagination(ctx)
		if p.Page != tt.wantPage || p.PageSize != tt.wantSize || p.Offset() != tt.wantOffset {
			t.Errorf("ReadPagination(%q) = %+v offset %d", tt.query, p, p.Offset())
		}
	}
}
