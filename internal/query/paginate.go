package query

// MaxLimit 单页条数上限
const MaxLimit = 10000

// Pagination 分页信息
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Paginate 截取第 page 页（从 1 开始）
//
// page 非法时取 1，limit 非法时取 defaultLimit，超过 MaxLimit 时取 MaxLimit；
// page 超出总页数时返回空页。
func Paginate[T any](items []T, page, limit, defaultLimit int) ([]T, Pagination) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	p := Pagination{
		Page:       page,
		Limit:      limit,
		Total:      len(items),
		TotalPages: (len(items) + limit - 1) / limit,
	}

	// page <= TotalPages 保证 (page-1)*limit 不溢出
	if page > p.TotalPages {
		return []T{}, p
	}
	start := (page - 1) * limit
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], p
}
