package dto

// GalleryPage is one page of the public listing.
type GalleryPage struct {
	Items      []ArtworkCard `json:"items"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	Total      int           `json:"total"`
	TotalPages int           `json:"total_pages"`
}

// NewGalleryPage creates a paginated gallery response
func NewGalleryPage(items []ArtworkCard, total, page, pageSize int) *GalleryPage {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	return &GalleryPage{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

func (p *GalleryPage) HasPrev() bool { return p.Page > 1 }
func (p *GalleryPage) HasNext() bool { return p.Page < p.TotalPages }
func (p *GalleryPage) PrevPage() int { return p.Page - 1 }
func (p *GalleryPage) NextPage() int { return p.Page + 1 }
