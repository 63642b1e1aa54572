// internal/service/promotion/application/dto.go
package application

// PreviewResponse 是促销预览用例的输出数据。
type PreviewResponse struct {
	Eligible    bool   `json:"eligible"`
	Reason      string `json:"reason,omitempty"`
	PromotionID int64  `json:"promotionId,omitempty"`
	Discount    string `json:"discount,omitempty"`
	Total       string `json:"total,omitempty"`
}
