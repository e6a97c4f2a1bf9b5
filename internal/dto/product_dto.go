package dto

// ProductFilter is bound from the query string of GET /v1/products.
type ProductFilter struct {
	Name       string `form:"name"`
	Code       string `form:"code"`
	CategoryID string `form:"categoryId" validate:"omitempty,uuid"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}
