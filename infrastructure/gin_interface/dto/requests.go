package dto

type FindPlaceRequest struct {
	Query string `json:"query" binding:"required"`
}

type StreetviewRequest struct {
	PanoID  string   `json:"panoID" binding:"required"`
	Heading *float64 `json:"heading" binding:"required"`
	Pitch   *float64 `json:"pitch" binding:"required"`
}

type PromptGenRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

type PromptGenResponse struct {
	Prompt string `json:"prompt"`
}
