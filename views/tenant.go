package views

import (
	"net/http"

	"github.com/notionviews/relay/models"
)

type SetupGuideView struct {
	Header   string `json:"header"`
	Property string `json:"property"`
	Keep     string `json:"keep"`
}

type TenantView struct {
	Success    bool           `json:"success"`
	APIKey     string         `json:"api_key"`
	DatabaseId string         `json:"database_id,omitempty"`
	CreatedAt  string         `json:"created_at"`
	SetupGuide SetupGuideView `json:"setup_guide"`
}

func RenderTenant(w http.ResponseWriter, r *http.Request, tenant *models.Tenant) {
	RenderDataResponse(w, r, TenantView{
		Success:    true,
		APIKey:     tenant.APIKey,
		DatabaseId: tenant.DatabaseId,
		CreatedAt:  tenant.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		SetupGuide: SetupGuideView{
			Header:   "Send the api_key in the X-API-Key header on every call.",
			Property: "Add a number property named Views to your database, localized names work too.",
			Keep:     "Keys are not recoverable, register again if you lose it.",
		},
	})
}

type IncrementView struct {
	Success       bool    `json:"success"`
	PageId        string  `json:"page_id"`
	PreviousViews float64 `json:"previous_views"`
	NewViews      float64 `json:"new_views"`
	PropertyUsed  string  `json:"property_used"`
}

func RenderIncrement(w http.ResponseWriter, r *http.Request, result *models.IncrementResult) {
	RenderDataResponse(w, r, IncrementView{
		Success:       true,
		PageId:        result.PageId,
		PreviousViews: result.PreviousViews,
		NewViews:      result.NewViews,
		PropertyUsed:  result.PropertyUsed,
	})
}
